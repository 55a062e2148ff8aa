package turso

import (
	"context"
	"strings"
	"time"
)

// readRetries bounds how often a read is repeated after a dropped stream.
const readRetries = 2

// isStreamError reports whether err is a remote libsql "stream not found"
// error. The server closes idle Hrana streams, and the next query on such a
// connection fails this way.
func isStreamError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "stream not found")
}

// withRetry runs fn, repeating it up to maxRetries times while it fails with
// a stream error.
func withRetry[T any](ctx context.Context, maxRetries int, fn func() (T, error)) (T, error) {
	var result T
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		result, err = fn()
		if err == nil {
			return result, nil
		}
		if !isStreamError(err) || attempt == maxRetries {
			return result, err
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-time.After(10 * time.Millisecond):
		}
	}
	return result, err
}
