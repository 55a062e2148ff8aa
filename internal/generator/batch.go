package generator

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/tonal/internal/domain"
)

// ErrAllFailed is returned by Batch when no request succeeded.
var ErrAllFailed = errors.New("all palette generations failed")

// Request describes one palette to generate.
type Request struct {
	Name       string
	Anchor     domain.Color
	AnchorStop domain.StopPosition
	Pattern    *domain.Pattern
}

// Result pairs a request with its palette or its failure.
type Result struct {
	Request Request
	Palette domain.Palette
	Err     error
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// Batch generates every request independently. Failures are captured per item
// and never abort the other items. The results keep the order of reqs. The
// returned error is ErrAllFailed only when every request failed.
func (g *Generator) Batch(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))

	var eg errgroup.Group
	eg.SetLimit(g.workers)
	for i, req := range reqs {
		eg.Go(func() error {
			results[i].Request = req
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Palette, results[i].Err = g.FromStop(ctx, req.Anchor, req.AnchorStop, req.Pattern, req.Name)
			return nil
		})
	}
	_ = eg.Wait()

	if len(reqs) > 0 && Failed(results) == len(reqs) {
		return results, ErrAllFailed
	}
	return results, nil
}
