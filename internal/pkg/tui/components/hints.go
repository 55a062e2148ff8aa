package components

import (
	"strings"

	"github.com/emiliopalmerini/tonal/internal/pkg/tui/theme"
)

// Hint pairs a key with what it does.
type Hint struct {
	Key    string
	Action string
}

// Hints renders key hints on one line, e.g. "enter accept · esc cancel".
func Hints(hints ...Hint) string {
	styles := theme.Default()
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, styles.Key.Render(h.Key)+" "+styles.Note.Render(h.Action))
	}
	return strings.Join(parts, styles.Note.Render(" · "))
}
