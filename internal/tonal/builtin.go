package tonal

import (
	"fmt"
	"sync"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/pattern"
	"github.com/emiliopalmerini/tonal/internal/ports"
)

// BuiltinName is the name of the pattern that ships with the binary.
const BuiltinName = "default"

// builtinScale is a hand-tuned blue scale from 100 to 1000.
var builtinScale = [domain.StopCount]string{
	"#EBF1FA", "#C5D7F2", "#9DBCEA", "#6E9BDF", "#2D72D2",
	"#215DB0", "#184A90", "#10386E", "#0A2850", "#061A35",
}

type builtin struct {
	once    sync.Once
	pattern *domain.Pattern
	err     error
}

func (b *builtin) get(space ports.ColorSpace) (*domain.Pattern, error) {
	b.once.Do(func() {
		b.pattern, b.err = BuiltinPattern(space)
	})
	if b.err != nil {
		return nil, b.err
	}
	p := *b.pattern
	return &p, nil
}

// BuiltinPattern learns and smooths the pattern of the built-in blue scale.
func BuiltinPattern(space ports.ColorSpace) (*domain.Pattern, error) {
	src := domain.AnalyzedPalette{Name: "builtin-blue"}
	for i, hex := range builtinScale {
		c, err := space.Parse(hex)
		if err != nil {
			return nil, fmt.Errorf("failed to parse built-in color %s: %w", hex, err)
		}
		src.Stops = append(src.Stops, domain.PaletteStop{Position: domain.AllStops[i], Color: c})
	}

	raw, err := pattern.Extract([]domain.AnalyzedPalette{src})
	if err != nil {
		return nil, err
	}
	smoothed, err := pattern.Smooth(raw)
	if err != nil {
		return nil, err
	}
	smoothed.Name = BuiltinName
	return smoothed, nil
}
