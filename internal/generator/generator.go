// Package generator synthesizes ten-stop palettes from an anchor color and a
// smoothed transformation pattern.
package generator

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/ports"
)

// DefaultWorkers bounds the fan-out when no option is given.
const DefaultWorkers = 4

// Generator applies patterns to anchor colors.
type Generator struct {
	space   ports.ColorSpace
	workers int
}

// Option configures a Generator.
type Option func(*Generator)

// WithWorkers bounds the number of concurrent computations. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// New creates a Generator that gamut-corrects through space.
func New(space ports.ColorSpace, opts ...Option) *Generator {
	g := &Generator{space: space, workers: DefaultWorkers}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FromStop builds a palette in which anchor sits at anchorStop. Every other
// stop is derived from the ratio between its transform and the anchor's
// transform, so any stop can serve as the anchor regardless of the pattern's
// reference stop.
func (g *Generator) FromStop(ctx context.Context, anchor domain.Color, anchorStop domain.StopPosition, pattern *domain.Pattern, name string) (domain.Palette, error) {
	if pattern == nil {
		return domain.Palette{}, domain.NewError(domain.KindPaletteGeneration, "no pattern given", nil)
	}
	anchorT, err := pattern.Transform(anchorStop)
	if err != nil {
		return domain.Palette{}, domain.NewError(domain.KindPaletteGeneration,
			fmt.Sprintf("missing transform for anchor stop %d", int(anchorStop)), err)
	}
	if anchorT.LightnessMultiplier == 0 || anchorT.ChromaMultiplier == 0 {
		return domain.Palette{}, domain.NewError(domain.KindPaletteGeneration,
			fmt.Sprintf("anchor stop %d has a zero multiplier in pattern %q", int(anchorStop), pattern.Name), nil)
	}

	stops := make([]domain.PaletteStop, domain.StopCount)

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, target := range domain.AllStops {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			targetT, err := pattern.Transform(target)
			if err != nil {
				return domain.NewError(domain.KindPaletteGeneration,
					fmt.Sprintf("missing transform for stop %d", int(target)), err)
			}
			stops[i] = g.stop(anchor, anchorT, target, targetT)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return domain.Palette{}, err
	}

	domain.SortStops(stops)
	return domain.Palette{Name: name, Stops: stops}, nil
}

// stop computes a single target stop relative to the anchor.
func (g *Generator) stop(anchor domain.Color, anchorT domain.StopTransform, target domain.StopPosition, targetT domain.StopTransform) domain.PaletteStop {
	lightnessRatio := targetT.LightnessMultiplier / anchorT.LightnessMultiplier
	chromaRatio := targetT.ChromaMultiplier / anchorT.ChromaMultiplier
	hueDelta := targetT.HueShiftDegrees - anchorT.HueShiftDegrees

	c := domain.Color{
		L:     domain.Clamp(anchor.L*lightnessRatio, 0, 1),
		C:     math.Max(0, anchor.C*chromaRatio),
		H:     domain.NormalizeHue(anchor.H + hueDelta),
		Alpha: anchor.Alpha,
	}

	if g.space.IsDisplayable(c) {
		return domain.PaletteStop{Position: target, Color: c}
	}
	return domain.PaletteStop{Position: target, Color: g.space.ClampToGamut(c), Clamped: true}
}
