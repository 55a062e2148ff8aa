// Package optical transfers the perceived brightness and saturation of one
// color onto the hue of another.
package optical

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/ports"
)

const (
	// minViableLightness and maxViableLightness bound the references that
	// still carry usable chroma information.
	minViableLightness = 0.05
	maxViableLightness = 0.95

	// maxViableChromaLoss is the share of chroma a gamut clamp may remove
	// before a transfer is considered not viable.
	maxViableChromaLoss = 0.5

	defaultWorkers = 4
)

// Transformer applies optical appearance transfers.
type Transformer struct {
	space   ports.ColorSpace
	workers int
}

// NewTransformer creates a Transformer. workers bounds ApplyMany; values below
// 1 fall back to a small default.
func NewTransformer(space ports.ColorSpace, workers int) *Transformer {
	if workers < 1 {
		workers = defaultWorkers
	}
	return &Transformer{space: space, workers: workers}
}

// Apply returns reference's lightness and chroma on target's hue.
//
// An achromatic reference yields a gray at reference's lightness. An
// achromatic target has no hue to give, so reference's own hue is kept.
// Otherwise the result is gamut-clamped if needed, and a clamp that would
// remove all chroma is reported as an error instead of returning a gray.
func (t *Transformer) Apply(reference, target domain.Color) (domain.Color, error) {
	base := candidate(reference, target)
	if reference.IsAchromatic() || target.IsAchromatic() {
		return base, nil
	}
	if t.space.IsDisplayable(base) {
		return base, nil
	}

	clamped := t.space.ClampToGamut(base)
	if clamped.C == 0 && base.C > 0 {
		return domain.Color{}, domain.NewError(domain.KindColor,
			fmt.Sprintf("hue %.1f cannot carry lightness %.3f with any chroma", base.H, base.L), nil)
	}
	return clamped, nil
}

// IsViable reports whether Apply would give a faithful result: reference must
// not be near black or white, and a gamut clamp must keep at least half of
// the transferred chroma.
func (t *Transformer) IsViable(reference, target domain.Color) bool {
	if reference.L < minViableLightness || reference.L > maxViableLightness {
		return false
	}
	if reference.IsAchromatic() && target.IsAchromatic() {
		return true
	}

	base := candidate(reference, target)
	if t.space.IsDisplayable(base) {
		return true
	}
	if base.C == 0 {
		return false
	}
	clamped := t.space.ClampToGamut(base)
	return (base.C-clamped.C)/base.C < maxViableChromaLoss
}

// candidate is the unclamped result of a transfer.
func candidate(reference, target domain.Color) domain.Color {
	switch {
	case reference.IsAchromatic():
		return domain.Color{L: reference.L, C: 0, H: domain.NormalizeHue(target.H), Alpha: reference.Alpha}
	case target.IsAchromatic():
		return domain.Color{L: reference.L, C: reference.C, H: domain.NormalizeHue(reference.H), Alpha: reference.Alpha}
	default:
		return domain.Color{L: reference.L, C: reference.C, H: domain.NormalizeHue(target.H), Alpha: reference.Alpha}
	}
}

// Result is the outcome of one transfer in ApplyMany.
type Result struct {
	Target domain.Color
	Color  domain.Color
	Err    error
}

// ApplyMany transfers reference onto every target concurrently. Results keep
// the order of targets and failures are captured per target.
func (t *Transformer) ApplyMany(ctx context.Context, reference domain.Color, targets []domain.Color) []Result {
	results := make([]Result, len(targets))

	var eg errgroup.Group
	eg.SetLimit(t.workers)
	for i, target := range targets {
		eg.Go(func() error {
			results[i].Target = target
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Color, results[i].Err = t.Apply(reference, target)
			return nil
		})
	}
	_ = eg.Wait()

	return results
}
