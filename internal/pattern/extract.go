// Package pattern learns transformation patterns from example palettes and
// smooths them into generation-ready curves.
package pattern

import (
	"fmt"
	"math"

	"github.com/emiliopalmerini/tonal/internal/domain"
)

const (
	// LearnedName is the name given to every extracted pattern.
	LearnedName = "learned-pattern"

	// singleSourceConfidence is used when there is no cross-palette variance to measure.
	singleSourceConfidence = 0.8

	// minReference guards the ratio denominators against black or gray references.
	minReference = 0.001
)

type extractOptions struct {
	referenceStop domain.StopPosition
}

// ExtractOption configures Extract.
type ExtractOption func(*extractOptions)

// WithReferenceStop expresses the pattern relative to stop instead of 500.
func WithReferenceStop(stop domain.StopPosition) ExtractOption {
	return func(o *extractOptions) {
		o.referenceStop = stop
	}
}

// samples holds, per stop, one transform for every source palette.
type samples struct {
	lightness domain.Stops[[]float64]
	chroma    domain.Stops[[]float64]
	hue       domain.Stops[[]float64]
}

// Extract computes the median transform per stop across palettes.
func Extract(palettes []domain.AnalyzedPalette, opts ...ExtractOption) (*domain.Pattern, error) {
	o := extractOptions{referenceStop: domain.Stop500}
	for _, opt := range opts {
		opt(&o)
	}

	if len(palettes) == 0 {
		return nil, domain.NewError(domain.KindPatternExtraction, "no palettes to extract a pattern from", nil)
	}
	if !o.referenceStop.Valid() {
		return nil, domain.NewError(domain.KindPatternExtraction,
			fmt.Sprintf("reference stop %d is not canonical", int(o.referenceStop)), nil)
	}

	var s samples
	for _, p := range palettes {
		if err := s.add(p, o.referenceStop); err != nil {
			return nil, err
		}
	}

	var transforms domain.Stops[domain.StopTransform]
	for i, stop := range domain.AllStops {
		t, err := s.median(domain.StopIndex(i))
		if err != nil {
			return nil, domain.NewError(domain.KindPatternExtraction,
				fmt.Sprintf("no samples for stop %d", int(stop)), err)
		}
		transforms[i] = t
	}

	confidence := singleSourceConfidence
	if len(palettes) > 1 {
		confidence = s.confidence()
	}

	return &domain.Pattern{
		Name:          LearnedName,
		ReferenceStop: o.referenceStop,
		Transforms:    transforms,
		Metadata: domain.PatternMetadata{
			SourceCount: len(palettes),
			Confidence:  confidence,
		},
	}, nil
}

// StopTransformFor describes color relative to ref.
func StopTransformFor(ref, color domain.Color) domain.StopTransform {
	return domain.StopTransform{
		LightnessMultiplier: color.L / math.Max(ref.L, minReference),
		ChromaMultiplier:    color.C / math.Max(ref.C, minReference),
		HueShiftDegrees:     domain.HueDelta(ref.H, color.H),
	}
}

func (s *samples) add(p domain.AnalyzedPalette, referenceStop domain.StopPosition) error {
	ref, ok := p.Stop(referenceStop)
	if !ok {
		return domain.NewError(domain.KindPatternExtraction,
			fmt.Sprintf("palette %q has no reference stop %d", p.Name, int(referenceStop)), nil)
	}

	for _, stop := range p.Stops {
		i, err := domain.PositionToIndex(stop.Position)
		if err != nil {
			return domain.NewError(domain.KindPatternExtraction, fmt.Sprintf("palette %q", p.Name), err)
		}
		t := StopTransformFor(ref, stop.Color)
		s.lightness[i] = append(s.lightness[i], t.LightnessMultiplier)
		s.chroma[i] = append(s.chroma[i], t.ChromaMultiplier)
		s.hue[i] = append(s.hue[i], t.HueShiftDegrees)
	}
	return nil
}

func (s *samples) median(i domain.StopIndex) (domain.StopTransform, error) {
	l, err := Median(s.lightness[i])
	if err != nil {
		return domain.StopTransform{}, err
	}
	c, err := Median(s.chroma[i])
	if err != nil {
		return domain.StopTransform{}, err
	}
	h, err := Median(s.hue[i])
	if err != nil {
		return domain.StopTransform{}, err
	}
	return domain.StopTransform{LightnessMultiplier: l, ChromaMultiplier: c, HueShiftDegrees: h}, nil
}

// confidence is 1 minus the average spread of the lightness and chroma
// multipliers over every stop with at least two samples.
func (s *samples) confidence() float64 {
	var devs []float64
	for i := range s.lightness {
		if len(s.lightness[i]) >= 2 {
			devs = append(devs, StdDev(s.lightness[i]))
		}
		if len(s.chroma[i]) >= 2 {
			devs = append(devs, StdDev(s.chroma[i]))
		}
	}
	if len(devs) == 0 {
		return 1
	}
	return domain.Clamp(1-Mean(devs), 0, 1)
}
