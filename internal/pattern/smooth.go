package pattern

import (
	"math"

	"github.com/emiliopalmerini/tonal/internal/domain"
)

// SmoothedSuffix is appended to the name of a smoothed pattern.
const SmoothedSuffix = "-smoothed"

// xMid is the normalized position of stop 500.
var xMid = domain.Stop500.Normalized()

// quadratic is y = a·x² + b·x + c over normalized stop positions.
type quadratic struct {
	a, b, c float64
}

// fitThroughMidpoint returns the quadratic through (0, start), (xMid, 1) and (1, end).
func fitThroughMidpoint(start, end float64) quadratic {
	c := start
	a := (1.0 - c - end*xMid + c*xMid) / (xMid*xMid - xMid)
	b := end - c - a
	return quadratic{a: a, b: b, c: c}
}

func (q quadratic) at(x float64) float64 {
	return q.a*x*x + q.b*x + q.c
}

// Smooth fits lightness and chroma to quadratics through stops 100, 500 and
// 1000, with stop 500 pinned to 1.0, and replaces every hue shift by the
// median hue shift.
func Smooth(p *domain.Pattern) (*domain.Pattern, error) {
	first, err := p.Transform(domain.Stop100)
	if err != nil {
		return nil, domain.NewError(domain.KindInterpolation, "smoothing needs stop 100", err)
	}
	last, err := p.Transform(domain.Stop1000)
	if err != nil {
		return nil, domain.NewError(domain.KindInterpolation, "smoothing needs stop 1000", err)
	}

	hues := make([]float64, 0, domain.StopCount)
	p.Transforms.Each(func(_ domain.StopPosition, t domain.StopTransform) {
		hues = append(hues, t.HueShiftDegrees)
	})
	hue, err := Median(hues)
	if err != nil {
		return nil, domain.NewError(domain.KindInterpolation, "cannot compute hue shift", err)
	}

	lightness := curve(first.LightnessMultiplier, last.LightnessMultiplier)
	chroma := curve(first.ChromaMultiplier, last.ChromaMultiplier)

	var transforms domain.Stops[domain.StopTransform]
	for i := range domain.AllStops {
		transforms[i] = domain.StopTransform{
			LightnessMultiplier: lightness[i],
			ChromaMultiplier:    chroma[i],
			HueShiftDegrees:     hue,
		}
	}

	return &domain.Pattern{
		Name:          p.Name + SmoothedSuffix,
		ReferenceStop: p.ReferenceStop,
		Transforms:    transforms,
		Metadata:      p.Metadata,
	}, nil
}

// curve evaluates the fitted quadratic at every stop, floored at 0. The three
// anchor points are written exactly so they do not pick up rounding error.
func curve(start, end float64) domain.Stops[float64] {
	q := fitThroughMidpoint(start, end)
	var out domain.Stops[float64]
	for i, stop := range domain.AllStops {
		out[i] = math.Max(0, q.at(stop.Normalized()))
	}
	out[0] = math.Max(0, start)
	out[4] = 1.0
	out[domain.StopCount-1] = math.Max(0, end)
	return out
}
