package pattern

import (
	"math"
	"testing"

	"github.com/emiliopalmerini/tonal/internal/domain"
)

func assertFloatNear(t *testing.T, name string, expected, actual float64) {
	t.Helper()
	if math.Abs(expected-actual) > 1e-5 {
		t.Errorf("%s: expected %.6f, got %.6f", name, expected, actual)
	}
}

// blueScale is a hand-made 10-stop blue scale with stop 500 at l=0.5 c=0.15 h=250.
func blueScale(name string) domain.AnalyzedPalette {
	ls := [domain.StopCount]float64{0.9, 0.82, 0.74, 0.62, 0.5, 0.44, 0.38, 0.31, 0.25, 0.2}
	cs := [domain.StopCount]float64{0.08, 0.1, 0.12, 0.14, 0.15, 0.14, 0.12, 0.1, 0.08, 0.06}
	hs := [domain.StopCount]float64{250, 250, 251, 250, 250, 252, 253, 254, 255, 256}

	p := domain.AnalyzedPalette{Name: name}
	for i, stop := range domain.AllStops {
		p.Stops = append(p.Stops, domain.PaletteStop{
			Position: stop,
			Color:    domain.NewColor(ls[i], cs[i], hs[i]),
		})
	}
	return p
}

// scaled returns a copy of p with every lightness multiplied by lf and every chroma by cf.
func scaled(p domain.AnalyzedPalette, lf, cf float64) domain.AnalyzedPalette {
	out := domain.AnalyzedPalette{Name: p.Name + "-scaled"}
	for _, s := range p.Stops {
		c := s.Color
		if s.Position != domain.Stop500 {
			c.L *= lf
			c.C *= cf
		}
		out.Stops = append(out.Stops, domain.PaletteStop{Position: s.Position, Color: c})
	}
	return out
}
