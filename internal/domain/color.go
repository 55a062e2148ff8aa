package domain

import "math"

// achromaticChroma is the chroma below which a color carries no usable hue.
// Neutral sRGB colors round-trip through OKLab with chroma up to about 1.3e-4.
const achromaticChroma = 5e-4

// Color is a color in OKLCH. L is in [0,1], C in [0,0.5], H in degrees [0,360)
// and Alpha in [0,1].
type Color struct {
	L     float64 `json:"l"`
	C     float64 `json:"c"`
	H     float64 `json:"h"`
	Alpha float64 `json:"alpha"`
}

// NewColor returns an opaque color with a normalized hue.
func NewColor(l, c, h float64) Color {
	return Color{L: l, C: c, H: NormalizeHue(h), Alpha: 1}
}

// IsAchromatic reports whether the color has no meaningful hue.
func (c Color) IsAchromatic() bool {
	return c.C < achromaticChroma || math.IsNaN(c.H)
}

// WithHue returns a copy of c with h normalized into [0,360).
func (c Color) WithHue(h float64) Color {
	c.H = NormalizeHue(h)
	return c
}

// RGB holds 8-bit sRGB channels.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// OKLab holds the rectangular form of an OKLCH color.
type OKLab struct {
	L float64 `json:"l"`
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// NormalizeHue wraps h into [0,360). NaN and infinities map to 0.
func NormalizeHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// HueDelta returns the signed shortest angular offset from h1 to h2 in (-180,180].
func HueDelta(h1, h2 float64) float64 {
	d := math.Mod(h2-h1+180, 360)
	if d < 0 {
		d += 360
	}
	d -= 180
	if d == -180 {
		d = 180
	}
	return d
}

// Clamp limits v to [lo,hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
