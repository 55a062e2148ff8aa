package ports

import "github.com/emiliopalmerini/tonal/internal/domain"

// ColorSpace provides the raw color-science primitives the palette pipeline
// is built on. All manipulation happens in OKLCH; other spaces appear only at
// the boundary.
type ColorSpace interface {
	// Parse reads a color literal (hex, oklch(), rgb()) into OKLCH.
	Parse(s string) (domain.Color, error)
	// IsDisplayable reports whether c lies inside the sRGB gamut.
	IsDisplayable(c domain.Color) bool
	// ClampToGamut reduces chroma until c is displayable, keeping lightness and hue.
	ClampToGamut(c domain.Color) domain.Color
	ToHex(c domain.Color) string
	ToRGB(c domain.Color) domain.RGB
	ToOKLAB(c domain.Color) domain.OKLab
}
