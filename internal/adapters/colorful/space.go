// Package colorful implements ports.ColorSpace on top of go-colorful.
package colorful

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/emiliopalmerini/tonal/internal/domain"
)

const (
	// gamutTolerance is half an 8-bit step: a channel within it rounds into
	// [0,255] and absorbs the float32 precision of the OKLab matrices.
	gamutTolerance = 0.5 / 255
	clampSteps     = 32
	// grayChroma matches the achromatic threshold in domain. Neutral sRGB
	// colors come back from OKLab with chroma up to about 1.3e-4.
	grayChroma = 5e-4
)

// Space is a ports.ColorSpace backed by github.com/lucasb-eyer/go-colorful.
type Space struct{}

// NewSpace creates a new color space adapter.
func NewSpace() *Space {
	return &Space{}
}

// Parse reads "#rgb", "#rgba", "#rrggbb", "#rrggbbaa", "oklch(L C H [/ A])" and
// "rgb(r, g, b)" / "rgba(r, g, b, a)".
func (s *Space) Parse(input string) (domain.Color, error) {
	str := strings.ToLower(strings.TrimSpace(input))
	switch {
	case strings.HasPrefix(str, "#"):
		return parseHex(str)
	case strings.HasPrefix(str, "oklch(") && strings.HasSuffix(str, ")"):
		return parseOKLCH(str[len("oklch(") : len(str)-1])
	case strings.HasPrefix(str, "rgba(") && strings.HasSuffix(str, ")"):
		return parseRGB(str[len("rgba(") : len(str)-1])
	case strings.HasPrefix(str, "rgb(") && strings.HasSuffix(str, ")"):
		return parseRGB(str[len("rgb(") : len(str)-1])
	}
	return domain.Color{}, domain.NewError(domain.KindColor, fmt.Sprintf("unrecognized color %q", input), nil)
}

func (s *Space) IsDisplayable(c domain.Color) bool {
	return inGamut(toColorful(c))
}

// ClampToGamut bisects on chroma. Lightness and hue are left untouched.
func (s *Space) ClampToGamut(c domain.Color) domain.Color {
	if s.IsDisplayable(c) {
		return c
	}
	if c.L >= 1 {
		return domain.Color{L: 1, C: 0, H: hueOf(c), Alpha: c.Alpha}
	}
	if c.L <= 0 {
		return domain.Color{L: 0, C: 0, H: hueOf(c), Alpha: c.Alpha}
	}

	lo, hi := 0.0, c.C
	for i := 0; i < clampSteps; i++ {
		mid := (lo + hi) / 2
		trial := c
		trial.C = mid
		if s.IsDisplayable(trial) {
			lo = mid
		} else {
			hi = mid
		}
	}
	c.C = lo
	return c
}

// ToHex returns "#RRGGBB", or "#RRGGBBAA" for translucent colors.
func (s *Space) ToHex(c domain.Color) string {
	hex := strings.ToUpper(toColorful(c).Clamped().Hex())
	if c.Alpha < 1 {
		hex += fmt.Sprintf("%02X", uint8(math.Round(domain.Clamp(c.Alpha, 0, 1)*255)))
	}
	return hex
}

func (s *Space) ToRGB(c domain.Color) domain.RGB {
	r, g, b := toColorful(c).Clamped().RGB255()
	return domain.RGB{R: r, G: g, B: b}
}

// ToOKLAB is the polar-to-cartesian form of c. A missing hue counts as 0.
func (s *Space) ToOKLAB(c domain.Color) domain.OKLab {
	h := hueOf(c) * math.Pi / 180
	return domain.OKLab{L: c.L, A: c.C * math.Cos(h), B: c.C * math.Sin(h)}
}

func toColorful(c domain.Color) colorful.Color {
	return colorful.OkLch(c.L, c.C, hueOf(c))
}

func fromColorful(col colorful.Color, alpha float64) domain.Color {
	l, c, h := col.OkLch()
	if c < grayChroma || (col.R == col.G && col.G == col.B) {
		c, h = 0, 0
	}
	return domain.Color{L: l, C: c, H: domain.NormalizeHue(h), Alpha: alpha}
}

func hueOf(c domain.Color) float64 {
	if math.IsNaN(c.H) {
		return 0
	}
	return c.H
}

func inGamut(col colorful.Color) bool {
	for _, v := range []float64{col.R, col.G, col.B} {
		if math.IsNaN(v) || v < -gamutTolerance || v > 1+gamutTolerance {
			return false
		}
	}
	return true
}

func parseHex(str string) (domain.Color, error) {
	alpha := 1.0
	switch len(str) {
	case 5:
		a, err := strconv.ParseUint(strings.Repeat(str[4:], 2), 16, 8)
		if err != nil {
			return domain.Color{}, domain.NewError(domain.KindColor, fmt.Sprintf("invalid hex color %q", str), err)
		}
		alpha = float64(a) / 255
		str = str[:4]
	case 9:
		a, err := strconv.ParseUint(str[7:], 16, 8)
		if err != nil {
			return domain.Color{}, domain.NewError(domain.KindColor, fmt.Sprintf("invalid hex color %q", str), err)
		}
		alpha = float64(a) / 255
		str = str[:7]
	}

	col, err := colorful.Hex(str)
	if err != nil {
		return domain.Color{}, domain.NewError(domain.KindColor, fmt.Sprintf("invalid hex color %q", str), err)
	}
	return fromColorful(col, alpha), nil
}

func parseOKLCH(body string) (domain.Color, error) {
	comps, alphaPart, hasAlpha := strings.Cut(body, "/")
	fields := strings.FieldsFunc(comps, func(r rune) bool { return r == ' ' || r == ',' })
	if len(fields) != 3 {
		return domain.Color{}, domain.NewError(domain.KindColor, fmt.Sprintf("oklch() needs 3 components, got %d", len(fields)), nil)
	}

	l, err := parseNumber(fields[0], 100)
	if err != nil {
		return domain.Color{}, err
	}
	c, err := parseNumber(fields[1], 250)
	if err != nil {
		return domain.Color{}, err
	}
	var h float64
	if fields[2] == "none" {
		h = math.NaN()
	} else if h, err = parseNumber(strings.TrimSuffix(fields[2], "deg"), 1); err != nil {
		return domain.Color{}, err
	}

	alpha := 1.0
	if hasAlpha {
		if alpha, err = parseNumber(strings.TrimSpace(alphaPart), 100); err != nil {
			return domain.Color{}, err
		}
	}

	color := domain.Color{
		L:     domain.Clamp(l, 0, 1),
		C:     math.Max(0, c),
		H:     h,
		Alpha: domain.Clamp(alpha, 0, 1),
	}
	if math.IsNaN(h) {
		color.C = 0
	} else {
		color.H = domain.NormalizeHue(h)
	}
	return color, nil
}

func parseRGB(body string) (domain.Color, error) {
	fields := strings.FieldsFunc(body, func(r rune) bool { return r == ' ' || r == ',' || r == '/' })
	if len(fields) != 3 && len(fields) != 4 {
		return domain.Color{}, domain.NewError(domain.KindColor, fmt.Sprintf("rgb() needs 3 or 4 components, got %d", len(fields)), nil)
	}

	var ch [3]float64
	for i := range ch {
		v, err := parseNumber(fields[i], 100.0/255)
		if err != nil {
			return domain.Color{}, err
		}
		ch[i] = domain.Clamp(v, 0, 255) / 255
	}

	alpha := 1.0
	if len(fields) == 4 {
		a, err := parseNumber(fields[3], 100)
		if err != nil {
			return domain.Color{}, err
		}
		alpha = domain.Clamp(a, 0, 1)
	}
	return fromColorful(colorful.Color{R: ch[0], G: ch[1], B: ch[2]}, alpha), nil
}

// parseNumber parses a float; a trailing % divides by percentScale.
func parseNumber(s string, percentScale float64) (float64, error) {
	s = strings.TrimSpace(s)
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		scale = percentScale
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, domain.NewError(domain.KindColor, fmt.Sprintf("invalid number %q", s), err)
	}
	return v / scale, nil
}
