package theme

import "github.com/charmbracelet/lipgloss"

// swatchTextThreshold is the OKLCH lightness above which swatch labels switch
// to dark text.
const swatchTextThreshold = 0.6

// Swatch returns a style that paints hex as the background with a readable
// label color for the given OKLCH lightness.
func Swatch(hex string, lightness float64) lipgloss.Style {
	fg := White
	if lightness > swatchTextThreshold {
		fg = Black
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(fg).
		Padding(0, 1)
}
