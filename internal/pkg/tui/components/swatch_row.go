package components

import (
	"strings"

	"github.com/emiliopalmerini/tonal/internal/pkg/tui/theme"
)

// SwatchCell is one colored block in a SwatchRow.
type SwatchCell struct {
	Label     string
	Hex       string
	Lightness float64
	// Marked cells get a trailing marker, e.g. for gamut-clamped stops.
	Marked bool
}

// SwatchRow renders cells side by side.
type SwatchRow struct {
	Cells  []SwatchCell
	Marker string
}

// NewSwatchRow creates a row that marks cells with "*".
func NewSwatchRow(cells ...SwatchCell) SwatchRow {
	return SwatchRow{Cells: cells, Marker: "*"}
}

// View renders the row on one line.
func (r SwatchRow) View() string {
	var b strings.Builder
	for _, c := range r.Cells {
		label := c.Label
		if c.Marked {
			label += r.Marker
		}
		b.WriteString(theme.Swatch(c.Hex, c.Lightness).Render(label))
	}
	return b.String()
}

// Table renders one line per cell: swatch, hex and an optional note.
func (r SwatchRow) Table(note func(SwatchCell) string) string {
	styles := theme.Default()
	var b strings.Builder
	for _, c := range r.Cells {
		b.WriteString(theme.Swatch(c.Hex, c.Lightness).Render(padLeft(c.Label, 5)))
		b.WriteString(" ")
		b.WriteString(styles.Hex.Render(c.Hex))
		if note != nil {
			if n := note(c); n != "" {
				b.WriteString(" ")
				b.WriteString(styles.Note.Render(n))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
