package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/pkg/tui/components"
	"github.com/emiliopalmerini/tonal/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/tonal/internal/ports"
	"github.com/emiliopalmerini/tonal/internal/util"
)

const (
	formatSwatch = "swatch"
	formatJSON   = "json"
	formatCSS    = "css"
	formatHex    = "hex"
)

func validFormat(f string) error {
	switch f {
	case formatSwatch, formatJSON, formatCSS, formatHex:
		return nil
	}
	return fmt.Errorf("unknown format %q (want swatch, json, css or hex)", f)
}

type exportOKLCH struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
}

type exportStop struct {
	Stop    int         `json:"stop"`
	Hex     string      `json:"hex"`
	OKLCH   exportOKLCH `json:"oklch"`
	Clamped bool        `json:"clamped,omitempty"`
}

type exportPalette struct {
	Name  string       `json:"name"`
	Stops []exportStop `json:"stops"`
}

func toExport(space ports.ColorSpace, p domain.Palette) exportPalette {
	out := exportPalette{Name: p.Name, Stops: make([]exportStop, 0, len(p.Stops))}
	for _, s := range p.Stops {
		out.Stops = append(out.Stops, exportStop{
			Stop:    int(s.Position),
			Hex:     space.ToHex(s.Color),
			OKLCH:   exportOKLCH{L: s.Color.L, C: s.Color.C, H: domain.NormalizeHue(s.Color.H)},
			Clamped: s.Clamped,
		})
	}
	return out
}

// writePalettes renders palettes in format. JSON output is a single value for
// one palette and an array otherwise.
func writePalettes(w io.Writer, space ports.ColorSpace, palettes []domain.Palette, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(palettes) == 1 {
			return enc.Encode(toExport(space, palettes[0]))
		}
		all := make([]exportPalette, 0, len(palettes))
		for _, p := range palettes {
			all = append(all, toExport(space, p))
		}
		return enc.Encode(all)

	case formatCSS:
		fmt.Fprintln(w, ":root {")
		for _, p := range palettes {
			prefix := cssName(p.Name)
			for _, s := range p.Stops {
				fmt.Fprintf(w, "  --%s-%d: %s;\n", prefix, int(s.Position), space.ToHex(s.Color))
			}
		}
		fmt.Fprintln(w, "}")
		return nil

	case formatHex:
		for _, p := range palettes {
			for _, s := range p.Stops {
				fmt.Fprintln(w, space.ToHex(s.Color))
			}
		}
		return nil

	case formatSwatch:
		for i, p := range palettes {
			if i > 0 {
				fmt.Fprintln(w)
			}
			writeSwatch(w, space, p)
		}
		return nil
	}
	return validFormat(format)
}

func writeSwatch(w io.Writer, space ports.ColorSpace, p domain.Palette) {
	cells := make([]components.SwatchCell, 0, len(p.Stops))
	for _, s := range p.Stops {
		cells = append(cells, components.SwatchCell{
			Label:     s.Position.String(),
			Hex:       space.ToHex(s.Color),
			Lightness: s.Color.L,
			Marked:    s.Clamped,
		})
	}
	row := components.NewSwatchRow(cells...)

	fmt.Fprintln(w, theme.Default().Heading.Render(p.Name))
	fmt.Fprintln(w, row.View())
	fmt.Fprint(w, row.Table(func(c components.SwatchCell) string {
		if c.Marked {
			return "clamped to sRGB"
		}
		return ""
	}))
}

// cssName turns a palette name into a custom property segment.
func cssName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	dash := false
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "palette"
	}
	return s
}

func writePatternTable(w io.Writer, p *domain.Pattern) {
	fmt.Fprintf(w, "Pattern: %s (reference %d, %d sources, confidence %s)\n\n",
		p.Name, int(p.ReferenceStop), p.Metadata.SourceCount, util.FormatPercent(p.Metadata.Confidence))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STOP\tLIGHTNESS\tCHROMA\tHUE SHIFT")
	p.Transforms.Each(func(stop domain.StopPosition, t domain.StopTransform) {
		fmt.Fprintf(tw, "%d\t×%.4f\t×%.4f\t%+.2f°\n", int(stop), t.LightnessMultiplier, t.ChromaMultiplier, t.HueShiftDegrees)
	})
	_ = tw.Flush()
}
