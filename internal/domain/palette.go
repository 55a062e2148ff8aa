package domain

import (
	"fmt"
	"sort"
	"time"
)

// PaletteStop is a color placed at a canonical stop. Clamped is set by the
// generator when the color had to be pulled back into sRGB.
type PaletteStop struct {
	Position StopPosition `json:"position"`
	Color    Color        `json:"color"`
	Clamped  bool         `json:"clamped,omitempty"`
}

// Palette is a generated scale with exactly one stop per canonical position,
// sorted ascending.
type Palette struct {
	Name  string        `json:"name"`
	Stops []PaletteStop `json:"stops"`
}

// At returns the color at position p.
func (p Palette) At(pos StopPosition) (Color, bool) {
	for _, s := range p.Stops {
		if s.Position == pos {
			return s.Color, true
		}
	}
	return Color{}, false
}

// ClampedCount returns how many stops were gamut-clamped.
func (p Palette) ClampedCount() int {
	n := 0
	for _, s := range p.Stops {
		if s.Clamped {
			n++
		}
	}
	return n
}

// SortStops orders stops ascending by position.
func SortStops(stops []PaletteStop) {
	sort.Slice(stops, func(i, j int) bool {
		return stops[i].Position < stops[j].Position
	})
}

// AnalyzedPalette is an example scale used as input to pattern extraction.
type AnalyzedPalette struct {
	ID        string
	Name      string
	Stops     []PaletteStop
	CreatedAt time.Time
}

// Stop returns the color at position p.
func (a AnalyzedPalette) Stop(p StopPosition) (Color, bool) {
	for _, s := range a.Stops {
		if s.Position == p {
			return s.Color, true
		}
	}
	return Color{}, false
}

// Validate checks that the palette has exactly one entry per canonical stop.
func (a AnalyzedPalette) Validate() error {
	var seen Stops[bool]
	for _, s := range a.Stops {
		i, err := PositionToIndex(s.Position)
		if err != nil {
			return NewError(KindCollection, fmt.Sprintf("palette %q", a.Name), err)
		}
		if seen[i] {
			return NewError(KindCollection, fmt.Sprintf("palette %q has duplicate stop %d", a.Name, int(s.Position)), nil)
		}
		seen[i] = true
	}
	for i, ok := range seen {
		if !ok {
			return NewError(KindCollection, fmt.Sprintf("palette %q is missing stop %d", a.Name, int(AllStops[i])), nil)
		}
	}
	return nil
}
