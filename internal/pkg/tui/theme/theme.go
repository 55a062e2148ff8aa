// Package theme holds the terminal styles used to show palettes. Swatches
// are painted with the palette's own colors; everything else uses the small
// neutral set below so it reads on light and dark terminals.
package theme

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	White  = lipgloss.Color("#FFFFFF")
	Black  = lipgloss.Color("#111827")
	Silver = lipgloss.Color("#9CA3AF")
	Slate  = lipgloss.Color("#6B7280")
	Border = lipgloss.Color("#374151")
	Amber  = lipgloss.Color("#F59E0B")
	Red    = lipgloss.Color("#EF4444")
)

// Styles are the non-swatch styles shared by the CLI and the prompt.
type Styles struct {
	Heading lipgloss.Style // palette names, prompt titles
	Hex     lipgloss.Style // color literals next to a swatch
	Note    lipgloss.Style // secondary text: OKLCH values, hints
	Key     lipgloss.Style // key names in hints
	Field   lipgloss.Style // boxed text input
	Frame   lipgloss.Style // outer padding of a full-screen view
	Warning lipgloss.Style // gamut clamps, non-viable transfers
	Error   lipgloss.Style
}

// Default returns the shared Styles.
var Default = sync.OnceValue(func() *Styles {
	return &Styles{
		Heading: lipgloss.NewStyle().Bold(true).Foreground(White).MarginBottom(1),
		Hex:     lipgloss.NewStyle().Bold(true),
		Note:    lipgloss.NewStyle().Foreground(Slate),
		Key:     lipgloss.NewStyle().Bold(true).Foreground(Silver),
		Field: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 1),
		Frame:   lipgloss.NewStyle().Padding(1, 2),
		Warning: lipgloss.NewStyle().Foreground(Amber),
		Error:   lipgloss.NewStyle().Foreground(Red),
	}
})
