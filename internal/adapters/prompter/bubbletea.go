package prompter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emiliopalmerini/tonal/internal/domain"
	"github.com/emiliopalmerini/tonal/internal/pkg/tui/components"
	"github.com/emiliopalmerini/tonal/internal/pkg/tui/theme"
	"github.com/emiliopalmerini/tonal/internal/ports"
)

// BubbleTeaPrompter asks for an anchor color with a live swatch preview.
type BubbleTeaPrompter struct {
	space  ports.ColorSpace
	logger ports.Logger
}

// NewBubbleTeaPrompter creates a new Bubbletea prompter
func NewBubbleTeaPrompter(space ports.ColorSpace, logger ports.Logger) *BubbleTeaPrompter {
	return &BubbleTeaPrompter{space: space, logger: logger}
}

// PromptColor runs the prompt on in/out and returns the accepted color.
// ok is false when the user cancelled.
func (p *BubbleTeaPrompter) PromptColor(in io.Reader, out io.Writer, initial string) (c domain.Color, ok bool, err error) {
	if os.Getenv("TERM") == "" {
		_ = os.Setenv("TERM", "xterm-256color")
		p.logger.Debug("TERM was empty, set to xterm-256color")
	}

	prog := tea.NewProgram(newModel(p.space, initial), tea.WithInput(in), tea.WithOutput(out))
	final, err := prog.Run()
	if err != nil {
		p.logger.Debug(fmt.Sprintf("TUI error: %v", err))
		return domain.Color{}, false, err
	}

	result := final.(model)
	if result.cancelled || !result.valid {
		p.logger.Debug("color prompt cancelled by user")
		return domain.Color{}, false, nil
	}
	return result.color, true, nil
}

type model struct {
	space ports.ColorSpace
	input textinput.Model

	color     domain.Color
	valid     bool
	parseErr  string
	cancelled bool
	done      bool
}

func newModel(space ports.ColorSpace, initial string) model {
	ti := textinput.New()
	ti.Placeholder = "#2D72D2 or oklch(0.55 0.15 255)"
	ti.CharLimit = 64
	ti.Width = 36
	ti.SetValue(initial)
	ti.Focus()

	m := model{
		space: space,
		input: ti,
	}
	m.parse()
	return m
}

func (m *model) parse() {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		m.valid, m.parseErr = false, ""
		return
	}
	c, err := m.space.Parse(value)
	if err != nil {
		m.valid, m.parseErr = false, err.Error()
		return
	}
	m.color, m.valid, m.parseErr = c, true, ""
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.valid {
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.parse()
	return m, cmd
}

func (m model) View() string {
	if m.done || m.cancelled {
		return ""
	}
	styles := theme.Default()

	var b strings.Builder
	b.WriteString(styles.Heading.Render("ANCHOR COLOR"))
	b.WriteString("\n")
	b.WriteString(styles.Field.Render(m.input.View()))
	b.WriteString("\n\n")

	switch {
	case m.valid:
		hex := m.space.ToHex(m.space.ClampToGamut(m.color))
		b.WriteString(theme.Swatch(hex, m.color.L).Render("        "))
		b.WriteString(" ")
		b.WriteString(styles.Hex.Render(hex))
		b.WriteString(styles.Note.Render(fmt.Sprintf("  oklch(%.3f %.3f %.1f)", m.color.L, m.color.C, domain.NormalizeHue(m.color.H))))
		if !m.space.IsDisplayable(m.color) {
			b.WriteString(" ")
			b.WriteString(styles.Warning.Render("outside sRGB"))
		}
	case m.parseErr != "":
		b.WriteString(styles.Error.Render(m.parseErr))
	default:
		b.WriteString(styles.Note.Render("type a color"))
	}

	b.WriteString("\n\n")
	b.WriteString(components.Hints(
		components.Hint{Key: "enter", Action: "accept"},
		components.Hint{Key: "esc", Action: "cancel"},
	))
	return styles.Frame.Render(b.String())
}
