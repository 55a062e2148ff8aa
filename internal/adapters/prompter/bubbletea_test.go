package prompter

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emiliopalmerini/tonal/internal/adapters/colorful"
)

func typeString(m model, s string) model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(model)
	}
	return m
}

func TestModel_TypingParses(t *testing.T) {
	m := newModel(colorful.NewSpace(), "")
	if m.valid {
		t.Fatal("empty input should not be valid")
	}

	m = typeString(m, "#2D72D2")
	if !m.valid {
		t.Fatalf("expected valid color, parseErr = %q", m.parseErr)
	}
	if !strings.Contains(m.View(), "#2D72D2") {
		t.Errorf("view missing hex preview:\n%s", m.View())
	}
}

func TestModel_EnterAcceptsOnlyValid(t *testing.T) {
	m := newModel(colorful.NewSpace(), "nope")
	if m.parseErr == "" {
		t.Fatal("expected parse error for invalid initial value")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if m.done || cmd != nil {
		t.Error("enter on invalid input should do nothing")
	}

	m = newModel(colorful.NewSpace(), "#fff")
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if !m.done || cmd == nil {
		t.Error("enter on valid input should finish")
	}
	if m.color.L < 0.99 {
		t.Errorf("expected white, got %+v", m.color)
	}
}

func TestModel_EscCancels(t *testing.T) {
	m := newModel(colorful.NewSpace(), "#fff")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)
	if !m.cancelled || cmd == nil {
		t.Error("esc should cancel and quit")
	}
	if m.View() != "" {
		t.Error("cancelled model should render nothing")
	}
}

func TestModel_OutOfGamutWarning(t *testing.T) {
	m := newModel(colorful.NewSpace(), "oklch(0.6 0.4 145)")
	if !m.valid {
		t.Fatal("expected valid color")
	}
	if !strings.Contains(m.View(), "outside sRGB") {
		t.Errorf("expected gamut warning in view:\n%s", m.View())
	}
}
