package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mealtrack/internal/ui/theme"
)

// Select cycles through a fixed option list with left/right. The first
// option is the placeholder shown until the user picks something.
type Select struct {
	options []string
	index   int
	focused bool
}

func NewSelect(options []string) Select {
	return Select{options: options}
}

func (s Select) Value() string {
	if len(s.options) == 0 {
		return ""
	}
	return s.options[s.index]
}

// SetValue selects the option matching v case-insensitively.
func (s *Select) SetValue(v string) bool {
	for i, o := range s.options {
		if strings.EqualFold(o, strings.TrimSpace(v)) {
			s.index = i
			return true
		}
	}
	return false
}

func (s *Select) Reset()           { s.index = 0 }
func (s *Select) Focus()           { s.focused = true }
func (s *Select) Blur()            { s.focused = false }
func (s Select) Focused() bool     { return s.focused }
func (s Select) Placeholder() bool { return s.index == 0 }

// Update reports whether the selection changed.
func (s Select) Update(msg tea.Msg) (Select, bool) {
	if !s.focused || len(s.options) == 0 {
		return s, false
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, false
	}
	switch key.String() {
	case "left", "h":
		s.index = (s.index + len(s.options) - 1) % len(s.options)
		return s, true
	case "right", "l", " ":
		s.index = (s.index + 1) % len(s.options)
		return s, true
	}
	return s, false
}

func (s Select) View() string {
	style := theme.Value
	if s.Placeholder() {
		style = theme.Muted
	}
	body := style.Render(s.Value())
	if !s.focused {
		return "  " + body + "  "
	}
	arrow := lipgloss.NewStyle().Foreground(theme.Green)
	return arrow.Render("‹ ") + body + arrow.Render(" ›")
}
