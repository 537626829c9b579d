package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mealtrack/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

type paletteCommand struct {
	name string
	desc string
}

// Keep in sync with executePalette in app/model.go.
var paletteCommands = []paletteCommand{
	{"food:add", "submit the add form"},
	{"food:reload", "fetch today's foods again"},
	{"food:clear", "empty the add form"},
	{"meal:breakfast", "set meal type"},
	{"meal:lunch", "set meal type"},
	{"meal:dinner", "set meal type"},
	{"meal:snack", "set meal type"},
	{"journal:export", "write today to the journal"},
	{"entry:open", "show the selected entry"},
}

const paletteRows = 6

// Palette is a command line with a pick list of matching commands. Up and
// down move the pick, tab copies it into the input, enter runs it.
type Palette struct {
	input    textinput.Model
	visible  bool
	width    int
	matches  []paletteCommand
	selected int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "food:add, meal:lunch, journal:export…"
	ti.CharLimit = 64
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open clears the input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	p.refilter()
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "up", "ctrl+p":
			if p.selected > 0 {
				p.selected--
			}
			return p, nil
		case "down", "ctrl+n":
			if p.selected < len(p.matches)-1 {
				p.selected++
			}
			return p, nil
		case "tab":
			if pick, ok := p.pick(); ok {
				p.input.SetValue(pick.name)
				p.input.CursorEnd()
				p.refilter()
			}
			return p, nil
		case "enter":
			val := p.resolve()
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		}
	}
	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.refilter()
	}
	return p, cmd
}

// resolve runs an exact command as typed and otherwise the picked match.
// Unknown text is passed through so the caller can report it.
func (p Palette) resolve() string {
	typed := strings.TrimSpace(p.input.Value())
	for _, c := range paletteCommands {
		if strings.EqualFold(c.name, typed) {
			return typed
		}
	}
	if pick, ok := p.pick(); ok && typed != "" {
		return pick.name
	}
	return typed
}

func (p Palette) pick() (paletteCommand, bool) {
	if p.selected < 0 || p.selected >= len(p.matches) {
		return paletteCommand{}, false
	}
	return p.matches[p.selected], true
}

func (p *Palette) refilter() {
	p.matches = match(p.input.Value(), paletteRows)
	p.selected = 0
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	w := p.width
	if w < 30 {
		w = 64
	}

	rows := []string{theme.Title.Render("Run command"), p.input.View(), ""}
	if len(p.matches) == 0 {
		rows = append(rows, theme.Muted.Render("no matching command"))
	}
	nameW := 0
	for _, c := range p.matches {
		nameW = max(nameW, lipgloss.Width(c.name))
	}
	for i, c := range p.matches {
		name := lipgloss.NewStyle().Width(nameW + 2).Render(c.name)
		if i == p.selected {
			rows = append(rows, theme.Hot.Render("› "+name)+theme.Value.Render(c.desc))
			continue
		}
		rows = append(rows, "  "+name+theme.Muted.Render(c.desc))
	}
	rows = append(rows, "", theme.Muted.Render("↑/↓ pick · tab complete · enter run · esc close"))
	return theme.PaneActive.Width(w - 2).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// Suggestions lists up to limit command names starting with prefix.
func Suggestions(prefix string, limit int) []string {
	var out []string
	for _, c := range match(prefix, limit) {
		out = append(out, c.name)
	}
	return out
}

func match(prefix string, limit int) []paletteCommand {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var out []paletteCommand
	for _, c := range paletteCommands {
		if strings.HasPrefix(c.name, prefix) {
			out = append(out, c)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
