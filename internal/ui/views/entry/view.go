package entry

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	foodlogdto "mealtrack/internal/modules/foodlog/dto"
	"mealtrack/internal/platform/numfmt"
	"mealtrack/internal/ui/theme"
)

// Model is the detail pane an entry in the tracker list navigates to.
type Model struct {
	viewport viewport.Model
	entry    foodlogdto.EntryOutput
	shown    bool
	renderer *glamour.TermRenderer
	width    int
	height   int
}

func New() Model {
	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)
	return Model{viewport: viewport.New(0, 0), renderer: r}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.resize()
		if m.shown {
			m.viewport.SetContent(m.render())
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// Show replaces the displayed entry.
func (m *Model) Show(e foodlogdto.EntryOutput) {
	m.entry = e
	m.shown = true
	m.viewport.SetContent(m.render())
	m.viewport.GotoTop()
}

func (m Model) Entry() (foodlogdto.EntryOutput, bool) { return m.entry, m.shown }

func (m Model) View() string {
	if !m.shown {
		return theme.Title.Render("Entry") +
			theme.Muted.Render("  Pick a food on the Tracker tab (enter)") + "\n"
	}
	header := theme.Title.Render(m.entry.FoodName)
	if m.entry.Route != "" {
		header += "  " + theme.Muted.Render(m.entry.Route)
	}
	vp := m.viewport
	vp.Height = max(m.height-2, 1)
	return lipgloss.JoinVertical(lipgloss.Left, header, vp.View())
}

// Markdown is the unrendered detail document.
func (m Model) Markdown() string {
	e := m.entry
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", e.FoodName)
	fmt.Fprintf(&sb, "**Meal:** %s  \n**Servings:** %s\n\n", e.MealType, numfmt.Format(e.Servings))
	sb.WriteString("| | per serving | total |\n|---|---:|---:|\n")
	rows := []struct {
		name  string
		value float64
		unit  string
	}{
		{"Calories", e.Calories, "kcal"},
		{"Protein", e.Protein, "g"},
		{"Carbohydrates", e.Carbohydrates, "g"},
		{"Fat", e.Fat, "g"},
	}
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %s %s | %s %s |\n", r.name,
			numfmt.Format(r.value), r.unit, numfmt.Format(r.value*e.Servings), r.unit)
	}
	if e.Route != "" {
		fmt.Fprintf(&sb, "\n`%s`\n", e.Route)
	} else {
		sb.WriteString("\n_This entry has no id yet._\n")
	}
	return sb.String()
}

func (m *Model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-2, 1)
	if r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(m.width),
	); err == nil {
		m.renderer = r
	}
}

func (m Model) render() string {
	doc := m.Markdown()
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(doc); err == nil {
			return rendered
		}
	}
	return doc
}
