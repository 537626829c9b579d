package tracker

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	foodlogdto "mealtrack/internal/modules/foodlog/dto"
	"mealtrack/internal/platform/numfmt"
	"mealtrack/internal/ui/components"
	"mealtrack/internal/ui/theme"
)

const (
	listTitle    = "Foods You Ate Today"
	totalsTitle  = "Total Daily Macronutrients"
	formTitle    = "Add Meal Item To Tracker"
	emptyMessage = "You've eaten nothing today..."
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	LoadDay(ctx context.Context) (foodlogdto.DayOutput, error)
	CheckDraft(input foodlogdto.DraftInput) foodlogdto.ValidationOutput
	Add(ctx context.Context, draft foodlogdto.DraftInput, prior foodlogdto.TotalsOutput) (foodlogdto.AddOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type DayLoadedMsg struct {
	Day foodlogdto.DayOutput
	Err error
}

type AddedMsg struct {
	Output foodlogdto.AddOutput
	Err    error
}

// OpenEntryMsg asks the app to navigate to an entry's detail.
type OpenEntryMsg struct {
	Entry foodlogdto.EntryOutput
}

// ─── list item ───────────────────────────────────────────────────────────────

type entryItem struct {
	entry foodlogdto.EntryOutput
}

func (i entryItem) Title() string { return i.entry.FoodName }
func (i entryItem) Description() string {
	return fmt.Sprintf("%s  %s kcal × %s", i.entry.MealType, numfmt.Format(i.entry.Calories), numfmt.Format(i.entry.Servings))
}
func (i entryItem) FilterValue() string { return i.entry.FoodName + " " + i.entry.MealType }

// ─── model ───────────────────────────────────────────────────────────────────

const (
	fieldFoodName = iota
	fieldCalories
	fieldProtein
	fieldCarbohydrates
	fieldFat
	fieldServings
	fieldMealType
	fieldSubmit
	fieldCount
)

var inputLabels = [fieldMealType]string{
	"Food name", "Calories", "Protein (g)", "Carbohydrates (g)", "Fat (g)", "Servings",
}

type Model struct {
	port    Port
	form    Form
	inputs  [fieldMealType]textinput.Model
	meal    components.Select
	focus   int
	editing bool

	list    list.Model
	spinner spinner.Model
	loading bool
	entries []foodlogdto.EntryOutput
	totals  foodlogdto.TotalsOutput
	date    string

	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Green).BorderForeground(theme.Green)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Aqua).BorderForeground(theme.Green)

	l := list.New(nil, delegate, 0, 0)
	l.Title = listTitle
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	m := Model{
		port:    port,
		form:    NewForm(),
		meal:    components.NewSelect(foodlogdto.MealTypeOptions()),
		list:    l,
		spinner: sp,
		loading: true,
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = inputLabels[i]
		// No limit: a truncated paste would be validated as if it were typed.
		ti.CharLimit = 0
		m.inputs[i] = ti
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case DayLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			// Load failures go to the log only; the page shows an empty day.
			return m, nil
		}
		m.date = msg.Day.Date.Format("Mon 2 Jan")
		m.totals = msg.Day.Totals
		cmd := m.setEntries(msg.Day.Entries)
		return m, cmd

	case AddedMsg:
		if msg.Err != nil {
			m.form.Fail()
			return m, nil
		}
		m.form.Succeed()
		m.syncInputs()
		if msg.Output.Reconciled {
			m.totals = msg.Output.Totals
		} else {
			m.totals = m.totals.Plus(msg.Output.Delta)
		}
		cmd := m.setEntries(msg.Output.Entries)
		return m, cmd

	case spinner.TickMsg:
		if !m.loading && m.form.Phase() != PhaseSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		if m.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "a", "i":
				cmd := m.FocusForm()
				return m, cmd
			case "r":
				m.loading = true
				return m, tea.Batch(m.Reload(), m.spinner.Tick)
			case "enter":
				if e, ok := m.SelectedEntry(); ok {
					return m, func() tea.Msg { return OpenEntryMsg{Entry: e} }
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch {
	case !m.editing:
		m.list, cmd = m.list.Update(msg)
	case m.focus < fieldMealType:
		// cursor blink
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	}
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.BlurForm()
		return m, nil
	case "tab", "down":
		cmd := m.setFocus((m.focus + 1) % fieldCount)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, cmd
	case "enter":
		cmd := m.Submit()
		return m, cmd
	}

	switch {
	case m.focus < fieldMealType:
		before := m.inputs[m.focus].Value()
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		if after := m.inputs[m.focus].Value(); after != before {
			m.applyField(m.focus, after)
		}
		return m, cmd
	case m.focus == fieldMealType:
		var changed bool
		m.meal, changed = m.meal.Update(msg)
		if changed {
			m.form.SetMealType(m.meal.Value())
		}
	}
	return m, nil
}

func (m *Model) applyField(field int, value string) {
	switch field {
	case fieldFoodName:
		m.form.SetFoodName(value)
	case fieldCalories:
		m.form.SetCalories(value)
	case fieldProtein:
		m.form.SetProtein(value)
	case fieldCarbohydrates:
		m.form.SetCarbohydrates(value)
	case fieldFat:
		m.form.SetFat(value)
	case fieldServings:
		m.form.SetServings(value)
	}
}

// Submit validates the form and, when it passes, sends the draft together
// with the totals displayed right now.
func (m *Model) Submit() tea.Cmd {
	draft, ok := m.form.Begin(m.port.CheckDraft)
	if !ok {
		return nil
	}
	prior := m.totals
	port := m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		out, err := port.Add(context.Background(), draft, prior)
		return AddedMsg{Output: out, Err: err}
	})
}

func (m Model) Reload() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		day, err := port.LoadDay(context.Background())
		return DayLoadedMsg{Day: day, Err: err}
	}
}

// ClearForm empties the draft and the inputs.
func (m *Model) ClearForm() {
	m.form.Reset()
	m.syncInputs()
}

// SelectMeal sets the meal type by name; it reports false for unknown names.
func (m *Model) SelectMeal(name string) bool {
	if !m.meal.SetValue(name) {
		return false
	}
	m.form.SetMealType(m.meal.Value())
	return true
}

func (m *Model) FocusForm() tea.Cmd {
	m.editing = true
	return m.setFocus(m.focus)
}

func (m *Model) BlurForm() {
	m.editing = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.meal.Blur()
}

// Editing reports whether keystrokes belong to the form or the list filter.
func (m Model) Editing() bool {
	return m.editing || m.list.FilterState() == list.Filtering
}

func (m Model) Form() Form                        { return m.form }
func (m Model) Totals() foodlogdto.TotalsOutput   { return m.totals }
func (m Model) Entries() []foodlogdto.EntryOutput { return m.entries }
func (m Model) Loading() bool                     { return m.loading }

func (m Model) SelectedEntry() (foodlogdto.EntryOutput, bool) {
	if item, ok := m.list.SelectedItem().(entryItem); ok {
		return item.entry, true
	}
	return foodlogdto.EntryOutput{}, false
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.loading && len(m.entries) == 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading today's foods…")
	}
	leftW, rightW := m.columns()

	totals := m.renderTotals(leftW - 4)
	listH := m.height - lipgloss.Height(totals) - 2
	if listH < 3 {
		listH = 3
	}
	var entries string
	if len(m.entries) == 0 {
		entries = theme.Title.Render(listTitle) + "\n\n" + theme.Muted.Render(emptyMessage)
	} else {
		entries = m.list.View()
	}
	left := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Width(leftW).Height(listH).Render(entries),
		totals,
	)

	pane := theme.Pane
	if m.editing {
		pane = theme.PaneActive
	}
	right := pane.Width(rightW - 2).Height(m.height - 2).Render(m.renderForm(rightW - 6))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderTotals(width int) string {
	rows := []struct {
		label string
		value float64
		unit  string
	}{
		{"Calories", m.totals.Calories, "kcal"},
		{"Protein", m.totals.Protein, "g"},
		{"Carbohydrates", m.totals.Carbohydrates, "g"},
		{"Fat", m.totals.Fat, "g"},
	}
	var sb strings.Builder
	title := totalsTitle
	if m.date != "" {
		title += "  " + theme.Muted.Render(m.date)
	}
	sb.WriteString(theme.Title.Render(title) + "\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			theme.Muted.Render(fmt.Sprintf("%-14s", r.label)),
			theme.Value.Render(numfmt.Format(r.value)), r.unit))
	}
	if width < 10 {
		width = 10
	}
	return theme.Pane.Width(width).Render(strings.TrimRight(sb.String(), "\n"))
}

func (m Model) renderForm(width int) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(formTitle) + "\n\n")
	for i := range m.inputs {
		label := theme.Muted
		if m.editing && m.focus == i {
			label = theme.Hot
		}
		sb.WriteString(label.Render(inputLabels[i]) + "\n")
		sb.WriteString("  " + m.inputs[i].View() + "\n")
	}
	mealLabel := theme.Muted
	if m.editing && m.focus == fieldMealType {
		mealLabel = theme.Hot
	}
	sb.WriteString(mealLabel.Render("Meal type") + "\n")
	sb.WriteString(m.meal.View() + "\n\n")

	button := theme.Button
	if m.editing && m.focus == fieldSubmit {
		button = theme.ButtonActive
	}
	sb.WriteString(button.Render("Add Item"))
	if m.form.Phase() == PhaseSubmitting {
		sb.WriteString("  " + m.spinner.View() + theme.Muted.Render(" saving"))
	}
	sb.WriteString("\n")

	if msg := m.form.Error(); msg != "" {
		if width < 10 {
			width = 10
		}
		sb.WriteString("\n" + theme.Error.Render(wordwrap.String(msg, width)) + "\n")
	}
	if !m.editing {
		sb.WriteString("\n" + theme.Muted.Render("a: edit form  r: reload  enter: open entry"))
	} else {
		sb.WriteString("\n" + theme.Muted.Render("↑/↓ field  ←/→ meal  enter: add  esc: list"))
	}
	return sb.String()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) columns() (int, int) {
	left := m.width * 55 / 100
	return left, m.width - left
}

func (m *Model) resize() {
	leftW, rightW := m.columns()
	m.list.SetSize(leftW, m.height-8)
	for i := range m.inputs {
		m.inputs[i].Width = rightW - 10
	}
}

func (m *Model) setEntries(entries []foodlogdto.EntryOutput) tea.Cmd {
	m.entries = entries
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	return m.list.SetItems(items)
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.focus = field
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.meal.Blur()
	switch {
	case field < fieldMealType:
		return m.inputs[field].Focus()
	case field == fieldMealType:
		m.meal.Focus()
	}
	return nil
}

func (m *Model) syncInputs() {
	d := m.form.Draft()
	values := [fieldMealType]string{d.FoodName, d.Calories, d.Protein, d.Carbohydrates, d.Fat, d.Servings}
	for i, v := range values {
		m.inputs[i].SetValue(v)
	}
	if !m.meal.SetValue(d.MealType) {
		m.meal.Reset()
	}
}
