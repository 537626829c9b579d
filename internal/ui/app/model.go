package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	foodlogdto "mealtrack/internal/modules/foodlog/dto"
	"mealtrack/internal/ui/components"
	"mealtrack/internal/ui/theme"
	entryview "mealtrack/internal/ui/views/entry"
	trackerview "mealtrack/internal/ui/views/tracker"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type trackerPort interface {
	trackerview.Port
	ExportJournal(ctx context.Context) (foodlogdto.JournalOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTracker tabID = iota
	tabEntry
	tabCount
)

var tabLabels = [tabCount]string{"Tracker", "Entry"}

// ─── async messages ──────────────────────────────────────────────────────────

type journalExportedMsg struct {
	out foodlogdto.JournalOutput
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Edit    key.Binding
	Submit  key.Binding
	Field   key.Binding
	Meal    key.Binding
	Back    key.Binding
	Reload  key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next tab")),
		Edit:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "edit form")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add item / open entry")),
		Field:   key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "form field")),
		Meal:    key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "meal type")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave form")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Edit, k.Field, k.Meal, k.Submit, k.Back},
		{k.Tab, k.Reload},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model: tab routing, help, palette and the
// status bar. Food logic sits behind trackerPort.
type Model struct {
	port trackerPort

	trackView trackerview.Model
	entryView entryview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	userID    string
	status    string
	width     int
	height    int
}

func NewModel(port trackerPort) Model {
	return Model{
		port:      port,
		trackView: trackerview.New(port),
		entryView: entryview.New(),
		activeTab: tabTracker,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return m.trackView.Init()
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Async results belong to the tracker whichever tab is showing.
	case trackerview.DayLoadedMsg:
		if msg.Err == nil {
			m.userID = msg.Day.UserID
			m.status = fmt.Sprintf("%d foods today", len(msg.Day.Entries))
		}
		var cmd tea.Cmd
		m.trackView, cmd = m.trackView.Update(msg)
		return m, cmd

	case trackerview.AddedMsg:
		if msg.Err == nil {
			m.status = "item added"
			if msg.Output.Drift {
				m.status = "item added; totals differ from the server list (r to reload)"
			}
		}
		var cmd tea.Cmd
		m.trackView, cmd = m.trackView.Update(msg)
		return m, cmd

	case trackerview.OpenEntryMsg:
		m.entryView.Show(msg.Entry)
		m.activeTab = tabEntry
		m.status = msg.Entry.Route
		return m, nil

	case journalExportedMsg:
		if msg.err != nil {
			m.status = "journal export failed: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("journal: %s (%d foods)", msg.out.Path, msg.out.Entries)
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		}
		// The form and list filter take every other key while active.
		if m.activeTab == tabTracker && m.trackView.Editing() {
			break
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		case "esc":
			if m.activeTab == tabEntry {
				m.activeTab = tabTracker
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.activeTab {
	case tabTracker:
		m.trackView, cmd = m.trackView.Update(msg)
	case tabEntry:
		m.entryView, cmd = m.entryView.Update(msg)
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabEntry:
		content = m.entryView.View()
	default:
		content = m.trackView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "mealtrack  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.userID != "" {
		left = theme.Hot.Render("● "+m.userID) + "  " + left
	}
	right := theme.Muted.Render("?:help  ctrl+t:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).
		Render(left+strings.Repeat(" ", gap)+right)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	command := strings.ToLower(parts[0])

	if meal, ok := strings.CutPrefix(command, "meal:"); ok {
		m.activeTab = tabTracker
		if !m.trackView.SelectMeal(meal) {
			m.status = "unknown meal type: " + meal
			return m, nil
		}
		m.status = "meal type set"
		return m, nil
	}

	switch command {
	case "food:add":
		m.activeTab = tabTracker
		cmd := m.trackView.Submit()
		if cmd != nil {
			m.status = "adding…"
		}
		return m, cmd

	case "food:reload":
		m.activeTab = tabTracker
		return m, m.trackView.Reload()

	case "food:clear":
		m.activeTab = tabTracker
		m.trackView.ClearForm()
		m.status = "form cleared"
		return m, nil

	case "entry:open":
		e, ok := m.trackView.SelectedEntry()
		if !ok {
			m.status = "no entry selected"
			return m, nil
		}
		return m, func() tea.Msg { return trackerview.OpenEntryMsg{Entry: e} }

	case "journal:export":
		m.status = "exporting journal…"
		return m, m.exportJournalCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.trackView, _ = m.trackView.Update(sz)
	m.entryView, _ = m.entryView.Update(sz)
}

func (m Model) exportJournalCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.ExportJournal(context.Background())
		return journalExportedMsg{out: out, err: err}
	}
}
