package theme

import "github.com/charmbracelet/lipgloss"

// Everforest dark.
var (
	Base    = lipgloss.Color("#2d353b")
	Mantle  = lipgloss.Color("#232a2e")
	Surface = lipgloss.Color("#3d484d")
	Border  = lipgloss.Color("#475258")
	Text    = lipgloss.Color("#d3c6aa")
	Subtle  = lipgloss.Color("#9da9a0")
	Green   = lipgloss.Color("#a7c080")
	Aqua    = lipgloss.Color("#83c092")
	Yellow  = lipgloss.Color("#dbbc7f")
	Orange  = lipgloss.Color("#e69875")
	Red     = lipgloss.Color("#e67e80")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Background(Mantle).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Green)

	Title = lipgloss.NewStyle().Foreground(Aqua).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtle)
	Hot   = lipgloss.NewStyle().Foreground(Orange).Bold(true)
	Value = lipgloss.NewStyle().Foreground(Yellow)
	Error = lipgloss.NewStyle().Foreground(Red).Bold(true)

	Button       = lipgloss.NewStyle().Foreground(Mantle).Background(Subtle).Padding(0, 2)
	ButtonActive = Button.Background(Green).Bold(true)
)
