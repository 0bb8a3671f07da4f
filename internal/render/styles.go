package render

import "github.com/charmbracelet/lipgloss"

// Color Palette (Dracula-inspired)
var (
	ColorPurple = lipgloss.Color("#BD93F9")
	ColorCyan   = lipgloss.Color("#8BE9FD")
	ColorGreen  = lipgloss.Color("#50FA7B")
	ColorRed    = lipgloss.Color("#FF5555")
	ColorPink   = lipgloss.Color("#FF79C6")
	ColorGray   = lipgloss.Color("#6272A4")
	ColorYellow = lipgloss.Color("#F1FA8C")
	ColorIndigo = lipgloss.Color("#818CF8")
)

var (
	// Example cards
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGray).
			Padding(0, 2)

	selectedCardStyle = cardStyle.
				BorderForeground(ColorPurple)

	cardTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	selectedTitleStyle = cardTitleStyle.
				Foreground(ColorIndigo)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CBD5E1")).
			Background(lipgloss.Color("#1E293B")).
			Padding(0, 1).
			MarginRight(1)

	// History rows
	historyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CBD5E1")).
			PaddingLeft(2)

	selectedHistoryStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true).
				PaddingLeft(1)

	cursorStyle = lipgloss.NewStyle().Foreground(ColorPink).Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			MarginTop(1)

	subtleStyle = lipgloss.NewStyle().Foreground(ColorGray)

	// Output panel
	panelLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#475569")).
			Background(lipgloss.Color("#F1F5F9")).
			Bold(true).
			Padding(0, 2)

	promptBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#CBD5E1")).
			Padding(0, 2)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#1E293B")).
			Bold(true).
			Padding(0, 2)

	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CBD5E1")).
			Align(lipgloss.Center)

	codeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#334155")).
			Padding(0, 1)

	linkTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	linkStyle      = lipgloss.NewStyle().Foreground(ColorIndigo).Underline(true)
)
