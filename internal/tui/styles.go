package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/phravins/gptflow/internal/render"
)

// Shared Styles
var (
	headerStyle = lipgloss.NewStyle().
			Align(lipgloss.Center).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F46E5")).
			Bold(true)

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C7D2FE")).
			Align(lipgloss.Center)

	// Input boxes
	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(render.ColorGray).
			Padding(0, 1)

	focusedInputBoxStyle = inputBoxStyle.
				BorderForeground(render.ColorPurple)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(render.ColorGray)

	focusedPaneStyle = paneStyle.
				BorderForeground(render.ColorPurple)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#6366F1")).
			Padding(0, 2)

	busyButtonStyle = buttonStyle.
			Background(lipgloss.Color("#64748B"))

	// Helpers
	subtleStyle = lipgloss.NewStyle().Foreground(render.ColorGray)

	loadingStyle = lipgloss.NewStyle().
			Foreground(render.ColorYellow).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(render.ColorRed).
			Bold(true)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(render.ColorPink).
			Bold(true).
			MarginBottom(1)
)
