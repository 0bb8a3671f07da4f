package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/phravins/gptflow/internal/config"
	"github.com/phravins/gptflow/internal/render"
	"github.com/phravins/gptflow/internal/session"
)

// RunRoot runs the workflows page full screen until the user quits.
func RunRoot(sess *session.Session, opts render.Options) error {
	p := tea.NewProgram(Wrap(NewWorkflowsModel(sess, opts)), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// RunSettings runs the settings screen until the user saves or leaves.
func RunSettings(cfg *config.Config) error {
	p := tea.NewProgram(Wrap(NewSettingsModel(cfg, SaveToConfigFile)), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
