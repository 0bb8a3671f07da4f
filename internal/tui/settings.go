package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/phravins/gptflow/internal/config"
	"github.com/phravins/gptflow/internal/render"
)

// settingsKeys are the config keys behind each input, in display order.
var settingsKeys = []string{
	"endpoint_url",
	"generator_backend",
	"history_backend",
	"syntax_theme",
	"request_timeout",
}

// SettingsSaver persists edited values keyed by config key.
type SettingsSaver func(values map[string]string) error

// SaveToConfigFile writes the values to ~/.gptflow.yaml.
func SaveToConfigFile(values map[string]string) error {
	for k, v := range values {
		config.Set(k, v)
	}
	return config.Write()
}

type SettingsModel struct {
	inputs     []textinput.Model
	focusedIdx int
	save       SettingsSaver
	err        error
	successMsg string
	quitting   bool
	showHelp   bool
	width      int
	height     int
	helpView   viewport.Model
}

func NewSettingsModel(cfg *config.Config, save SettingsSaver) SettingsModel {
	inputs := make([]textinput.Model, len(settingsKeys))

	inputs[0] = textinput.New()
	inputs[0].Placeholder = config.DefaultEndpointURL
	inputs[0].Prompt = "Endpoint URL: "
	inputs[0].SetValue(cfg.EndpointURL)
	inputs[0].CharLimit = 200
	inputs[0].Width = 40

	inputs[1] = textinput.New()
	inputs[1].Placeholder = "remote / offline"
	inputs[1].Prompt = "Generator: "
	inputs[1].SetValue(cfg.GeneratorBackend)
	inputs[1].CharLimit = 20
	inputs[1].Width = 30

	inputs[2] = textinput.New()
	inputs[2].Placeholder = "file / sqlite / memory"
	inputs[2].Prompt = "History: "
	inputs[2].SetValue(cfg.HistoryBackend)
	inputs[2].CharLimit = 20
	inputs[2].Width = 30

	inputs[3] = textinput.New()
	inputs[3].Placeholder = "onedark / monokai / dracula"
	inputs[3].Prompt = "Syntax theme: "
	inputs[3].SetValue(cfg.SyntaxTheme)
	inputs[3].CharLimit = 40
	inputs[3].Width = 30

	inputs[4] = textinput.New()
	inputs[4].Placeholder = "60s"
	inputs[4].Prompt = "Request timeout: "
	inputs[4].SetValue(cfg.RequestTimeout.String())
	inputs[4].CharLimit = 20
	inputs[4].Width = 30

	hv := viewport.New(100, 40)
	hv.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(render.ColorPurple).
		Padding(1, 2)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	out := SettingsHelp
	if renderer != nil {
		if rendered, err := renderer.Render(SettingsHelp); err == nil {
			out = rendered
		}
	}
	hv.SetContent(out)

	m := SettingsModel{
		inputs:   inputs,
		save:     save,
		width:    100,
		height:   40,
		helpView: hv,
	}
	m.setFocus(0)
	return m
}

func (m SettingsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpView.Width = msg.Width - 6
		m.helpView.Height = msg.Height - 10
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "esc", "?", "enter":
				m.showHelp = false
				return m, nil
			default:
				var cmd tea.Cmd
				m.helpView, cmd = m.helpView.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "?":
			m.showHelp = true
			m.helpView.GotoTop()
			return m, nil
		case "ctrl+c", "esc":
			m.quitting = true
			return m, func() tea.Msg { return BackMsg{} }
		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			// Enter on the last field saves.
			if s == "enter" && m.focusedIdx == len(m.inputs)-1 {
				m.saveConfig()
				return m, nil
			}

			if s == "up" || s == "shift+tab" {
				return m, m.setFocus(m.focusedIdx - 1)
			}
			return m, m.setFocus(m.focusedIdx + 1)
		}

	case tea.MouseMsg:
		if m.showHelp {
			var cmd tea.Cmd
			m.helpView, cmd = m.helpView.Update(msg)
			return m, cmd
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m, m.setFocus(m.focusedIdx - 1)
		case tea.MouseButtonWheelDown:
			return m, m.setFocus(m.focusedIdx + 1)
		}
		return m, nil
	}

	return m, m.updateInputs(msg)
}

// setFocus moves focus to idx, wrapping around at either end.
func (m *SettingsModel) setFocus(idx int) tea.Cmd {
	n := len(m.inputs)
	m.focusedIdx = ((idx % n) + n) % n

	cmds := make([]tea.Cmd, n)
	for i := range m.inputs {
		if i == m.focusedIdx {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = lipgloss.NewStyle().Foreground(render.ColorPink)
			m.inputs[i].TextStyle = lipgloss.NewStyle().Foreground(render.ColorPink)
		} else {
			m.inputs[i].Blur()
			m.inputs[i].PromptStyle = subtleStyle
			m.inputs[i].TextStyle = lipgloss.NewStyle()
		}
	}
	return tea.Batch(cmds...)
}

func (m *SettingsModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m *SettingsModel) values() map[string]string {
	out := make(map[string]string, len(m.inputs))
	for i, key := range settingsKeys {
		out[key] = strings.TrimSpace(m.inputs[i].Value())
	}
	return out
}

func (m *SettingsModel) saveConfig() {
	values := m.values()
	if err := validateSettings(values); err != nil {
		m.err = err
		m.successMsg = ""
		return
	}

	if err := m.save(values); err != nil {
		m.err = err
		m.successMsg = ""
		return
	}
	m.successMsg = "Configuration saved. Restart gptflow to apply."
	m.err = nil
}

func validateSettings(values map[string]string) error {
	endpoint := values["endpoint_url"]
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		return fmt.Errorf("endpoint URL must start with http:// or https://")
	}

	switch strings.ToLower(values["generator_backend"]) {
	case "remote", "inngest", "offline", "examples":
	default:
		return fmt.Errorf("unknown generator %q", values["generator_backend"])
	}

	switch strings.ToLower(values["history_backend"]) {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown history backend %q", values["history_backend"])
	}

	if _, ok := styles.Registry[values["syntax_theme"]]; !ok {
		return fmt.Errorf("unknown syntax theme %q", values["syntax_theme"])
	}

	d, err := time.ParseDuration(values["request_timeout"])
	if err != nil || d <= 0 {
		return fmt.Errorf("request timeout must be a positive duration like 30s")
	}
	return nil
}

func (m SettingsModel) View() string {
	if m.quitting {
		return ""
	}

	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				helpTitleStyle.Render("Settings Help"),
				m.helpView.View(),
				subtleStyle.MarginTop(1).Render("Press [Esc] or [?] to go back"),
			),
		)
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(render.ColorPurple).
		Padding(1, 3).
		Width(64).
		Align(lipgloss.Left)

	var b strings.Builder
	title := lipgloss.NewStyle().Foreground(render.ColorPink).Bold(true).Render("CONFIGURATION")
	b.WriteString(lipgloss.NewStyle().Align(lipgloss.Center).Width(58).Render(title))
	b.WriteString("\n\n")

	for i := range m.inputs {
		b.WriteString(m.inputs[i].View())
		if i < len(m.inputs)-1 {
			b.WriteString("\n\n")
		}
	}

	b.WriteString("\n\n")
	if m.focusedIdx == len(m.inputs)-1 {
		b.WriteString(lipgloss.PlaceHorizontal(58, lipgloss.Center, buttonStyle.Bold(true).Render("SAVE CHANGES")))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(58, lipgloss.Center, subtleStyle.Border(lipgloss.RoundedBorder()).Padding(0, 1).Render("Save (Enter on last field)")))
	}

	if m.successMsg != "" {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(render.ColorGreen).Align(lipgloss.Center).Width(58).Render(m.successMsg))
	}
	if m.err != nil {
		b.WriteString("\n\n" + errorStyle.Align(lipgloss.Center).Width(58).Render(m.err.Error()))
	}

	b.WriteString("\n\n" + subtleStyle.Align(lipgloss.Center).Width(58).Render("Esc to Cancel • Tab to Navigate • [?] Help"))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, card.Render(b.String()))
}
