package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/phravins/gptflow/internal/ai"
	"github.com/phravins/gptflow/internal/history"
	"github.com/phravins/gptflow/internal/render"
	"github.com/phravins/gptflow/internal/session"
)

type focusArea int

const (
	focusPrompt focusArea = iota
	focusPicker
	focusFilter
)

// generatedMsg carries the generator's result back into Update.
type generatedMsg struct {
	prompt string
	reply  ai.Reply
	err    error
}

type WorkflowsModel struct {
	sess *session.Session
	opts render.Options

	textarea textarea.Model
	spinner  spinner.Model
	output   viewport.Model
	picker   viewport.Model
	filter   textinput.Model
	helpView viewport.Model

	focus    focusArea
	cursor   int
	matches  []int // history indexes kept by the filter; nil means no filter
	width    int
	height   int
	ready    bool
	showHelp bool
}

func NewWorkflowsModel(sess *session.Session, opts render.Options) WorkflowsModel {
	ta := textarea.New()
	ta.Placeholder = "Create a function that..."
	ta.Focus()
	ta.Prompt = " "
	ta.CharLimit = 4000
	ta.SetHeight(4)
	ta.ShowLineNumbers = false
	ta.SetValue(sess.Draft())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = loadingStyle

	fi := textinput.New()
	fi.Placeholder = "filter history"
	fi.Prompt = "/ "

	hv := viewport.New(0, 0)
	hv.Style = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(render.ColorPurple).Padding(1, 2)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	out, err := renderer.Render(WorkflowsHelp)
	if err != nil {
		out = WorkflowsHelp
	}
	hv.SetContent(out)

	return WorkflowsModel{
		sess:     sess,
		opts:     opts,
		textarea: ta,
		spinner:  sp,
		output:   viewport.New(0, 0),
		picker:   viewport.New(0, 0),
		filter:   fi,
		helpView: hv,
	}
}

func (m WorkflowsModel) Init() tea.Cmd {
	return textarea.Blink
}

// view is the session snapshot with the history filter applied.
func (m WorkflowsModel) view() session.View {
	v := m.sess.Snapshot()
	if m.matches != nil {
		filtered := make([]history.Entry, 0, len(m.matches))
		for _, i := range m.matches {
			if i < len(v.History) {
				filtered = append(filtered, v.History[i])
			}
		}
		v.History = filtered
	}
	return v
}

func (m WorkflowsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "esc", "?", "enter", "q":
				m.showHelp = false
				return m, nil
			default:
				m.helpView, cmd = m.helpView.Update(msg)
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+s":
			return m.submit()
		case "esc":
			if m.focus == focusFilter {
				m.filter.Reset()
				m.filter.Blur()
				m.matches = nil
				m.focus = focusPicker
				m.cursor = 0
				m.refresh()
				return m, nil
			}
			return m, func() tea.Msg { return BackMsg{} }
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		case "pgup", "pgdown":
			m.output, cmd = m.output.Update(msg)
			return m, cmd
		}

		switch m.focus {
		case focusPicker:
			return m.updatePicker(msg)
		case focusFilter:
			return m.updateFilter(msg)
		}

	case generatedMsg:
		m.sess.Complete(context.Background(), msg.prompt, msg.reply, msg.err)
		if m.focus == focusPrompt {
			m.textarea.Focus()
		}
		m.cursor = 0
		m.matches = nil
		m.filter.Reset()
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.sess.Snapshot().Loading() {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	if m.focus == focusPrompt && !m.sess.Snapshot().Loading() {
		m.textarea, cmd = m.textarea.Update(msg)
		cmds = append(cmds, cmd)
		m.sess.SetDraft(m.textarea.Value())
	}

	return m, tea.Batch(cmds...)
}

// submit starts a generation unless one is already running.
func (m WorkflowsModel) submit() (tea.Model, tea.Cmd) {
	m.sess.SetDraft(m.textarea.Value())
	prompt, ok := m.sess.Begin()
	if !ok {
		return m, nil
	}
	m.textarea.Blur()
	m.refresh()
	return m, tea.Batch(m.spinner.Tick, m.generate(prompt))
}

func (m WorkflowsModel) generate(prompt string) tea.Cmd {
	gen := m.sess.Generator()
	return func() tea.Msg {
		reply, err := gen.Generate(context.Background(), prompt)
		return generatedMsg{prompt: prompt, reply: reply, err: err}
	}
}

func (m *WorkflowsModel) toggleFocus() {
	switch m.focus {
	case focusPrompt:
		m.focus = focusPicker
		m.textarea.Blur()
	default:
		m.filter.Blur()
		m.focus = focusPrompt
		if !m.sess.Snapshot().Loading() {
			m.textarea.Focus()
		}
	}
	m.refresh()
}

func (m WorkflowsModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := render.Items(m.view())

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(items) - 1
	case "enter", " ":
		if m.cursor >= 0 && m.cursor < len(items) {
			m.sess.Select(items[m.cursor])
			m.output.GotoTop()
		}
	case "/":
		m.focus = focusFilter
		m.filter.Focus()
	case "?":
		m.showHelp = true
		m.helpView.GotoTop()
		return m, nil
	}

	m.refresh()
	return m, nil
}

func (m WorkflowsModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.filter.Blur()
		m.focus = focusPicker
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.matches = filterHistory(m.sess.Snapshot().History, m.filter.Value())
	m.cursor = 0
	m.refresh()
	return m, cmd
}

// filterHistory returns the indexes of entries whose prompt fuzzy-matches
// query, best match first. An empty query keeps everything.
func filterHistory(entries []history.Entry, query string) []int {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	prompts := make([]string, len(entries))
	for i, e := range entries {
		prompts[i] = e.Prompt
	}
	found := fuzzy.Find(query, prompts)
	out := make([]int, 0, len(found))
	for _, f := range found {
		out = append(out, f.Index)
	}
	return out
}

func (m *WorkflowsModel) leftWidth() int {
	w := m.width * 2 / 5
	if w < 30 {
		w = 30
	}
	return w
}

func (m *WorkflowsModel) layout() {
	inputHeight := m.textarea.Height() + 5
	bodyHeight := m.height - inputHeight - 4
	if bodyHeight < 5 {
		bodyHeight = 5
	}

	m.textarea.SetWidth(m.width - 6)

	left := m.leftWidth()
	m.picker.Width = left - 2
	m.picker.Height = bodyHeight - 2
	m.output.Width = m.width - left - 2
	m.output.Height = bodyHeight - 2
	m.filter.Width = left - 6

	m.helpView.Width = m.width - 6
	m.helpView.Height = m.height - 6
}

// refresh re-renders the picker and output panes from the session.
func (m *WorkflowsModel) refresh() {
	if m.width == 0 {
		return
	}
	v := m.view()

	cursor := -1
	if m.focus != focusPrompt {
		cursor = m.cursor
	}
	m.picker.SetContent(render.Picker(v, m.picker.Width-2, cursor))
	if cursor >= 0 {
		m.picker.SetYOffset(pickerLine(len(v.Examples), cursor) - m.picker.Height/2)
	}

	if v.Selected != nil {
		opts := m.opts
		opts.Width = m.output.Width - 2
		m.output.SetContent(render.Output(*v.Selected, opts))
	} else {
		m.output.SetContent("")
	}
}

// pickerLine approximates the line the cursor sits on: every example card
// is four lines tall, history rows are one.
func pickerLine(examples, cursor int) int {
	if cursor < examples {
		return 1 + cursor*4
	}
	return 2 + examples*4 + (cursor - examples)
}

func (m WorkflowsModel) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	if m.showHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center,
				helpTitleStyle.Render("GPT-driven workflows Help"),
				m.helpView.View(),
				subtleStyle.MarginTop(1).Render("Press [Esc] or [?] to go back"),
			),
		)
	}

	v := m.sess.Snapshot()

	header := lipgloss.JoinVertical(lipgloss.Center,
		headerStyle.Width(m.width).Render(" GPT-driven workflows "),
		taglineStyle.Width(m.width).Render("Use Inngest's GPT prompts to create reliable, durable step functions deployable to any provider."),
	)

	// Prompt box
	var button string
	if v.Loading() {
		button = busyButtonStyle.Render(fmt.Sprintf("%s Generating...", m.spinner.View()))
	} else {
		button = buttonStyle.Render("Create your function [ctrl+s]")
	}
	powered := subtleStyle.Render("Powered by ChatGPT")
	gap := m.width - 6 - lipgloss.Width(powered) - lipgloss.Width(button)
	if gap < 1 {
		gap = 1
	}
	inputContent := m.textarea.View() + "\n" + powered + strings.Repeat(" ", gap) + button
	if v.Error != "" {
		inputContent += "\n" + errorStyle.Render(v.Error)
	}
	box := inputBoxStyle
	if m.focus == focusPrompt {
		box = focusedInputBoxStyle
	}
	input := box.Width(m.width - 2).Render(inputContent)

	// Picker / output panes
	pickerContent := m.picker.View()
	if m.focus == focusFilter || m.matches != nil {
		pickerContent = m.filter.View() + "\n" + pickerContent
	}
	left := paneStyle
	if m.focus != focusPrompt {
		left = focusedPaneStyle
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		left.Width(m.leftWidth()-2).Render(pickerContent),
		paneStyle.Width(m.output.Width).Render(m.output.View()),
	)

	footer := subtleStyle.Render(" [ctrl+s] Create • [tab] Picker • [/] Filter • [?] Help • [esc] Quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, input, body, footer)
}
