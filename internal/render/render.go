// Package render turns session state into terminal text and HTML
// fragments. Nothing here has side effects.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/phravins/gptflow/internal/examples"
	"github.com/phravins/gptflow/internal/history"
	"github.com/phravins/gptflow/internal/session"
)

const (
	// EmptyHistoryMessage is shown in place of the history list.
	EmptyHistoryMessage = "You haven't submitted anything yet. Either use the form above, or check out one of our examples."

	CodeLanguage = "javascript"
	CodeFilename = "function.ts"
	DefaultTheme = "onedark"
)

type Options struct {
	Width       int
	Theme       string
	DocsBaseURL string
}

func (o Options) width() int {
	if o.Width <= 0 {
		return 80
	}
	return o.Width
}

func (o Options) theme() string {
	if o.Theme == "" {
		return DefaultTheme
	}
	return o.Theme
}

// Items lists what the picker shows, examples first.
func Items(v session.View) []history.Entry {
	items := make([]history.Entry, 0, len(v.Examples)+len(v.History))
	items = append(items, v.Examples...)
	return append(items, v.History...)
}

// Code highlights source for a 256-color terminal. Highlighting problems
// fall back to the plain text.
func Code(code, theme string) string {
	if theme == "" {
		theme = DefaultTheme
	}
	var b bytes.Buffer
	if err := quick.Highlight(&b, code, CodeLanguage, "terminal256", theme); err != nil {
		return code
	}
	return b.String()
}

// Markdown renders text for the terminal, or returns it unchanged if
// glamour cannot.
func Markdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// Picker draws the example cards and the history list. cursor indexes
// into Items(v); pass -1 for no cursor.
func Picker(v session.View, width, cursor int) string {
	var sb strings.Builder

	sb.WriteString(sectionStyle.Render("Or use an example:") + "\n")
	for i, e := range v.Examples {
		sb.WriteString(exampleCard(e, v.IsSelected(e), i == cursor, width) + "\n")
	}

	sb.WriteString(sectionStyle.Render("Your history") + "\n")
	if len(v.History) == 0 {
		sb.WriteString(subtleStyle.Width(width).Render(EmptyHistoryMessage))
		return sb.String()
	}

	offset := len(v.Examples)
	for i, e := range v.History {
		sb.WriteString(historyRow(e, v.IsSelected(e), offset+i == cursor, width) + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func exampleCard(e history.Entry, selected, atCursor bool, width int) string {
	title := cardTitleStyle.Render(e.Title)
	style := cardStyle
	if selected {
		title = selectedTitleStyle.Render(e.Title)
		style = selectedCardStyle
	}

	var tags []string
	for _, t := range e.Tags {
		tags = append(tags, tagStyle.Render(t))
	}

	body := title
	if len(tags) > 0 {
		body += "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tags...)
	}
	if width > 4 {
		style = style.Width(width - 2)
	}
	card := style.Render(body)
	if atCursor {
		card = lipgloss.JoinHorizontal(lipgloss.Center, cursorStyle.Render("> "), card)
	}
	return card
}

func historyRow(e history.Entry, selected, atCursor bool, width int) string {
	prompt := truncate(strings.Join(strings.Fields(e.Prompt), " "), width-4)
	if prompt == "" {
		prompt = "(empty prompt)"
	}
	row := historyStyle.Render(prompt)
	if selected {
		row = selectedHistoryStyle.Render("* " + prompt)
	}
	if atCursor {
		row = cursorStyle.Render(">") + row
	}
	return row
}

func truncate(s string, n int) string {
	if n <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// Output draws the panel for one selected entry.
func Output(e history.Entry, opts Options) string {
	width := opts.width()
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	var sb strings.Builder

	sb.WriteString(panelLabelStyle.Width(width).Render("Prompt") + "\n")
	sb.WriteString(promptBoxStyle.Width(width-2).Render(e.Prompt) + "\n\n")

	sb.WriteString(headerStyle.Width(width).Render("Generated Inngest function") + "\n")
	code := captionStyle.Width(inner).Render(CodeFilename) + "\n" + Code(e.Reply.Code, opts.theme())
	sb.WriteString(codeBoxStyle.Render(code) + "\n\n")

	if e.Reply.Description != "" {
		sb.WriteString(Markdown(e.Reply.Description, inner) + "\n\n")
	}

	sb.WriteString(linkTitleStyle.Render("Want to learn more?") + "\n")
	for _, l := range examples.DocLinks {
		sb.WriteString(fmt.Sprintf("  %s  %s\n", linkTitleStyle.Render(l.Title), linkStyle.Render(l.URL(docsBase(opts)))))
	}

	sb.WriteString("\n" + linkTitleStyle.Bold(true).Render("References:") + "\n")
	for _, r := range e.Reply.References {
		sb.WriteString("  • " + linkStyle.Render(r) + "\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

func docsBase(opts Options) string {
	if opts.DocsBaseURL == "" {
		return "https://www.inngest.com"
	}
	return opts.DocsBaseURL
}
