package tui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phravins/gptflow/internal/ai"
	"github.com/phravins/gptflow/internal/config"
	"github.com/phravins/gptflow/internal/examples"
	"github.com/phravins/gptflow/internal/history"
	"github.com/phravins/gptflow/internal/logging"
	"github.com/phravins/gptflow/internal/render"
	"github.com/phravins/gptflow/internal/session"
)

type countingGenerator struct {
	calls atomic.Int32
	reply ai.Reply
	err   error
}

func (g *countingGenerator) Name() string                       { return "counting" }
func (g *countingGenerator) Configure(cfg *config.Config) error { return nil }
func (g *countingGenerator) Generate(ctx context.Context, prompt string) (ai.Reply, error) {
	g.calls.Add(1)
	return g.reply, g.err
}

func newTestModel(t *testing.T, gen ai.Generator) (WorkflowsModel, *session.Session, *history.MemoryStore) {
	t.Helper()
	store := history.NewMemoryStore()
	sess := session.New(store, gen, logging.Discard())
	sess.Load(context.Background())

	m := NewWorkflowsModel(sess, render.Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 50})
	return updated.(WorkflowsModel), sess, store
}

func press(t *testing.T, m WorkflowsModel, keys ...tea.KeyMsg) (WorkflowsModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(WorkflowsModel)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestWorkflows_InitialView(t *testing.T) {
	m, _, _ := newTestModel(t, &countingGenerator{})
	out := m.View()

	assert.Contains(t, out, "GPT-driven workflows")
	assert.Contains(t, out, "LLM Summarization")
	assert.Contains(t, out, "Your history")
}

func TestWorkflows_SelectExamplesWithoutNetwork(t *testing.T) {
	gen := &countingGenerator{}
	m, sess, store := newTestModel(t, gen)

	m, _ = press(t, m, keyTab)
	require.Equal(t, focusPicker, m.focus)

	for i, want := range examples.All() {
		if i > 0 {
			m, _ = press(t, m, keyDown)
		}
		m, _ = press(t, m, keyEnter)

		sel := sess.Snapshot().Selected
		require.NotNil(t, sel)
		assert.Equal(t, want.ID, sel.ID)
		assert.Equal(t, want.Prompt, sel.Prompt)
		assert.Equal(t, want.Reply.Code, sel.Reply.Code)
	}

	assert.Zero(t, gen.calls.Load())
	assert.Zero(t, store.Saves())
}

func TestWorkflows_SubmitSingleFlight(t *testing.T) {
	gen := &countingGenerator{reply: ai.Reply{Code: "inngest.createFunction()", Description: "d"}}
	m, sess, store := newTestModel(t, gen)

	m, _ = press(t, m, runes("notify me daily"))
	m, cmd := press(t, m, keyCtrlS)
	require.NotNil(t, cmd)
	assert.True(t, sess.Snapshot().Loading())
	assert.Contains(t, m.View(), "Generating...")

	// A second submit while loading does nothing
	m, cmd2 := press(t, m, keyCtrlS)
	assert.Nil(t, cmd2)

	// Typing is ignored while loading
	m, _ = press(t, m, runes("xyz"))
	assert.Equal(t, "notify me daily", sess.Draft())

	// Run the generator the way bubbletea would
	msg := m.generate("notify me daily")()
	next, _ := m.Update(msg)
	m = next.(WorkflowsModel)

	v := sess.Snapshot()
	assert.False(t, v.Loading())
	require.Len(t, v.History, 1)
	assert.Equal(t, "notify me daily", v.History[0].Prompt)
	assert.Equal(t, v.History[0].ID, v.Selected.ID)
	assert.Equal(t, 1, store.Saves())
	assert.Equal(t, int32(1), gen.calls.Load())
	assert.True(t, strings.Contains(m.View(), "notify me daily"))
}

func TestWorkflows_SubmitFailureShowsMessage(t *testing.T) {
	gen := &countingGenerator{err: errors.New("dial tcp: refused")}
	m, sess, _ := newTestModel(t, gen)

	m, _ = press(t, m, runes("anything"), keyCtrlS)
	next, _ := m.Update(m.generate("anything")())
	m = next.(WorkflowsModel)

	assert.Equal(t, session.FailureMessage, sess.Snapshot().Error)
	assert.Empty(t, sess.Snapshot().History)
	assert.Contains(t, m.View(), "Please try again!")
	assert.NotContains(t, m.View(), "refused")
}

func TestWorkflows_FilterHistory(t *testing.T) {
	m, sess, _ := newTestModel(t, &countingGenerator{reply: ai.Reply{Code: "c"}})
	ctx := context.Background()
	for _, p := range []string{"send slack message", "resize uploaded images"} {
		sess.SetDraft(p)
		require.NoError(t, sess.Submit(ctx))
	}

	m, _ = press(t, m, keyTab, runes("/"))
	require.Equal(t, focusFilter, m.focus)
	m, _ = press(t, m, runes("slack"))

	v := m.view()
	require.Len(t, v.History, 1)
	assert.Equal(t, "send slack message", v.History[0].Prompt)

	m, _ = press(t, m, keyEsc)
	assert.Equal(t, focusPicker, m.focus)
	assert.Len(t, m.view().History, 2)
}

func TestWorkflows_EscQuits(t *testing.T) {
	m, _, _ := newTestModel(t, &countingGenerator{})
	_, cmd := press(t, m, keyEsc)
	require.NotNil(t, cmd)
	_, ok := cmd().(BackMsg)
	assert.True(t, ok)
}

func TestFilterHistory(t *testing.T) {
	entries := []history.Entry{{Prompt: "alpha"}, {Prompt: "beta"}, {Prompt: "alphabet"}}
	assert.Nil(t, filterHistory(entries, "  "))
	got := filterHistory(entries, "alp")
	assert.ElementsMatch(t, []int{0, 2}, got)
}

func TestPickerLine(t *testing.T) {
	assert.Equal(t, 1, pickerLine(3, 0))
	assert.Equal(t, 9, pickerLine(3, 2))
	assert.Equal(t, 14, pickerLine(3, 3))
}
