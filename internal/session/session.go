// Package session holds the page state: the draft prompt, the selected
// item, the accumulated history and the submission status. Every front end
// drives the same Session; renderers only ever see a View copy.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/phravins/gptflow/internal/ai"
	"github.com/phravins/gptflow/internal/examples"
	"github.com/phravins/gptflow/internal/history"
)

// FailureMessage is the only thing a user sees when generation fails.
const FailureMessage = "We couldn't generate your function.  Please try again!"

// ErrBusy is returned by Submit while another submission is in flight.
var ErrBusy = errors.New("session: submission already in flight")

type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
)

func (s Status) String() string {
	if s == StatusSubmitting {
		return "submitting"
	}
	return "idle"
}

// View is a point-in-time copy of the session for rendering.
type View struct {
	Examples []history.Entry
	History  []history.Entry
	Selected *history.Entry
	Status   Status
	Error    string
	Draft    string
}

func (v View) Loading() bool {
	return v.Status == StatusSubmitting
}

// IsSelected reports whether e is the current selection.
func (v View) IsSelected(e history.Entry) bool {
	return v.Selected != nil && v.Selected.Same(e)
}

type Session struct {
	mu        sync.Mutex
	store     history.Store
	generator ai.Generator
	log       logrus.FieldLogger

	history  []history.Entry
	selected *history.Entry
	status   Status
	errMsg   string
	draft    string
}

func New(store history.Store, generator ai.Generator, log logrus.FieldLogger) *Session {
	def := examples.Default()
	return &Session{
		store:     store,
		generator: generator,
		log:       log,
		history:   []history.Entry{},
		selected:  &def,
	}
}

// Load replaces history with the stored list. Any storage problem is
// logged and leaves history empty.
func (s *Session) Load(ctx context.Context) {
	entries, err := s.store.Load(ctx)
	if err != nil {
		s.log.WithError(err).Warn("history unavailable, starting empty")
		entries = []history.Entry{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = entries
	if len(entries) > 0 {
		first := entries[0]
		s.selected = &first
	}
}

func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	s.draft = text
	s.mu.Unlock()
}

func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *Session) Select(e history.Entry) {
	s.mu.Lock()
	s.selected = &e
	s.mu.Unlock()
}

// SelectByID looks the id up among examples first, then history.
func (s *Session) SelectByID(id string) bool {
	if e, ok := examples.Find(id); ok {
		s.Select(e)
		return true
	}
	s.mu.Lock()
	e, ok := history.Find(s.history, id)
	s.mu.Unlock()
	if ok {
		s.Select(e)
	}
	return ok
}

// Begin starts a submission with the current draft. It returns false and
// changes nothing if one is already in flight.
func (s *Session) Begin() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusSubmitting {
		return "", false
	}
	s.status = StatusSubmitting
	s.errMsg = ""
	return s.draft, true
}

// BeginWith is Begin for a prompt that arrives with the request. The draft
// is replaced only when the submission actually starts.
func (s *Session) BeginWith(prompt string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == StatusSubmitting {
		return false
	}
	s.draft = prompt
	s.status = StatusSubmitting
	s.errMsg = ""
	return true
}

// Complete finishes the submission started by Begin.
func (s *Session) Complete(ctx context.Context, prompt string, reply ai.Reply, genErr error) {
	if genErr != nil {
		s.log.WithError(genErr).WithField("prompt_len", len(prompt)).Warn("generation failed")
		s.mu.Lock()
		s.status = StatusIdle
		s.errMsg = FailureMessage
		s.mu.Unlock()
		return
	}

	entry := history.NewEntry(prompt, reply)

	s.mu.Lock()
	s.history = history.Prepend(s.history, entry)
	s.selected = &entry
	snapshot := s.history
	s.mu.Unlock()

	// Still submitting here, so no other Complete can save underneath us.
	if err := s.store.Save(ctx, snapshot); err != nil {
		s.log.WithError(err).Warn("failed to persist history")
	}

	s.mu.Lock()
	s.status = StatusIdle
	s.mu.Unlock()
}

// Submit runs a whole submission cycle synchronously.
func (s *Session) Submit(ctx context.Context) error {
	prompt, ok := s.Begin()
	if !ok {
		return ErrBusy
	}
	return s.run(ctx, prompt)
}

// SubmitPrompt runs a submission for prompt. While another one is in flight
// it returns ErrBusy and leaves the draft alone.
func (s *Session) SubmitPrompt(ctx context.Context, prompt string) error {
	if !s.BeginWith(prompt) {
		return ErrBusy
	}
	return s.run(ctx, prompt)
}

func (s *Session) run(ctx context.Context, prompt string) error {
	reply, err := s.generator.Generate(ctx, prompt)
	s.Complete(ctx, prompt, reply, err)
	return err
}

func (s *Session) Generator() ai.Generator {
	return s.generator
}

func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Examples: examples.All(),
		History:  append([]history.Entry(nil), s.history...),
		Status:   s.status,
		Error:    s.errMsg,
		Draft:    s.draft,
	}
	if s.selected != nil {
		sel := *s.selected
		v.Selected = &sel
	}
	return v
}
