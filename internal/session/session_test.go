package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phravins/gptflow/internal/ai"
	"github.com/phravins/gptflow/internal/config"
	"github.com/phravins/gptflow/internal/examples"
	"github.com/phravins/gptflow/internal/history"
	"github.com/phravins/gptflow/internal/logging"
)

type fakeGenerator struct {
	calls atomic.Int32
	reply ai.Reply
	err   error
	gate  chan struct{} // when set, Generate blocks until it is closed

	mu      sync.Mutex
	prompts []string
}

func (f *fakeGenerator) Name() string                       { return "fake" }
func (f *fakeGenerator) Configure(cfg *config.Config) error { return nil }
func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (ai.Reply, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	return f.reply, f.err
}

func newTestSession(t *testing.T, gen ai.Generator) (*Session, *history.MemoryStore) {
	t.Helper()
	store := history.NewMemoryStore()
	return New(store, gen, logging.Discard()), store
}

func TestLoad_AbsentValue(t *testing.T) {
	s, _ := newTestSession(t, &fakeGenerator{})
	s.Load(context.Background())

	v := s.Snapshot()
	assert.Empty(t, v.History)
	require.NotNil(t, v.Selected)
	assert.Equal(t, examples.Default().ID, v.Selected.ID)
	assert.Equal(t, StatusIdle, v.Status)
	assert.Empty(t, v.Error)
}

func TestLoad_CorruptValueBehavesLikeEmpty(t *testing.T) {
	s, store := newTestSession(t, &fakeGenerator{})
	store.SetRaw([]byte(`{"this is": "not a list"`))

	require.NotPanics(t, func() { s.Load(context.Background()) })

	v := s.Snapshot()
	assert.Empty(t, v.History)
	require.NotNil(t, v.Selected)
	assert.Equal(t, examples.Default().ID, v.Selected.ID)
	assert.Empty(t, v.Error, "storage problems are never shown")
}

// unavailableStore fails every read and write like an unreachable backend.
type unavailableStore struct {
	saves int
}

func (u *unavailableStore) Load(ctx context.Context) ([]history.Entry, error) {
	return nil, fmt.Errorf("%w: permission denied", history.ErrUnavailable)
}

func (u *unavailableStore) Save(ctx context.Context, entries []history.Entry) error {
	u.saves++
	return fmt.Errorf("%w: read-only", history.ErrUnavailable)
}

func (u *unavailableStore) Close() error { return nil }

func TestLoad_UnavailableStoreBehavesLikeEmpty(t *testing.T) {
	store := &unavailableStore{}
	gen := &fakeGenerator{reply: ai.Reply{Code: "x"}}
	s := New(store, gen, logging.Discard())
	s.Load(context.Background())

	v := s.Snapshot()
	assert.NotNil(t, v.History)
	assert.Empty(t, v.History)
	require.NotNil(t, v.Selected)
	assert.Equal(t, examples.Default().ID, v.Selected.ID)
	assert.Empty(t, v.Error)

	// The page keeps working in memory when saves fail
	require.NoError(t, s.SubmitPrompt(context.Background(), "still works"))
	v = s.Snapshot()
	require.Len(t, v.History, 1)
	assert.Equal(t, "still works", v.Selected.Prompt)
	assert.Equal(t, 1, store.saves)
	assert.False(t, v.Loading())
}

func TestLoad_SelectsMostRecent(t *testing.T) {
	s, store := newTestSession(t, &fakeGenerator{})
	entries := []history.Entry{
		history.NewEntry("newest", ai.Reply{Code: "a"}),
		history.NewEntry("older", ai.Reply{Code: "b"}),
	}
	require.NoError(t, store.Save(context.Background(), entries))

	s.Load(context.Background())

	v := s.Snapshot()
	require.Len(t, v.History, 2)
	require.NotNil(t, v.Selected)
	assert.Equal(t, "newest", v.Selected.Prompt)
}

func TestSubmit_Success(t *testing.T) {
	gen := &fakeGenerator{reply: ai.Reply{
		Description: "desc",
		Code:        "code",
		References:  []string{"https://example.com"},
	}}
	s, store := newTestSession(t, gen)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, []history.Entry{history.NewEntry("old", ai.Reply{})}))
	s.Load(ctx)

	s.SetDraft("make a cron job")
	require.NoError(t, s.Submit(ctx))

	v := s.Snapshot()
	require.Len(t, v.History, 2)
	assert.Equal(t, "make a cron job", v.History[0].Prompt)
	assert.Equal(t, gen.reply, v.History[0].Reply)
	assert.Equal(t, "old", v.History[1].Prompt)
	require.NotNil(t, v.Selected)
	assert.Equal(t, v.History[0].ID, v.Selected.ID)
	assert.False(t, v.Loading())
	assert.Empty(t, v.Error)

	persisted, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 2)
	assert.Equal(t, v.History[0].ID, persisted[0].ID)
	assert.Equal(t, "old", persisted[1].Prompt)
}

func TestSubmit_Failure(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	s, store := newTestSession(t, gen)
	ctx := context.Background()
	s.Load(ctx)
	before := s.Snapshot()

	s.SetDraft("anything")
	err := s.Submit(ctx)
	require.Error(t, err)

	v := s.Snapshot()
	assert.Empty(t, v.History)
	assert.False(t, v.Loading())
	assert.Equal(t, FailureMessage, v.Error)
	assert.Equal(t, before.Selected.ID, v.Selected.ID)
	assert.Zero(t, store.Saves(), "nothing may be persisted on failure")
}

func TestSubmit_ClearsPreviousError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	s, _ := newTestSession(t, gen)
	ctx := context.Background()

	_ = s.Submit(ctx)
	require.NotEmpty(t, s.Snapshot().Error)

	gen.err = nil
	_, ok := s.Begin()
	require.True(t, ok)
	assert.Empty(t, s.Snapshot().Error)
	assert.True(t, s.Snapshot().Loading())
}

func TestSubmit_SingleFlight(t *testing.T) {
	gen := &fakeGenerator{gate: make(chan struct{}), reply: ai.Reply{Code: "x"}}
	s, store := newTestSession(t, gen)
	ctx := context.Background()
	s.SetDraft("once")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.Submit(ctx))
	}()

	// Wait until the first submission is inside Generate
	require.Eventually(t, func() bool { return gen.calls.Load() == 1 }, timeoutWait, tick)
	assert.True(t, s.Snapshot().Loading())

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, s.Submit(ctx), ErrBusy)
		_, ok := s.Begin()
		assert.False(t, ok)
	}

	close(gen.gate)
	wg.Wait()

	assert.Equal(t, int32(1), gen.calls.Load())
	v := s.Snapshot()
	assert.Len(t, v.History, 1)
	assert.Equal(t, 1, store.Saves())
	assert.False(t, v.Loading())
}

func TestSubmitPrompt_BusyKeepsInFlightPrompt(t *testing.T) {
	gen := &fakeGenerator{gate: make(chan struct{}), reply: ai.Reply{Code: "x"}}
	s, _ := newTestSession(t, gen)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.SubmitPrompt(ctx, "first"))
	}()

	require.Eventually(t, func() bool { return gen.calls.Load() == 1 }, timeoutWait, tick)
	assert.Equal(t, "first", s.Draft())

	assert.ErrorIs(t, s.SubmitPrompt(ctx, "second"), ErrBusy)
	assert.Equal(t, "first", s.Draft())

	close(gen.gate)
	wg.Wait()

	gen.mu.Lock()
	assert.Equal(t, []string{"first"}, gen.prompts)
	gen.mu.Unlock()
	v := s.Snapshot()
	require.Len(t, v.History, 1)
	assert.Equal(t, "first", v.History[0].Prompt)
}

func TestSubmitPrompt_ConcurrentCallersGenerateTheirOwnPrompt(t *testing.T) {
	gen := &fakeGenerator{reply: ai.Reply{Code: "x"}}
	s, _ := newTestSession(t, gen)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, p := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			if err := s.SubmitPrompt(ctx, p); err == nil {
				// Whoever won generated exactly the prompt it sent
				gen.mu.Lock()
				assert.Contains(t, gen.prompts, p)
				gen.mu.Unlock()
			}
		}(p)
	}
	wg.Wait()

	v := s.Snapshot()
	gen.mu.Lock()
	defer gen.mu.Unlock()
	require.Len(t, v.History, len(gen.prompts))
	for i, e := range v.History {
		assert.Equal(t, gen.prompts[len(gen.prompts)-1-i], e.Prompt)
	}
}

func TestSelectExamples_NoNetwork(t *testing.T) {
	gen := &fakeGenerator{}
	s, store := newTestSession(t, gen)

	for _, e := range examples.All() {
		s.Select(e)
		v := s.Snapshot()
		require.NotNil(t, v.Selected)
		assert.Equal(t, e.Prompt, v.Selected.Prompt)
		assert.Equal(t, e.Reply.Code, v.Selected.Reply.Code)
		assert.Equal(t, e.Reply.Description, v.Selected.Reply.Description)
		assert.Equal(t, e.Reply.References, v.Selected.Reply.References)
		assert.True(t, v.IsSelected(e))
	}

	assert.Zero(t, gen.calls.Load())
	assert.Zero(t, store.Saves())
}

func TestSelectByID(t *testing.T) {
	gen := &fakeGenerator{reply: ai.Reply{Code: "generated"}}
	s, _ := newTestSession(t, gen)
	ctx := context.Background()
	require.NoError(t, s.Submit(ctx))
	id := s.Snapshot().History[0].ID

	assert.True(t, s.SelectByID("example-3"))
	assert.Equal(t, "Delivery app order flow", s.Snapshot().Selected.Title)

	assert.True(t, s.SelectByID(id))
	assert.Equal(t, "generated", s.Snapshot().Selected.Reply.Code)

	assert.False(t, s.SelectByID("nope"))
	assert.Equal(t, id, s.Snapshot().Selected.ID)
}

func TestSnapshot_IsACopy(t *testing.T) {
	s, _ := newTestSession(t, &fakeGenerator{})
	v := s.Snapshot()
	v.Selected.Prompt = "mutated"
	assert.NotEqual(t, "mutated", s.Snapshot().Selected.Prompt)
}
