package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:", "ai-sdk-history")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_LoadAbsent(t *testing.T) {
	s := newTestSQLite(t)
	entries, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty history, got %d", len(entries))
	}
}

func TestSQLiteStore_SaveLoadOverwrite(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	entries := sampleEntries()
	if err := s.Save(ctx, entries[1:]); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, entries); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries after overwrite, got %d", len(got))
	}
	if got[0].Prompt != "second" {
		t.Errorf("First entry = %q", got[0].Prompt)
	}
}

func TestSQLiteStore_Corrupt(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	if err := s.Put(ctx, []byte("][")); err != nil {
		t.Fatal(err)
	}
	entries, err := s.Load(ctx)
	if !errors.Is(err, ErrCorrupt) {
		t.Errorf("Expected ErrCorrupt, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty history, got %d", len(entries))
	}
}

func TestSQLiteStore_KeysAreIsolated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	a, err := NewSQLiteStore(path, "a")
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	if err := a.Save(ctx, sampleEntries()); err != nil {
		t.Fatal(err)
	}

	b, err := NewSQLiteStore(path, "b")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	got, err := b.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Key b should be empty, got %d entries", len(got))
	}
}
