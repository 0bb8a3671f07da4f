package history

import (
	"context"
	"sync"
)

// MemoryStore holds the encoded list in process memory only.
type MemoryStore struct {
	mu    sync.Mutex
	raw   []byte
	saves int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.raw == nil {
		return []Entry{}, nil
	}
	return Decode(s.raw)
}

func (s *MemoryStore) Save(ctx context.Context, entries []Entry) error {
	data, err := Encode(entries)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.raw = data
	s.saves++
	s.mu.Unlock()
	return nil
}

// SetRaw replaces the stored value without validation.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	s.raw = data
	s.mu.Unlock()
}

func (s *MemoryStore) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// Saves counts successful Save calls.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *MemoryStore) Close() error {
	return nil
}
