// Package history persists past generations as one JSON-encoded list under
// a single well-known key. Load never fails the caller hard: an absent
// value is an empty list, and a broken value is an empty list plus an
// error the caller may log.
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/phravins/gptflow/internal/ai"
)

var (
	// ErrCorrupt means the stored value is not a list of entries.
	ErrCorrupt = errors.New("history: stored value is corrupt")
	// ErrUnavailable means the backing store could not be read or written.
	ErrUnavailable = errors.New("history: storage unavailable")
)

// legacyNamespace seeds the IDs given to records stored before entries had one.
var legacyNamespace = uuid.MustParse("6f1d7c1e-3b0a-4c55-9d3e-2a8f4b7e9c10")

type Entry struct {
	ID        string    `json:"id,omitempty" yaml:"id,omitempty"`
	Prompt    string    `json:"prompt" yaml:"prompt"`
	Reply     ai.Reply  `json:"reply" yaml:"reply"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	Tags      []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero" yaml:"created_at,omitempty"`
}

// NewEntry builds a history entry for a fresh generation.
func NewEntry(prompt string, reply ai.Reply) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Prompt:    prompt,
		Reply:     reply,
		CreatedAt: time.Now().UTC(),
	}
}

// UnmarshalJSON also accepts the older flat layout where the reply fields
// sat next to the prompt.
func (e *Entry) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.New("history entry is null")
	}

	type plain Entry
	var aux struct {
		plain
		Description *string  `json:"description"`
		Code        *string  `json:"code"`
		References  []string `json:"references"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*e = Entry(aux.plain)
	if aux.Description != nil && e.Reply.Description == "" {
		e.Reply.Description = *aux.Description
	}
	if aux.Code != nil && e.Reply.Code == "" {
		e.Reply.Code = *aux.Code
	}
	if aux.References != nil && e.Reply.References == nil {
		e.Reply.References = aux.References
	}
	return nil
}

// Same reports whether two entries refer to the same item. Entries without
// IDs fall back to comparing prompts.
func (e Entry) Same(other Entry) bool {
	if e.ID != "" && other.ID != "" {
		return e.ID == other.ID
	}
	return e.Prompt == other.Prompt
}

type Store interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
	Close() error
}

// Decode parses a stored value. Empty input is an empty history.
func Decode(data []byte) ([]Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return []Entry{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	assignLegacyIDs(entries)
	return entries, nil
}

// assignLegacyIDs gives ID-less records a deterministic ID derived from
// their position counted from the oldest entry and their prompt, so the
// same stored list always yields the same IDs and newer entries prepended
// later do not shift them.
func assignLegacyIDs(entries []Entry) {
	n := len(entries)
	for i := range entries {
		if entries[i].ID != "" {
			continue
		}
		name := fmt.Sprintf("%d:%s", n-1-i, entries[i].Prompt)
		entries[i].ID = uuid.NewSHA1(legacyNamespace, []byte(name)).String()
	}
}

func Encode(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

// Prepend returns a new slice with e in front. The input is not modified.
func Prepend(entries []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(entries)+1)
	out = append(out, e)
	return append(out, entries...)
}

// Find returns the entry with the given ID. An empty id never matches.
func Find(entries []Entry, id string) (Entry, bool) {
	if id == "" {
		return Entry{}, false
	}
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}
