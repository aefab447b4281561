package session

import (
	"context"
	"slices"
	"sync"
)

// MemoryJournal is an in-process Journal. The scenario harness uses it to
// check that every run survives a replay; it is also handy in tests.
//
// Safe for concurrent use.
type MemoryJournal struct {
	mu       sync.Mutex
	attempts map[string]Attempt
	actions  map[string][]Entry
	created  int64
}

// NewMemoryJournal creates an empty journal.
func NewMemoryJournal() *MemoryJournal {
	return &MemoryJournal{
		attempts: make(map[string]Attempt),
		actions:  make(map[string][]Entry),
	}
}

// WriteAttempt implements Journal. Rewriting an existing id is a no-op.
func (m *MemoryJournal) WriteAttempt(_ context.Context, a Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.attempts[a.ID]; ok {
		return nil
	}
	m.created++
	a.CreatedSeq = m.created
	m.attempts[a.ID] = a
	return nil
}

// AppendAction implements Journal. An entry whose seq is already present is
// ignored.
func (m *MemoryJournal) AppendAction(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.actions[e.AttemptID]
	i, found := slices.BinarySearchFunc(entries, e.Seq, func(x Entry, seq int64) int {
		switch {
		case x.Seq < seq:
			return -1
		case x.Seq > seq:
			return 1
		}
		return 0
	})
	if found {
		return nil
	}
	m.actions[e.AttemptID] = slices.Insert(entries, i, e)
	return nil
}

// ReadAttempt implements Journal.
func (m *MemoryJournal) ReadAttempt(_ context.Context, id string) (Attempt, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.attempts[id]
	return a, ok, nil
}

// ReadActions implements Journal.
func (m *MemoryJournal) ReadActions(_ context.Context, attemptID string) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.actions[attemptID]), nil
}
