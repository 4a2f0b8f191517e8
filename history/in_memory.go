package history

import (
	"context"
	"sync"

	"github.com/hupe1980/agentgrid/core"
)

// InMemoryStore is a volatile HistoryStore keeping entries in a process local
// map. It is safe for concurrent access and best suited for tests or
// ephemeral demo agents. Returned slices are copies to prevent external
// mutation of internal state.
type InMemoryStore struct {
	mu      sync.RWMutex
	threads map[string][]core.HistoryEntry // tenantID + "/" + threadID -> entries in append order
}

// NewInMemoryStore constructs an empty in-memory history store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{threads: make(map[string][]core.HistoryEntry)}
}

var _ core.HistoryStore = (*InMemoryStore)(nil)

func threadKey(tenantID, threadID string) string {
	return tenantID + "/" + threadID
}

// Append adds one entry to the thread.
func (s *InMemoryStore) Append(_ context.Context, tenantID, threadID string, entry core.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := threadKey(tenantID, threadID)
	s.threads[key] = append(s.threads[key], entry)
	return nil
}

// List returns the most recent entries of the thread in chronological order,
// up to limit. A limit <= 0 returns the whole thread.
func (s *InMemoryStore) List(_ context.Context, tenantID, threadID string, limit int) ([]core.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.threads[threadKey(tenantID, threadID)]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	out := make([]core.HistoryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// Clear removes the thread.
func (s *InMemoryStore) Clear(_ context.Context, tenantID, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.threads, threadKey(tenantID, threadID))
	return nil
}
