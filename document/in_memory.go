package document

import (
	"context"
	"sync"

	"github.com/hupe1980/agentgrid/core"
)

// InMemoryBackend is a trivial in-process Backend useful for tests, examples
// and single-process prototypes. It keeps all documents in a nested map
// guarded by an RWMutex. Data is copied on save and retrieval to avoid
// accidental external mutation of internal buffers.
//
// Layout: tenantID -> documentID -> document
//
// This implementation does not enforce retention limits, size quotas, or
// eviction. For production, use the platform HTTP backend.
type InMemoryBackend struct {
	mu        sync.RWMutex
	documents map[string]map[string]core.Document
}

// NewInMemoryBackend returns an empty in-memory document backend.
func NewInMemoryBackend() *InMemoryBackend {
	return &InMemoryBackend{documents: make(map[string]map[string]core.Document)}
}

var _ Backend = (*InMemoryBackend)(nil)

// Put stores (or overwrites) the document for the given tenant. The data
// slice is copied before storage.
func (b *InMemoryBackend) Put(_ context.Context, tenantID string, doc core.Document) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.documents[tenantID]; !exists {
		b.documents[tenantID] = make(map[string]core.Document)
	}
	cp := make([]byte, len(doc.Data))
	copy(cp, doc.Data)
	doc.Data = cp
	b.documents[tenantID][doc.ID] = doc
	return nil
}

// Get returns a copy of the stored document or ErrNotFound.
func (b *InMemoryBackend) Get(_ context.Context, tenantID, documentID string) (core.Document, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m, ok := b.documents[tenantID]
	if !ok {
		return core.Document{}, ErrNotFound
	}
	doc, ok := m[documentID]
	if !ok {
		return core.Document{}, ErrNotFound
	}
	cp := make([]byte, len(doc.Data))
	copy(cp, doc.Data)
	doc.Data = cp
	return doc, nil
}

// List returns the document ids stored for the tenant. The slice is a
// snapshot and safe for caller mutation.
func (b *InMemoryBackend) List(_ context.Context, tenantID string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m, ok := b.documents[tenantID]
	if !ok {
		return []string{}, nil
	}
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	return ids, nil
}
