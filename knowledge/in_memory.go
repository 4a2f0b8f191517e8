package knowledge

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/agentgrid/core"
)

// storedItem is the internal representation persisted by InMemoryBackend.
type storedItem struct {
	ID       string
	Content  string
	Metadata map[string]any
}

// InMemoryBackend is a naive process-local Backend. Search is a linear scan
// with substring matching (case sensitive) assigning a constant score of 1.0
// to every hit. Suitable only for tests and demos; use the HTTP backend for
// real retrieval.
//
// Layout: tenantID -> itemID -> stored item, guarded by RWMutex.
type InMemoryBackend struct {
	mu      sync.RWMutex
	storage map[string]map[string]storedItem
}

// NewInMemoryBackend creates an empty in-memory knowledge backend.
func NewInMemoryBackend() *InMemoryBackend {
	return &InMemoryBackend{storage: make(map[string]map[string]storedItem)}
}

var _ Backend = (*InMemoryBackend)(nil)

// Search performs a simple substring match over stored items of the tenant.
// Results are returned in unspecified order up to q.Limit.
func (b *InMemoryBackend) Search(_ context.Context, tenantID string, q core.KnowledgeQuery) ([]core.KnowledgeResult, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	tenantStorage, exists := b.storage[tenantID]
	if !exists {
		return []core.KnowledgeResult{}, nil
	}
	limit := q.Limit
	if limit <= 0 {
		limit = len(tenantStorage)
	}
	results := make([]core.KnowledgeResult, 0, limit)
	for _, stored := range tenantStorage {
		if len(results) >= limit {
			break
		}
		if q.Query == "" || strings.Contains(stored.Content, q.Query) {
			md := make(map[string]any, len(stored.Metadata))
			for k, v := range stored.Metadata {
				md[k] = v
			}
			results = append(results, core.KnowledgeResult{ID: stored.ID, Content: stored.Content, Score: 1.0, Metadata: md})
		}
	}
	return results, nil
}

// Store appends a new item generating a simple incremental id.
func (b *InMemoryBackend) Store(_ context.Context, tenantID, content string, metadata map[string]any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.storage[tenantID]; !exists {
		b.storage[tenantID] = make(map[string]storedItem)
	}
	itemID := fmt.Sprintf("kn_%d", len(b.storage[tenantID]))
	b.storage[tenantID][itemID] = storedItem{ID: itemID, Content: content, Metadata: metadata}
	return nil
}
