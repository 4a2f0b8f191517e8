package knowledge

import (
	"context"

	"github.com/hupe1980/agentgrid/core"
)

// Registered activity names. The Service's orchestrated path schedules these
// by name so workflow code never holds a backend reference.
const (
	SearchActivityName = "knowledge.Search"
	StoreActivityName  = "knowledge.Store"
)

// Activities adapts a Backend to the orchestration engine. A worker registers
// the methods under the names above.
type Activities struct {
	backend Backend
}

// NewActivities wraps the backend for activity registration.
func NewActivities(backend Backend) *Activities {
	return &Activities{backend: backend}
}

// Search runs a knowledge query as an activity.
func (a *Activities) Search(ctx context.Context, tenantID string, q core.KnowledgeQuery) ([]core.KnowledgeResult, error) {
	return a.backend.Search(ctx, tenantID, q)
}

// Store writes a knowledge item as an activity.
func (a *Activities) Store(ctx context.Context, tenantID, content string, metadata map[string]any) error {
	return a.backend.Store(ctx, tenantID, content, metadata)
}
