package document

import (
	"context"

	"github.com/hupe1980/agentgrid/core"
)

// Registered activity names for the document store.
const (
	PutActivityName  = "document.Put"
	GetActivityName  = "document.Get"
	ListActivityName = "document.List"
)

// Activities adapts a Backend to the orchestration engine.
type Activities struct {
	backend Backend
}

// NewActivities wraps the backend for activity registration.
func NewActivities(backend Backend) *Activities {
	return &Activities{backend: backend}
}

// Put stores a document as an activity.
func (a *Activities) Put(ctx context.Context, tenantID string, doc core.Document) error {
	return a.backend.Put(ctx, tenantID, doc)
}

// Get retrieves a document as an activity.
func (a *Activities) Get(ctx context.Context, tenantID, documentID string) (core.Document, error) {
	return a.backend.Get(ctx, tenantID, documentID)
}

// List enumerates document ids as an activity.
func (a *Activities) List(ctx context.Context, tenantID string) ([]string, error) {
	return a.backend.List(ctx, tenantID)
}
