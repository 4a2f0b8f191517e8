package document

import (
	"context"

	"github.com/hupe1980/agentgrid/core"
)

// Backend is the storage SPI behind the document Service. Implementations
// perform plain side effects and are only called from activities or client
// code, never from workflow code.
type Backend interface {
	Put(ctx context.Context, tenantID string, doc core.Document) error
	Get(ctx context.Context, tenantID, documentID string) (core.Document, error)
	List(ctx context.Context, tenantID string) ([]string, error)
}
