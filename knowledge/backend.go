package knowledge

import (
	"context"

	"github.com/hupe1980/agentgrid/core"
)

// Backend is the storage SPI behind the knowledge Service. Implementations
// perform plain side effects and are only called from activities or client
// code, never from workflow code.
type Backend interface {
	Search(ctx context.Context, tenantID string, q core.KnowledgeQuery) ([]core.KnowledgeResult, error)
	Store(ctx context.Context, tenantID, content string, metadata map[string]any) error
}
