package knowledge

import (
	"context"
	"net/http"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/internal/httpx"
)

// HTTPBackend talks to the platform knowledge API. The tenant id travels in
// the X-Tenant-Id header on every call.
type HTTPBackend struct {
	client *httpx.Client
}

// NewHTTPBackend creates an HTTPBackend over the given transport client.
func NewHTTPBackend(client *httpx.Client) *HTTPBackend {
	return &HTTPBackend{client: client}
}

var _ Backend = (*HTTPBackend)(nil)

type searchResponse struct {
	Results []core.KnowledgeResult `json:"results"`
}

type storeRequest struct {
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Search queries the knowledge API.
func (b *HTTPBackend) Search(ctx context.Context, tenantID string, q core.KnowledgeQuery) ([]core.KnowledgeResult, error) {
	var resp searchResponse
	if err := b.client.DoJSON(ctx, http.MethodPost, "/v1/knowledge/search", tenantID, q, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Store writes one knowledge item.
func (b *HTTPBackend) Store(ctx context.Context, tenantID, content string, metadata map[string]any) error {
	return b.client.DoJSON(ctx, http.MethodPost, "/v1/knowledge", tenantID, storeRequest{Content: content, Metadata: metadata}, nil)
}
