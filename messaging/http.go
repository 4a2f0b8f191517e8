package messaging

import (
	"context"
	"net/http"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/internal/httpx"
)

// HTTPBackend delivers messages through the platform messaging API. The
// tenant id travels in the X-Tenant-Id header on every call.
type HTTPBackend struct {
	client *httpx.Client
}

// NewHTTPBackend creates an HTTPBackend over the given transport client.
func NewHTTPBackend(client *httpx.Client) *HTTPBackend {
	return &HTTPBackend{client: client}
}

var _ Backend = (*HTTPBackend)(nil)

// Send posts one outbound message.
func (b *HTTPBackend) Send(ctx context.Context, tenantID string, msg core.OutboundMessage) error {
	return b.client.DoJSON(ctx, http.MethodPost, "/v1/messages", tenantID, msg, nil)
}
