package document

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/internal/httpx"
)

// HTTPBackend talks to the platform document API. The tenant id travels in
// the X-Tenant-Id header on every call.
type HTTPBackend struct {
	client *httpx.Client
}

// NewHTTPBackend creates an HTTPBackend over the given transport client.
func NewHTTPBackend(client *httpx.Client) *HTTPBackend {
	return &HTTPBackend{client: client}
}

var _ Backend = (*HTTPBackend)(nil)

type listResponse struct {
	IDs []string `json:"ids"`
}

// Put uploads one document.
func (b *HTTPBackend) Put(ctx context.Context, tenantID string, doc core.Document) error {
	return b.client.DoJSON(ctx, http.MethodPut, "/v1/documents/"+url.PathEscape(doc.ID), tenantID, doc, nil)
}

// Get downloads one document. A 404 response maps to ErrNotFound.
func (b *HTTPBackend) Get(ctx context.Context, tenantID, documentID string) (core.Document, error) {
	var doc core.Document
	err := b.client.DoJSON(ctx, http.MethodGet, "/v1/documents/"+url.PathEscape(documentID), tenantID, nil, &doc)
	if err != nil {
		var apiErr *httpx.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return core.Document{}, ErrNotFound
		}
		return core.Document{}, err
	}
	return doc, nil
}

// List returns the document ids stored for the tenant.
func (b *HTTPBackend) List(ctx context.Context, tenantID string) ([]string, error) {
	var resp listResponse
	if err := b.client.DoJSON(ctx, http.MethodGet, "/v1/documents", tenantID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.IDs, nil
}
