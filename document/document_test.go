package document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/internal/httpx"
)

func TestInMemoryBackend_PutGetList(t *testing.T) {
	b := NewInMemoryBackend()
	ctx := context.Background()

	doc := core.Document{ID: "report-1", Name: "report.pdf", ContentType: "application/pdf", Data: []byte("pdf bytes")}
	require.NoError(t, b.Put(ctx, "acme", doc))

	got, err := b.Get(ctx, "acme", "report-1")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", got.Name)
	assert.Equal(t, []byte("pdf bytes"), got.Data)

	ids, err := b.List(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"report-1"}, ids)
}

func TestInMemoryBackend_CopiesData(t *testing.T) {
	b := NewInMemoryBackend()
	ctx := context.Background()

	data := []byte("original")
	require.NoError(t, b.Put(ctx, "acme", core.Document{ID: "d", Data: data}))
	data[0] = 'X'

	got, err := b.Get(ctx, "acme", "d")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), got.Data)

	got.Data[0] = 'Y'
	again, err := b.Get(ctx, "acme", "d")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again.Data)
}

func TestInMemoryBackend_NotFound(t *testing.T) {
	b := NewInMemoryBackend()

	_, err := b.Get(context.Background(), "acme", "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	ids, err := b.List(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestHTTPBackend_GetMapsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "acme", r.Header.Get(httpx.TenantHeader))
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	b := NewHTTPBackend(httpx.New(srv.URL))
	_, err := b.Get(context.Background(), "acme", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_DirectPath(t *testing.T) {
	b := NewInMemoryBackend()
	svc := NewServiceFromBackend(b)
	ec := core.NewClientExecContext(context.Background())

	require.NoError(t, svc.Put(ec, "acme", core.Document{ID: "d1", Data: []byte("x")}))

	doc, err := svc.Get(ec, "acme", "d1")
	require.NoError(t, err)
	assert.Equal(t, "d1", doc.ID)

	ids, err := svc.List(ec, "acme")
	require.NoError(t, err)
	assert.Equal(t, []string{"d1"}, ids)
}
