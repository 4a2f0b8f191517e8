package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_SendsTenantHeader(t *testing.T) {
	var gotTenant, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant = r.Header.Get(TenantHeader)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithAuthToken("secret"))
	var out struct {
		OK bool `json:"ok"`
	}
	err := c.DoJSON(context.Background(), http.MethodPost, "/v1/knowledge/search", "acme", map[string]string{"query": "q"}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, "acme", gotTenant)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestDoJSON_RetriesRateLimitWithHeaderDelay(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"retry_after_seconds":0}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, WithMaxRetries(2))
	err := c.DoJSON(context.Background(), http.MethodPost, "/v1/messages", "acme", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoJSON_ClientErrorIsNotRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`bad input`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithMaxRetries(3))
	err := c.DoJSON(context.Background(), http.MethodPost, "/v1/messages", "acme", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, 1, calls)
}

func TestRateLimitDelay_Precedence(t *testing.T) {
	h := http.Header{}
	h.Set("Retry-After", "5")
	assert.Equal(t, "5s", rateLimitDelay(h, []byte(`{"retry_after_seconds":9}`)).String())

	assert.Equal(t, "9s", rateLimitDelay(http.Header{}, []byte(`{"retry_after_seconds":9}`)).String())

	assert.Equal(t, defaultRateLimitDelay, rateLimitDelay(http.Header{}, []byte(`{}`)))
}
