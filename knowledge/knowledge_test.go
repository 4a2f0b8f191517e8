package knowledge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/executor"
	"github.com/hupe1980/agentgrid/internal/httpx"
)

func TestInMemoryBackend_StoreAndSearch(t *testing.T) {
	b := NewInMemoryBackend()
	ctx := context.Background()

	require.NoError(t, b.Store(ctx, "acme", "the capital of France is Paris", map[string]any{"topic": "geo"}))
	require.NoError(t, b.Store(ctx, "acme", "water boils at 100C", nil))
	require.NoError(t, b.Store(ctx, "other", "Paris has a tower", nil))

	results, err := b.Search(ctx, "acme", core.KnowledgeQuery{Query: "Paris", Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "the capital of France is Paris", results[0].Content)
	assert.Equal(t, 1.0, results[0].Score)
	assert.Equal(t, "geo", results[0].Metadata["topic"])
}

func TestInMemoryBackend_TenantsAreIsolated(t *testing.T) {
	b := NewInMemoryBackend()
	ctx := context.Background()
	require.NoError(t, b.Store(ctx, "acme", "secret plans", nil))

	results, err := b.Search(ctx, "globex", core.KnowledgeQuery{Query: "secret", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestHTTPBackend_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/knowledge/search", r.URL.Path)
		assert.Equal(t, "acme", r.Header.Get(httpx.TenantHeader))

		var q core.KnowledgeQuery
		require.NoError(t, json.NewDecoder(r.Body).Decode(&q))
		assert.Equal(t, "Paris", q.Query)

		_ = json.NewEncoder(w).Encode(searchResponse{Results: []core.KnowledgeResult{
			{ID: "kn_0", Content: "the capital of France is Paris", Score: 0.92},
		}})
	}))
	defer srv.Close()

	b := NewHTTPBackend(httpx.New(srv.URL))
	results, err := b.Search(context.Background(), "acme", core.KnowledgeQuery{Query: "Paris", Limit: 5})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "kn_0", results[0].ID)
}

func TestService_DirectPath(t *testing.T) {
	b := NewInMemoryBackend()
	svc := NewServiceFromBackend(b)
	ec := core.NewClientExecContext(context.Background())

	require.NoError(t, svc.Store(ec, "acme", "hello world", nil))
	results, err := svc.Search(ec, "acme", core.KnowledgeQuery{Query: "hello", Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestService_MissingTransportFailsOnFirstUse(t *testing.T) {
	svc := NewService(func() (Backend, error) {
		return nil, &executor.ConfigurationError{Service: "knowledge"}
	})
	ec := core.NewClientExecContext(context.Background())

	_, err := svc.Search(ec, "acme", core.KnowledgeQuery{Query: "q"})
	var cfgErr *executor.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

// The orchestrated path must observe the same data as the direct path.
func TestService_OrchestratedPathMatchesDirect(t *testing.T) {
	b := NewInMemoryBackend()
	require.NoError(t, b.Store(context.Background(), "acme", "orchestration works", nil))
	svc := NewServiceFromBackend(b)

	searchWorkflow := func(wctx workflow.Context) ([]core.KnowledgeResult, error) {
		ec := core.NewWorkflowExecContext(wctx)
		return svc.Search(ec, "acme", core.KnowledgeQuery{Query: "orchestration", Limit: 10})
	}

	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	acts := NewActivities(b)
	env.RegisterActivityWithOptions(acts.Search, activity.RegisterOptions{Name: SearchActivityName})
	env.RegisterWorkflow(searchWorkflow)

	env.ExecuteWorkflow(searchWorkflow)
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var orchestrated []core.KnowledgeResult
	require.NoError(t, env.GetWorkflowResult(&orchestrated))

	direct, err := svc.Search(core.NewClientExecContext(context.Background()), "acme", core.KnowledgeQuery{Query: "orchestration", Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, direct, orchestrated)
}
