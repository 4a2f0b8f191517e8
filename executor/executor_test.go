package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	"github.com/hupe1980/agentgrid/core"
)

// echoActivity is the shared underlying operation for the routing tests. The
// direct binding calls it straight; the orchestrated binding schedules it as
// an activity. Equivalence of the two paths is asserted below.
func echoActivity(_ context.Context, in string) (string, error) {
	return "echo:" + in, nil
}

func echoWorkflow(wctx workflow.Context, in string) (string, error) {
	ec := core.NewWorkflowExecContext(wctx)
	return Execute(ec, nil, DefaultRetryProfile(), "test.echo",
		func(w workflow.Context) (string, error) {
			var out string
			err := workflow.ExecuteActivity(w, echoActivity, in).Get(w, &out)
			return out, err
		},
		func(ctx context.Context) (string, error) {
			return echoActivity(ctx, in)
		},
	)
}

func TestExecute_OrchestratedPath(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterActivity(echoActivity)
	env.RegisterWorkflow(echoWorkflow)

	env.ExecuteWorkflow(echoWorkflow, "ping")

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	assert.Equal(t, "echo:ping", out)
}

func TestExecute_DirectPath(t *testing.T) {
	orchestratedCalled := false
	ec := core.NewActivityExecContext(context.Background())

	out, err := Execute(ec, nil, DefaultRetryProfile(), "test.echo",
		func(workflow.Context) (string, error) {
			orchestratedCalled = true
			return "", errors.New("must not run")
		},
		func(ctx context.Context) (string, error) {
			return echoActivity(ctx, "ping")
		},
	)

	require.NoError(t, err)
	assert.Equal(t, "echo:ping", out)
	assert.False(t, orchestratedCalled)
}

// Both bindings are transport variants of one operation: the orchestrated
// result must equal the direct result for identical input.
func TestExecute_PathEquivalence(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterActivity(echoActivity)
	env.RegisterWorkflow(echoWorkflow)

	env.ExecuteWorkflow(echoWorkflow, "same-input")
	require.True(t, env.IsWorkflowCompleted())
	var orchestrated string
	require.NoError(t, env.GetWorkflowResult(&orchestrated))

	direct, err := Execute(core.NewClientExecContext(context.Background()), nil, DefaultRetryProfile(), "test.echo",
		func(workflow.Context) (string, error) { return "", errors.New("unreachable") },
		func(ctx context.Context) (string, error) { return echoActivity(ctx, "same-input") },
	)
	require.NoError(t, err)

	assert.Equal(t, orchestrated, direct)
}

func TestExecute_DirectErrorsSurfaceUnchanged(t *testing.T) {
	sentinel := errors.New("boom")
	_, err := Execute(core.NewClientExecContext(context.Background()), nil, DefaultRetryProfile(), "test.fail",
		func(workflow.Context) (string, error) { return "", nil },
		func(context.Context) (string, error) { return "", sentinel },
	)
	assert.ErrorIs(t, err, sentinel)
}

func TestExecuteVoid(t *testing.T) {
	called := false
	err := ExecuteVoid(core.NewClientExecContext(context.Background()), nil, DefaultRetryProfile(), "test.void",
		func(workflow.Context) error { return nil },
		func(context.Context) error {
			called = true
			return nil
		},
	)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestDefaultRetryProfile(t *testing.T) {
	p := DefaultRetryProfile()
	assert.EqualValues(t, 3, p.MaxAttempts)
	assert.Equal(t, time.Second, p.InitialInterval)
	assert.Equal(t, 2.0, p.BackoffCoefficient)
	assert.Equal(t, 10*time.Second, p.MaximumInterval)
	assert.Equal(t, 30*time.Second, p.StartToCloseTimeout)

	opts := p.ActivityOptions()
	require.NotNil(t, opts.RetryPolicy)
	assert.EqualValues(t, 3, opts.RetryPolicy.MaximumAttempts)
	assert.Equal(t, 30*time.Second, opts.StartToCloseTimeout)
}

func TestLazy_BuildsOnce(t *testing.T) {
	builds := 0
	lazy := NewLazy(func() (string, error) {
		builds++
		return "svc", nil
	})

	for i := 0; i < 3; i++ {
		svc, err := lazy.Get()
		require.NoError(t, err)
		assert.Equal(t, "svc", svc)
	}
	assert.Equal(t, 1, builds)
}

func TestLazy_FactoryFailureIsNotCached(t *testing.T) {
	attempts := 0
	lazy := NewLazy(func() (string, error) {
		attempts++
		if attempts < 2 {
			return "", &ConfigurationError{Service: "knowledge"}
		}
		return "svc", nil
	})

	_, err := lazy.Get()
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Error(), "knowledge service is not available")

	svc, err := lazy.Get()
	require.NoError(t, err)
	assert.Equal(t, "svc", svc)
}
