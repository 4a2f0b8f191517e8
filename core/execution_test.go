package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"
)

func TestExecutionMode_String(t *testing.T) {
	assert.Equal(t, "workflow", ModeWorkflow.String())
	assert.Equal(t, "activity", ModeActivity.String())
	assert.Equal(t, "client", ModeClient.String())
	assert.Equal(t, "unknown", ExecutionMode(42).String())
}

func TestExecContext_Constructors(t *testing.T) {
	ctx := context.Background()

	ec := NewActivityExecContext(ctx)
	assert.Equal(t, ModeActivity, ec.Mode)
	assert.NotNil(t, ec.Ctx)
	assert.Nil(t, ec.WorkflowCtx)

	ec = NewClientExecContext(ctx)
	assert.Equal(t, ModeClient, ec.Mode)
	assert.NoError(t, ec.Err())
}

func TestExecContext_ErrPropagatesCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ec := NewClientExecContext(ctx)
	assert.NoError(t, ec.Err())
	cancel()
	assert.Error(t, ec.Err())
}

func TestExecContext_NowOutsideWorkflow(t *testing.T) {
	before := time.Now().UTC()
	now := NewClientExecContext(context.Background()).Now()
	after := time.Now().UTC()

	assert.Equal(t, time.UTC, now.Location())
	assert.False(t, now.Before(before))
	assert.False(t, now.After(after))
}

func TestExecContext_NowInWorkflowUsesEngineClock(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	wf := func(wctx workflow.Context) error {
		ec := NewWorkflowExecContext(wctx)
		if !ec.Now().Equal(workflow.Now(wctx).UTC()) {
			return errors.New("clock mismatch")
		}
		return nil
	}
	env.RegisterWorkflow(wf)
	env.ExecuteWorkflow(wf)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
}
