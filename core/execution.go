package core

import (
	"context"
	"time"

	"go.temporal.io/sdk/workflow"
)

// ExecutionMode states where the calling code is currently running. Exactly
// one mode is true at any call site. The mode is determined once at the entry
// point of each unit of work and threaded down explicitly; it is never cached
// across dispatches.
type ExecutionMode int

const (
	// ModeClient means no engine context exists, e.g. host application code
	// or agent-to-agent messaging glue invoked synchronously.
	ModeClient ExecutionMode = iota
	// ModeWorkflow means the caller is inside deterministic orchestration
	// code. Ordinary concurrency primitives, direct I/O and non-replayable
	// operations are forbidden; platform calls must go through activities.
	ModeWorkflow
	// ModeActivity means the caller is inside a side-effecting activity.
	// Nesting another activity is disallowed, so platform calls go direct.
	ModeActivity
)

// String returns a short label used in path selection logs.
func (m ExecutionMode) String() string {
	switch m {
	case ModeWorkflow:
		return "workflow"
	case ModeActivity:
		return "activity"
	case ModeClient:
		return "client"
	default:
		return "unknown"
	}
}

// ExecContext carries the execution mode together with whichever context type
// is valid for it. For ModeWorkflow only WorkflowCtx is set; for ModeActivity
// and ModeClient only Ctx is set. Context-aware code switches on Mode and
// must not touch the other field.
type ExecContext struct {
	Mode        ExecutionMode
	Ctx         context.Context
	WorkflowCtx workflow.Context
}

// NewWorkflowExecContext marks the caller as inside deterministic
// orchestration code.
func NewWorkflowExecContext(wctx workflow.Context) ExecContext {
	return ExecContext{Mode: ModeWorkflow, WorkflowCtx: wctx}
}

// NewActivityExecContext marks the caller as inside a side-effecting
// activity.
func NewActivityExecContext(ctx context.Context) ExecContext {
	return ExecContext{Mode: ModeActivity, Ctx: ctx}
}

// NewClientExecContext marks the caller as outside any engine context.
func NewClientExecContext(ctx context.Context) ExecContext {
	return ExecContext{Mode: ModeClient, Ctx: ctx}
}

// Now returns the current UTC time from whichever clock is valid for the
// mode. In ModeWorkflow it reads the engine's replay-stable clock; wall-clock
// reads are forbidden there.
func (ec ExecContext) Now() time.Time {
	if ec.Mode == ModeWorkflow && ec.WorkflowCtx != nil {
		return workflow.Now(ec.WorkflowCtx).UTC()
	}
	return time.Now().UTC()
}

// Err reports the cancellation state of whichever context is active.
func (ec ExecContext) Err() error {
	if ec.Mode == ModeWorkflow {
		if ec.WorkflowCtx == nil {
			return nil
		}
		return ec.WorkflowCtx.Err()
	}
	if ec.Ctx == nil {
		return nil
	}
	return ec.Ctx.Err()
}
