// Package executor implements the context-aware execution pattern: one API
// surface that transparently routes a platform operation either through the
// host orchestration engine (as a retryable activity) or straight to the
// backing service, depending on where the caller is currently running.
//
// An operation is expressed as two equivalent callables: an orchestrated
// binding that schedules an activity and a direct binding that invokes the
// backing transport. They are two transport bindings of one operation, not
// two behaviors; tests assert their equivalence.
package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/logging"
)

// RetryProfile tunes the orchestrated path of one operation category.
// The zero value is not meaningful; start from DefaultRetryProfile.
type RetryProfile struct {
	// MaxAttempts bounds the engine-driven retries of the activity.
	MaxAttempts int32
	// InitialInterval is the first backoff delay.
	InitialInterval time.Duration
	// BackoffCoefficient multiplies the delay after every failed attempt.
	BackoffCoefficient float64
	// MaximumInterval caps the backoff delay.
	MaximumInterval time.Duration
	// StartToCloseTimeout bounds a single activity attempt.
	StartToCloseTimeout time.Duration
}

// DefaultRetryProfile returns the defaults used for knowledge, message and
// document operations: 3 attempts, 1s initial backoff doubling up to 10s,
// 30s per-attempt timeout.
func DefaultRetryProfile() RetryProfile {
	return RetryProfile{
		MaxAttempts:         3,
		InitialInterval:     time.Second,
		BackoffCoefficient:  2.0,
		MaximumInterval:     10 * time.Second,
		StartToCloseTimeout: 30 * time.Second,
	}
}

// ActivityOptions converts the profile into Temporal activity options.
func (p RetryProfile) ActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: p.StartToCloseTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    p.InitialInterval,
			BackoffCoefficient: p.BackoffCoefficient,
			MaximumInterval:    p.MaximumInterval,
			MaximumAttempts:    p.MaxAttempts,
		},
	}
}

// ConfigurationError reports a service whose required transport dependency
// is absent. It fails fast: the error is surfaced to the caller and never
// retried.
type ConfigurationError struct {
	Service string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s service is not available: ensure the required transport is configured", e.Service)
}

// Lazy defers construction of a backing service until first use. The factory
// hook runs at most once on success; a factory failure is returned to every
// caller without caching so a later, correctly configured call still works.
//
// Lazy is only touched on the direct path (activity or client code), never
// from workflow code, so an ordinary mutex is safe here.
type Lazy[S any] struct {
	mu      sync.Mutex
	built   bool
	svc     S
	factory func() (S, error)
}

// NewLazy wraps a factory hook.
func NewLazy[S any](factory func() (S, error)) *Lazy[S] {
	return &Lazy[S]{factory: factory}
}

// Get returns the constructed service, building it on first use.
func (l *Lazy[S]) Get() (S, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.built {
		return l.svc, nil
	}
	svc, err := l.factory()
	if err != nil {
		var zero S
		return zero, err
	}
	l.svc = svc
	l.built = true
	return l.svc, nil
}

// Execute routes one operation based on the execution mode threaded through
// ec. Inside deterministic orchestration code the orchestrated binding runs
// with the profile's retry policy applied; inside an activity or outside any
// engine context the direct binding runs. Errors from either path surface
// unchanged.
func Execute[T any](
	ec core.ExecContext,
	logger logging.Logger,
	profile RetryProfile,
	operation string,
	orchestrated func(wctx workflow.Context) (T, error),
	direct func(ctx context.Context) (T, error),
) (T, error) {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	if ec.Mode == core.ModeWorkflow {
		wctx := workflow.WithActivityOptions(ec.WorkflowCtx, profile.ActivityOptions())
		workflow.GetLogger(wctx).Debug("executing platform operation", "operation", operation, "path", "orchestrated")
		return orchestrated(wctx)
	}
	logger.Debug("executing platform operation", "operation", operation, "path", "direct", "mode", ec.Mode.String())
	return direct(ec.Ctx)
}

// ExecuteVoid is Execute for operations without a result value.
func ExecuteVoid(
	ec core.ExecContext,
	logger logging.Logger,
	profile RetryProfile,
	operation string,
	orchestrated func(wctx workflow.Context) error,
	direct func(ctx context.Context) error,
) error {
	_, err := Execute(ec, logger, profile, operation,
		func(wctx workflow.Context) (struct{}, error) { return struct{}{}, orchestrated(wctx) },
		func(ctx context.Context) (struct{}, error) { return struct{}{}, direct(ctx) },
	)
	return err
}
