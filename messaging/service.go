package messaging

import (
	"context"

	"go.temporal.io/sdk/workflow"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/executor"
	"github.com/hupe1980/agentgrid/logging"
)

// SendActivityName is the registered activity name for message delivery.
const SendActivityName = "messaging.Send"

// Activities adapts a Backend to the orchestration engine.
type Activities struct {
	backend Backend
}

// NewActivities wraps the backend for activity registration.
func NewActivities(backend Backend) *Activities {
	return &Activities{backend: backend}
}

// Send delivers an outbound message as an activity.
func (a *Activities) Send(ctx context.Context, tenantID string, msg core.OutboundMessage) error {
	return a.backend.Send(ctx, tenantID, msg)
}

// ServiceOptions configures a messaging Service.
type ServiceOptions struct {
	RetryProfile executor.RetryProfile
	Logger       logging.Logger
}

// Service is the context-aware messaging facade.
type Service struct {
	backend *executor.Lazy[Backend]
	opts    ServiceOptions
}

// NewService creates a Service over a lazily constructed backend.
func NewService(factory func() (Backend, error), optFns ...func(o *ServiceOptions)) *Service {
	opts := ServiceOptions{
		RetryProfile: executor.DefaultRetryProfile(),
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Service{backend: executor.NewLazy(factory), opts: opts}
}

// NewServiceFromBackend creates a Service over an already constructed backend.
func NewServiceFromBackend(backend Backend, optFns ...func(o *ServiceOptions)) *Service {
	return NewService(func() (Backend, error) { return backend, nil }, optFns...)
}

var _ core.MessagingService = (*Service)(nil)

// Send routes message delivery by execution mode.
func (s *Service) Send(ec core.ExecContext, tenantID string, msg core.OutboundMessage) error {
	return executor.ExecuteVoid(ec, s.opts.Logger, s.opts.RetryProfile, SendActivityName,
		func(wctx workflow.Context) error {
			return workflow.ExecuteActivity(wctx, SendActivityName, tenantID, msg).Get(wctx, nil)
		},
		func(ctx context.Context) error {
			b, err := s.backend.Get()
			if err != nil {
				return err
			}
			return b.Send(ctx, tenantID, msg)
		},
	)
}
