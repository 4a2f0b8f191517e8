package knowledge

import (
	"context"

	"go.temporal.io/sdk/workflow"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/executor"
	"github.com/hupe1980/agentgrid/logging"
)

// ServiceOptions configures a knowledge Service.
type ServiceOptions struct {
	RetryProfile executor.RetryProfile
	Logger       logging.Logger
}

// Service is the context-aware knowledge facade. Calls made from workflow
// code are routed through the registered activities; all other calls hit the
// backend directly. The backend is built lazily on first direct use, so a
// service without a configured transport fails only when actually called.
type Service struct {
	backend *executor.Lazy[Backend]
	opts    ServiceOptions
}

// NewService creates a Service over a lazily constructed backend. factory may
// return *executor.ConfigurationError to signal a missing transport.
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

var _ core.KnowledgeService = (*Service)(nil)

// Search routes a knowledge query by execution mode.
func (s *Service) Search(ec core.ExecContext, tenantID string, q core.KnowledgeQuery) ([]core.KnowledgeResult, error) {
	return executor.Execute(ec, s.opts.Logger, s.opts.RetryProfile, SearchActivityName,
		func(wctx workflow.Context) ([]core.KnowledgeResult, error) {
			var out []core.KnowledgeResult
			err := workflow.ExecuteActivity(wctx, SearchActivityName, tenantID, q).Get(wctx, &out)
			return out, err
		},
		func(ctx context.Context) ([]core.KnowledgeResult, error) {
			b, err := s.backend.Get()
			if err != nil {
				return nil, err
			}
			return b.Search(ctx, tenantID, q)
		},
	)
}

// Store routes a knowledge write by execution mode.
func (s *Service) Store(ec core.ExecContext, tenantID, content string, metadata map[string]any) error {
	return executor.ExecuteVoid(ec, s.opts.Logger, s.opts.RetryProfile, StoreActivityName,
		func(wctx workflow.Context) error {
			return workflow.ExecuteActivity(wctx, StoreActivityName, tenantID, content, metadata).Get(wctx, nil)
		},
		func(ctx context.Context) error {
			b, err := s.backend.Get()
			if err != nil {
				return err
			}
			return b.Store(ctx, tenantID, content, metadata)
		},
	)
}
