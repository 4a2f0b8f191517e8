package document

import (
	"context"

	"go.temporal.io/sdk/workflow"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/executor"
	"github.com/hupe1980/agentgrid/logging"
)

// ServiceOptions configures a document Service.
type ServiceOptions struct {
	RetryProfile executor.RetryProfile
	Logger       logging.Logger
}

// Service is the context-aware document facade with the same routing contract
// as the knowledge Service: workflow callers go through activities, everyone
// else hits the backend directly.
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

var _ core.DocumentService = (*Service)(nil)

// Put routes a document write by execution mode.
func (s *Service) Put(ec core.ExecContext, tenantID string, doc core.Document) error {
	return executor.ExecuteVoid(ec, s.opts.Logger, s.opts.RetryProfile, PutActivityName,
		func(wctx workflow.Context) error {
			return workflow.ExecuteActivity(wctx, PutActivityName, tenantID, doc).Get(wctx, nil)
		},
		func(ctx context.Context) error {
			b, err := s.backend.Get()
			if err != nil {
				return err
			}
			return b.Put(ctx, tenantID, doc)
		},
	)
}

// Get routes a document read by execution mode.
func (s *Service) Get(ec core.ExecContext, tenantID, documentID string) (core.Document, error) {
	return executor.Execute(ec, s.opts.Logger, s.opts.RetryProfile, GetActivityName,
		func(wctx workflow.Context) (core.Document, error) {
			var doc core.Document
			err := workflow.ExecuteActivity(wctx, GetActivityName, tenantID, documentID).Get(wctx, &doc)
			return doc, err
		},
		func(ctx context.Context) (core.Document, error) {
			b, err := s.backend.Get()
			if err != nil {
				return core.Document{}, err
			}
			return b.Get(ctx, tenantID, documentID)
		},
	)
}

// List routes a document listing by execution mode.
func (s *Service) List(ec core.ExecContext, tenantID string) ([]string, error) {
	return executor.Execute(ec, s.opts.Logger, s.opts.RetryProfile, ListActivityName,
		func(wctx workflow.Context) ([]string, error) {
			var ids []string
			err := workflow.ExecuteActivity(wctx, ListActivityName, tenantID).Get(wctx, &ids)
			return ids, err
		},
		func(ctx context.Context) ([]string, error) {
			b, err := s.backend.Get()
			if err != nil {
				return nil, err
			}
			return b.List(ctx, tenantID)
		},
	)
}
