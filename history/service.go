package history

import (
	"context"

	"go.temporal.io/sdk/workflow"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/executor"
	"github.com/hupe1980/agentgrid/logging"
)

// Registered activity names for the history store.
const (
	AppendActivityName = "history.Append"
	ListActivityName   = "history.List"
)

// Activities adapts a core.HistoryStore to the orchestration engine.
type Activities struct {
	store core.HistoryStore
}

// NewActivities wraps the store for activity registration.
func NewActivities(store core.HistoryStore) *Activities {
	return &Activities{store: store}
}

// Append writes one history entry as an activity.
func (a *Activities) Append(ctx context.Context, tenantID, threadID string, entry core.HistoryEntry) error {
	return a.store.Append(ctx, tenantID, threadID, ensureEntryID(entry))
}

// List reads thread history as an activity.
func (a *Activities) List(ctx context.Context, tenantID, threadID string, limit int) ([]core.HistoryEntry, error) {
	return a.store.List(ctx, tenantID, threadID, limit)
}

// ensureEntryID assigns a fresh entry id when the caller left it blank. Id
// generation happens here, on the side-effecting path, so workflow code can
// append entries without running a non-replayable generator itself.
func ensureEntryID(entry core.HistoryEntry) core.HistoryEntry {
	if entry.ID == "" {
		entry.ID = core.NewID()
	}
	return entry
}

// ServiceOptions configures a history Service.
type ServiceOptions struct {
	RetryProfile executor.RetryProfile
	Logger       logging.Logger
}

// Service is the context-aware history facade over a core.HistoryStore.
type Service struct {
	store *executor.Lazy[core.HistoryStore]
	opts  ServiceOptions
}

// NewService creates a Service over a lazily constructed store.
func NewService(factory func() (core.HistoryStore, error), optFns ...func(o *ServiceOptions)) *Service {
	opts := ServiceOptions{
		RetryProfile: executor.DefaultRetryProfile(),
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Service{store: executor.NewLazy(factory), opts: opts}
}

// NewServiceFromStore creates a Service over an already constructed store.
func NewServiceFromStore(store core.HistoryStore, optFns ...func(o *ServiceOptions)) *Service {
	return NewService(func() (core.HistoryStore, error) { return store, nil }, optFns...)
}

var _ core.HistoryService = (*Service)(nil)

// Append routes a history write by execution mode.
func (s *Service) Append(ec core.ExecContext, tenantID, threadID string, entry core.HistoryEntry) error {
	return executor.ExecuteVoid(ec, s.opts.Logger, s.opts.RetryProfile, AppendActivityName,
		func(wctx workflow.Context) error {
			return workflow.ExecuteActivity(wctx, AppendActivityName, tenantID, threadID, entry).Get(wctx, nil)
		},
		func(ctx context.Context) error {
			st, err := s.store.Get()
			if err != nil {
				return err
			}
			return st.Append(ctx, tenantID, threadID, ensureEntryID(entry))
		},
	)
}

// List routes a history read by execution mode.
func (s *Service) List(ec core.ExecContext, tenantID, threadID string, limit int) ([]core.HistoryEntry, error) {
	return executor.Execute(ec, s.opts.Logger, s.opts.RetryProfile, ListActivityName,
		func(wctx workflow.Context) ([]core.HistoryEntry, error) {
			var entries []core.HistoryEntry
			err := workflow.ExecuteActivity(wctx, ListActivityName, tenantID, threadID, limit).Get(wctx, &entries)
			return entries, err
		},
		func(ctx context.Context) ([]core.HistoryEntry, error) {
			st, err := s.store.Get()
			if err != nil {
				return nil, err
			}
			return st.List(ctx, tenantID, threadID, limit)
		},
	)
}
