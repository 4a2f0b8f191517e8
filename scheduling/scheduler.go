package scheduling

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.temporal.io/sdk/client"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/dispatch"
	"github.com/hupe1980/agentgrid/logging"
)

// Schedule describes one recurring message delivery. The workflow id is the
// composite execution id of the target agent workflow; signal-with-start
// ensures the workflow is running when the schedule fires.
type Schedule struct {
	// ID names the schedule for later removal.
	ID string
	// CronSpec is a standard five-field cron expression.
	CronSpec string
	// WorkflowID is the target agent workflow execution id.
	WorkflowID string
	// WorkflowType is the registered workflow type of the agent.
	WorkflowType string
	// TaskQueue is the agent's physical task queue.
	TaskQueue string
	// Message is delivered on every firing.
	Message core.InboundMessage
}

// Options configures a Scheduler.
type Options struct {
	// Logger defaults to a no-op logger.
	Logger logging.Logger
	// SignalTimeout bounds each signal delivery. Defaults to 10s.
	SignalTimeout time.Duration
}

// Scheduler runs cron schedules that signal agent workflows. It lives on the
// host side next to the workers, not inside workflow code.
type Scheduler struct {
	client client.Client
	cron   *cron.Cron
	logger logging.Logger

	signalTimeout time.Duration

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// NewScheduler creates a stopped scheduler; call Start to begin firing.
func NewScheduler(c client.Client, optFns ...func(o *Options)) *Scheduler {
	opts := Options{
		Logger:        logging.NoOpLogger{},
		SignalTimeout: 10 * time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Scheduler{
		client:        c,
		cron:          cron.New(),
		logger:        opts.Logger,
		signalTimeout: opts.SignalTimeout,
		entries:       make(map[string]cron.EntryID),
	}
}

// Add installs a schedule. The id must be unique among active schedules.
func (s *Scheduler) Add(sched Schedule) error {
	if sched.ID == "" || sched.WorkflowID == "" || sched.WorkflowType == "" || sched.TaskQueue == "" {
		return fmt.Errorf("schedule requires id, workflow id, workflow type and task queue")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[sched.ID]; exists {
		return fmt.Errorf("schedule %q already exists", sched.ID)
	}

	entryID, err := s.cron.AddFunc(sched.CronSpec, func() { s.fire(sched) })
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", sched.CronSpec, err)
	}
	s.entries[sched.ID] = entryID
	s.logger.Info("schedule added", "schedule_id", sched.ID, "cron", sched.CronSpec, "workflow_id", sched.WorkflowID)
	return nil
}

// Remove deletes a schedule. Removing an unknown id is a no-op.
func (s *Scheduler) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entryID, ok := s.entries[id]; ok {
		s.cron.Remove(entryID)
		delete(s.entries, id)
		s.logger.Info("schedule removed", "schedule_id", id)
	}
}

func (s *Scheduler) fire(sched Schedule) {
	ctx, cancel := context.WithTimeout(context.Background(), s.signalTimeout)
	defer cancel()

	_, err := s.client.SignalWithStartWorkflow(ctx,
		sched.WorkflowID, dispatch.SignalName, sched.Message,
		client.StartWorkflowOptions{ID: sched.WorkflowID, TaskQueue: sched.TaskQueue},
		sched.WorkflowType, dispatch.Input{WorkflowType: sched.WorkflowType},
	)
	if err != nil {
		s.logger.Error("schedule delivery failed", "schedule_id", sched.ID, "workflow_id", sched.WorkflowID, "error", err.Error())
		return
	}
	s.logger.Debug("schedule fired", "schedule_id", sched.ID, "workflow_id", sched.WorkflowID)
}

// Start begins firing schedules in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops firing and waits for in-flight deliveries.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
