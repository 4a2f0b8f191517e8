package worker

import (
	"fmt"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	sdkworker "go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/hupe1980/agentgrid/agent"
	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/dispatch"
	"github.com/hupe1980/agentgrid/document"
	"github.com/hupe1980/agentgrid/history"
	"github.com/hupe1980/agentgrid/knowledge"
	"github.com/hupe1980/agentgrid/logging"
	"github.com/hupe1980/agentgrid/messaging"
)

// Backends bundles the side-effecting stores a worker exposes as activities.
// Nil fields are simply not registered; workflows calling an unregistered
// activity fail at dispatch time with the engine's not-registered error.
type Backends struct {
	Knowledge knowledge.Backend
	Document  document.Backend
	Messaging messaging.Backend
	History   core.HistoryStore
}

// Options configures a Worker.
type Options struct {
	// Logger defaults to a no-op logger.
	Logger logging.Logger
	// WorkerOptions are passed through to the engine's worker.
	WorkerOptions sdkworker.Options
}

// Worker hosts one agent's workflow and activities on its task queue.
type Worker struct {
	worker    sdkworker.Worker
	taskQueue string
	logger    logging.Logger
}

// New derives the agent's task queue and registers the agent workflow plus
// the configured backend activities.
func New(c client.Client, a *agent.Agent, aw *dispatch.AgentWorkflow, backends Backends, optFns ...func(o *Options)) (*Worker, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	taskQueue, err := a.TaskQueue()
	if err != nil {
		return nil, fmt.Errorf("derive task queue for agent %q: %w", a.Name(), err)
	}

	w := sdkworker.New(c, taskQueue, opts.WorkerOptions)
	w.RegisterWorkflowWithOptions(aw.Run, workflow.RegisterOptions{Name: a.WorkflowType()})
	registerBackends(w, backends)

	opts.Logger.Info("worker configured", "agent", a.Name(), "task_queue", taskQueue)
	return &Worker{worker: w, taskQueue: taskQueue, logger: opts.Logger}, nil
}

func registerBackends(w sdkworker.Worker, backends Backends) {
	if backends.Knowledge != nil {
		acts := knowledge.NewActivities(backends.Knowledge)
		w.RegisterActivityWithOptions(acts.Search, activity.RegisterOptions{Name: knowledge.SearchActivityName})
		w.RegisterActivityWithOptions(acts.Store, activity.RegisterOptions{Name: knowledge.StoreActivityName})
	}
	if backends.Document != nil {
		acts := document.NewActivities(backends.Document)
		w.RegisterActivityWithOptions(acts.Put, activity.RegisterOptions{Name: document.PutActivityName})
		w.RegisterActivityWithOptions(acts.Get, activity.RegisterOptions{Name: document.GetActivityName})
		w.RegisterActivityWithOptions(acts.List, activity.RegisterOptions{Name: document.ListActivityName})
	}
	if backends.Messaging != nil {
		acts := messaging.NewActivities(backends.Messaging)
		w.RegisterActivityWithOptions(acts.Send, activity.RegisterOptions{Name: messaging.SendActivityName})
	}
	if backends.History != nil {
		acts := history.NewActivities(backends.History)
		w.RegisterActivityWithOptions(acts.Append, activity.RegisterOptions{Name: history.AppendActivityName})
		w.RegisterActivityWithOptions(acts.List, activity.RegisterOptions{Name: history.ListActivityName})
	}
}

// TaskQueue returns the physical task queue this worker polls.
func (w *Worker) TaskQueue() string { return w.taskQueue }

// Start begins polling in the background. Use Stop for shutdown.
func (w *Worker) Start() error {
	if err := w.worker.Start(); err != nil {
		return fmt.Errorf("start worker on %q: %w", w.taskQueue, err)
	}
	w.logger.Info("worker started", "task_queue", w.taskQueue)
	return nil
}

// Run polls until the interrupt channel fires. Blocks.
func (w *Worker) Run(interruptCh <-chan interface{}) error {
	w.logger.Info("worker running", "task_queue", w.taskQueue)
	return w.worker.Run(interruptCh)
}

// Stop drains and shuts down the worker.
func (w *Worker) Stop() {
	w.worker.Stop()
	w.logger.Info("worker stopped", "task_queue", w.taskQueue)
}
