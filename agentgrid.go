// Package agentgrid provides a high-level façade over the dispatch runtime
// and platform service abstractions (knowledge, documents, messaging,
// history & logging) enabling rapid construction of multi-tenant agent
// systems on a deterministic orchestration engine. Most applications interact
// with this package by:
//  1. Creating an AgentGrid via New() or NewFromConfig() (optionally
//     overriding default in-memory backends)
//  2. Defining and registering one or more agents
//  3. Hosting each agent with NewWorker() and delivering messages with
//     SendMessage()
//
// The façade delegates message processing to dispatch.AgentWorkflow while
// keeping setup and usage ergonomics concise. All defaults are safe for local
// development and testing; production deployments supply the platform HTTP
// transport, a Redis history store and a structured logger.
package agentgrid

import (
	"context"
	"fmt"
	"strings"

	"go.temporal.io/sdk/client"

	"github.com/hupe1980/agentgrid/agent"
	"github.com/hupe1980/agentgrid/config"
	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/dispatch"
	"github.com/hupe1980/agentgrid/document"
	"github.com/hupe1980/agentgrid/executor"
	"github.com/hupe1980/agentgrid/history"
	"github.com/hupe1980/agentgrid/identity"
	"github.com/hupe1980/agentgrid/internal/httpx"
	"github.com/hupe1980/agentgrid/knowledge"
	"github.com/hupe1980/agentgrid/logging"
	"github.com/hupe1980/agentgrid/messaging"
	"github.com/hupe1980/agentgrid/registry"
	"github.com/hupe1980/agentgrid/scheduling"
	"github.com/hupe1980/agentgrid/worker"
)

// Options configures the AgentGrid instance.
type Options struct {
	// TemporalClient connects to the orchestration engine. Required for
	// workers, message delivery and scheduling; a grid without one can
	// still register agents and be exercised in tests.
	TemporalClient client.Client

	// Backends are the side-effecting stores exposed to workflows as
	// activities (defaults to in-memory implementations if not provided).
	Backends worker.Backends

	// Registry holds handler registrations (defaults to a fresh registry).
	Registry *registry.Registry

	// RetryProfiles overrides the orchestrated retry policy per operation
	// category ("knowledge", "document", "messaging", "history"). Absent
	// categories use executor.DefaultRetryProfile.
	RetryProfiles map[string]executor.RetryProfile

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// AgentGrid is the high-level façade aggregating the dispatch runtime and
// platform services.
type AgentGrid struct {
	opts     Options
	registry *registry.Registry
	services core.Services
	logger   logging.Logger
}

// New creates a new AgentGrid instance with optional overrides. Any unset
// backend is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *AgentGrid {
	opts := Options{
		Backends: worker.Backends{
			Knowledge: knowledge.NewInMemoryBackend(),
			Document:  document.NewInMemoryBackend(),
			Messaging: messaging.NewInMemoryBackend(),
			History:   history.NewInMemoryStore(),
		},
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Registry == nil {
		opts.Registry = registry.New(func(o *registry.Options) { o.Logger = opts.Logger })
	}

	profile := func(category string) executor.RetryProfile {
		if p, ok := opts.RetryProfiles[category]; ok {
			return p
		}
		return executor.DefaultRetryProfile()
	}

	services := core.Services{
		Knowledge: knowledge.NewServiceFromBackend(opts.Backends.Knowledge, func(o *knowledge.ServiceOptions) {
			o.Logger = opts.Logger
			o.RetryProfile = profile("knowledge")
		}),
		Document: document.NewServiceFromBackend(opts.Backends.Document, func(o *document.ServiceOptions) {
			o.Logger = opts.Logger
			o.RetryProfile = profile("document")
		}),
		Messaging: messaging.NewServiceFromBackend(opts.Backends.Messaging, func(o *messaging.ServiceOptions) {
			o.Logger = opts.Logger
			o.RetryProfile = profile("messaging")
		}),
		History: history.NewServiceFromStore(opts.Backends.History, func(o *history.ServiceOptions) {
			o.Logger = opts.Logger
			o.RetryProfile = profile("history")
		}),
	}

	return &AgentGrid{
		opts:     opts,
		registry: opts.Registry,
		services: services,
		logger:   opts.Logger,
	}
}

// NewFromConfig connects to the orchestration engine and wires the platform
// HTTP transport and history store described by cfg.
func NewFromConfig(cfg *config.Config, optFns ...func(o *Options)) (*AgentGrid, error) {
	logger := logging.Logger(logging.NoOpLogger{})
	probe := Options{}
	for _, fn := range optFns {
		fn(&probe)
	}
	if probe.Logger != nil {
		logger = probe.Logger
	}

	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to orchestration engine: %w", err)
	}

	backends, err := backendsFromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	grid := New(append([]func(o *Options){func(o *Options) {
		o.TemporalClient = temporalClient
		o.Backends = backends
		o.RetryProfiles = retryProfilesFromConfig(cfg.Retry)
	}}, optFns...)...)
	return grid, nil
}

// retryProfilesFromConfig merges the per-category retry overrides over the
// built-in defaults. Zero-valued fields keep the default so a category can
// tune a single knob.
func retryProfilesFromConfig(overrides map[string]config.RetryConfig) map[string]executor.RetryProfile {
	if len(overrides) == 0 {
		return nil
	}
	profiles := make(map[string]executor.RetryProfile, len(overrides))
	for category, rc := range overrides {
		p := executor.DefaultRetryProfile()
		if rc.MaxAttempts > 0 {
			p.MaxAttempts = int32(rc.MaxAttempts)
		}
		if rc.InitialInterval > 0 {
			p.InitialInterval = rc.InitialInterval
		}
		if rc.BackoffCoefficient > 0 {
			p.BackoffCoefficient = rc.BackoffCoefficient
		}
		if rc.MaximumInterval > 0 {
			p.MaximumInterval = rc.MaximumInterval
		}
		if rc.StartToCloseTimeout > 0 {
			p.StartToCloseTimeout = rc.StartToCloseTimeout
		}
		profiles[category] = p
	}
	return profiles
}

func backendsFromConfig(cfg *config.Config, logger logging.Logger) (worker.Backends, error) {
	backends := worker.Backends{}

	if cfg.Platform.BaseURL != "" {
		hc := httpx.New(cfg.Platform.BaseURL,
			httpx.WithAuthToken(cfg.Platform.AuthToken),
			httpx.WithMaxRetries(cfg.Platform.MaxRetries),
			httpx.WithLogger(logger),
		)
		backends.Knowledge = knowledge.NewHTTPBackend(hc)
		backends.Document = document.NewHTTPBackend(hc)
		backends.Messaging = messaging.NewHTTPBackend(hc)
	}

	if cfg.Redis.Addr != "" {
		store, err := history.NewRedisStore(history.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			return worker.Backends{}, fmt.Errorf("connect history store: %w", err)
		}
		backends.History = store
	} else {
		backends.History = history.NewInMemoryStore()
	}

	return backends, nil
}

// Registry returns the handler registry shared by all workers of this grid.
func (g *AgentGrid) Registry() *registry.Registry { return g.registry }

// Services returns the context-aware service facades backed by the grid's
// configured backends.
func (g *AgentGrid) Services() core.Services { return g.services }

// TemporalClient returns the configured engine client, nil if none.
func (g *AgentGrid) TemporalClient() client.Client { return g.opts.TemporalClient }

// RegisterAgent installs the agent's handlers into the registry.
func (g *AgentGrid) RegisterAgent(a *agent.Agent) error {
	return a.Register(g.registry)
}

// NewWorker hosts the agent on its derived task queue. The agent must be
// registered first.
func (g *AgentGrid) NewWorker(a *agent.Agent, optFns ...func(o *worker.Options)) (*worker.Worker, error) {
	if g.opts.TemporalClient == nil {
		return nil, fmt.Errorf("temporal client is not configured")
	}
	aw := dispatch.NewAgentWorkflow(g.registry, g.services, g.logger)
	return worker.New(g.opts.TemporalClient, a, aw, g.opts.Backends, append([]func(o *worker.Options){
		func(o *worker.Options) { o.Logger = g.logger },
	}, optFns...)...)
}

// NewScheduler creates a scheduler delivering recurring messages through this
// grid's engine connection.
func (g *AgentGrid) NewScheduler(optFns ...func(o *scheduling.Options)) (*scheduling.Scheduler, error) {
	if g.opts.TemporalClient == nil {
		return nil, fmt.Errorf("temporal client is not configured")
	}
	return scheduling.NewScheduler(g.opts.TemporalClient, append([]func(o *scheduling.Options){
		func(o *scheduling.Options) { o.Logger = g.logger },
	}, optFns...)...), nil
}

// SendMessage delivers an inbound message on behalf of tenantID to the agent
// serving workflowType, starting its workflow if it is not already running.
// For tenant-scoped agents the tenant must match the registration; a mismatch
// is a rejected cross-tenant delivery. instanceID differentiates concurrent
// conversations of the same agent and may be empty for singleton agents.
func (g *AgentGrid) SendMessage(ctx context.Context, tenantID, workflowType, instanceID string, msg core.InboundMessage) error {
	if g.opts.TemporalClient == nil {
		return fmt.Errorf("temporal client is not configured")
	}

	meta, ok := g.registry.Lookup(workflowType)
	if !ok {
		return fmt.Errorf("no handler registered for workflow type %q", workflowType)
	}
	if !identity.ValidateTenantIsolation(tenantID, meta.TenantID, meta.SystemScoped, g.logger) {
		return fmt.Errorf("tenant %q may not address workflow type %q", tenantID, workflowType)
	}

	taskQueue, err := identity.TaskQueueName(workflowType, meta.SystemScoped, meta.TenantID)
	if err != nil {
		return err
	}

	segments := make([]string, 0, 3)
	if tenantID != "" {
		segments = append(segments, tenantID)
	}
	segments = append(segments, workflowType)
	if instanceID != "" {
		segments = append(segments, instanceID)
	}
	workflowID := strings.Join(segments, identity.Separator)

	_, err = g.opts.TemporalClient.SignalWithStartWorkflow(ctx,
		workflowID, dispatch.SignalName, msg,
		client.StartWorkflowOptions{ID: workflowID, TaskQueue: taskQueue},
		workflowType, dispatch.Input{WorkflowType: workflowType},
	)
	if err != nil {
		return fmt.Errorf("deliver message to %q: %w", workflowID, err)
	}
	g.logger.Debug("message delivered", "workflow_id", workflowID, "request_id", msg.RequestID)
	return nil
}
