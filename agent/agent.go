package agent

import (
	"errors"
	"strings"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/identity"
	"github.com/hupe1980/agentgrid/registry"
)

// Agent is the static definition of one agent. Exactly one of tenant-scoped
// and system-scoped applies: tenant-scoped agents serve a single tenant on a
// tenant-prefixed task queue, system-scoped agents serve all tenants on one
// shared queue.
type Agent struct {
	name         string
	workflowType string
	tenantID     string
	systemScoped bool
	chatHandler  core.ChatHandler
	dataHandler  core.DataHandler
}

// Options configures an Agent.
type Options struct {
	// TenantID scopes the agent to one tenant. Mutually exclusive with
	// SystemScoped.
	TenantID string
	// SystemScoped shares the agent across all tenants.
	SystemScoped bool
	// ChatHandler processes conversational messages.
	ChatHandler core.ChatHandler
	// DataHandler processes structured data events.
	DataHandler core.DataHandler
}

// WithTenant scopes the agent to the given tenant.
func WithTenant(tenantID string) func(o *Options) {
	return func(o *Options) { o.TenantID = tenantID }
}

// WithSystemScope shares the agent across all tenants.
func WithSystemScope() func(o *Options) {
	return func(o *Options) { o.SystemScoped = true }
}

// WithChatHandler sets the conversational handler.
func WithChatHandler(h core.ChatHandler) func(o *Options) {
	return func(o *Options) { o.ChatHandler = h }
}

// WithChatHandlerFunc sets a plain function as the conversational handler.
func WithChatHandlerFunc(f func(mc *core.MessageContext, msg core.InboundMessage) error) func(o *Options) {
	return func(o *Options) { o.ChatHandler = core.ChatHandlerFunc(f) }
}

// WithDataHandler sets the structured data handler.
func WithDataHandler(h core.DataHandler) func(o *Options) {
	return func(o *Options) { o.DataHandler = h }
}

// WithDataHandlerFunc sets a plain function as the structured data handler.
func WithDataHandlerFunc(f func(mc *core.MessageContext, msg core.InboundMessage) error) func(o *Options) {
	return func(o *Options) { o.DataHandler = core.DataHandlerFunc(f) }
}

// WithMessageHandler sets one handler for both the chat and data slots.
func WithMessageHandler(h core.MessageHandler) func(o *Options) {
	return func(o *Options) {
		o.ChatHandler = h
		o.DataHandler = h
	}
}

// New validates and builds an agent definition.
func New(name, workflowType string, optFns ...func(o *Options)) (*Agent, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if strings.TrimSpace(name) == "" {
		return nil, errors.New("agent name must not be empty")
	}
	if strings.TrimSpace(workflowType) == "" {
		return nil, errors.New("workflow type must not be empty")
	}
	if opts.SystemScoped && opts.TenantID != "" {
		return nil, errors.New("system-scoped agent must not carry a tenant id")
	}
	if !opts.SystemScoped && strings.TrimSpace(opts.TenantID) == "" {
		return nil, &identity.TenantIsolationError{WorkflowType: workflowType}
	}
	if opts.ChatHandler == nil && opts.DataHandler == nil {
		return nil, errors.New("agent requires at least one handler")
	}

	return &Agent{
		name:         name,
		workflowType: workflowType,
		tenantID:     opts.TenantID,
		systemScoped: opts.SystemScoped,
		chatHandler:  opts.ChatHandler,
		dataHandler:  opts.DataHandler,
	}, nil
}

// Name returns the agent's human-readable name.
func (a *Agent) Name() string { return a.name }

// WorkflowType returns the workflow type the agent serves.
func (a *Agent) WorkflowType() string { return a.workflowType }

// TenantID returns the owning tenant, empty for system-scoped agents.
func (a *Agent) TenantID() string { return a.tenantID }

// SystemScoped reports whether the agent is shared across tenants.
func (a *Agent) SystemScoped() bool { return a.systemScoped }

// TaskQueue derives the physical task queue name the agent's worker polls.
func (a *Agent) TaskQueue() (string, error) {
	return identity.TaskQueueName(a.workflowType, a.systemScoped, a.tenantID)
}

// Register installs the agent's handlers into the registry.
func (a *Agent) Register(reg *registry.Registry) error {
	if a.chatHandler != nil {
		if err := reg.RegisterChatHandler(a.workflowType, a.chatHandler, a.name, a.tenantID, a.systemScoped); err != nil {
			return err
		}
	}
	if a.dataHandler != nil {
		if err := reg.RegisterDataHandler(a.workflowType, a.dataHandler, a.name, a.tenantID, a.systemScoped); err != nil {
			return err
		}
	}
	return nil
}
