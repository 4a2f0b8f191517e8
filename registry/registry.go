// Package registry implements the workflow-type to handler lookup table.
//
// The registry is an explicit, injectable object owned by the runtime
// instance rather than a process-global map. It is written from agent
// initialization paths and read on every dispatched message, so it favors
// cheap concurrent reads: a plain map behind an RWMutex whose critical
// sections never span a blocking call.
package registry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/logging"
)

// Registry maps workflow-type strings to handler metadata. The zero value is
// not usable; construct with New.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]core.HandlerMetadata
	logger   logging.Logger
}

// Options configures a Registry.
type Options struct {
	// Logger records registrations and lookups. Defaults to NoOp.
	Logger logging.Logger
}

// New creates an empty registry.
func New(optFns ...func(o *Options)) *Registry {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Registry{
		handlers: make(map[string]core.HandlerMetadata),
		logger:   opts.Logger,
	}
}

// RegisterChatHandler upserts the registration for workflowType and sets its
// chat handler slot. The agent, tenant and scope fields are always
// overwritten (last writer wins); a previously registered data handler for
// the same workflow type is preserved.
func (r *Registry) RegisterChatHandler(workflowType string, handler core.ChatHandler, agentName, tenantID string, systemScoped bool) error {
	return r.register(workflowType, agentName, tenantID, systemScoped, func(meta *core.HandlerMetadata) {
		meta.ChatHandler = handler
	})
}

// RegisterDataHandler upserts the registration for workflowType and sets its
// data handler slot, preserving any chat handler already registered.
func (r *Registry) RegisterDataHandler(workflowType string, handler core.DataHandler, agentName, tenantID string, systemScoped bool) error {
	return r.register(workflowType, agentName, tenantID, systemScoped, func(meta *core.HandlerMetadata) {
		meta.DataHandler = handler
	})
}

// RegisterMessageHandler is a compatibility alias that registers only the
// chat slot.
func (r *Registry) RegisterMessageHandler(workflowType string, handler core.ChatHandler, agentName, tenantID string, systemScoped bool) error {
	return r.RegisterChatHandler(workflowType, handler, agentName, tenantID, systemScoped)
}

func (r *Registry) register(workflowType, agentName, tenantID string, systemScoped bool, set func(meta *core.HandlerMetadata)) error {
	if strings.TrimSpace(workflowType) == "" {
		return fmt.Errorf("workflow type must not be empty")
	}
	if systemScoped && tenantID != "" {
		return fmt.Errorf("system-scoped registration for %q must not carry a tenant id", workflowType)
	}
	if !systemScoped && strings.TrimSpace(tenantID) == "" {
		return fmt.Errorf("tenant-scoped registration for %q requires a tenant id", workflowType)
	}

	r.mu.Lock()
	meta := r.handlers[workflowType]
	meta.AgentName = agentName
	meta.TenantID = tenantID
	meta.SystemScoped = systemScoped
	set(&meta)
	r.handlers[workflowType] = meta
	r.mu.Unlock()

	r.logger.Debug("handler registered",
		"workflow_type", workflowType, "agent_name", agentName,
		"tenant_id", tenantID, "system_scoped", systemScoped)
	return nil
}

// Lookup returns the registration for workflowType. Absence is a normal
// outcome reported via the boolean, never an error; callers are expected to
// produce a user-visible "no handler" response rather than fail.
func (r *Registry) Lookup(workflowType string) (core.HandlerMetadata, bool) {
	r.mu.RLock()
	meta, ok := r.handlers[workflowType]
	r.mu.RUnlock()
	return meta, ok
}

// WorkflowTypes returns a snapshot of all registered workflow types.
func (r *Registry) WorkflowTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.handlers))
	for wt := range r.handlers {
		types = append(types, wt)
	}
	return types
}
