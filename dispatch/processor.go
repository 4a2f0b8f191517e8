package dispatch

import (
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/identity"
	"github.com/hupe1980/agentgrid/logging"
	"github.com/hupe1980/agentgrid/registry"
)

// Processor dispatches one dequeued message to its registered handler. It is
// the error boundary of the runtime: handler failures are converted into a
// best-effort error response to the originating participant and never
// propagate into the loop. Every other layer propagates failures unchanged.
type Processor struct {
	registry *registry.Registry
	services core.Services
	logger   logging.Logger
}

// NewProcessor builds a processor over the given registry and services.
func NewProcessor(reg *registry.Registry, services core.Services, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Processor{registry: reg, services: services, logger: logger}
}

// Process handles one inbound message inside its own unit of work. It never
// returns an error; failures end here.
func (p *Processor) Process(wctx workflow.Context, workflowType string, msg core.InboundMessage) {
	meta, ok := p.registry.Lookup(workflowType)
	if !ok {
		p.logger.Warn("no handler registered, ignoring message",
			"workflow_type", workflowType, "message_type", string(msg.Type), "request_id", msg.RequestID)
		return
	}

	tenantID, ok := p.resolveTenant(wctx, workflowType, meta)
	mc := core.NewMessageContext(core.NewWorkflowExecContext(wctx), tenantID, meta.AgentName, msg, p.services, p.logger)
	if !ok {
		p.respondError(mc, "message rejected: tenant isolation violation")
		return
	}

	var err error
	switch msg.Type {
	case core.MessageTypeChat:
		if meta.ChatHandler == nil {
			p.logger.Warn("no chat handler registered, ignoring message", "workflow_type", workflowType, "request_id", msg.RequestID)
			return
		}
		err = meta.ChatHandler.HandleChat(mc, msg)
	case core.MessageTypeData:
		if meta.DataHandler == nil {
			p.logger.Warn("no data handler registered, ignoring message", "workflow_type", workflowType, "request_id", msg.RequestID)
			return
		}
		err = meta.DataHandler.HandleData(mc, msg)
	case core.MessageTypeHandoff:
		// Handoffs announce a conversation transfer; there is nothing to
		// dispatch, the next chat message carries the content.
		p.logger.Debug("handoff received", "workflow_type", workflowType, "source_agent", msg.SourceAgent)
		return
	default:
		p.logger.Warn("unknown message type, ignoring message", "workflow_type", workflowType, "message_type", string(msg.Type))
		return
	}

	if err != nil {
		if temporal.IsCanceledError(err) || wctx.Err() != nil {
			p.logger.Debug("message processing canceled", "workflow_type", workflowType, "request_id", msg.RequestID)
			return
		}
		p.logger.Error("handler failed",
			"workflow_type", workflowType, "request_id", msg.RequestID, "error", err.Error())
		if mc.SkipResponse() {
			p.logger.Debug("error response suppressed by handler", "workflow_type", workflowType, "request_id", msg.RequestID)
			return
		}
		p.respondError(mc, RootMessage(err))
		return
	}

	p.logger.Debug("message processed", "workflow_type", workflowType, "request_id", msg.RequestID)
}

// resolveTenant determines the effective tenant id for the dispatch. The
// workflow execution id carries the tenant prefix for tenant-scoped agents;
// the registration record carries the expected tenant. System-scoped agents
// adopt whatever tenant the execution id names, which may be none. On an
// isolation violation it reports false and falls back to the registration's
// tenant so the rejection can still be answered.
func (p *Processor) resolveTenant(wctx workflow.Context, workflowType string, meta core.HandlerMetadata) (string, bool) {
	workflowID := workflow.GetInfo(wctx).WorkflowExecution.ID

	parsed, err := identity.Parse(workflowID)
	if err != nil {
		// Execution ids without a tenant prefix occur for system-scoped
		// builtins; tenant-scoped agents fall back to their registration.
		p.logger.Debug("workflow id carries no tenant prefix", "workflow_id", workflowID, "workflow_type", workflowType)
		return meta.TenantID, true
	}

	if !identity.ValidateTenantIsolation(parsed.TenantID, meta.TenantID, meta.SystemScoped, p.logger) {
		return meta.TenantID, false
	}
	if meta.SystemScoped {
		return parsed.TenantID, true
	}
	return meta.TenantID, true
}

// respondError attempts, best effort, to deliver an error response to the
// originating participant. A failure here is logged and dropped, never
// re-raised; retrying would change user-visible timing guarantees.
func (p *Processor) respondError(mc *core.MessageContext, text string) {
	if err := mc.ReplyError(text); err != nil {
		p.logger.Error("failed to deliver error response",
			"participant_id", mc.ParticipantID, "request_id", mc.RequestID, "error", err.Error())
	}
}
