package core

import (
	"fmt"

	"github.com/hupe1980/agentgrid/logging"
)

// MessageContext is the ephemeral per-dispatch object handed to handler code.
// It carries the routing identity of the message being processed (tenant,
// participant, request, thread) and exposes reply, history, knowledge and
// document operations that route through the context-aware executor.
//
// A MessageContext is built fresh for every dequeued InboundMessage and is
// discarded when the dispatch's unit of work completes. It is confined to
// that unit of work and must not be shared across dispatches. The tenant id
// is resolved before construction and is never empty for tenant-scoped
// agents.
type MessageContext struct {
	exec ExecContext

	TenantID      string
	AgentName     string
	ParticipantID string
	RequestID     string
	Scope         string
	Hint          string
	ThreadID      string
	Authorization string

	skipResponse bool

	services Services

	*loggerAdapter
}

// NewMessageContext builds the dispatch context for one inbound message.
// The exec context carries the execution mode determined at the unit of
// work's entry point.
func NewMessageContext(
	exec ExecContext,
	tenantID, agentName string,
	msg InboundMessage,
	services Services,
	logger logging.Logger,
) *MessageContext {
	return &MessageContext{
		exec:          exec,
		TenantID:      tenantID,
		AgentName:     agentName,
		ParticipantID: msg.ParticipantID,
		RequestID:     msg.RequestID,
		Scope:         msg.Scope,
		Hint:          msg.Hint,
		ThreadID:      msg.ThreadID,
		Authorization: msg.Authorization,
		services:      services,
		loggerAdapter: newLoggerAdapter(logger),
	}
}

// Exec returns the execution context threaded into this dispatch. Handler
// code passes it on when calling platform services directly.
func (mc *MessageContext) Exec() ExecContext { return mc.exec }

// SetSkipResponse marks the dispatch as not requiring a response. The
// dispatcher consults the flag on its error path: a failing handler that
// requested suppression gets its failure logged but no error message is sent
// to the participant. Handlers for machine-originated messages (scheduled
// triggers, data feeds) set it because no one is listening for a reply.
func (mc *MessageContext) SetSkipResponse(skip bool) { mc.skipResponse = skip }

// SkipResponse reports whether handler code requested response suppression.
func (mc *MessageContext) SkipResponse() bool { return mc.skipResponse }

// Reply sends a text response to the originating participant and records the
// assistant turn in the thread history. The entry's timestamp comes from the
// execution context's clock so workflow-mode dispatches stay replay-stable;
// the entry id is assigned by the history layer on the side-effecting path.
func (mc *MessageContext) Reply(text string) error {
	if err := mc.send(OutboundMessage{
		ParticipantID: mc.ParticipantID,
		RequestID:     mc.RequestID,
		ThreadID:      mc.ThreadID,
		Text:          text,
	}); err != nil {
		return err
	}
	return mc.AppendHistory(HistoryEntry{
		Role:      "assistant",
		Text:      text,
		Timestamp: mc.exec.Now(),
	})
}

// ReplyData sends a structured data response to the originating participant.
func (mc *MessageContext) ReplyData(data map[string]any) error {
	return mc.send(OutboundMessage{
		ParticipantID: mc.ParticipantID,
		RequestID:     mc.RequestID,
		ThreadID:      mc.ThreadID,
		Data:          data,
	})
}

// ReplyError sends an error-flagged message to the originating participant.
// Used by the error responder; handler code normally returns errors instead.
func (mc *MessageContext) ReplyError(text string) error {
	return mc.send(OutboundMessage{
		ParticipantID: mc.ParticipantID,
		RequestID:     mc.RequestID,
		ThreadID:      mc.ThreadID,
		Text:          text,
		IsError:       true,
	})
}

func (mc *MessageContext) send(msg OutboundMessage) error {
	if mc.services.Messaging == nil {
		return fmt.Errorf("messaging service not configured")
	}
	return mc.services.Messaging.Send(mc.exec, mc.TenantID, msg)
}

// History returns up to limit entries of the current thread's history,
// oldest first.
func (mc *MessageContext) History(limit int) ([]HistoryEntry, error) {
	if mc.services.History == nil {
		return []HistoryEntry{}, nil
	}
	return mc.services.History.List(mc.exec, mc.TenantID, mc.ThreadID, limit)
}

// AppendHistory records an entry in the current thread's history.
func (mc *MessageContext) AppendHistory(entry HistoryEntry) error {
	if mc.services.History == nil {
		return nil
	}
	return mc.services.History.Append(mc.exec, mc.TenantID, mc.ThreadID, entry)
}

// SearchKnowledge queries the knowledge store for relevant content.
func (mc *MessageContext) SearchKnowledge(q KnowledgeQuery) ([]KnowledgeResult, error) {
	if mc.services.Knowledge == nil {
		return []KnowledgeResult{}, nil
	}
	return mc.services.Knowledge.Search(mc.exec, mc.TenantID, q)
}

// StoreKnowledge appends content plus metadata to the knowledge store.
func (mc *MessageContext) StoreKnowledge(content string, metadata map[string]any) error {
	if mc.services.Knowledge == nil {
		return fmt.Errorf("knowledge service not configured")
	}
	return mc.services.Knowledge.Store(mc.exec, mc.TenantID, content, metadata)
}

// PutDocument stores a document in the document store.
func (mc *MessageContext) PutDocument(doc Document) error {
	if mc.services.Document == nil {
		return fmt.Errorf("document service not configured")
	}
	return mc.services.Document.Put(mc.exec, mc.TenantID, doc)
}

// GetDocument retrieves a previously stored document.
func (mc *MessageContext) GetDocument(documentID string) (Document, error) {
	if mc.services.Document == nil {
		return Document{}, fmt.Errorf("document service not configured")
	}
	return mc.services.Document.Get(mc.exec, mc.TenantID, documentID)
}

// ListDocuments returns document ids stored for the tenant.
func (mc *MessageContext) ListDocuments() ([]string, error) {
	if mc.services.Document == nil {
		return []string{}, nil
	}
	return mc.services.Document.List(mc.exec, mc.TenantID)
}
