package core

import "time"

// KnowledgeQuery describes a retrieval request against the knowledge store.
type KnowledgeQuery struct {
	Query    string `json:"query"`
	Limit    int    `json:"limit,omitempty"`
	ThreadID string `json:"thread_id,omitempty"`
}

// KnowledgeResult is one retrieved knowledge item with a relevance score and
// arbitrary metadata.
type KnowledgeResult struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Document is a named binary stored in the document store.
type Document struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Data        []byte `json:"data"`
}

// HistoryEntry is one turn of conversation history for a thread.
type HistoryEntry struct {
	ID            string            `json:"id"`
	Role          string            `json:"role"` // user, assistant, system
	ParticipantID string            `json:"participant_id,omitempty"`
	Text          string            `json:"text"`
	Timestamp     time.Time         `json:"timestamp"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// KnowledgeService exposes the knowledge store to handler code. All methods
// take an ExecContext and route through the context-aware executor: inside
// deterministic orchestration they run as activities, otherwise they call the
// backing transport directly. The two paths are observably equivalent.
type KnowledgeService interface {
	Search(ec ExecContext, tenantID string, q KnowledgeQuery) ([]KnowledgeResult, error)
	Store(ec ExecContext, tenantID, content string, metadata map[string]any) error
}

// DocumentService exposes the document store to handler code, with the same
// context-aware routing contract as KnowledgeService.
type DocumentService interface {
	Put(ec ExecContext, tenantID string, doc Document) error
	Get(ec ExecContext, tenantID, documentID string) (Document, error)
	List(ec ExecContext, tenantID string) ([]string, error)
}

// MessagingService delivers outbound messages to participants, with the same
// context-aware routing contract as KnowledgeService.
type MessagingService interface {
	Send(ec ExecContext, tenantID string, msg OutboundMessage) error
}

// HistoryService reads and appends conversation history, with the same
// context-aware routing contract as KnowledgeService.
type HistoryService interface {
	Append(ec ExecContext, tenantID, threadID string, entry HistoryEntry) error
	List(ec ExecContext, tenantID, threadID string, limit int) ([]HistoryEntry, error)
}

// Services bundles the platform service facades handed to the dispatch loop
// and exposed to handlers through MessageContext.
type Services struct {
	Knowledge KnowledgeService
	Document  DocumentService
	Messaging MessagingService
	History   HistoryService
}
