package testutil

import (
	"time"

	"github.com/hupe1980/agentgrid/core"
)

// MessageBuilder provides a fluent helper for constructing inbound messages
// in tests. Example:
//
//	msg := NewMessageBuilder().Participant("u1").Request("r1").Chat("hello").Build()
//
// Chain only the parts you need; sensible defaults are applied.
type MessageBuilder struct {
	msg core.InboundMessage
}

// NewMessageBuilder creates a builder defaulting to a chat message with a
// generated request id.
func NewMessageBuilder() *MessageBuilder {
	return &MessageBuilder{msg: core.InboundMessage{Type: core.MessageTypeChat, RequestID: core.NewID()}}
}

// Participant sets the originating participant id (chainable).
func (b *MessageBuilder) Participant(id string) *MessageBuilder { b.msg.ParticipantID = id; return b }

// Request overrides the auto-generated request id (chainable). Use mainly in
// tests where determinism matters.
func (b *MessageBuilder) Request(id string) *MessageBuilder { b.msg.RequestID = id; return b }

// Thread sets the conversation thread id (chainable).
func (b *MessageBuilder) Thread(id string) *MessageBuilder { b.msg.ThreadID = id; return b }

// Chat marks the message as conversational with the given text (chainable).
func (b *MessageBuilder) Chat(text string) *MessageBuilder {
	b.msg.Type = core.MessageTypeChat
	b.msg.Text = text
	return b
}

// Data marks the message as a structured data event (chainable).
func (b *MessageBuilder) Data(data map[string]any) *MessageBuilder {
	b.msg.Type = core.MessageTypeData
	b.msg.Data = data
	return b
}

// Handoff marks the message as a conversation transfer from sourceAgent
// (chainable).
func (b *MessageBuilder) Handoff(sourceAgent string) *MessageBuilder {
	b.msg.Type = core.MessageTypeHandoff
	b.msg.SourceAgent = sourceAgent
	return b
}

// Build returns the constructed message.
func (b *MessageBuilder) Build() core.InboundMessage { return b.msg }

// HistoryEntry constructs a history entry with a generated id and a
// second-truncated UTC timestamp, stable under JSON round trips.
func HistoryEntry(role, text string) core.HistoryEntry {
	return core.HistoryEntry{
		ID:        core.NewID(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now().UTC().Truncate(time.Second),
	}
}
