package core

import "github.com/google/uuid"

// MessageType categorizes an inbound event. Chat messages carry
// conversational text; data messages carry structured payloads; handoff
// messages announce that another agent transferred the conversation.
type MessageType string

const (
	// MessageTypeChat is a conversational text message from a participant.
	MessageTypeChat MessageType = "chat"
	// MessageTypeData is a structured data event.
	MessageTypeData MessageType = "data"
	// MessageTypeHandoff announces a conversation transfer from another agent.
	MessageTypeHandoff MessageType = "handoff"
)

// InboundMessage is the immutable envelope delivered by the host engine's
// signal mechanism. It is created once when the signal arrives, consumed
// exactly once by the processing loop and never mutated after creation.
//
// The struct is JSON-serializable so it can travel through Temporal signal
// payloads unchanged.
type InboundMessage struct {
	Type          MessageType    `json:"type"`
	ParticipantID string         `json:"participant_id"`
	RequestID     string         `json:"request_id"`
	Scope         string         `json:"scope,omitempty"`
	Hint          string         `json:"hint,omitempty"`
	ThreadID      string         `json:"thread_id,omitempty"`
	Authorization string         `json:"authorization,omitempty"`
	Text          string         `json:"text,omitempty"`
	Data          map[string]any `json:"data,omitempty"`

	// Source routing: set when the message originates from another agent
	// rather than an end user.
	SourceAgent        string `json:"source_agent,omitempty"`
	SourceWorkflowID   string `json:"source_workflow_id,omitempty"`
	SourceWorkflowType string `json:"source_workflow_type,omitempty"`
}

// NewChatMessage builds a chat envelope with a generated request id.
func NewChatMessage(participantID, text string) InboundMessage {
	return InboundMessage{
		Type:          MessageTypeChat,
		ParticipantID: participantID,
		RequestID:     NewID(),
		Text:          text,
	}
}

// NewDataMessage builds a data envelope with a generated request id.
func NewDataMessage(participantID string, data map[string]any) InboundMessage {
	return InboundMessage{
		Type:          MessageTypeData,
		ParticipantID: participantID,
		RequestID:     NewID(),
		Data:          data,
	}
}

// OutboundMessage is the reply shape sent back to a participant through the
// messaging service.
type OutboundMessage struct {
	ParticipantID string         `json:"participant_id"`
	RequestID     string         `json:"request_id"`
	ThreadID      string         `json:"thread_id,omitempty"`
	Text          string         `json:"text,omitempty"`
	Data          map[string]any `json:"data,omitempty"`
	IsError       bool           `json:"is_error,omitempty"`
}

// NewID generates a new unique identifier for requests and history entries.
func NewID() string { return uuid.NewString() }
