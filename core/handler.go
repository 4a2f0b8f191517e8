package core

// ChatHandler processes conversational messages dispatched to an agent.
type ChatHandler interface {
	HandleChat(mc *MessageContext, msg InboundMessage) error
}

// DataHandler processes structured data events dispatched to an agent.
type DataHandler interface {
	HandleData(mc *MessageContext, msg InboundMessage) error
}

// MessageHandler combines both capabilities. Agents typically implement this
// interface once and register it for both slots.
type MessageHandler interface {
	ChatHandler
	DataHandler
}

// ChatHandlerFunc adapts a plain function to the ChatHandler interface.
type ChatHandlerFunc func(mc *MessageContext, msg InboundMessage) error

// HandleChat invokes the wrapped function.
func (f ChatHandlerFunc) HandleChat(mc *MessageContext, msg InboundMessage) error {
	return f(mc, msg)
}

// DataHandlerFunc adapts a plain function to the DataHandler interface.
type DataHandlerFunc func(mc *MessageContext, msg InboundMessage) error

// HandleData invokes the wrapped function.
func (f DataHandlerFunc) HandleData(mc *MessageContext, msg InboundMessage) error {
	return f(mc, msg)
}

// HandlerMetadata is the per-workflow-type registration record. The agent,
// tenant and scope fields reflect the most recent registration call (last
// writer wins); the handler slots are set independently so a chat and a data
// registration for the same workflow type merge into one record.
//
// Invariant: SystemScoped == true implies TenantID == "", and
// SystemScoped == false implies TenantID != "".
type HandlerMetadata struct {
	AgentName    string
	TenantID     string
	SystemScoped bool
	ChatHandler  ChatHandler
	DataHandler  DataHandler
}
