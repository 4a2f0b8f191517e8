// Package core contains the domain contracts shared across AgentGrid:
// the inbound message envelope, handler capabilities and registration
// metadata, the execution mode carrier, platform service interfaces and the
// per-dispatch MessageContext.
//
// Higher level packages (dispatch, executor, registry, knowledge, document,
// messaging, history) depend on core; core depends only on logging and the
// Temporal workflow API. Keeping the contracts here prevents import cycles
// between the dispatch loop and the service implementations.
package core
