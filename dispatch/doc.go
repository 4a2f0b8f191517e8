// Package dispatch contains the inbound message queue, the agent workflow's
// processing loop and the message processor. The loop runs inside the
// orchestration engine's cooperative scheduler: it drains the queue one
// message at a time and hands each message to its own concurrent unit of
// work, so a slow handler never blocks subsequent messages.
package dispatch
