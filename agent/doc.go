// Package agent defines the static description of an agent: its name, the
// workflow type it serves, its tenant scoping, and the handlers that process
// its inbound messages. An Agent is registered once at startup; the dispatch
// loop consults the registry on every message.
package agent
