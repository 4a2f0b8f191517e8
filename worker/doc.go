// Package worker hosts one agent on its derived task queue. It registers the
// agent workflow under the agent's workflow type and the platform service
// activities for every configured backend, then polls the engine for work.
package worker
