// Package history persists per-thread conversation history. The canonical
// HistoryStore SPI lives in the core package; this package provides an
// in-memory store, a Redis store for multi-node deployments, and the
// context-aware Service facade handlers use.
package history
