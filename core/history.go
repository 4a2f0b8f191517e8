package core

import "context"

// HistoryStore is the storage SPI behind HistoryService. Implementations are
// plain side-effecting stores (in-memory, Redis, ...) and are only ever
// called from activities or client code, never from workflow code, so they
// take an ordinary context.Context.
//
// Keys are scoped by tenant then thread so one store instance can serve
// multiple tenants without leakage.
type HistoryStore interface {
	Append(ctx context.Context, tenantID, threadID string, entry HistoryEntry) error
	List(ctx context.Context, tenantID, threadID string, limit int) ([]HistoryEntry, error)
	Clear(ctx context.Context, tenantID, threadID string) error
}
