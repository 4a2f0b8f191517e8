package messaging

import (
	"context"
	"sync"

	"github.com/hupe1980/agentgrid/core"
)

// InMemoryBackend records sent messages instead of delivering them. Useful
// for tests and examples.
type InMemoryBackend struct {
	mu   sync.RWMutex
	sent map[string][]core.OutboundMessage // tenantID -> messages in send order
}

// NewInMemoryBackend returns an empty recording backend.
func NewInMemoryBackend() *InMemoryBackend {
	return &InMemoryBackend{sent: make(map[string][]core.OutboundMessage)}
}

var _ Backend = (*InMemoryBackend)(nil)

// Send records the message.
func (b *InMemoryBackend) Send(_ context.Context, tenantID string, msg core.OutboundMessage) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent[tenantID] = append(b.sent[tenantID], msg)
	return nil
}

// Sent returns a snapshot of the messages recorded for the tenant.
func (b *InMemoryBackend) Sent(tenantID string) []core.OutboundMessage {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]core.OutboundMessage, len(b.sent[tenantID]))
	copy(out, b.sent[tenantID])
	return out
}
