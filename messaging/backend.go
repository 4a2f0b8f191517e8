package messaging

import (
	"context"

	"github.com/hupe1980/agentgrid/core"
)

// Backend is the delivery SPI behind the messaging Service.
type Backend interface {
	Send(ctx context.Context, tenantID string, msg core.OutboundMessage) error
}
