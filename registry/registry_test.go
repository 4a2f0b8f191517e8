package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentgrid/core"
)

func noopChat(*core.MessageContext, core.InboundMessage) error { return nil }
func noopData(*core.MessageContext, core.InboundMessage) error { return nil }

func TestRegistry_ChatThenDataMergesIntoOneEntry(t *testing.T) {
	r := New()

	require.NoError(t, r.RegisterChatHandler("W", core.ChatHandlerFunc(noopChat), "agent-a", "acme", false))
	require.NoError(t, r.RegisterDataHandler("W", core.DataHandlerFunc(noopData), "agent-b", "globex", false))

	meta, ok := r.Lookup("W")
	require.True(t, ok)
	assert.NotNil(t, meta.ChatHandler)
	assert.NotNil(t, meta.DataHandler)
	// Last writer wins for the descriptive fields.
	assert.Equal(t, "agent-b", meta.AgentName)
	assert.Equal(t, "globex", meta.TenantID)
	assert.False(t, meta.SystemScoped)
}

func TestRegistry_ReRegistrationIsIdempotent(t *testing.T) {
	r1 := New()
	r2 := New()

	require.NoError(t, r1.RegisterChatHandler("W", core.ChatHandlerFunc(noopChat), "agent", "acme", false))

	require.NoError(t, r2.RegisterChatHandler("W", core.ChatHandlerFunc(noopChat), "agent", "acme", false))
	require.NoError(t, r2.RegisterChatHandler("W", core.ChatHandlerFunc(noopChat), "agent", "acme", false))

	m1, ok1 := r1.Lookup("W")
	m2, ok2 := r2.Lookup("W")
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, m1.AgentName, m2.AgentName)
	assert.Equal(t, m1.TenantID, m2.TenantID)
	assert.Equal(t, m1.SystemScoped, m2.SystemScoped)
	assert.NotNil(t, m2.ChatHandler)
	assert.Nil(t, m2.DataHandler)
}

func TestRegistry_LookupMissIsNotAnError(t *testing.T) {
	r := New()
	meta, ok := r.Lookup("unknown")
	assert.False(t, ok)
	assert.Nil(t, meta.ChatHandler)
	assert.Nil(t, meta.DataHandler)
}

func TestRegistry_ScopeInvariant(t *testing.T) {
	r := New()

	// System-scoped must not carry a tenant id.
	err := r.RegisterChatHandler("W", core.ChatHandlerFunc(noopChat), "agent", "acme", true)
	assert.Error(t, err)

	// Tenant-scoped requires a tenant id.
	err = r.RegisterChatHandler("W", core.ChatHandlerFunc(noopChat), "agent", "", false)
	assert.Error(t, err)
	err = r.RegisterChatHandler("W", core.ChatHandlerFunc(noopChat), "agent", "  ", false)
	assert.Error(t, err)

	// Valid system-scoped registration.
	err = r.RegisterChatHandler("W", core.ChatHandlerFunc(noopChat), "agent", "", true)
	assert.NoError(t, err)
}

func TestRegistry_EmptyWorkflowType(t *testing.T) {
	r := New()
	assert.Error(t, r.RegisterChatHandler("", core.ChatHandlerFunc(noopChat), "agent", "acme", false))
}

func TestRegistry_MessageHandlerAliasSetsChatSlotOnly(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterMessageHandler("W", core.ChatHandlerFunc(noopChat), "agent", "acme", false))

	meta, ok := r.Lookup("W")
	require.True(t, ok)
	assert.NotNil(t, meta.ChatHandler)
	assert.Nil(t, meta.DataHandler)
}

func TestRegistry_ConcurrentRegisterAndLookup(t *testing.T) {
	r := New()
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			wt := fmt.Sprintf("W%d", n%4)
			_ = r.RegisterChatHandler(wt, core.ChatHandlerFunc(noopChat), "agent", "acme", false)
		}(i)
		go func(n int) {
			defer wg.Done()
			_, _ = r.Lookup(fmt.Sprintf("W%d", n%4))
		}(i)
	}
	wg.Wait()

	assert.NotEmpty(t, r.WorkflowTypes())
}
