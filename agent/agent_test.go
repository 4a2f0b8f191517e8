package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/identity"
	"github.com/hupe1980/agentgrid/registry"
)

func noopChat(mc *core.MessageContext, msg core.InboundMessage) error { return nil }

func TestNew_TenantScoped(t *testing.T) {
	a, err := New("Assistant", "assistant", WithTenant("acme"), WithChatHandlerFunc(noopChat))
	require.NoError(t, err)

	assert.Equal(t, "Assistant", a.Name())
	assert.Equal(t, "assistant", a.WorkflowType())
	assert.Equal(t, "acme", a.TenantID())
	assert.False(t, a.SystemScoped())

	queue, err := a.TaskQueue()
	require.NoError(t, err)
	assert.Equal(t, "acme:assistant", queue)
}

func TestNew_SystemScoped(t *testing.T) {
	a, err := New("Router", "router", WithSystemScope(), WithChatHandlerFunc(noopChat))
	require.NoError(t, err)

	queue, err := a.TaskQueue()
	require.NoError(t, err)
	assert.Equal(t, "router", queue)
}

func TestNew_Validation(t *testing.T) {
	_, err := New("", "assistant", WithTenant("acme"), WithChatHandlerFunc(noopChat))
	assert.Error(t, err)

	_, err = New("Assistant", "", WithTenant("acme"), WithChatHandlerFunc(noopChat))
	assert.Error(t, err)

	_, err = New("Assistant", "assistant", WithTenant("acme"), WithSystemScope(), WithChatHandlerFunc(noopChat))
	assert.Error(t, err)

	_, err = New("Assistant", "assistant", WithChatHandlerFunc(noopChat))
	var isoErr *identity.TenantIsolationError
	assert.ErrorAs(t, err, &isoErr)

	_, err = New("Assistant", "assistant", WithTenant("acme"))
	assert.Error(t, err)
}

func TestRegister_InstallsBothSlots(t *testing.T) {
	a, err := New("Assistant", "assistant",
		WithTenant("acme"),
		WithChatHandlerFunc(noopChat),
		WithDataHandlerFunc(func(mc *core.MessageContext, msg core.InboundMessage) error { return nil }),
	)
	require.NoError(t, err)

	reg := registry.New()
	require.NoError(t, a.Register(reg))

	meta, ok := reg.Lookup("assistant")
	require.True(t, ok)
	assert.Equal(t, "Assistant", meta.AgentName)
	assert.Equal(t, "acme", meta.TenantID)
	assert.NotNil(t, meta.ChatHandler)
	assert.NotNil(t, meta.DataHandler)
}
