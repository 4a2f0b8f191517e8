package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTenantID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    string
		wantErr bool
	}{
		{name: "simple", id: "t:w", want: "t"},
		{name: "many segments", id: "a:b:c:d:e:f", want: "a"},
		{name: "empty tenant segment", id: ":w", want: ""},
		{name: "no separator", id: "tenantonly", wantErr: true},
		{name: "empty", id: "", wantErr: true},
		{name: "blank", id: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractTenantID(tt.id)
			if tt.wantErr {
				var formatErr *FormatError
				require.Error(t, err)
				require.True(t, errors.As(err, &formatErr))
				assert.Contains(t, formatErr.Error(), tt.id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractWorkflowType(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    string
		wantErr bool
	}{
		{name: "simple", id: "t:w", want: "w"},
		{name: "remainder keeps separators", id: "a:b:c:d:e:f", want: "b:c:d:e:f"},
		{name: "no separator", id: "w", wantErr: true},
		{name: "empty", id: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractWorkflowType(tt.id)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	tid, err := Parse("acme:Support:inst-7")
	require.NoError(t, err)
	assert.Equal(t, "acme", tid.TenantID)
	assert.Equal(t, "Support:inst-7", tid.WorkflowType)
	assert.Equal(t, "acme:Support:inst-7", tid.Raw)

	_, err = Parse("nocolon")
	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
}

func TestTaskQueueName_SystemScoped(t *testing.T) {
	// Tenant id is ignored even when supplied.
	name, err := TaskQueueName("X:Y", true, "acme")
	require.NoError(t, err)
	assert.Equal(t, "X:Y", name)
	assert.NotContains(t, name, "acme")

	// Plain builtin kinds pass through unprefixed.
	name, err = TaskQueueName("Platform:MessagingWorkflow", true, "")
	require.NoError(t, err)
	assert.Equal(t, "Platform:MessagingWorkflow", name)

	// Task/approval kinds get the HITL queue tag.
	name, err = TaskQueueName("Platform:TaskWorkflow", true, "")
	require.NoError(t, err)
	assert.Equal(t, "hitl_task:Platform:TaskWorkflow", name)

	name, err = TaskQueueName("Platform:ApprovalWorkflow", true, "ignored")
	require.NoError(t, err)
	assert.Equal(t, "hitl_task:Platform:ApprovalWorkflow", name)
}

func TestTaskQueueName_TenantScoped(t *testing.T) {
	name, err := TaskQueueName("X:Y", false, "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme:X:Y", name)
}

func TestTaskQueueName_TenantScopedRequiresTenant(t *testing.T) {
	for _, tenantID := range []string{"", " ", "   "} {
		_, err := TaskQueueName("X:Y", false, tenantID)
		var isoErr *TenantIsolationError
		require.True(t, errors.As(err, &isoErr), "tenantID=%q", tenantID)
		assert.Contains(t, isoErr.Error(), "TenantId is required")
	}
}

func TestValidateTenantIsolation(t *testing.T) {
	// System-scoped agents always pass, regardless of the ids.
	assert.True(t, ValidateTenantIsolation("a", "b", true, nil))
	assert.True(t, ValidateTenantIsolation("", "b", true, nil))

	// Tenant-scoped agents require equality.
	assert.True(t, ValidateTenantIsolation("a", "a", false, nil))
	assert.False(t, ValidateTenantIsolation("a", "b", false, nil))
}
