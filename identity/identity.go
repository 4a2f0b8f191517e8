// Package identity implements the composite identifier grammar and the
// physical task-queue naming rules for tenant isolation.
//
// Composite identifiers have the form "tenantId:workflowType[:...]": the
// first colon-delimited segment is always the tenant id and the rejoined
// remainder is the workflow type, which may itself contain further segments
// (sub-kind, instance suffix). Task queue names are derived from the agent's
// scoping mode: system-scoped agents share one physical queue named after
// the workflow type, tenant-scoped agents get a queue prefixed with their
// tenant id.
package identity

import (
	"strings"

	"github.com/hupe1980/agentgrid/logging"
)

const (
	// Separator delimits segments of a composite identifier.
	Separator = ":"

	// PlatformPrefix is the reserved placeholder segment meaning "impersonate
	// the owning agent" in builtin workflow types.
	PlatformPrefix = "Platform:"

	// HITLQueuePrefix tags the physical queue of human-in-the-loop task and
	// approval workflows so their workers can be pooled separately.
	HITLQueuePrefix = "hitl_task:"
)

// hitlKinds are the builtin workflow kinds that get the HITLQueuePrefix when
// addressed through the PlatformPrefix impersonation form. Other builtin
// kinds pass through unprefixed.
var hitlKinds = map[string]bool{
	"TaskWorkflow":     true,
	"ApprovalWorkflow": true,
}

// TenantIdentifier is the structured form of a composite identifier.
type TenantIdentifier struct {
	TenantID     string
	WorkflowType string
	Raw          string
}

// Parse splits a composite identifier into its structured form. It fails
// with a *FormatError when the id is blank or contains no separator.
func Parse(id string) (TenantIdentifier, error) {
	tenantID, workflowType, err := split(id)
	if err != nil {
		return TenantIdentifier{}, err
	}
	return TenantIdentifier{TenantID: tenantID, WorkflowType: workflowType, Raw: id}, nil
}

// ExtractTenantID returns the tenant segment of a composite identifier.
func ExtractTenantID(id string) (string, error) {
	tenantID, _, err := split(id)
	return tenantID, err
}

// ExtractWorkflowType returns the workflow-type remainder of a composite
// identifier. The remainder may itself contain separators.
func ExtractWorkflowType(id string) (string, error) {
	_, workflowType, err := split(id)
	return workflowType, err
}

func split(id string) (string, string, error) {
	if strings.TrimSpace(id) == "" {
		return "", "", &FormatError{ID: id}
	}
	idx := strings.Index(id, Separator)
	if idx < 0 {
		return "", "", &FormatError{ID: id}
	}
	return id[:idx], id[idx+len(Separator):], nil
}

// TaskQueueName derives the physical dispatch-queue name for a workflow type.
//
// System-scoped agents share one queue across all tenants: the name is the
// workflow type verbatim and any supplied tenant id is ignored. The one
// exception is the PlatformPrefix impersonation form: when the remainder is a
// task/approval workflow kind the queue is tagged with HITLQueuePrefix so the
// human-in-the-loop worker pool picks it up.
//
// Tenant-scoped agents require a non-blank tenant id; the queue name is
// "tenantId:workflowType". A missing tenant id is a *TenantIsolationError.
func TaskQueueName(workflowType string, systemScoped bool, tenantID string) (string, error) {
	if systemScoped {
		if rest, ok := strings.CutPrefix(workflowType, PlatformPrefix); ok && hitlKinds[rest] {
			return HITLQueuePrefix + workflowType, nil
		}
		return workflowType, nil
	}
	if strings.TrimSpace(tenantID) == "" {
		return "", &TenantIsolationError{WorkflowType: workflowType}
	}
	return tenantID + Separator + workflowType, nil
}

// ValidateTenantIsolation reports whether a workflow belonging to
// workflowTenantID may be touched on behalf of expectedTenantID.
//
// System-scoped agents may cross tenants by design, so the check always
// passes for them (logged at debug). For tenant-scoped agents the two ids
// must match; a mismatch is logged at error severity because it indicates a
// potential cross-tenant leak. The function is a pure predicate: callers
// decide whether to reject or merely warn.
func ValidateTenantIsolation(workflowTenantID, expectedTenantID string, systemScoped bool, logger logging.Logger) bool {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	if systemScoped {
		logger.Debug("tenant isolation bypassed for system-scoped agent",
			"workflow_tenant_id", workflowTenantID, "expected_tenant_id", expectedTenantID)
		return true
	}
	if workflowTenantID != expectedTenantID {
		logger.Error("tenant isolation violation",
			"workflow_tenant_id", workflowTenantID, "expected_tenant_id", expectedTenantID)
		return false
	}
	return true
}
