package identity

import "fmt"

// FormatError reports a malformed composite identifier. It is always
// surfaced synchronously to the caller and never retried.
type FormatError struct {
	ID string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid composite identifier %q: expected format \"tenantId:workflowType\"", e.ID)
}

// TenantIsolationError reports a tenant-scoped operation attempted without a
// tenant id.
type TenantIsolationError struct {
	WorkflowType string
}

// Error implements the error interface.
func (e *TenantIsolationError) Error() string {
	return fmt.Sprintf("TenantId is required for tenant-scoped workflow %q", e.WorkflowType)
}
