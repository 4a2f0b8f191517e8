package scheduling

import (
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/hupe1980/agentgrid/core"
)

// Sleep pauses handler code for the given duration in a way that is safe in
// either execution context: inside orchestration it uses the engine's
// replay-safe timer, elsewhere a plain timer that honors cancellation.
func Sleep(ec core.ExecContext, d time.Duration) error {
	if ec.Mode == core.ModeWorkflow {
		return workflow.Sleep(ec.WorkflowCtx, d)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ec.Ctx.Done():
		return ec.Ctx.Err()
	case <-t.C:
		return nil
	}
}
