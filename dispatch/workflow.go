package dispatch

import (
	"go.temporal.io/sdk/workflow"

	"github.com/hupe1980/agentgrid/core"
	"github.com/hupe1980/agentgrid/logging"
	"github.com/hupe1980/agentgrid/registry"
)

// SignalName is the signal channel inbound messages arrive on. The engine's
// signal handler must return immediately, so delivery is a plain enqueue.
const SignalName = "agentgrid-inbound-message"

// Input parameterizes one agent workflow execution.
type Input struct {
	WorkflowType string `json:"workflow_type"`
}

// AgentWorkflow is the long-running message loop of one agent. A worker
// registers Run under the agent's workflow type; each execution owns its
// queue and drains it until the engine cancels the run.
type AgentWorkflow struct {
	processor *Processor
}

// NewAgentWorkflow wires the loop to a registry and the platform services.
func NewAgentWorkflow(reg *registry.Registry, services core.Services, logger logging.Logger) *AgentWorkflow {
	return &AgentWorkflow{processor: NewProcessor(reg, services, logger)}
}

// Run executes the processing loop. The loop suspends only while the queue is
// empty; each dequeued message is handed to its own unit of work so handler
// latency never delays the next dequeue. On cancellation the loop stops
// dequeuing and waits for in-flight units of work before returning.
func (aw *AgentWorkflow) Run(wctx workflow.Context, input Input) error {
	logger := workflow.GetLogger(wctx)
	logger.Info("agent workflow started", "workflow_type", input.WorkflowType)

	queue := NewQueue()
	inFlight := workflow.NewWaitGroup(wctx)

	workflow.Go(wctx, func(gctx workflow.Context) {
		ch := workflow.GetSignalChannel(gctx, SignalName)
		for {
			var msg core.InboundMessage
			if more := ch.Receive(gctx, &msg); !more {
				return
			}
			queue.Enqueue(msg)
		}
	})

	for {
		if err := workflow.Await(wctx, func() bool { return queue.Len() > 0 }); err != nil {
			break
		}
		msg, ok := queue.Dequeue()
		if !ok {
			continue
		}
		inFlight.Add(1)
		workflow.Go(wctx, func(gctx workflow.Context) {
			defer inFlight.Done()
			aw.processor.Process(gctx, input.WorkflowType, msg)
		})
	}

	// Drain on a disconnected context so cancellation does not abandon
	// in-flight units of work mid-dispatch.
	dctx, cancel := workflow.NewDisconnectedContext(wctx)
	defer cancel()
	inFlight.Wait(dctx)

	logger.Info("agent workflow stopped", "workflow_type", input.WorkflowType)
	return nil
}
