package dispatch

import "github.com/hupe1980/agentgrid/core"

// Queue is a FIFO buffer of inbound messages owned exclusively by one agent
// workflow. All access happens on the workflow's cooperative single-threaded
// scheduler, so a plain slice suffices; adding a mutex here would itself be a
// determinism violation waiting to happen.
type Queue struct {
	items []core.InboundMessage
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a message and returns immediately. It never triggers
// processing; the loop notices the non-empty queue on its next await.
func (q *Queue) Enqueue(msg core.InboundMessage) {
	q.items = append(q.items, msg)
}

// Dequeue removes and returns the oldest message, reporting false when the
// queue is empty.
func (q *Queue) Dequeue() (core.InboundMessage, bool) {
	if len(q.items) == 0 {
		return core.InboundMessage{}, false
	}
	msg := q.items[0]
	q.items = q.items[1:]
	return msg, true
}

// Len returns the number of buffered messages.
func (q *Queue) Len() int {
	return len(q.items)
}
