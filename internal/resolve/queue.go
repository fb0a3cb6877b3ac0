package resolve

import (
	"mapforge/internal/descriptor"
)

// Task is one forged method awaiting body generation.
type Task struct {
	Method *descriptor.Method
	Ctx    Context
}

// ForgeQueue schedules body generation of forged methods in FIFO order.
// Enqueue is idempotent by signature; the idempotent index registration
// happens-before enqueue, so a signature can never be queued twice.
type ForgeQueue struct {
	tasks []Task
	seen  map[string]struct{}
}

// NewForgeQueue creates an empty queue.
func NewForgeQueue() *ForgeQueue {
	return &ForgeQueue{seen: make(map[string]struct{})}
}

// Enqueue schedules a forged method. A signature already scheduled (or
// already generated) is a no-op.
func (q *ForgeQueue) Enqueue(t Task) {
	sig := t.Method.SignatureKey()
	if _, ok := q.seen[sig]; ok {
		return
	}

	q.seen[sig] = struct{}{}
	q.tasks = append(q.tasks, t)
}

// Pop removes and returns the oldest task.
func (q *ForgeQueue) Pop() (Task, bool) {
	if len(q.tasks) == 0 {
		return Task{}, false
	}

	t := q.tasks[0]
	q.tasks = q.tasks[1:]

	return t, true
}

// Len returns the number of pending tasks.
func (q *ForgeQueue) Len() int {
	return len(q.tasks)
}
