package session

// Scheduler runs a callback after the current turn of the host's event loop.
// Each composition end defers at most one callback through it.
type Scheduler interface {
	Defer(fn func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(fn func())

// Defer calls f(fn).
func (f SchedulerFunc) Defer(fn func()) { f(fn) }

// Immediate runs deferred callbacks inline.
var Immediate Scheduler = SchedulerFunc(func(fn func()) { fn() })

// Queue holds deferred callbacks until Run is called. Hosts with a tick or paint
// loop call Run once per turn.
type Queue struct {
	pending []func()
}

// Defer queues fn.
func (q *Queue) Defer(fn func()) {
	q.pending = append(q.pending, fn)
}

// Len reports how many callbacks are waiting.
func (q *Queue) Len() int { return len(q.pending) }

// Run executes and drains queued callbacks in order. Callbacks queued while
// running wait for the next Run.
func (q *Queue) Run() int {
	batch := q.pending
	q.pending = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
