// Package schedule implements the deterministic min-heap event queue,
// keyed by (time, insertion sequence), per spec.md §4.5. No library in the
// teacher repo or the rest of the example pack provides a priority queue,
// so this is built directly on the stdlib container/heap (see DESIGN.md).
package schedule

import "container/heap"

// Event is anything the scheduler can run. Implementations live in
// internal/sim, one per event kind named in spec.md §4.6.
type Event interface {
	// Execute runs the event against the simulation handle sim and returns
	// an error only for EVENT_EXECUTION_FAILURE conditions — guard
	// failures are soft skips and must return nil.
	Execute(sim any) error
	// Name identifies the event's concrete type for error reporting and
	// the Chronicle log.
	Name() string
}

// scheduledEvent pairs an Event with its fire time and tie-breaking
// sequence number.
type scheduledEvent struct {
	time  float64
	seq   uint64
	event Event
}

// innerHeap implements container/heap.Interface ordered by (time, seq).
type innerHeap []scheduledEvent

func (h innerHeap) Len() int { return len(h) }
func (h innerHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}
func (h innerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *innerHeap) Push(x any)   { *h = append(*h, x.(scheduledEvent)) }
func (h *innerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Queue is the scheduler's event heap. The sequence counter lives here,
// per simulation instance, rather than as a package-level global — see
// spec.md §9's "Global insertion counter" design note and its resolution
// in DESIGN.md: a global counter would make two Queues in the same process
// interfere with each other's tie-breaking.
type Queue struct {
	h      innerHeap
	nextSeq uint64
}

// NewQueue creates an empty event queue.
func NewQueue() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push schedules event to fire at time at, assigning the next insertion
// sequence number.
func (q *Queue) Push(event Event, at float64) {
	heap.Push(&q.h, scheduledEvent{time: at, seq: q.nextSeq, event: event})
	q.nextSeq++
}

// Len returns the number of pending events.
func (q *Queue) Len() int { return q.h.Len() }

// Pop removes and returns the earliest-ordered event, its scheduled time,
// and true — or the zero Event, 0, false if the queue is empty.
func (q *Queue) Pop() (Event, float64, bool) {
	if q.h.Len() == 0 {
		return nil, 0, false
	}
	item := heap.Pop(&q.h).(scheduledEvent)
	return item.event, item.time, true
}

// PeekTime returns the time of the earliest-ordered event without removing
// it, and false if the queue is empty.
func (q *Queue) PeekTime() (float64, bool) {
	if q.h.Len() == 0 {
		return 0, false
	}
	return q.h[0].time, true
}
