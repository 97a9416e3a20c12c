package input

// Source produces the input events that became available since the previous poll.
// Each call returns a finite batch (possibly empty) and never blocks.
type Source interface {
	// PollEvents returns all events queued since the last call, in arrival order.
	//
	// Returns:
	//   - []Event: the drained events, nil if none are pending
	PollEvents() []Event
}

// Queue is an ordered, unbounded FIFO of events.
// Producers Push as events arrive; the frame loop drains it once per tick.
// A Queue is not safe for concurrent use; it is filled and drained on the same thread.
type Queue struct {
	events []Event
}

var _ Source = &Queue{}

// NewQueue creates an empty event queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event to the tail of the queue.
//
// Parameters:
//   - e: the event to enqueue
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain removes and returns every pending event in arrival order.
//
// Returns:
//   - []Event: the pending events, nil if the queue was empty
func (q *Queue) Drain() []Event {
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// PollEvents drains the queue, making a Queue usable as a Source directly.
func (q *Queue) PollEvents() []Event {
	return q.Drain()
}
