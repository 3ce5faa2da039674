package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type   string
	Entity Entity
	Data   any
}

// EventLedgeGrabSettled fires when the hang placement move has had its full
// duration.
const EventLedgeGrabSettled = "ledge_grab_settled"

// EventQueue is a simple FIFO queue cleared at the end of each frame.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Each calls fn for every queued event of the given type without consuming it.
func (q *EventQueue) Each(eventType string, fn func(Event)) {
	if q == nil || fn == nil {
		return
	}
	for _, evt := range q.items {
		if evt.Type == eventType {
			fn(evt)
		}
	}
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
