package ecs

import "github.com/milk9111/cyberfolio/transition"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventNavigate = "navigate"

// NavigateSource records what produced a navigation request.
type NavigateSource string

const (
	SourceKey    NavigateSource = "key"
	SourceArrow  NavigateSource = "arrow"
	SourceSwipe  NavigateSource = "swipe"
	SourcePick   NavigateSource = "pick"
	SourceButton NavigateSource = "button"
	SourceBoot   NavigateSource = "boot"
)

// NavigateEvent asks for a camera transition to Section.
type NavigateEvent struct {
	Section transition.Section
	Source  NavigateSource
}

// PushNavigate queues a navigation request.
func PushNavigate(w *World, section transition.Section, source NavigateSource) {
	w.Events().Push(Event{Type: EventNavigate, Data: NavigateEvent{Section: section, Source: source}})
}

// EventQueue is a simple FIFO queue.
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainType removes and returns events of type typ, keeping the rest queued
// in order.
func (q *EventQueue) DrainType(typ string) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
