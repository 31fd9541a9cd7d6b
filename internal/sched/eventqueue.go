package sched

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
)

// EventQueue is a min-queue of events under compareEvents.
// Pushes only append; the backing list is re-sorted lazily on the next
// Pop or Peek. Sorted order is descending so the minimum sits at the end.
type EventQueue struct {
	list  *arraylist.List
	dirty bool
}

// NewEventQueue returns an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{list: arraylist.New()}
}

// Push adds an event.
func (q *EventQueue) Push(ev Event) {
	q.list.Add(ev)
	q.dirty = true
}

// Pop removes and returns the earliest event.
func (q *EventQueue) Pop() (Event, error) {
	if err := q.prepare("pop"); err != nil {
		return Event{}, err
	}
	last := q.list.Size() - 1
	v, _ := q.list.Get(last)
	q.list.Remove(last)
	return v.(Event), nil
}

// Peek returns the earliest event without removing it.
func (q *EventQueue) Peek() (Event, error) {
	if err := q.prepare("peek"); err != nil {
		return Event{}, err
	}
	v, _ := q.list.Get(q.list.Size() - 1)
	return v.(Event), nil
}

// Empty reports whether no events remain.
func (q *EventQueue) Empty() bool { return q.list.Empty() }

// Len returns the number of pending events.
func (q *EventQueue) Len() int { return q.list.Size() }

func (q *EventQueue) prepare(op string) error {
	if q.list.Empty() {
		return fmt.Errorf("%w: %s", ErrEmptyQueue, op)
	}
	if q.dirty {
		q.list.Sort(func(a, b interface{}) int { return compareEvents(b, a) })
		q.dirty = false
	}
	return nil
}
