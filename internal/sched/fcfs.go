package sched

import (
	"fmt"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// fcfs runs each CPU burst to completion in order of readiness.
type fcfs struct {
	readyQ *linkedlistqueue.Queue
}

func newFCFS() *fcfs {
	return &fcfs{readyQ: linkedlistqueue.New()}
}

func (f *fcfs) attach(*Process)    {}
func (f *fcfs) arrive(p *Process)  { f.readyQ.Enqueue(p) }
func (f *fcfs) block(*Process)     {}
func (f *fcfs) unblock(p *Process) { f.readyQ.Enqueue(p) }
func (f *fcfs) ready() int         { return f.readyQ.Size() }
func (f *fcfs) next() *Process     { return dequeue(f.readyQ) }

func (f *fcfs) timeout(p *Process) error {
	return fmt.Errorf("%w: FCFS never preempts, got timeout for process %d", ErrInvariant, p.PID)
}

func (f *fcfs) plan(p *Process) (EventKind, int) {
	return runToCompletion(p)
}

// dequeue pops the head of a process FIFO, or returns nil if it is empty.
func dequeue(q *linkedlistqueue.Queue) *Process {
	v, ok := q.Dequeue()
	if !ok {
		return nil
	}
	return v.(*Process)
}
