package sched

import "github.com/emirpasic/gods/queues/linkedlistqueue"

// feedback keeps one FIFO per priority level. A process that uses its
// whole quantum drops a level; finishing a burst or finishing I/O puts it
// back at level 0.
type feedback struct {
	quantum int
	levels  []*linkedlistqueue.Queue
}

func newFeedback(quantum, numPriorities int) *feedback {
	levels := make([]*linkedlistqueue.Queue, numPriorities)
	for i := range levels {
		levels[i] = linkedlistqueue.New()
	}
	return &feedback{quantum: quantum, levels: levels}
}

func (f *feedback) attach(p *Process) { p.level = &feedbackLevel{} }
func (f *feedback) arrive(p *Process) { f.levels[0].Enqueue(p) }
func (f *feedback) block(p *Process)  { p.level.priority = 0 }

func (f *feedback) unblock(p *Process) {
	p.level.priority = 0
	f.levels[0].Enqueue(p)
}

// timeout demotes one level, never below the last.
func (f *feedback) timeout(p *Process) error {
	if p.level.priority < len(f.levels)-1 {
		p.level.priority++
	}
	f.levels[p.level.priority].Enqueue(p)
	return nil
}

func (f *feedback) ready() int {
	n := 0
	for _, q := range f.levels {
		n += q.Size()
	}
	return n
}

func (f *feedback) next() *Process {
	for _, q := range f.levels {
		if !q.Empty() {
			return dequeue(q)
		}
	}
	return nil
}

func (f *feedback) plan(p *Process) (EventKind, int) {
	if b := p.front(); b > f.quantum {
		p.shrinkFront(f.quantum)
		return Timeout, f.quantum
	}
	return runToCompletion(p)
}
