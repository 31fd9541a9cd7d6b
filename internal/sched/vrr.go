package sched

import "github.com/emirpasic/gods/queues/linkedlistqueue"

// vrr is round robin with an auxiliary queue for processes that gave up
// the processor early. The unused part of their quantum is kept as credit
// and spent on a later burst before quantum preemption applies again.
type vrr struct {
	quantum   int
	readyQ    *linkedlistqueue.Queue
	auxiliary *linkedlistqueue.Queue
}

func newVRR(quantum int) *vrr {
	return &vrr{
		quantum:   quantum,
		readyQ:    linkedlistqueue.New(),
		auxiliary: linkedlistqueue.New(),
	}
}

func (v *vrr) attach(p *Process) { p.credit = &vrrCredit{} }
func (v *vrr) arrive(p *Process) { v.readyQ.Enqueue(p) }
func (v *vrr) block(*Process)    {}
func (v *vrr) ready() int        { return v.readyQ.Size() + v.auxiliary.Size() }

func (v *vrr) timeout(p *Process) error {
	v.readyQ.Enqueue(p)
	return nil
}

// unblock sends processes holding credit to the auxiliary queue.
func (v *vrr) unblock(p *Process) {
	if p.credit.leftover > 0 {
		v.auxiliary.Enqueue(p)
		return
	}
	v.readyQ.Enqueue(p)
}

func (v *vrr) next() *Process {
	if !v.auxiliary.Empty() {
		return dequeue(v.auxiliary)
	}
	return dequeue(v.readyQ)
}

func (v *vrr) plan(p *Process) (EventKind, int) {
	b := p.front()
	c := p.credit

	if c.leftover > 0 {
		if c.leftover < b {
			slice := c.leftover
			p.shrinkFront(slice)
			c.leftover = 0
			return Timeout, slice
		}
		// the whole burst is covered; what is left carries to the next burst
		c.leftover -= b
		return runToCompletion(p)
	}

	if b > v.quantum {
		p.shrinkFront(v.quantum)
		return Timeout, v.quantum
	}
	c.leftover = v.quantum - b
	return runToCompletion(p)
}
