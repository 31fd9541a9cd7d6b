// internal/sched/engine.go

package sched

import (
	"context"
	"errors"
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/sirupsen/logrus"

	"procsim/internal/job"
)

// policy is the part of the engine that differs between algorithms:
// which queue a process joins on each transition, which ready process
// runs next, and how long it may run.
type policy interface {
	// attach installs the policy's bookkeeping on a new process.
	attach(p *Process)
	// arrive queues a newly arrived process.
	arrive(p *Process)
	// timeout queues a process preempted by a Timeout event.
	timeout(p *Process) error
	// block is called when a process leaves the processor for I/O.
	block(p *Process)
	// unblock queues a process whose I/O finished.
	unblock(p *Process)
	// next removes and returns the process to dispatch, or nil.
	next() *Process
	// plan decides the boundary event for a process being dispatched and
	// returns its kind and the run length until it fires.
	plan(p *Process) (EventKind, int)
	// ready is the number of processes waiting for the processor.
	ready() int
}

// Engine replays a set of processes under one scheduling policy.
// It is single-use: Run may be called once.
type Engine struct {
	cfg    Policy
	policy policy
	queue  *EventQueue
	clock  Clock
	procs  []*Process

	running      *Process     // at most one process holds the processor
	dispatchedAt int          // tick the running process was dispatched
	blocked      *treeset.Set // pids waiting on I/O

	trace []TraceRecord
	log   logrus.FieldLogger
	ran   bool
}

// Option customises an Engine.
type Option func(*Engine)

// WithLogger replaces the default logrus logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// New builds an engine for the given policy and processes and queues an
// Arrive event for every process.
func New(cfg Policy, specs []job.Spec, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	pol, err := newPolicy(cfg)
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no processes to schedule", job.ErrMalformedProcess)
	}

	e := &Engine{
		cfg:     cfg,
		policy:  pol,
		queue:   NewEventQueue(),
		blocked: treeset.NewWith(utils.IntComparator),
		log:     logrus.WithField("algorithm", cfg.Algorithm),
	}
	for _, opt := range opts {
		opt(e)
	}

	seen := make(map[int]bool, len(specs))
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		if seen[spec.PID] {
			return nil, fmt.Errorf("%w: duplicate pid %d", job.ErrMalformedProcess, spec.PID)
		}
		seen[spec.PID] = true
	}
	// every event time stays at or below the horizon, so now+d cannot overflow
	if _, err := job.Horizon(specs); err != nil {
		return nil, err
	}

	for _, spec := range specs {
		p := newProcess(spec)
		pol.attach(p)
		e.procs = append(e.procs, p)
		e.queue.Push(Event{Kind: Arrive, Proc: p, Time: p.Arrival})
	}
	return e, nil
}

func newPolicy(cfg Policy) (policy, error) {
	switch cfg.Algorithm {
	case FCFS:
		return newFCFS(), nil
	case VRR:
		return newVRR(cfg.Quantum), nil
	case Feedback:
		return newFeedback(cfg.Quantum, cfg.NumPriorities), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAlgorithm, cfg.Algorithm)
	}
}

// Processes returns the engine's processes in input order.
func (e *Engine) Processes() []*Process { return e.procs }

// Run processes events until none remain and returns the statistics.
// All events sharing a timestamp are handled, in tie-break order, before
// the clock moves on. ctx is checked between batches.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if e.ran {
		return nil, errors.New("engine has already run")
	}
	e.ran = true

	for !e.queue.Empty() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		head, err := e.queue.Peek()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		if err := e.clock.AdvanceTo(head.Time); err != nil {
			return nil, err
		}
		if err := e.runBatch(head.Time); err != nil {
			return nil, err
		}
	}

	for _, p := range e.procs {
		if !p.exited {
			return nil, fmt.Errorf("%w: process %d never exited", ErrInvariant, p.PID)
		}
	}

	stats, summary, err := Aggregate(e.procs)
	if err != nil {
		return nil, err
	}
	e.log.Infof("simulation finished at tick %d after %d trace records", e.clock.Now(), len(e.trace))
	return &Result{
		Policy:    e.cfg,
		Processes: stats,
		Summary:   summary,
		Trace:     e.trace,
	}, nil
}

// runBatch handles every event stamped t, dispatching after each one.
func (e *Engine) runBatch(t int) error {
	for !e.queue.Empty() {
		next, err := e.queue.Peek()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		if next.Time != t {
			return nil
		}
		ev, err := e.queue.Pop()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvariant, err)
		}

		e.log.Debug(ev.String())
		e.trace = append(e.trace, TraceRecord{Time: ev.Time, PID: ev.Proc.PID, Kind: ev.Kind})

		if err := e.apply(ev); err != nil {
			return err
		}
		e.dispatch()
	}
	return nil
}

// apply performs the state transition for one event.
func (e *Engine) apply(ev Event) error {
	p := ev.Proc
	now := e.clock.Now()
	if p.exited {
		return fmt.Errorf("%w: %s after exit", ErrInvariant, ev)
	}

	switch ev.Kind {
	case Arrive:
		p.lastTimeInReady = now
		e.policy.arrive(p)

	case Timeout:
		if err := e.release(p); err != nil {
			return err
		}
		p.lastTimeInReady = now
		return e.policy.timeout(p)

	case Block:
		if err := e.release(p); err != nil {
			return err
		}
		e.policy.block(p)
		e.blocked.Add(p.PID)
		io := p.consumeFront()
		e.queue.Push(Event{Kind: Unblock, Proc: p, Time: now + io})

	case Unblock:
		if !e.blocked.Contains(p.PID) {
			return fmt.Errorf("%w: %s but process is not blocked", ErrInvariant, ev)
		}
		e.blocked.Remove(p.PID)
		p.lastTimeInReady = now
		e.policy.unblock(p)

	case Exit:
		if err := e.release(p); err != nil {
			return err
		}
		p.finishTime = now
		p.exited = true

	default:
		return fmt.Errorf("%w: unknown event kind %d", ErrInvariant, int(ev.Kind))
	}
	return nil
}

// release takes p off the processor and charges it for the time it ran.
func (e *Engine) release(p *Process) error {
	if e.running != p {
		return fmt.Errorf("%w: process %d is not running", ErrInvariant, p.PID)
	}
	p.serviceTime += e.clock.Now() - e.dispatchedAt
	e.running = nil
	return nil
}

// dispatch gives an idle processor to the policy's next ready process and
// schedules the event that will end its run.
func (e *Engine) dispatch() {
	if e.running != nil || e.policy.ready() == 0 {
		return
	}
	p := e.policy.next()
	if p == nil {
		return
	}
	now := e.clock.Now()

	if !p.touchedCPU {
		p.touchedCPU = true
		p.startTime = now
	}
	p.responses = append(p.responses, now-p.lastTimeInReady)
	e.running = p
	e.dispatchedAt = now

	kind, d := e.policy.plan(p)
	e.queue.Push(Event{Kind: kind, Proc: p, Time: now + d})

	e.log.Debugf("Dispatch %d until %s at %d", p.PID, kind, now+d)
	e.trace = append(e.trace, TraceRecord{Time: now, PID: p.PID, Kind: kind, Dispatch: true, Until: now + d})
}

// runToCompletion consumes the current CPU burst whole and returns Exit if
// it was the last burst, Block otherwise.
func runToCompletion(p *Process) (EventKind, int) {
	b := p.consumeFront()
	if len(p.remaining) == 0 {
		return Exit, b
	}
	return Block, b
}
