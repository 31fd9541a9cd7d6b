package sched

import "procsim/internal/job"

// Process is the engine's mutable view of one job.Spec.
type Process struct {
	PID     int
	Arrival int

	remaining []int // bursts not yet executed, front first

	touchedCPU      bool
	startTime       int
	lastTimeInReady int // tick the process last entered a ready queue

	// policy bookkeeping; at most one is non-nil, chosen by the policy at construction
	credit *vrrCredit
	level  *feedbackLevel

	serviceTime int
	finishTime  int
	responses   []int
	exited      bool
}

// vrrCredit is the CPU time a VRR process is owed from bursts that ended
// before their quantum.
type vrrCredit struct {
	leftover int
}

// feedbackLevel is a FEEDBACK process's queue tier; 0 is the highest.
type feedbackLevel struct {
	priority int
}

// newProcess copies the spec's bursts so the spec stays untouched.
func newProcess(spec job.Spec) *Process {
	bursts := make([]int, len(spec.Bursts))
	copy(bursts, spec.Bursts)
	return &Process{
		PID:       spec.PID,
		Arrival:   spec.Arrival,
		remaining: bursts,
	}
}

// front returns the next burst. The engine only calls it while bursts remain.
func (p *Process) front() int { return p.remaining[0] }

// consumeFront removes and returns the next burst.
func (p *Process) consumeFront() int {
	b := p.remaining[0]
	p.remaining = p.remaining[1:]
	return b
}

// shrinkFront takes n ticks off the current burst after a partial run.
func (p *Process) shrinkFront(n int) { p.remaining[0] -= n }

// Remaining returns a copy of the bursts not yet executed.
func (p *Process) Remaining() []int {
	out := make([]int, len(p.remaining))
	copy(out, p.remaining)
	return out
}

func (p *Process) ServiceTime() int { return p.serviceTime }
func (p *Process) FinishTime() int  { return p.finishTime }
func (p *Process) StartTime() int   { return p.startTime }
func (p *Process) Started() bool    { return p.touchedCPU }
func (p *Process) Exited() bool     { return p.exited }

// Responses returns a copy of the response-time samples, one per dispatch.
func (p *Process) Responses() []int {
	out := make([]int, len(p.responses))
	copy(out, p.responses)
	return out
}

// LeftoverCredit is the VRR credit, or 0 under other policies.
func (p *Process) LeftoverCredit() int {
	if p.credit == nil {
		return 0
	}
	return p.credit.leftover
}

// Priority is the FEEDBACK level, or 0 under other policies.
func (p *Process) Priority() int {
	if p.level == nil {
		return 0
	}
	return p.level.priority
}
