package sched

import "fmt"

// TraceRecord is one line of the simulation trace: either an event the
// engine consumed, or a dispatch it performed.
type TraceRecord struct {
	Time     int
	PID      int
	Kind     EventKind // consumed event, or the boundary event a dispatch scheduled
	Dispatch bool
	Until    int // dispatch only: when the scheduled boundary event fires
}

func (r TraceRecord) String() string {
	if r.Dispatch {
		return fmt.Sprintf("Dispatch %d", r.PID)
	}
	return fmt.Sprintf("At time %d, %s Event for Process %d", r.Time, r.Kind, r.PID)
}

// Result is everything a reporter needs after a run.
type Result struct {
	Policy    Policy
	Processes []ProcessStats
	Summary   Summary
	Trace     []TraceRecord
}
