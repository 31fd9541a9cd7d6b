// internal/sched/event.go

package sched

import "fmt"

// EventKind is the type of a simulation event. The numeric value is also
// its tie-break rank when two events share a timestamp.
type EventKind int

const (
	Arrive EventKind = iota
	Unblock
	Timeout
	Block
	Exit
)

func (k EventKind) String() string {
	switch k {
	case Arrive:
		return "ARRIVE"
	case Unblock:
		return "UNBLOCK"
	case Timeout:
		return "TIMEOUT"
	case Block:
		return "BLOCK"
	case Exit:
		return "EXIT"
	default:
		return "UNKNOWN"
	}
}

// Event is a pending state transition for one process.
type Event struct {
	Kind EventKind
	Proc *Process
	Time int
}

func (e Event) String() string {
	return fmt.Sprintf("At time %d, %s Event for Process %d", e.Time, e.Kind, e.Proc.PID)
}

// compareEvents orders by time, then kind rank, then pid.
func compareEvents(a, b any) int {
	ea, eb := a.(Event), b.(Event)
	switch {
	case ea.Time < eb.Time:
		return -1
	case ea.Time > eb.Time:
		return 1
	case ea.Kind < eb.Kind:
		return -1
	case ea.Kind > eb.Kind:
		return 1
	case ea.Proc.PID < eb.Proc.PID:
		return -1
	case ea.Proc.PID > eb.Proc.PID:
		return 1
	default:
		return 0
	}
}
