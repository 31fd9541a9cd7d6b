// internal/job/spec.go

package job

import (
	"fmt"
	"math"
)

// Spec describes one process as read from a process file.
// Bursts alternate CPU, I/O, CPU, ... and always end on a CPU burst.
type Spec struct {
	PID     int   `yaml:"-"`       // assigned by input order, starting at 0
	Arrival int   `yaml:"arrival"` // tick at which the process enters the system
	Bursts  []int `yaml:"bursts"`  // CPU and I/O durations, CPU first
}

// Validate checks the structural rules every spec must satisfy before
// it can be handed to the scheduler.
func (s Spec) Validate() error {
	if s.Arrival < 0 {
		return fmt.Errorf("%w: process %d has negative arrival time %d", ErrMalformedProcess, s.PID, s.Arrival)
	}
	if len(s.Bursts) == 0 {
		return fmt.Errorf("%w: process %d has no activities", ErrMalformedProcess, s.PID)
	}
	if len(s.Bursts)%2 == 0 {
		return fmt.Errorf("%w: process %d has no final CPU activity", ErrMalformedProcess, s.PID)
	}
	end := s.Arrival
	for i, b := range s.Bursts {
		if b <= 0 {
			return fmt.Errorf("%w: process %d burst %d must be positive, got %d", ErrMalformedProcess, s.PID, i, b)
		}
		if end > math.MaxInt-b {
			return fmt.Errorf("%w: process %d runs past the largest representable tick", ErrMalformedProcess, s.PID)
		}
		end += b
	}
	return nil
}

// Horizon bounds every event time a simulation of specs can reach: the
// latest arrival plus all bursts of all processes run back to back.
func Horizon(specs []Spec) (int, error) {
	latest, work := 0, 0
	for _, s := range specs {
		if s.Arrival > latest {
			latest = s.Arrival
		}
		for _, b := range s.Bursts {
			if work > math.MaxInt-b {
				return 0, fmt.Errorf("%w: total burst time overflows", ErrMalformedProcess)
			}
			work += b
		}
	}
	if latest > math.MaxInt-work {
		return 0, fmt.Errorf("%w: latest arrival %d plus total burst time %d overflows", ErrMalformedProcess, latest, work)
	}
	return latest + work, nil
}

// CPUTime is the sum of the CPU bursts (even positions).
func (s Spec) CPUTime() int {
	total := 0
	for i := 0; i < len(s.Bursts); i += 2 {
		total += s.Bursts[i]
	}
	return total
}

func (s Spec) String() string {
	return fmt.Sprintf("Process %d, Arrive %d: %v", s.PID, s.Arrival, s.Bursts)
}
