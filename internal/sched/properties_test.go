package sched

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"procsim/internal/job"
)

var propertyPolicies = []Policy{
	{Algorithm: FCFS},
	{Algorithm: VRR, Quantum: 1},
	{Algorithm: VRR, Quantum: 3},
	{Algorithm: Feedback, Quantum: 1, NumPriorities: 1},
	{Algorithm: Feedback, Quantum: 2, NumPriorities: 4},
}

// randomWorkload builds n processes with small arrivals and bursts so that
// collisions on the same tick are frequent.
func randomWorkload(rng *rand.Rand, n int) []job.Spec {
	specs := make([]job.Spec, n)
	for i := range specs {
		bursts := make([]int, 1+2*rng.Intn(3))
		for j := range bursts {
			bursts[j] = 1 + rng.Intn(6)
		}
		specs[i] = job.Spec{PID: i, Arrival: rng.Intn(10), Bursts: bursts}
	}
	return specs
}

func TestProperties_RandomWorkloads(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, cfg := range propertyPolicies {
		cfg := cfg
		t.Run(cfg.String(), func(t *testing.T) {
			for round := 0; round < 50; round++ {
				specs := randomWorkload(rng, 1+rng.Intn(6))
				e, err := New(cfg, specs, WithLogger(quietLogger()))
				require.NoError(t, err)

				var levelViolations int
				stepBatches(t, e, func(int) {
					for _, p := range e.Processes() {
						if p.Priority() < 0 || (cfg.Algorithm == Feedback && p.Priority() > cfg.NumPriorities-1) {
							levelViolations++
						}
					}
				})
				assert.Zero(t, levelViolations, "priority left [0, num_priorities-1]")

				checkProcesses(t, cfg, specs, e.Processes())
				checkTrace(t, cfg, e.trace)
			}
		})
	}
}

func checkProcesses(t *testing.T, cfg Policy, specs []job.Spec, procs []*Process) {
	t.Helper()
	for i, p := range procs {
		require.True(t, p.Exited(), "process %d did not exit", p.PID)
		assert.Empty(t, p.Remaining())
		assert.GreaterOrEqual(t, p.FinishTime(), p.Arrival)
		assert.LessOrEqual(t, p.ServiceTime(), p.Turnaround())
		// CPU time is neither invented nor dropped, credit included
		assert.Equal(t, specs[i].CPUTime(), p.ServiceTime(), "%s: service time of process %d", cfg, p.PID)
		if cfg.Algorithm != VRR {
			assert.Zero(t, p.LeftoverCredit())
		}
		if cfg.Algorithm != Feedback {
			assert.Zero(t, p.Priority())
		}
	}
}

func checkTrace(t *testing.T, cfg Policy, trace []TraceRecord) {
	t.Helper()
	running := -1
	exited := map[int]bool{}
	lastTime := 0
	for _, r := range trace {
		assert.GreaterOrEqual(t, r.Time, lastTime, "trace goes back in time")
		lastTime = r.Time
		assert.False(t, exited[r.PID], "record for process %d after exit: %s", r.PID, r)

		if r.Dispatch {
			assert.Equal(t, -1, running, "dispatch of %d while %d runs", r.PID, running)
			running = r.PID
			continue
		}
		switch r.Kind {
		case Timeout, Block, Exit:
			assert.Equal(t, r.PID, running, "%s for a process that is not running", r)
			running = -1
		}
		if r.Kind == Timeout {
			assert.NotEqual(t, FCFS, cfg.Algorithm, "FCFS preempted: %s", r)
		}
		if r.Kind == Exit {
			exited[r.PID] = true
		}
	}
	assert.Equal(t, -1, running)
}

func TestProperties_ExactlyOneExitPerProcess(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, cfg := range propertyPolicies {
		specs := randomWorkload(rng, 5)
		e, err := New(cfg, specs, WithLogger(quietLogger()))
		require.NoError(t, err)
		res, err := e.Run(context.Background())
		require.NoError(t, err)

		exits := map[int]int{}
		for _, r := range res.Trace {
			if !r.Dispatch && r.Kind == Exit {
				exits[r.PID]++
			}
		}
		for _, s := range specs {
			assert.Equal(t, 1, exits[s.PID], "%s: exits for process %d", cfg, s.PID)
		}
	}
}
