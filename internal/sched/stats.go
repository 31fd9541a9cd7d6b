package sched

import "fmt"

// ProcessStats are the final timing figures for one process.
type ProcessStats struct {
	PID                  int
	Arrival              int
	Service              int
	Start                int
	Finish               int
	Turnaround           int
	NormalizedTurnaround float64
	AvgResponse          float64
}

// Summary holds system-wide means over all processes.
type Summary struct {
	MeanTurnaround           float64
	MeanNormalizedTurnaround float64
	MeanResponse             float64
}

// Turnaround is finish time minus arrival time.
func (p *Process) Turnaround() int { return p.finishTime - p.Arrival }

// NormalizedTurnaround is turnaround divided by service time.
func (p *Process) NormalizedTurnaround() (float64, error) {
	if p.serviceTime == 0 {
		return 0, fmt.Errorf("%w: process %d has no service time", ErrDivisionUndefined, p.PID)
	}
	return float64(p.Turnaround()) / float64(p.serviceTime), nil
}

// AverageResponse is the mean of the response samples.
func (p *Process) AverageResponse() (float64, error) {
	if len(p.responses) == 0 {
		return 0, fmt.Errorf("%w: process %d was never dispatched", ErrDivisionUndefined, p.PID)
	}
	sum := 0
	for _, r := range p.responses {
		sum += r
	}
	return float64(sum) / float64(len(p.responses)), nil
}

// Aggregate computes per-process statistics and their system-wide means.
func Aggregate(procs []*Process) ([]ProcessStats, Summary, error) {
	if len(procs) == 0 {
		return nil, Summary{}, fmt.Errorf("%w: no processes", ErrDivisionUndefined)
	}

	stats := make([]ProcessStats, 0, len(procs))
	var sum Summary
	for _, p := range procs {
		norm, err := p.NormalizedTurnaround()
		if err != nil {
			return nil, Summary{}, err
		}
		resp, err := p.AverageResponse()
		if err != nil {
			return nil, Summary{}, err
		}
		stats = append(stats, ProcessStats{
			PID:                  p.PID,
			Arrival:              p.Arrival,
			Service:              p.serviceTime,
			Start:                p.startTime,
			Finish:               p.finishTime,
			Turnaround:           p.Turnaround(),
			NormalizedTurnaround: norm,
			AvgResponse:          resp,
		})
		sum.MeanTurnaround += float64(p.Turnaround())
		sum.MeanNormalizedTurnaround += norm
		sum.MeanResponse += resp
	}

	n := float64(len(procs))
	sum.MeanTurnaround /= n
	sum.MeanNormalizedTurnaround /= n
	sum.MeanResponse /= n
	return stats, sum, nil
}
