package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_Means(t *testing.T) {
	procs := []*Process{
		{PID: 0, Arrival: 0, serviceTime: 4, finishTime: 4, responses: []int{0}},
		{PID: 1, Arrival: 1, serviceTime: 2, finishTime: 6, responses: []int{3, 1}},
	}

	stats, sum, err := Aggregate(procs)
	require.NoError(t, err)
	require.Len(t, stats, 2)

	assert.Equal(t, 5, stats[1].Turnaround)
	assert.Equal(t, 2.5, stats[1].NormalizedTurnaround)
	assert.Equal(t, 2.0, stats[1].AvgResponse)
	assert.InDelta(t, 4.5, sum.MeanTurnaround, 1e-9)
	assert.InDelta(t, 1.75, sum.MeanNormalizedTurnaround, 1e-9)
	assert.InDelta(t, 1.0, sum.MeanResponse, 1e-9)
}

func TestAggregate_ZeroDenominators(t *testing.T) {
	_, _, err := Aggregate(nil)
	assert.ErrorIs(t, err, ErrDivisionUndefined)

	_, _, err = Aggregate([]*Process{{PID: 0, finishTime: 3, responses: []int{0}}})
	assert.ErrorIs(t, err, ErrDivisionUndefined)

	_, err = (&Process{PID: 0, serviceTime: 1}).AverageResponse()
	assert.ErrorIs(t, err, ErrDivisionUndefined)
}
