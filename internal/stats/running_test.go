package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunningEmpty(t *testing.T) {
	r := NewRunning()
	require.Equal(t, 0, r.Count())
	require.Equal(t, 0.0, r.Mean())
	require.Equal(t, 0.0, r.Variance())
	require.True(t, math.IsNaN(r.Min()))
	require.True(t, math.IsNaN(r.Max()))
}

func TestRunningSingleValue(t *testing.T) {
	r := NewRunning()
	r.Push(3)
	require.Equal(t, 1, r.Count())
	require.Equal(t, 3.0, r.Mean())
	require.Equal(t, 0.0, r.Variance())
}

func TestRunningMeanAndVariance(t *testing.T) {
	r := NewRunning()
	values := []float64{1, 2, 3, 4, 5}
	for _, v := range values {
		r.Push(v)
	}
	require.Equal(t, 3.0, r.Mean())
	// Sample variance of 1..5 is 2.5.
	require.InDelta(t, 2.5, r.Variance(), 1e-9)
	require.Equal(t, 1.0, r.Min())
	require.Equal(t, 5.0, r.Max())
}

func TestRunningMergeMatchesSinglePass(t *testing.T) {
	values := []float64{1, -2, 3.5, 0, 7, -1.5, 2, 2, -4, 10}

	whole := NewRunning()
	for _, v := range values {
		whole.Push(v)
	}

	split := len(values) / 3
	a := NewRunning()
	for _, v := range values[:split] {
		a.Push(v)
	}
	b := NewRunning()
	for _, v := range values[split:] {
		b.Push(v)
	}
	a.Merge(b)

	require.Equal(t, whole.Count(), a.Count())
	require.InDelta(t, whole.Mean(), a.Mean(), 1e-9)
	require.InDelta(t, whole.Variance(), a.Variance(), 1e-9)
	require.Equal(t, whole.Min(), a.Min())
	require.Equal(t, whole.Max(), a.Max())
}

func TestRunningMergeAssociativeAndCommutative(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}

	build := func(vs []float64) Running {
		r := NewRunning()
		for _, v := range vs {
			r.Push(v)
		}
		return r
	}

	a, b, c := build(values[:3]), build(values[3:6]), build(values[6:])

	left := a
	left.Merge(b)
	left.Merge(c)

	right := b
	right.Merge(c)
	abc := a
	abc.Merge(right)

	require.InDelta(t, abc.Mean(), left.Mean(), 1e-9)

	commuted := b
	commuted.Merge(a)
	commuted.Merge(c)
	require.InDelta(t, left.Mean(), commuted.Mean(), 1e-6)
	require.Equal(t, left.Count(), commuted.Count())
}

func TestRunningMergeIntoEmpty(t *testing.T) {
	a := NewRunning()
	b := NewRunning()
	b.Push(5)
	a.Merge(b)
	require.Equal(t, 1, a.Count())
	require.Equal(t, 5.0, a.Mean())

	c := NewRunning()
	c.Push(1)
	empty := NewRunning()
	c.Merge(empty)
	require.Equal(t, 1, c.Count())
	require.Equal(t, 1.0, c.Mean())
}
