package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistributionPushAndMap(t *testing.T) {
	d := NewDistribution()
	d.Push(1.5)
	d.Push(1.5)
	d.Push(-1.0)
	d.Push(0.0)

	m := d.Map()
	require.Equal(t, uint64(2), m["+1.5"])
	require.Equal(t, uint64(1), m["-1.0"])
	require.Equal(t, uint64(1), m["+0.0"])
}

func TestDistributionKeysSorted(t *testing.T) {
	d := NewDistribution()
	d.Push(2.0)
	d.Push(-1.5)
	d.Push(0.0)
	d.Push(1.0)

	keys := d.Keys()
	require.Equal(t, []string{"-1.5", "+0.0", "+1.0", "+2.0"}, keys)
}

func TestDistributionMerge(t *testing.T) {
	a := NewDistribution()
	a.Push(1.0)
	b := NewDistribution()
	b.Push(1.0)
	b.Push(-0.5)

	a.Merge(b)
	m := a.Map()
	require.Equal(t, uint64(2), m["+1.0"])
	require.Equal(t, uint64(1), m["-0.5"])
}
