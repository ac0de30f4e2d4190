package stats

import (
	"fmt"
	"math"
	"sort"
)

// Distribution buckets round net payouts (in bet units) into half-unit
// buckets, keyed the way output.rs formats its winning_distrib map: a
// signed value with one decimal place, e.g. "-1.5", "+0.0", "+2.5".
type Distribution struct {
	buckets map[int]uint64
}

// NewDistribution returns an empty distribution.
func NewDistribution() Distribution {
	return Distribution{buckets: make(map[int]uint64)}
}

// Push records one round's net payout (already normalized to a multiple of
// one bet unit).
func (d *Distribution) Push(result float64) {
	bucket := int(math.Round(result * 2))
	d.buckets[bucket]++
}

// Merge adds rhs's bucket counts into d.
func (d *Distribution) Merge(rhs Distribution) {
	for k, v := range rhs.buckets {
		d.buckets[k] += v
	}
}

// Keys returns the half-unit bucket keys formatted to one decimal, e.g.
// "-1.5", sorted ascending by their underlying numeric value.
func (d Distribution) Keys() []string {
	ints := make([]int, 0, len(d.buckets))
	for k := range d.buckets {
		ints = append(ints, k)
	}
	sort.Ints(ints)
	keys := make([]string, len(ints))
	for i, k := range ints {
		keys[i] = formatBucket(k)
	}
	return keys
}

// Map returns the distribution as a string-keyed map suitable for JSON
// marshaling, matching output.rs's winning_distrib shape exactly.
func (d Distribution) Map() map[string]uint64 {
	out := make(map[string]uint64, len(d.buckets))
	for k, v := range d.buckets {
		out[formatBucket(k)] = v
	}
	return out
}

func formatBucket(halfUnits int) string {
	return fmt.Sprintf("%+.1f", float64(halfUnits)/2)
}
