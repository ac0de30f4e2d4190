package stats

import "github.com/freebj/freebj/internal/round"

// Accumulator folds a stream of round.Result values into the statistics a
// simulation reports: the Welford running mean/variance of net payout, the
// per-hand outcome counters, and the winning-distribution histogram. Each
// simulation worker owns one; the orchestrator merges them after all
// workers finish.
type Accumulator struct {
	Rounds  uint64
	Running Running
	Hand    Hand
	Dist    Distribution

	// sampleEvery, when non-zero, makes Add append the cumulative net
	// payout to Bankroll every sampleEvery rounds (the optional
	// bankroll-sample stream).
	sampleEvery       int
	roundsSinceSample int
	cumulative        float64
	Bankroll          []float64
}

// New returns an empty accumulator. sampleEvery enables the bankroll
// sample stream every K rounds when non-zero.
func New(sampleEvery int) *Accumulator {
	return &Accumulator{Running: NewRunning(), Dist: NewDistribution(), sampleEvery: sampleEvery}
}

// Add folds one round's result in. A skipped (wonged-out) round has no
// hands and is not counted toward Rounds.
func (a *Accumulator) Add(res round.Result) {
	if len(res.Hands) == 0 {
		return
	}
	a.Rounds++
	a.Running.Push(res.NetPayout)
	a.Dist.Push(res.NetPayout)
	for _, h := range res.Hands {
		a.Hand.Update(h.Hand, h.Outcome)
	}

	if a.sampleEvery > 0 {
		a.cumulative += res.NetPayout
		a.roundsSinceSample++
		if a.roundsSinceSample >= a.sampleEvery {
			a.Bankroll = append(a.Bankroll, a.cumulative)
			a.roundsSinceSample = 0
		}
	}
}

// Clone returns a deep copy safe to read concurrently with further Add
// calls on the original (used by the live result stream, which snapshots
// a worker's in-progress accumulator from another goroutine).
func (a *Accumulator) Clone() *Accumulator {
	clone := &Accumulator{
		Rounds:  a.Rounds,
		Running: a.Running,
		Hand:    a.Hand,
		Dist:    NewDistribution(),
	}
	clone.Dist.Merge(a.Dist)
	clone.Bankroll = append([]float64(nil), a.Bankroll...)
	return clone
}

// Merge folds rhs into a, combining the running statistics via Chan's
// pairwise formula (associative and commutative regardless of worker
// count or interleaving).
func (a *Accumulator) Merge(rhs *Accumulator) {
	a.Rounds += rhs.Rounds
	a.Running.Merge(rhs.Running)
	a.Hand.Merge(rhs.Hand)
	a.Dist.Merge(rhs.Dist)
	a.Bankroll = append(a.Bankroll, rhs.Bankroll...)
}
