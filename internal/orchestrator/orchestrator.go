// Package orchestrator splits a total round budget across parallel
// workers, each with an independently-derived RNG seed, and merges their
// per-worker statistics into one aggregate result.
package orchestrator

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/freebj/freebj/internal/betting"
	"github.com/freebj/freebj/internal/card"
	"github.com/freebj/freebj/internal/randutil"
	"github.com/freebj/freebj/internal/round"
	"github.com/freebj/freebj/internal/rules"
	"github.com/freebj/freebj/internal/stats"
	"github.com/freebj/freebj/internal/strategy"
)

// Config bundles everything a run needs: the round budget, worker count,
// the rules/strategy/betting collaborators every worker shares by
// reference, and the handful of scripted-scenario overrides (-c, --dealer,
// -a, --force-tc, --shoe-file) that, when set, apply identically to every
// round a worker plays.
type Config struct {
	Rounds  int
	Workers int
	Seed    int64

	Rules    rules.Rules
	Strategy strategy.Strategy
	Betting  betting.Strategy

	SampleEvery int

	ForceTC        *int
	ShoeFile       []card.Card
	StartCards     []card.Card
	DealerCards    []card.Card
	OverrideAction *strategy.Decision
	SurrenderOverride *bool

	// RoundDeadline, when non-zero, bounds how long a single round may
	// take; exceeding it is treated as an internal invariant violation
	//, not a user-facing timeout. Clock defaults to a real
	// clock; tests substitute a quartz.Mock to exercise this without
	// sleeping.
	RoundDeadline time.Duration
	Clock         quartz.Clock

	// OnSnapshot, when non-nil, is called from the worker goroutines, one
	// call at a time, every SnapshotEvery rounds (per worker) with the
	// best-effort merged aggregate so far, for the optional live result
	// stream. It must not block.
	OnSnapshot    func(Aggregate)
	SnapshotEvery int
}

// Aggregate is the final merged result of a run.
type Aggregate struct {
	Rounds int
	Stats  *stats.Accumulator
}

// Run partitions cfg.Rounds across cfg.Workers contiguous chunks (the
// first Rounds%Workers chunks take one extra round), runs each chunk in
// its own goroutine with an independently-derived seed, and merges their
// accumulators. The first worker error (panic, converted to an error at
// the goroutine boundary) cancels the remaining workers at their next
// round boundary and is returned; no partial aggregate is returned in
// that case.
func Run(ctx context.Context, cfg Config) (Aggregate, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > cfg.Rounds && cfg.Rounds > 0 {
		workers = cfg.Rounds
	}
	if workers < 1 {
		workers = 1
	}

	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	chunks := partition(cfg.Rounds, workers)

	g, gctx := errgroup.WithContext(ctx)
	results := make([]*stats.Accumulator, workers)

	var live livePublisher
	if cfg.OnSnapshot != nil {
		live = newLivePublisher(workers, cfg.OnSnapshot)
	}

	for i := 0; i < workers; i++ {
		i := i
		n := chunks[i]
		if n == 0 {
			results[i] = stats.New(cfg.SampleEvery)
			continue
		}
		seed := deriveSeed(cfg.Seed, i)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("orchestrator: worker %d panicked: %v", i, r)
				}
			}()
			results[i] = runWorker(gctx, cfg, n, seed, clock, live, i)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Aggregate{}, err
	}

	acc := stats.New(cfg.SampleEvery)
	total := 0
	for _, r := range results {
		acc.Merge(r)
		total += int(r.Rounds)
	}
	return Aggregate{Rounds: total, Stats: acc}, nil
}

// partition splits n rounds into k contiguous chunk sizes, the first
// n%k chunks getting one extra round.
func partition(n, k int) []int {
	chunks := make([]int, k)
	base := n / k
	rem := n % k
	for i := range chunks {
		chunks[i] = base
		if i < rem {
			chunks[i]++
		}
	}
	return chunks
}

// deriveSeed XORs the master seed with (index+1) times the 64-bit golden
// ratio constant; randutil.New then mixes that seed further. Distinct
// indices give distinct seeds, so workers never share RNG state.
func deriveSeed(master int64, index int) int64 {
	return master ^ int64(0x9e3779b97f4a7c15*(uint64(index)+1))
}

func runWorker(ctx context.Context, cfg Config, n int, seed int64, clock quartz.Clock, live livePublisher, idx int) *stats.Accumulator {
	rng := randutil.New(seed)
	shoe := card.New(cfg.Rules.Decks, cfg.Rules.PenetrationCards, rng)
	if cfg.ShoeFile != nil {
		shoe.WithFixedStream(cfg.ShoeFile)
	}

	acc := stats.New(cfg.SampleEvery)

	roundCfg := round.Config{
		Rules:             cfg.Rules,
		Strategy:          cfg.Strategy,
		Betting:           cfg.Betting,
		OverrideAction:    cfg.OverrideAction,
		StartCards:        cfg.StartCards,
		DealerCards:       cfg.DealerCards,
		SurrenderOverride: cfg.SurrenderOverride,
	}

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return acc
		default:
		}

		if cfg.ForceTC != nil {
			shoe.ForceTrueCount(*cfg.ForceTC)
		} else if shoe.NeedsShuffle() {
			shoe.Shuffle()
		}

		res, err := runRoundWithDeadline(clock, cfg.RoundDeadline, func() round.Result {
			return round.Run(roundCfg, shoe)
		})
		if err != nil {
			panic(err)
		}
		acc.Add(res)

		if live != nil && cfg.SnapshotEvery > 0 && (i+1)%cfg.SnapshotEvery == 0 {
			live.publish(idx, acc)
		}
	}
	return acc
}

// runRoundWithDeadline runs fn in its own goroutine and races it against
// deadline via clock.AfterFunc, to catch a round that hangs rather than
// let one stall the whole worker. deadline==0 disables the check (the
// default: runs to completion with no timeout).
func runRoundWithDeadline(clock quartz.Clock, deadline time.Duration, fn func() round.Result) (round.Result, error) {
	if deadline <= 0 {
		return fn(), nil
	}

	resultCh := make(chan round.Result, 1)
	go func() { resultCh <- fn() }()

	timedOut := make(chan struct{})
	timer := clock.AfterFunc(deadline, func() { close(timedOut) })
	defer timer.Stop()

	select {
	case res := <-resultCh:
		return res, nil
	case <-timedOut:
		return round.Result{}, fmt.Errorf("orchestrator: round exceeded deadline %s", deadline)
	}
}

// livePublisher is the single writer that owns merging each worker's
// latest self-reported snapshot into one published aggregate.
type livePublisher interface {
	publish(workerIdx int, acc *stats.Accumulator)
}

type publisher struct {
	snapshots []*stats.Accumulator
	mu        chan struct{} // 1-buffered mutex
	onSnap    func(Aggregate)
}

func newLivePublisher(workers int, onSnap func(Aggregate)) livePublisher {
	p := &publisher{
		snapshots: make([]*stats.Accumulator, workers),
		mu:        make(chan struct{}, 1),
		onSnap:    onSnap,
	}
	p.mu <- struct{}{}
	return p
}

func (p *publisher) publish(workerIdx int, acc *stats.Accumulator) {
	snap := acc.Clone()
	<-p.mu
	p.snapshots[workerIdx] = snap
	merged := stats.New(0)
	total := 0
	for _, s := range p.snapshots {
		if s != nil {
			merged.Merge(s)
			total += int(s.Rounds)
		}
	}
	p.onSnap(Aggregate{Rounds: total, Stats: merged})
	p.mu <- struct{}{}
}
