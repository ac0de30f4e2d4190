package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/freebj/freebj/internal/betting"
	"github.com/freebj/freebj/internal/card"
	"github.com/freebj/freebj/internal/hand"
	"github.com/freebj/freebj/internal/round"
	"github.com/freebj/freebj/internal/rules"
	"github.com/freebj/freebj/internal/strategy"
)

// standPat always stands, never surrenders, never insures: the simplest
// possible Strategy, used so these tests exercise the orchestrator's
// partitioning and merging rather than basic-strategy decision logic.
type standPat struct{}

func (standPat) PlayerTurn(strategy.Context, card.Card, *hand.Hand) strategy.Decision {
	return strategy.Stand
}
func (standPat) Surrender(strategy.Context, card.Card, *hand.Hand, bool) bool { return false }
func (standPat) TakeInsurance(strategy.Context, *hand.Hand) bool              { return false }

func TestPartitionDistributesRemainder(t *testing.T) {
	chunks := partition(10, 3)
	sum := 0
	for _, c := range chunks {
		sum += c
	}
	require.Equal(t, 10, sum)
	require.Equal(t, []int{4, 3, 3}, chunks)
}

func TestPartitionEvenSplit(t *testing.T) {
	chunks := partition(9, 3)
	for _, c := range chunks {
		require.Equal(t, 3, c)
	}
}

func TestDeriveSeedDistinctPerWorker(t *testing.T) {
	seen := map[int64]bool{}
	for i := 0; i < 8; i++ {
		s := deriveSeed(42, i)
		require.False(t, seen[s], "deriveSeed produced a duplicate seed at worker %d", i)
		seen[s] = true
	}
}

func baseConfig(rounds, workers int, seed int64) Config {
	return Config{
		Rounds:   rounds,
		Workers:  workers,
		Seed:     seed,
		Rules:    rules.Default(),
		Strategy: standPat{},
		Betting:  betting.Flat{Amount: 1},
	}
}

func TestRunProducesExactlyRoundsRounds(t *testing.T) {
	agg, err := Run(context.Background(), baseConfig(500, 4, 7))
	require.NoError(t, err)
	require.EqualValues(t, 500, agg.Rounds)
	require.EqualValues(t, 500, agg.Stats.Rounds)
}

func TestRunIsDeterministicForAFixedSeed(t *testing.T) {
	a, err := Run(context.Background(), baseConfig(2000, 4, 123))
	require.NoError(t, err)
	b, err := Run(context.Background(), baseConfig(2000, 4, 123))
	require.NoError(t, err)
	require.Equal(t, a.Stats.Running.Mean(), b.Stats.Running.Mean())
	require.Equal(t, a.Rounds, b.Rounds)
}

func TestRunSingleWorkerMatchesMultiWorkerRoundCount(t *testing.T) {
	single, err := Run(context.Background(), baseConfig(1000, 1, 9))
	require.NoError(t, err)
	multi, err := Run(context.Background(), baseConfig(1000, 6, 9))
	require.NoError(t, err)
	require.Equal(t, single.Rounds, multi.Rounds)
}

func TestRunClampsWorkersToRoundsWhenFewer(t *testing.T) {
	agg, err := Run(context.Background(), baseConfig(2, 16, 1))
	require.NoError(t, err)
	require.EqualValues(t, 2, agg.Rounds)
}

func TestRunSnapshotsAreDelivered(t *testing.T) {
	cfg := baseConfig(400, 4, 3)
	cfg.SnapshotEvery = 10

	var snapshots []Aggregate
	cfg.OnSnapshot = func(agg Aggregate) {
		snapshots = append(snapshots, agg)
	}

	_, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	require.NotEmpty(t, snapshots)
	last := snapshots[len(snapshots)-1]
	require.Greater(t, last.Rounds, 0)
}

func TestRunRoundWithDeadlineDisabledByDefault(t *testing.T) {
	res, err := runRoundWithDeadline(quartz.NewReal(), 0, func() round.Result {
		return round.Result{NetPayout: 1}
	})
	require.NoError(t, err)
	require.Equal(t, 1.0, res.NetPayout)
}

func TestRunRoundWithDeadlineTimesOut(t *testing.T) {
	mock := quartz.NewMock(t)
	blocked := make(chan struct{})
	defer close(blocked)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	trap := mock.Trap().AfterFunc()
	defer trap.Close()

	errCh := make(chan error, 1)
	go func() {
		_, err := runRoundWithDeadline(mock, time.Second, func() round.Result {
			<-blocked
			return round.Result{}
		})
		errCh <- err
	}()

	call, err := trap.Wait(ctx)
	require.NoError(t, err, "AfterFunc never called")
	call.MustRelease(ctx)

	mock.Advance(time.Second).MustWait(ctx)

	select {
	case err := <-errCh:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatalf("runRoundWithDeadline never returned after the mock clock advanced")
	}
}
