package hand

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freebj/freebj/internal/card"
)

func deal(h *Hand, cards ...card.Card) {
	for _, c := range cards {
		h.Push(c)
	}
}

func TestHardAndSoftTotal(t *testing.T) {
	h := New(1)
	deal(h, 10, 6)
	require.Equal(t, 16, h.HardTotal())
	require.False(t, h.IsSoft())

	h2 := New(1)
	deal(h2, card.Ace, 6)
	require.Equal(t, 7, h2.HardTotal())
	require.Equal(t, 17, h2.SoftTotal())
	require.True(t, h2.IsSoft())
}

func TestAceCountsHardWhenSoftWouldBust(t *testing.T) {
	h := New(1)
	deal(h, card.Ace, 9, 5)
	require.Equal(t, 15, h.HardTotal())
	require.Equal(t, 15, h.SoftTotal())
	require.False(t, h.IsSoft())
}

func TestIsBusted(t *testing.T) {
	h := New(1)
	deal(h, 10, 9, 5)
	require.True(t, h.IsBusted())
}

func TestIsBlackjack(t *testing.T) {
	h := New(1)
	deal(h, card.Ace, 10)
	require.True(t, h.IsBlackjack())

	split := New(1)
	deal(split, card.Ace, 10)
	split.SetFromSplit()
	require.False(t, split.IsBlackjack())

	three := New(1)
	deal(three, 7, 7, 7)
	require.False(t, three.IsBlackjack())
}

func TestIsPair(t *testing.T) {
	h := New(1)
	deal(h, 8, 8)
	require.True(t, h.IsPair())

	h2 := New(1)
	deal(h2, 8, 8, 8)
	require.False(t, h2.IsPair())
}

func TestDoublePanicsWhenAppliedTwice(t *testing.T) {
	h := New(1)
	h.Double()
	require.Equal(t, 2, h.BetUnits())
	require.Panics(t, func() { h.Double() })
}

func TestSplit(t *testing.T) {
	h := New(2)
	deal(h, 8, 8)
	left, right := h.Split()

	for _, side := range []*Hand{left, right} {
		require.Equal(t, 1, side.Len())
		require.True(t, side.FromSplit())
		require.Equal(t, 2.0, side.Bet())
	}
	require.Equal(t, card.Card(8), left.Cards()[0])
	require.Equal(t, card.Card(8), right.Cards()[0])
}

func TestSplitPanicsOnNonPair(t *testing.T) {
	h := New(1)
	deal(h, 8, 9)
	require.Panics(t, func() { h.Split() })
}
