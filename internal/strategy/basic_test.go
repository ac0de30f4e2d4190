package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freebj/freebj/internal/card"
	"github.com/freebj/freebj/internal/hand"
	"github.com/freebj/freebj/internal/rules"
)

func mkHand(cards ...card.Card) *hand.Hand {
	h := hand.New(1)
	for _, c := range cards {
		h.Push(c)
	}
	return h
}

func TestPlayerTurnHard16VsTenHitsWhenSurrenderUnavailable(t *testing.T) {
	s := New(false, nil)
	ctx := Context{Rules: rules.Default(), MayDouble: true}
	d := s.PlayerTurn(ctx, card.Card(10), mkHand(10, 6))
	require.Equal(t, Hit, d)
}

func TestPlayerTurnHard11VsSixDoubles(t *testing.T) {
	s := New(false, nil)
	ctx := Context{Rules: rules.Default(), MayDouble: true}
	d := s.PlayerTurn(ctx, card.Card(6), mkHand(5, 6))
	require.Equal(t, Double, d)
}

func TestPlayerTurnHard11VsTenDoublesUnderAHC(t *testing.T) {
	s := New(false, nil)
	ctx := Context{Rules: rules.Default(), MayDouble: true}
	d := s.PlayerTurn(ctx, card.Card(10), mkHand(5, 6))
	require.Equal(t, Double, d)
}

func TestPlayerTurnDoubleDowngradesToHitWhenIllegal(t *testing.T) {
	s := New(false, nil)
	ctx := Context{Rules: rules.Default(), MayDouble: false}
	d := s.PlayerTurn(ctx, card.Card(6), mkHand(5, 6))
	require.Equal(t, Hit, d)
}

func TestPlayerTurnAlwaysSplitsEightsVersusTen(t *testing.T) {
	s := New(false, nil)
	ctx := Context{Rules: rules.Default(), MaySplit: true}
	d := s.PlayerTurn(ctx, card.Card(10), mkHand(8, 8))
	require.Equal(t, Split, d)
}

func TestPlayerTurnHard12VsFourStands(t *testing.T) {
	s := New(false, nil)
	ctx := Context{Rules: rules.Default()}
	d := s.PlayerTurn(ctx, card.Card(4), mkHand(9, 3))
	require.Equal(t, Stand, d)
}

func TestSurrenderHard15VsTen(t *testing.T) {
	s := New(false, nil)
	ctx := Context{Rules: rules.Default()}
	require.True(t, s.Surrender(ctx, card.Card(10), mkHand(9, 6), false))
}

func TestSurrenderNeverOnSoftHands(t *testing.T) {
	s := New(false, nil)
	ctx := Context{Rules: rules.Default()}
	require.False(t, s.Surrender(ctx, card.Card(10), mkHand(card.Ace, 6), false))
}

func TestTakeInsuranceWithHolecard(t *testing.T) {
	s := New(false, nil)
	ten := card.Card(10)
	require.True(t, s.TakeInsurance(Context{Holecard: &ten}, mkHand(10, 10)))
	four := card.Card(4)
	require.False(t, s.TakeInsurance(Context{Holecard: &four}, mkHand(10, 10)))
}

func TestTakeInsuranceWithoutHolecardUsesHiloCount(t *testing.T) {
	s := New(true, nil)
	require.True(t, s.TakeInsurance(Context{TrueCount: 3}, mkHand(10, 10)))
	require.False(t, s.TakeInsurance(Context{TrueCount: 2}, mkHand(10, 10)))

	flat := New(false, nil)
	require.False(t, flat.TakeInsurance(Context{TrueCount: 10}, mkHand(10, 10)))
}

func TestDeviationOverridesBasicStrategy(t *testing.T) {
	dev, err := ParseDeviation("16vs10:>4=")
	require.NoError(t, err)
	s := New(false, []Deviation{dev})
	ctx := Context{Rules: rules.Default(), MayDouble: true, TrueCount: 4}
	d := s.PlayerTurn(ctx, card.Card(10), mkHand(10, 6))
	require.Equal(t, Stand, d)

	ctx.TrueCount = 3
	d = s.PlayerTurn(ctx, card.Card(10), mkHand(10, 6))
	require.Equal(t, Hit, d)
}
