package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freebj/freebj/internal/card"
	"github.com/freebj/freebj/internal/hand"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateHolecardingRequiresAHC(t *testing.T) {
	r := Default()
	r.GameType = ENHC
	r.Holecarding = true
	require.Error(t, r.Validate())
}

func TestValidateLateSurrenderIncompatibleWithENHC(t *testing.T) {
	r := Default()
	r.GameType = ENHC
	r.Surrender = LateSurrender
	require.Error(t, r.Validate())
}

func TestValidatePenetrationBounds(t *testing.T) {
	r := Default()
	r.PenetrationCards = r.Decks*52 + 1
	require.Error(t, r.Validate())

	r2 := Default()
	r2.PenetrationCards = 0
	require.Error(t, r2.Validate())
}

func TestGameTypeJSONRoundTrip(t *testing.T) {
	for _, g := range []GameType{AHC, ENHC} {
		data, err := json.Marshal(g)
		require.NoError(t, err)
		var out GameType
		require.NoError(t, json.Unmarshal(data, &out))
		require.Equal(t, g, out)
	}
}

func TestDoublePolicyUnmarshalRejectsUnknown(t *testing.T) {
	var d DoublePolicy
	require.Error(t, json.Unmarshal([]byte(`"sideways"`), &d))
}

func newHand(cards ...card.Card) *hand.Hand {
	h := hand.New(1)
	for _, c := range cards {
		h.Push(c)
	}
	return h
}

func TestMayDoubleAnyTwo(t *testing.T) {
	r := Default()
	r.Double = AnyTwo
	require.True(t, r.MayDouble(newHand(5, 6)))
	require.False(t, r.MayDouble(newHand(5, 6, 2)))
}

func TestMayDoubleHard9To11(t *testing.T) {
	r := Default()
	r.Double = Hard9To11
	require.True(t, r.MayDouble(newHand(5, 4)))         // hard 9
	require.False(t, r.MayDouble(newHand(3, 4)))        // hard 7
	require.False(t, r.MayDouble(newHand(card.Ace, 8))) // soft 19
}

func TestMayDoubleNoDouble(t *testing.T) {
	r := Default()
	r.Double = NoDouble
	require.False(t, r.MayDouble(newHand(5, 6)))
}

func TestMayDoubleRequiresDASAfterSplit(t *testing.T) {
	r := Default()
	r.Double = AnyTwo
	r.DAS = false
	h := newHand(5, 6)
	h.SetFromSplit()
	require.False(t, r.MayDouble(h))

	r.DAS = true
	require.True(t, r.MayDouble(h))
}
