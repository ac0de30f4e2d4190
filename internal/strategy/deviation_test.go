package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freebj/freebj/internal/card"
)

func TestParseDeviationHardTotal(t *testing.T) {
	d, err := ParseDeviation("16vs10:>0=")
	require.NoError(t, err)
	require.Equal(t, hardKind, d.Kind)
	require.Equal(t, 4, d.Row)
	require.Equal(t, card.Card(10), d.Dealer)
	require.True(t, d.Above)
	require.Equal(t, 0, d.TC)
	require.Equal(t, Stand, d.Action)
}

func TestParseDeviationSoftTotal(t *testing.T) {
	d, err := ParseDeviation("A7vs2:<-1+")
	require.NoError(t, err)
	require.Equal(t, softKind, d.Kind)
	require.Equal(t, Hit, d.Action)
	require.False(t, d.Above)
}

func TestParseDeviationPair(t *testing.T) {
	d, err := ParseDeviation("9/9vs7:>0V")
	require.NoError(t, err)
	require.Equal(t, pairKind, d.Kind)
	require.Equal(t, 1, d.Row)
	require.Equal(t, Split, d.Action)
}

func TestParseDeviationAcePair(t *testing.T) {
	d, err := ParseDeviation("A/Avs6:>2V")
	require.NoError(t, err)
	require.Equal(t, 9, d.Row)
}

func TestParseDeviationRejectsSurrenderAction(t *testing.T) {
	_, err := ParseDeviation("16vs10:>0#")
	require.Error(t, err)
}

func TestParseDeviationRejectsMalformed(t *testing.T) {
	for _, bad := range []string{"", "16vs10", "16vs10:0=", "99vs10:>0="} {
		_, err := ParseDeviation(bad)
		require.Errorf(t, err, "ParseDeviation(%q) expected error", bad)
	}
}

func TestDeviationMatches(t *testing.T) {
	above := Deviation{Above: true, TC: 2}
	require.True(t, above.matches(2))
	require.True(t, above.matches(5))
	require.False(t, above.matches(1))

	below := Deviation{Above: false, TC: -1}
	require.True(t, below.matches(-1))
	require.True(t, below.matches(-5))
	require.False(t, below.matches(0))
}

func TestDefaultDeviationsFirstEntry(t *testing.T) {
	devs := DefaultDeviations()
	require.NotEmpty(t, devs)
	first := devs[0]
	require.Equal(t, hardKind, first.Kind)
	require.Equal(t, 4, first.Row)
	require.Equal(t, card.Card(10), first.Dealer)
	require.Equal(t, Stand, first.Action)
}
