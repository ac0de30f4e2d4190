package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardString(t *testing.T) {
	cases := []struct {
		c    Card
		want string
	}{
		{Ace, "A"},
		{Card(2), "2"},
		{Card(10), "10"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.c.String())
	}
}

func TestHiloWeight(t *testing.T) {
	cases := []struct {
		c    Card
		want int
	}{
		{Ace, -1},
		{Card(2), 1},
		{Card(6), 1},
		{Card(7), 0},
		{Card(9), 0},
		{Card(10), -1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.c.HiloWeight())
	}
}

func TestParseCard(t *testing.T) {
	c, err := ParseCard("A")
	require.NoError(t, err)
	require.Equal(t, Ace, c)

	c, err = ParseCard("a")
	require.NoError(t, err)
	require.Equal(t, Ace, c)

	c, err = ParseCard("10")
	require.NoError(t, err)
	require.Equal(t, Card(10), c)

	for _, bad := range []string{"0", "11", "x", ""} {
		_, err := ParseCard(bad)
		assert.Errorf(t, err, "ParseCard(%q) expected error", bad)
	}
}
