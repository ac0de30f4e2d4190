package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/freebj/freebj/internal/card"
)

func TestParseRoundsSuffixes(t *testing.T) {
	cases := map[string]int{
		"100":  100,
		"1k":   1000,
		"1K":   1000,
		"2.5m": 2500000,
		"1M":   1000000,
		"1g":   1000000000,
	}
	for in, want := range cases {
		got, err := parseRounds(in)
		require.NoErrorf(t, err, "parseRounds(%q)", in)
		require.Equalf(t, want, got, "parseRounds(%q)", in)
	}
}

func TestParseRoundsRejectsEmptyAndNegative(t *testing.T) {
	_, err := parseRounds("")
	require.Error(t, err)
	_, err = parseRounds("-5")
	require.Error(t, err)
	_, err = parseRounds("abc")
	require.Error(t, err)
}

func TestParsePenetrationPercentage(t *testing.T) {
	got, err := parsePenetration("80%", 6)
	require.NoError(t, err)
	decks := 6
	want := int(float64(decks*52) * 0.8)
	require.Equal(t, want, got)
}

func TestParsePenetrationDeckCount(t *testing.T) {
	got, err := parsePenetration("5d", 6)
	require.NoError(t, err)
	require.Equal(t, 260, got)
}

func TestParsePenetrationFraction(t *testing.T) {
	got, err := parsePenetration("4/5", 6)
	require.NoError(t, err)
	decks := 6
	want := int(float64(decks*52) * 4 / 5)
	require.Equal(t, want, got)
}

func TestParsePenetrationAbsolute(t *testing.T) {
	got, err := parsePenetration("260", 6)
	require.NoError(t, err)
	require.Equal(t, 260, got)
}

func TestParsePenetrationRejectsGarbage(t *testing.T) {
	_, err := parsePenetration("abc", 6)
	require.Error(t, err)
	_, err = parsePenetration("4/0", 6)
	require.Error(t, err)
}

func TestParseCardsCommaSeparated(t *testing.T) {
	got, err := parseCards("A, 10, 6")
	require.NoError(t, err)
	require.Equal(t, []card.Card{1, 10, 6}, got)
}

func TestParseCardsEmptyString(t *testing.T) {
	got, err := parseCards("")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestParseCardsPropagatesError(t *testing.T) {
	_, err := parseCards("A,11,6")
	require.Error(t, err)
}
