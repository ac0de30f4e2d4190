package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/freebj/freebj/internal/card"
)

// parseRounds parses -n's k/M/G-suffixed round counts, e.g. "1M" → 1000000.
func parseRounds(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty round count")
	}
	mult := 1.0
	last := s[len(s)-1]
	switch last {
	case 'k', 'K':
		mult = 1e3
		s = s[:len(s)-1]
	case 'm', 'M':
		mult = 1e6
		s = s[:len(s)-1]
	case 'g', 'G':
		mult = 1e9
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid round count %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("round count must not be negative")
	}
	return int(n * mult), nil
}

// parsePenetration parses -p's several accepted shapes against a deck
// count: a bare integer is an absolute card count ("260"), a trailing '%'
// is a fraction of the full shoe ("80%"), a trailing 'd' is a number of
// decks' worth of cards ("5d"), and "A/B" is a fraction ("4/5").
func parsePenetration(s string, decks int) (int, error) {
	s = strings.TrimSpace(s)
	total := decks * 52
	switch {
	case strings.HasSuffix(s, "%"):
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid penetration %q: %w", s, err)
		}
		return int(float64(total) * pct / 100), nil
	case strings.HasSuffix(s, "d"):
		d, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid penetration %q: %w", s, err)
		}
		return int(d * 52), nil
	case strings.Contains(s, "/"):
		parts := strings.SplitN(s, "/", 2)
		a, errA := strconv.ParseFloat(parts[0], 64)
		b, errB := strconv.ParseFloat(parts[1], 64)
		if errA != nil || errB != nil || b == 0 {
			return 0, fmt.Errorf("invalid penetration %q", s)
		}
		return int(float64(total) * a / b), nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid penetration %q: %w", s, err)
		}
		return n, nil
	}
}

// parseCards splits a comma-separated card list ("A,10,6") into card.Cards.
func parseCards(s string) ([]card.Card, error) {
	if s == "" {
		return nil, nil
	}
	toks := strings.Split(s, ",")
	out := make([]card.Card, 0, len(toks))
	for _, t := range toks {
		c, err := card.ParseCard(strings.TrimSpace(t))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
