package card

import (
	"fmt"
	"math/rand/v2"
)

// Shoe is a finite multiset of ranks dealt sequentially from a shuffled
// sequence, with a penetration-driven reshuffle policy and a running hi-lo
// count. It is not safe for concurrent use; each simulation worker owns one.
type Shoe struct {
	decks       int
	penetration int
	cards       []Card
	pos         int
	runningCount int
	rng         *rand.Rand

	// fixedStream, when non-nil, replaces the shuffled sequence with a
	// caller-supplied byte stream that repeats as needed (--shoe-file).
	fixedStream []Card
}

// New builds a shoe of the given number of decks with the given penetration
// (cards dealt before a reshuffle is triggered), shuffled with rng.
func New(decks, penetrationCards int, rng *rand.Rand) *Shoe {
	s := &Shoe{
		decks:       decks,
		penetration: penetrationCards,
		rng:         rng,
	}
	s.Shuffle()
	return s
}

// WithFixedStream overrides the dealt sequence with a repeating byte stream
// (--shoe-file); penetration still applies.
func (s *Shoe) WithFixedStream(cards []Card) {
	s.fixedStream = cards
}

func (s *Shoe) fullDeckCounts() [11]int {
	var counts [11]int
	for r := 1; r <= 9; r++ {
		counts[r] = 4 * s.decks
	}
	counts[10] = 16 * s.decks
	return counts
}

// Shuffle rebuilds the full card multiset and performs a uniform
// Fisher-Yates shuffle, resetting the running count and seen counter.
func (s *Shoe) Shuffle() {
	counts := s.fullDeckCounts()
	total := s.decks * 52
	s.cards = make([]Card, 0, total)
	for r := 1; r <= 10; r++ {
		for i := 0; i < counts[r]; i++ {
			s.cards = append(s.cards, Card(r))
		}
	}
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
	s.pos = 0
	s.runningCount = 0
}

// Deal returns the next card, updating the running count by its hi-lo
// weight. It reshuffles transparently if the shoe is exhausted; in normal
// operation the caller reshuffles at round boundaries via NeedsShuffle
// before this ever happens.
func (s *Shoe) Deal() Card {
	var c Card
	if s.fixedStream != nil {
		c = s.fixedStream[s.pos%len(s.fixedStream)]
		s.pos++
	} else {
		if s.pos >= len(s.cards) {
			s.Shuffle()
		}
		c = s.cards[s.pos]
		s.pos++
	}
	s.runningCount += c.HiloWeight()
	return c
}

// DealFirst deals the next occurrence of rank c found ahead of the current
// position, removing it out of order, for scripting a specific deal in
// tests. It falls back to an ordinary Deal if the fixed stream is in use.
// Panics if no card of that rank remains, matching the reference shoe's
// pick_first behavior (an impossible scenario script is a test bug, not a
// runtime condition to recover from).
func (s *Shoe) DealFirst(c Card) Card {
	if s.fixedStream != nil {
		return s.Deal()
	}
	for i := s.pos; i < len(s.cards); i++ {
		if s.cards[i] == c {
			s.cards[i], s.cards[s.pos] = s.cards[s.pos], s.cards[i]
			return s.Deal()
		}
	}
	panic(fmt.Sprintf("card: no %s remaining in shoe to force", c))
}

// NeedsShuffle reports whether the number of cards seen since the last
// shuffle has reached the penetration threshold.
func (s *Shoe) NeedsShuffle() bool {
	return s.pos >= s.penetration
}

// RunningCount returns the signed hi-lo running count since the last
// shuffle.
func (s *Shoe) RunningCount() int {
	return s.runningCount
}

// AdjustRunningCount nudges the running count by a relative amount, used to
// model counting inaccuracy or deliberate count manipulation in tests.
func (s *Shoe) AdjustRunningCount(rel int) {
	s.runningCount += rel
}

// CardsRemaining returns how many cards are left to deal before the shoe is
// exhausted.
func (s *Shoe) CardsRemaining() int {
	if s.fixedStream != nil {
		return len(s.fixedStream)
	}
	return len(s.cards) - s.pos
}

func (s *Shoe) decksRemaining() int {
	d := (s.CardsRemaining() + 51) / 52
	if d < 1 {
		d = 1
	}
	return d
}

// TrueCount is the hi-lo running count divided by the number of decks
// remaining (cards remaining rounded up to a whole deck, floored to at
// least one), floor-divided toward negative infinity. This integer
// convention is used for every betting and deviation decision.
func (s *Shoe) TrueCount() int {
	rc := s.runningCount
	dr := s.decksRemaining()
	q := rc / dr
	if rc%dr != 0 && (rc < 0) != (dr < 0) {
		q--
	}
	return q
}

// ForceTrueCount reshuffles the shoe and then removes cards until the
// resulting true count equals target, choosing the closer of the last two
// candidate removals. It panics (an internal invariant violation, not a
// user error) if the shoe runs out of removable cards before reaching the
// target.
func (s *Shoe) ForceTrueCount(target int) {
	s.Shuffle()

	for s.TrueCount() != target {
		prevTC := s.TrueCount()
		prevRC := s.runningCount

		var removed bool
		if target > prevTC {
			removed = s.removeRank(func(r Card) bool { return r >= 2 && r <= 6 })
		} else {
			removed = s.removeRank(func(r Card) bool { return r == 1 || r == 10 })
		}
		if !removed {
			panic("card: shoe exhausted while forcing true count")
		}

		newTC := s.TrueCount()
		if distance(newTC, target) > distance(prevTC, target) {
			// Overshot: undo by putting the running count back and
			// keep the card removed is fine for TC purposes, but the
			// previous count was strictly closer, so stop here.
			s.runningCount = prevRC
			_ = newTC
			break
		}
	}
}

func distance(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}

// removeRank removes one uniformly random remaining card matching pred,
// updating the running count as if it had been dealt. Returns false if no
// matching card remains.
func (s *Shoe) removeRank(pred func(Card) bool) bool {
	candidates := make([]int, 0, len(s.cards)-s.pos)
	for i := s.pos; i < len(s.cards); i++ {
		if pred(s.cards[i]) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return false
	}
	idx := candidates[s.rng.IntN(len(candidates))]
	removed := s.cards[idx]
	s.cards = append(s.cards[:idx], s.cards[idx+1:]...)
	s.runningCount += removed.HiloWeight()
	return true
}

// ParseShoeFile decodes a raw byte stream into cards, validating every byte
// is in 1..10.
func ParseShoeFile(data []byte) ([]Card, error) {
	cards := make([]Card, len(data))
	for i, b := range data {
		if b < 1 || b > 10 {
			return nil, fmt.Errorf("card: shoe file byte %d out of range 1..10: %d", i, b)
		}
		cards[i] = Card(b)
	}
	return cards, nil
}
