// Package hand models a blackjack hand: its cards, derived totals, and the
// flags (doubled, split, surrendered, insured) that settlement depends on.
package hand

import "github.com/freebj/freebj/internal/card"

// Hand is an ordered sequence of cards dealt to one player or the dealer,
// together with the bookkeeping needed to settle it at round end.
type Hand struct {
	cards       []card.Card
	bet         float64
	betUnits    int
	doubled     bool
	fromSplit   bool
	surrendered bool
	insured     bool
}

// New returns an empty hand staking the given amount, with bet_units=1.
func New(bet float64) *Hand {
	return &Hand{bet: bet, betUnits: 1}
}

// Push appends a card to the hand.
func (h *Hand) Push(c card.Card) {
	h.cards = append(h.cards, c)
}

// Cards returns the hand's cards in deal order.
func (h *Hand) Cards() []card.Card {
	return h.cards
}

// Len returns the number of cards in the hand.
func (h *Hand) Len() int {
	return len(h.cards)
}

// HardTotal sums the cards counting every ace as 1.
func (h *Hand) HardTotal() int {
	total := 0
	for _, c := range h.cards {
		total += int(c)
	}
	return total
}

// hasAce reports whether any card in the hand is an ace.
func (h *Hand) hasAce() bool {
	for _, c := range h.cards {
		if c == card.Ace {
			return true
		}
	}
	return false
}

// SoftTotal is HardTotal()+10 when the hand holds an ace and that does not
// bust the hand; otherwise it equals HardTotal().
func (h *Hand) SoftTotal() int {
	hard := h.HardTotal()
	if h.hasAce() && hard+10 <= 21 {
		return hard + 10
	}
	return hard
}

// IsSoft reports whether the hand's soft total differs from its hard total,
// i.e. an ace is currently counted as 11.
func (h *Hand) IsSoft() bool {
	return h.SoftTotal() != h.HardTotal()
}

// Value is the total used for comparison and strategy: the soft total.
func (h *Hand) Value() int {
	return h.SoftTotal()
}

// IsBusted reports whether the hand's hard total exceeds 21.
func (h *Hand) IsBusted() bool {
	return h.HardTotal() > 21
}

// IsPair reports whether the hand is exactly two cards of equal rank.
func (h *Hand) IsPair() bool {
	return len(h.cards) == 2 && h.cards[0] == h.cards[1]
}

// IsBlackjack reports a natural 21: exactly two cards, soft total 21, and
// not a hand produced by splitting (a split hand reaching 21 is never a
// blackjack).
func (h *Hand) IsBlackjack() bool {
	return !h.fromSplit && len(h.cards) == 2 && h.SoftTotal() == 21
}

// FromSplit reports whether this hand was produced by splitting a pair.
func (h *Hand) FromSplit() bool {
	return h.fromSplit
}

// SetFromSplit marks the hand as the product of a split.
func (h *Hand) SetFromSplit() {
	h.fromSplit = true
}

// Bet returns the hand's base stake.
func (h *Hand) Bet() float64 {
	return h.bet
}

// BetUnits returns 1, or 2 once the hand has been doubled.
func (h *Hand) BetUnits() int {
	return h.betUnits
}

// Double marks the hand as doubled, doubling its bet units. It is the
// caller's responsibility to have checked legality (may_double) first.
func (h *Hand) Double() {
	if h.doubled {
		panic("hand: double applied twice")
	}
	h.doubled = true
	h.betUnits = 2
}

// Doubled reports whether Double has been called on this hand.
func (h *Hand) Doubled() bool {
	return h.doubled
}

// Surrender marks the hand as surrendered.
func (h *Hand) Surrender() {
	if h.surrendered {
		panic("hand: surrender applied twice")
	}
	h.surrendered = true
}

// Surrendered reports whether the hand surrendered.
func (h *Hand) Surrendered() bool {
	return h.surrendered
}

// Insure marks the hand as having taken insurance.
func (h *Hand) Insure() {
	h.insured = true
}

// Insured reports whether the hand took insurance.
func (h *Hand) Insured() bool {
	return h.insured
}

// Split returns two new hands, each seeded with one of this pair's cards
// and marked as split. The caller deals each hand's second card.
func (h *Hand) Split() (*Hand, *Hand) {
	if !h.IsPair() {
		panic("hand: split applied to a non-pair")
	}
	left := New(h.bet)
	left.Push(h.cards[0])
	left.SetFromSplit()
	right := New(h.bet)
	right.Push(h.cards[1])
	right.SetFromSplit()
	return left, right
}
