// Package strategy implements the basic-strategy + deviation decision
// function: a pure mapping from hand descriptor, dealer upcard and true
// count to a playing action, plus the separate surrender and insurance
// questions.
package strategy

import (
	"github.com/freebj/freebj/internal/card"
	"github.com/freebj/freebj/internal/hand"
	"github.com/freebj/freebj/internal/rules"
)

// Decision is one of the four actions a player may take on their turn.
// Surrender and insurance are asked separately (see Strategy below) because
// they are legal only at specific points in the round, not general-purpose
// turn actions.
type Decision int

const (
	Hit Decision = iota
	Stand
	Double
	Split
)

func (d Decision) String() string {
	switch d {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case Split:
		return "split"
	default:
		return "unknown"
	}
}

// Context carries everything a Strategy needs to decide, beyond the hand
// itself: the table rules, which actions are currently legal, the true
// count, and the dealer's holecard when holecarding is in play.
type Context struct {
	Rules     rules.Rules
	MaySplit  bool
	MayDouble bool
	TrueCount int
	Holecard  *card.Card
}

// Strategy decides how to play a hand, whether to surrender, and whether to
// take insurance.
type Strategy interface {
	PlayerTurn(ctx Context, dealer card.Card, me *hand.Hand) Decision
	Surrender(ctx Context, dealer card.Card, me *hand.Hand, isEarly bool) bool
	TakeInsurance(ctx Context, me *hand.Hand) bool
}
