package strategy

import (
	"fmt"

	"github.com/freebj/freebj/internal/card"
	"github.com/freebj/freebj/internal/hand"
	"github.com/freebj/freebj/internal/rules"
)

// BasicStrategy implements Strategy from the fixed basic-strategy tables
// (tables.go) overlaid by an ordered deviation list (deviation.go).
// Insurance is taken when holecarding reveals a ten, or, absent
// holecarding, when hi-lo counting is enabled and the true count is high
// enough.
type BasicStrategy struct {
	hilo       bool
	deviations []Deviation
}

// New returns a BasicStrategy. When hilo is true, TakeInsurance consults
// the true count; deviations (normally DefaultDeviations() plus any
// user-supplied -D entries, in that order) are consulted before falling
// back to the static tables.
func New(hilo bool, deviations []Deviation) *BasicStrategy {
	return &BasicStrategy{hilo: hilo, deviations: deviations}
}

func descriptorOf(ctx Context, me *hand.Hand) (kind tableKind, row int) {
	if ctx.MaySplit && me.IsPair() {
		return pairKind, 10 - int(me.Cards()[0])
	}
	if me.IsSoft() {
		softSum := me.HardTotal() - 1
		return softKind, 10 - softSum
	}
	return hardKind, 20 - me.Value()
}

func (s *BasicStrategy) tableChar(ctx Context, dealer card.Card, me *hand.Hand) byte {
	if me.Value() == 21 {
		return '='
	}

	if ctx.MaySplit && me.IsPair() {
		row := 10 - int(me.Cards()[0])
		ch := pairsTable[row][int(dealer)]
		ahc := ctx.Rules.GameType == rules.AHC
		if ch == 'V' ||
			(ch == '*' && ctx.Rules.DAS) ||
			(ch == '?' && ahc) ||
			(ch == '@' && ahc && ctx.Rules.Soft17 == rules.S17) {
			return 'V'
		}
	}

	if me.IsSoft() {
		softSum := me.HardTotal() - 1
		return softTable[10-softSum][int(dealer)]
	}
	return hardTable[20-me.Value()][int(dealer)]
}

func (s *BasicStrategy) applyDeviation(ch byte, ctx Context, dealer card.Card, me *hand.Hand) byte {
	if me.Value() == 21 {
		return ch
	}
	kind, row := descriptorOf(ctx, me)
	for _, d := range s.deviations {
		if d.Kind != kind || d.Row != row || d.Dealer != dealer {
			continue
		}
		if !d.matches(ctx.TrueCount) {
			continue
		}
		switch d.Action {
		case Hit:
			return '+'
		case Stand:
			return '='
		case Double:
			return 'D'
		case Split:
			return 'V'
		}
	}
	return ch
}

// finalize runs the shared post-processing every table lookup goes through:
// resolving the rule-conditional symbols ('?','&','h') and downgrading a
// double that isn't currently legal, then mapping to a Decision.
func finalize(ch byte, ctx Context) Decision {
	ahc := ctx.Rules.GameType == rules.AHC
	h17 := ctx.Rules.Soft17 == rules.H17

	switch ch {
	case '?':
		if ahc {
			ch = 'D'
		} else {
			ch = '+'
		}
	case '&':
		if ahc && h17 {
			ch = 'D'
		} else {
			ch = '+'
		}
	case 'h':
		if h17 {
			ch = 'd'
		} else {
			ch = '='
		}
	}

	switch ch {
	case 'D':
		if !ctx.MayDouble {
			ch = '+'
		}
	case 'd':
		if !ctx.MayDouble {
			ch = '='
		}
	}

	switch ch {
	case '+', 'S', 'E', 'U':
		return Hit
	case '=', 's', 'e', 'u':
		return Stand
	case 'D', 'd':
		return Double
	case 'V':
		return Split
	default:
		panic(fmt.Sprintf("strategy: unknown basic-strategy code %q", string(ch)))
	}
}

// PlayerTurn implements Strategy.
func (s *BasicStrategy) PlayerTurn(ctx Context, dealer card.Card, me *hand.Hand) Decision {
	ch := s.tableChar(ctx, dealer, me)
	if len(s.deviations) > 0 {
		ch = s.applyDeviation(ch, ctx, dealer, me)
	}
	return finalize(ch, ctx)
}

// Surrender implements Strategy. Deviations never affect the surrender
// question; it always reads the static table, matching the reference
// strategy's semantics.
func (s *BasicStrategy) Surrender(ctx Context, dealer card.Card, me *hand.Hand, isEarly bool) bool {
	if me.IsSoft() {
		return false
	}
	ch := s.tableChar(ctx, dealer, me)
	h17 := ctx.Rules.Soft17 == rules.H17
	switch ch {
	case 'S', 's':
		return true
	case 'E', 'e':
		return isEarly
	case 'U', 'u':
		return isEarly || h17
	default:
		return false
	}
}

// TakeInsurance implements Strategy.
func (s *BasicStrategy) TakeInsurance(ctx Context, me *hand.Hand) bool {
	if ctx.Holecard != nil {
		return *ctx.Holecard == 10
	}
	if !s.hilo {
		return false
	}
	return ctx.TrueCount >= 3
}
