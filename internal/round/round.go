// Package round implements the per-round state machine: dealing, the
// player's work-queue of hands (handling splits), the dealer's draw, and
// settlement into a net payout plus per-hand outcome classification.
package round

import (
	"github.com/freebj/freebj/internal/betting"
	"github.com/freebj/freebj/internal/card"
	"github.com/freebj/freebj/internal/hand"
	"github.com/freebj/freebj/internal/rules"
	"github.com/freebj/freebj/internal/strategy"
)

// Config bundles the fixed collaborators a Round needs across its
// lifetime: the rules in force, the strategy and betting decision makers,
// and the optional scripted overrides. The shoe is passed to Run
// separately. A single Config is reused across many rounds.
type Config struct {
	Rules    rules.Rules
	Strategy strategy.Strategy
	Betting  betting.Strategy

	// OverrideAction, when non-nil, replaces the strategy's decision on the
	// very first player-turn call of the round (used by -a/--action to
	// script a single forced move; see StartCards/DealerCards).
	OverrideAction *strategy.Decision

	// SurrenderOverride, when non-nil, forces (true) or forbids (false)
	// surrender instead of consulting the strategy.
	SurrenderOverride *bool

	// StartCards and DealerCards, when non-empty, are dealt via the shoe's
	// forced-card draw instead of the top of the shoe, letting a scenario
	// pin the exact cards a round begins with (-c/--dealer).
	StartCards  []card.Card
	DealerCards []card.Card
}

// Settled describes one settled player hand.
type Settled struct {
	Hand    *hand.Hand
	Outcome Outcome
	Result  float64 // net payout, already multiplied by the hand's stake
}

// Result is everything a round produced, for the statistics accumulator to
// fold in.
type Result struct {
	NetPayout float64
	Hands     []Settled
}

// Run plays exactly one round against shoe, consuming and possibly
// reshuffling it per the penetration rule, and returns the settled result.
func Run(cfg Config, shoe *card.Shoe) Result {
	tc := shoe.TrueCount()
	stake, skip := cfg.Betting.PlaceBet(tc)
	if skip {
		return Result{}
	}

	player := hand.New(stake)
	dealer := hand.New(0)

	dealStart := dealCursor(cfg.StartCards)
	dealDealer := dealCursor(cfg.DealerCards)

	player.Push(dealOne(shoe, dealStart))
	dealer.Push(dealOne(shoe, dealDealer))
	player.Push(dealOne(shoe, dealStart))

	var holecard *card.Card
	if cfg.Rules.GameType == rules.AHC {
		hc := dealOne(shoe, dealDealer)
		dealer.Push(hc)
		if cfg.Rules.Holecarding {
			c := hc
			holecard = &c
		}
	}

	ctx := strategy.Context{Rules: cfg.Rules, TrueCount: tc, Holecard: holecard}

	override := cfg.OverrideAction

	if cfg.Rules.Surrender == rules.EarlySurrender {
		checkSurrender(cfg, ctx, dealer.Cards()[0], []*hand.Hand{player}, true)
	}

	if dealer.Cards()[0] == card.Ace && !player.Surrendered() {
		if cfg.Strategy.TakeInsurance(ctx, player) {
			player.Insure()
		}
	}

	ahcBlackjack := cfg.Rules.GameType == rules.AHC && dealer.IsBlackjack()

	queue := []*hand.Hand{}
	if !player.Surrendered() {
		queue = append(queue, player)
	}

	if !player.Surrendered() && (cfg.Rules.GameType == rules.ENHC || (cfg.Rules.GameType == rules.AHC && !ahcBlackjack)) {
		if cfg.Rules.Surrender == rules.LateSurrender {
			checkSurrender(cfg, ctx, dealer.Cards()[0], []*hand.Hand{player}, false)
		}

		if !player.Surrendered() {
			splitsUsed := 0
			// playHand recurses internally for split hands (mirroring the
			// reference engine's recursive do_player_turn), so the
			// returned siblings are already played to completion — they
			// are collected for settlement, not re-queued for play.
			extra := playHand(cfg, ctx, dealer.Cards()[0], player, &splitsUsed, &override, shoe, dealStart)
			queue = append(queue, extra...)
		}
	}

	if cfg.Rules.GameType == rules.ENHC {
		hc := dealOne(shoe, dealDealer)
		dealer.Push(hc)
	}

	// The dealer draws only if some player hand is still live: not when
	// every hand has busted, surrendered or holds a blackjack.
	dealerDraws := false
	for _, h := range queue {
		if !h.IsBusted() && !h.IsBlackjack() {
			dealerDraws = true
		}
	}
	for dealerDraws && (dealer.Value() < 17 || (cfg.Rules.Soft17 == rules.H17 && dealer.IsSoft() && dealer.Value() == 17)) {
		dealer.Push(dealOne(shoe, dealDealer))
	}

	if shoe.NeedsShuffle() {
		shoe.Shuffle()
	}

	result := Result{Hands: make([]Settled, 0, len(queue)+1)}
	if player.Surrendered() {
		outcome, res := settle(player, dealer, cfg.Rules.BJPays)
		result.NetPayout += res * player.Bet()
		result.Hands = append(result.Hands, Settled{Hand: player, Outcome: outcome, Result: res * player.Bet()})
		return result
	}
	for _, h := range queue {
		outcome, res := settle(h, dealer, cfg.Rules.BJPays)
		result.NetPayout += res * h.Bet()
		result.Hands = append(result.Hands, Settled{Hand: h, Outcome: outcome, Result: res * h.Bet()})
	}
	return result
}

// dealCursor and dealOne implement the forced-start-cards mechanism:
// while forced cards remain, each deal pulls that specific rank out of the
// shoe (card conservation preserved); once exhausted, dealing falls back
// to the shoe's ordinary top-of-shoe draw.
type cursor struct {
	cards []card.Card
	pos   int
}

func dealCursor(cards []card.Card) *cursor {
	return &cursor{cards: cards}
}

func dealOne(shoe *card.Shoe, c *cursor) card.Card {
	if c.pos < len(c.cards) {
		forced := c.cards[c.pos]
		c.pos++
		return shoe.DealFirst(forced)
	}
	return shoe.Deal()
}

func checkSurrender(cfg Config, ctx strategy.Context, dealerUp card.Card, hands []*hand.Hand, early bool) {
	if cfg.SurrenderOverride != nil {
		if *cfg.SurrenderOverride {
			for _, h := range hands {
				h.Surrender()
			}
		}
		return
	}
	for _, h := range hands {
		if h.Surrendered() {
			continue
		}
		if cfg.Strategy.Surrender(ctx, dealerUp, h, early) {
			h.Surrender()
		}
	}
}

// playHand plays a single hand to completion (stand or bust), handling
// splits by returning any newly created sibling hands for the caller's
// work-queue. splitsUsed tracks how many splits this player has already
// made this round, enforced against rules.MaxSplits.
func playHand(cfg Config, ctx strategy.Context, dealerUp card.Card, h *hand.Hand, splitsUsed *int, override **strategy.Decision, shoe *card.Shoe, cur *cursor) []*hand.Hand {
	for {
		// splitsUsed splits so far have produced splitsUsed+1 hands; one
		// more split must not push the player's hand count past
		// MaxSplits, so the next split is legal only while there is
		// still room for one more hand beyond that.
		maySplit := *splitsUsed < cfg.Rules.MaxSplits-1 && h.IsPair()
		mayDouble := cfg.Rules.MayDouble(h)
		ctx.MaySplit = maySplit
		ctx.MayDouble = mayDouble
		ctx.TrueCount = shoe.TrueCount()

		var decision strategy.Decision
		if *override != nil {
			decision = **override
			*override = nil
		} else {
			decision = cfg.Strategy.PlayerTurn(ctx, dealerUp, h)
		}

		switch decision {
		case strategy.Stand:
			return nil

		case strategy.Hit:
			h.Push(dealOne(shoe, cur))
			if h.IsBusted() {
				return nil
			}

		case strategy.Double:
			h.Push(dealOne(shoe, cur))
			h.Double()
			return nil

		case strategy.Split:
			*splitsUsed++
			common := h.Cards()[0]
			left, right := h.Split()
			left.Push(dealOne(shoe, cur))
			right.Push(dealOne(shoe, cur))
			*h = *left

			if cfg.Rules.PlayAcePairs || common != card.Ace {
				siblingExtra := playHand(cfg, ctx, dealerUp, right, splitsUsed, override, shoe, cur)
				selfExtra := playHand(cfg, ctx, dealerUp, h, splitsUsed, override, shoe, cur)
				return append(append([]*hand.Hand{right}, siblingExtra...), selfExtra...)
			}
			return []*hand.Hand{right}
		}
	}
}
