package stats

import (
	"github.com/freebj/freebj/internal/hand"
	"github.com/freebj/freebj/internal/round"
)

// Hand counts hand-level outcomes across every settled hand a simulation
// plays, including split hands (ported from hand_stats.rs).
type Hand struct {
	Total     uint64
	Won       uint64
	Lost      uint64
	Push      uint64
	Busted    uint64
	Blackjack uint64
	Doubled   uint64
	Split     uint64
	Insured   uint64
	Surrender uint64
}

// Update folds one settled hand's counters in.
func (h *Hand) Update(hd *hand.Hand, outcome round.Outcome) {
	h.Total++
	switch outcome {
	case round.Win:
		h.Won++
	case round.Push:
		h.Push++
	case round.Lose:
		h.Lost++
	}
	if hd.IsBusted() {
		h.Busted++
	}
	if hd.IsBlackjack() {
		h.Blackjack++
	}
	if hd.Doubled() {
		h.Doubled++
	}
	if hd.FromSplit() {
		h.Split++
	}
	if hd.Insured() {
		h.Insured++
	}
	if hd.Surrendered() {
		h.Surrender++
	}
}

// Merge adds rhs's counters into h.
func (h *Hand) Merge(rhs Hand) {
	h.Total += rhs.Total
	h.Won += rhs.Won
	h.Lost += rhs.Lost
	h.Push += rhs.Push
	h.Busted += rhs.Busted
	h.Blackjack += rhs.Blackjack
	h.Doubled += rhs.Doubled
	h.Split += rhs.Split
	h.Insured += rhs.Insured
	h.Surrender += rhs.Surrender
}
