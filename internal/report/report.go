// Package report builds the JSON shapes the CLI prints to stdout and the
// live-streaming server pushes to websocket clients, both derived from an
// orchestrator.Aggregate.
package report

import (
	"github.com/freebj/freebj/internal/confidence"
	"github.com/freebj/freebj/internal/orchestrator"
	"github.com/freebj/freebj/internal/rules"
)

// Hands is the JSON shape of the per-category hand counters.
type Hands struct {
	Total     uint64 `json:"total"`
	Won       uint64 `json:"won"`
	Lost      uint64 `json:"lost"`
	Push      uint64 `json:"push"`
	Busted    uint64 `json:"busted"`
	Blackjack uint64 `json:"blackjack"`
	Doubled   uint64 `json:"doubled"`
	Split     uint64 `json:"split"`
	Insured   uint64 `json:"insured"`
	Surrender uint64 `json:"surrender"`
}

// Report is the full single-run JSON report.
type Report struct {
	Rounds         int                 `json:"rounds"`
	Rules          rules.Rules         `json:"rules"`
	EV             float64             `json:"ev"`
	Stddev         float64             `json:"stddev"`
	CI95           [2]float64          `json:"ci95"`
	WinningDistrib map[string]uint64   `json:"winning_distrib"`
	Hands          Hands               `json:"hands"`
}

// Build assembles the final report from a completed aggregate, r, and a
// confidence level (e.g. 0.95). It reads the accumulator only; it never
// mutates it.
func Build(agg orchestrator.Aggregate, r rules.Rules, level float64) Report {
	acc := agg.Stats
	ci := confidence.EV(acc.Running.Mean(), acc.Running.Stddev(), acc.Running.Count(), level)
	return Report{
		Rounds:         agg.Rounds,
		Rules:          r,
		EV:             acc.Running.Mean(),
		Stddev:         acc.Running.Stddev(),
		CI95:           [2]float64{ci.Low, ci.High},
		WinningDistrib: acc.Dist.Map(),
		Hands: Hands{
			Total:     acc.Hand.Total,
			Won:       acc.Hand.Won,
			Lost:      acc.Hand.Lost,
			Push:      acc.Hand.Push,
			Busted:    acc.Hand.Busted,
			Blackjack: acc.Hand.Blackjack,
			Doubled:   acc.Hand.Doubled,
			Split:     acc.Hand.Split,
			Insured:   acc.Hand.Insured,
			Surrender: acc.Hand.Surrender,
		},
	}
}

// Snapshot is the lighter-weight frame the live-streaming server pushes
// periodically: rounds done, running EV, stddev. It omits the distribution
// and per-hand counters so frequent delivery stays cheap.
type Snapshot struct {
	Rounds int     `json:"rounds"`
	EV     float64 `json:"ev"`
	Stddev float64 `json:"stddev"`
}

// BuildSnapshot derives a Snapshot from an in-progress aggregate.
func BuildSnapshot(agg orchestrator.Aggregate) Snapshot {
	return Snapshot{
		Rounds: agg.Rounds,
		EV:     agg.Stats.Running.Mean(),
		Stddev: agg.Stats.Running.Stddev(),
	}
}

// Comparison is the JSON shape the `compare` subcommand prints: two full
// reports plus the Welch's t-test verdict between them.
type Comparison struct {
	A           Report  `json:"a"`
	B           Report  `json:"b"`
	Significant bool    `json:"significant"`
	PValue      float64 `json:"p_value"`
	CohensD     float64 `json:"cohens_d"`
}

// BuildComparison assembles the compare subcommand's report from two
// completed runs and their Welch's t-test comparison.
func BuildComparison(a, b Report, cmp confidence.Comparison) Comparison {
	return Comparison{
		A:           a,
		B:           b,
		Significant: cmp.Significant,
		PValue:      cmp.PValue,
		CohensD:     cmp.CohensD,
	}
}
