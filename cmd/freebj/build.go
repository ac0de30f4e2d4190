package main

import (
	"github.com/freebj/freebj/internal/betting"
	"github.com/freebj/freebj/internal/card"
	"github.com/freebj/freebj/internal/config"
	"github.com/freebj/freebj/internal/rules"
	"github.com/freebj/freebj/internal/strategy"
)

// Assembled is everything one simulation run needs, built from a
// combination of an optional HCL config file and its overriding CLI
// flags.
type Assembled struct {
	Rules             rules.Rules
	Strategy          strategy.Strategy
	Betting           betting.Strategy
	OverrideAction    *strategy.Decision
	SurrenderOverride *bool
	StartCards        []card.Card
	DealerCards       []card.Card
	ShoeCards         []card.Card
}

// assemble loads configFile (if non-empty), overlays it with rf/sf/bf, and
// validates the result. It is shared by the root command and both sides of
// the compare subcommand so the two never drift in how they interpret
// flags.
func assemble(configFile string, rf *RuleFlags, sf *StrategyFlags, bf *BettingFlags) (Assembled, error) {
	baseRules := rules.Default()
	var baseBetting betting.Hilo
	var configDevs []strategy.Deviation

	if configFile != "" {
		file, err := config.Load(configFile)
		if err != nil {
			return Assembled{}, err
		}
		baseRules, err = config.ApplyRules(baseRules, file.Rules)
		if err != nil {
			return Assembled{}, err
		}
		baseBetting = config.ApplyBetting(baseBetting, file.Betting)
		configDevs, err = config.Deviations(file.Deviations)
		if err != nil {
			return Assembled{}, err
		}
	}

	r, err := rf.Build(baseRules)
	if err != nil {
		return Assembled{}, err
	}

	strat, override, surrenderOverride, err := sf.Build(configDevs)
	if err != nil {
		return Assembled{}, err
	}

	startCards, err := sf.StartCards()
	if err != nil {
		return Assembled{}, err
	}
	dealerCards, err := sf.DealerCards()
	if err != nil {
		return Assembled{}, err
	}
	shoeCards, err := sf.ShoeCards()
	if err != nil {
		return Assembled{}, err
	}

	return Assembled{
		Rules:             r,
		Strategy:          strat,
		Betting:           bf.Build(baseBetting),
		OverrideAction:    override,
		SurrenderOverride: surrenderOverride,
		StartCards:        startCards,
		DealerCards:       dealerCards,
		ShoeCards:         shoeCards,
	}, nil
}
