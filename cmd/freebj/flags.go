package main

import (
	"fmt"
	"os"

	"github.com/freebj/freebj/internal/betting"
	"github.com/freebj/freebj/internal/card"
	"github.com/freebj/freebj/internal/rules"
	"github.com/freebj/freebj/internal/strategy"
)

// RuleFlags is the table-rule half of the flag set, shared verbatim
// between the root command and each side of the compare subcommand.
type RuleFlags struct {
	AHC  bool `help:"American holecard game: dealer peeks for blackjack (default)."`
	ENHC bool `help:"European no-holecard game: dealer's second card is dealt after the player acts."`

	S17 bool `help:"Dealer stands on soft 17 (default)."`
	H17 bool `help:"Dealer hits soft 17."`

	DAS   bool `help:"Allow doubling after a split."`
	NoDAS bool `help:"Disallow doubling after a split (default)."`

	BJPays float64 `default:"1.5" help:"Blackjack payout multiplier."`

	Double string `default:"any_two" enum:"no_double,any_hand,any_two,hard_9_to_11,hard_10_to_11" help:"Double-down policy."`

	ESurr  bool `help:"Allow early surrender."`
	LSurr  bool `help:"Allow late surrender (AHC only)."`
	NoSurr bool `help:"No surrender (default)."`

	PlayAA   bool `help:"Play out split aces normally instead of one card and stand."`
	NoPlayAA bool `help:"One card and auto-stand on split aces (default)."`

	MaxSplits int `default:"4" help:"Maximum hands a single starting hand may split into."`

	Decks       int    `default:"6" help:"Number of decks in the shoe."`
	Penetration string `default:"80%" help:"Penetration before reshuffling: an absolute card count, a percentage (\"80%\"), a deck count (\"5d\"), or a fraction (\"4/5\")."`

	Holecarding   bool `help:"Reveal the dealer's holecard to the strategy (AHC only)."`
	NoHolecarding bool `help:"Keep the dealer's holecard hidden from the strategy (default)."`
}

// Build turns the flags into a validated rules.Rules, starting from base
// (rules.Default(), or rules.Default() overlaid by an HCL config file) and
// applying every flag on top of it: CLI flags always take precedence over
// a config file (see DESIGN.md).
func (f *RuleFlags) Build(base rules.Rules) (rules.Rules, error) {
	r := base

	if f.AHC && f.ENHC {
		return r, fmt.Errorf("--ahc and --enhc are mutually exclusive")
	}
	if f.AHC {
		r.GameType = rules.AHC
	}
	if f.ENHC {
		r.GameType = rules.ENHC
	}

	if f.S17 && f.H17 {
		return r, fmt.Errorf("--s17 and --h17 are mutually exclusive")
	}
	if f.S17 {
		r.Soft17 = rules.S17
	}
	if f.H17 {
		r.Soft17 = rules.H17
	}

	if f.DAS && f.NoDAS {
		return r, fmt.Errorf("--das and --no-das are mutually exclusive")
	}
	// Neither --das nor --no-das given: leave whatever a config file (or
	// rules.Default) already set, rather than clobbering it with the
	// --das flag's false zero-value.
	switch {
	case f.DAS:
		r.DAS = true
	case f.NoDAS:
		r.DAS = false
	}

	r.BJPays = f.BJPays

	switch f.Double {
	case "no_double":
		r.Double = rules.NoDouble
	case "any_hand":
		r.Double = rules.AnyHand
	case "any_two":
		r.Double = rules.AnyTwo
	case "hard_9_to_11":
		r.Double = rules.Hard9To11
	case "hard_10_to_11":
		r.Double = rules.Hard10To11
	}

	switch {
	case f.ESurr && f.LSurr:
		return r, fmt.Errorf("--esurr and --lsurr are mutually exclusive")
	case f.ESurr:
		r.Surrender = rules.EarlySurrender
	case f.LSurr:
		r.Surrender = rules.LateSurrender
	case f.NoSurr:
		r.Surrender = rules.NoSurrender
	}

	if f.PlayAA && f.NoPlayAA {
		return r, fmt.Errorf("--playAA and --no-playAA are mutually exclusive")
	}
	switch {
	case f.PlayAA:
		r.PlayAcePairs = true
	case f.NoPlayAA:
		r.PlayAcePairs = false
	}

	r.MaxSplits = f.MaxSplits
	r.Decks = f.Decks

	pen, err := parsePenetration(f.Penetration, f.Decks)
	if err != nil {
		return r, err
	}
	r.PenetrationCards = pen

	if f.Holecarding && f.NoHolecarding {
		return r, fmt.Errorf("--holecarding and --no-holecarding are mutually exclusive")
	}
	switch {
	case f.Holecarding:
		r.Holecarding = true
	case f.NoHolecarding:
		r.Holecarding = false
	}

	if err := r.Validate(); err != nil {
		return r, err
	}
	return r, nil
}

// StrategyFlags is the playing-strategy half of the flag set.
type StrategyFlags struct {
	Hilo       bool     `help:"Use the hi-lo true count for insurance decisions."`
	Deviations bool     `help:"Enable the built-in count-conditioned deviations."`
	Dev        []string `name:"deviation" help:"A single deviation: <HAND>vs<DEALER>:[<>]TC ACTION."`

	Action string `help:"Force the first player-turn decision (+,=,D,V,#,S)."`

	Cards  string `help:"Comma-separated forced player starting cards."`
	Dealer string `help:"Comma-separated forced dealer cards."`

	ForceTC  *int   `help:"Force every round to begin at this true count."`
	ShoeFile string `help:"Path to a fixed card stream file instead of a shuffled shoe."`
}

// Build assembles a strategy.Strategy and the round-level scripting
// overrides (OverrideAction/SurrenderOverride) from the flags. configDevs,
// parsed from an optional HCL config file, are appended after the built-in
// and -D deviations, in default+CLI+config insertion order.
func (f *StrategyFlags) Build(configDevs []strategy.Deviation) (strategy.Strategy, *strategy.Decision, *bool, error) {
	var devs []strategy.Deviation
	if f.Deviations {
		devs = append(devs, strategy.DefaultDeviations()...)
	}
	for _, spec := range f.Dev {
		d, err := strategy.ParseDeviation(spec)
		if err != nil {
			return nil, nil, nil, err
		}
		devs = append(devs, d)
	}
	devs = append(devs, configDevs...)

	strat := strategy.New(f.Hilo, devs)

	var override *strategy.Decision
	var surrenderOverride *bool
	if f.Action != "" {
		switch f.Action {
		case "+":
			d := strategy.Hit
			override = &d
		case "=":
			d := strategy.Stand
			override = &d
		case "D":
			d := strategy.Double
			override = &d
		case "V":
			d := strategy.Split
			override = &d
		case "#", "S":
			v := true
			surrenderOverride = &v
		default:
			return nil, nil, nil, fmt.Errorf("invalid --action %q", f.Action)
		}
	}

	return strat, override, surrenderOverride, nil
}

// StartCards parses --cards into forced player starting cards.
func (f *StrategyFlags) StartCards() ([]card.Card, error) { return parseCards(f.Cards) }

// DealerCards parses --dealer into forced dealer starting cards.
func (f *StrategyFlags) DealerCards() ([]card.Card, error) { return parseCards(f.Dealer) }

// ShoeCards reads --shoe-file, if given, into a fixed card stream.
func (f *StrategyFlags) ShoeCards() ([]card.Card, error) {
	if f.ShoeFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(f.ShoeFile)
	if err != nil {
		return nil, fmt.Errorf("reading --shoe-file: %w", err)
	}
	return card.ParseShoeFile(data)
}

// BettingFlags is the bet-sizing half of the flag set.
type BettingFlags struct {
	Bet             float64  `default:"1" help:"Base bet in units."`
	BetPerTC        float64  `help:"Additional bet per point of true count above zero."`
	BetMaxTC        int      `help:"True count at which the bet ramp caps."`
	BetNegTC        *float64 `help:"Flat bet used at true count <= 0 (defaults to the base bet)."`
	BetWongoutUnder *int     `help:"Skip (wong out of) any round whose true count falls below this."`
}

// Build assembles a betting.Strategy on top of base (a zero betting.Hilo,
// or one filled from a config file's betting block), applying every flag in the
// same always-overrides-config fashion as RuleFlags.Build.
func (f *BettingFlags) Build(base betting.Hilo) betting.Strategy {
	base.Base = f.Bet
	base.PerTC = f.BetPerTC
	base.MaxTC = f.BetMaxTC
	base.NegBet = f.Bet
	if f.BetNegTC != nil {
		base.NegBet = *f.BetNegTC
	}
	if f.BetWongoutUnder != nil {
		base.WongoutUnder = f.BetWongoutUnder
	}
	return base
}
