// Package config loads an optional HCL configuration file describing
// rules, betting, and deviations as an alternative to individual CLI
// flags, using hclparse and gohcl.DecodeBody.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/freebj/freebj/internal/betting"
	"github.com/freebj/freebj/internal/rules"
	"github.com/freebj/freebj/internal/strategy"
)

// File is the top-level shape of an HCL config file: a `rules` block, a
// `betting` block, and zero or more labelled `deviation "HAND" "DEALER"`
// blocks. The betting block's attribute names match the long CLI flag
// names with dashes replaced by underscores; the rules block's follow the
// rules.Rules fields (game_type, soft17, surrender, penetration_cards, ...).
type File struct {
	Rules      *RulesBlock      `hcl:"rules,block"`
	Betting    *BettingBlock    `hcl:"betting,block"`
	Deviations []DeviationBlock `hcl:"deviation,block"`
}

// RulesBlock mirrors rules.Rules with every attribute optional, so a
// config file may set only the fields it cares about; everything else
// falls through to rules.Default() (and then to any CLI flag override).
type RulesBlock struct {
	GameType         *string  `hcl:"game_type,optional"`
	Soft17           *string  `hcl:"soft17,optional"`
	DAS              *bool    `hcl:"das,optional"`
	BJPays           *float64 `hcl:"bj_pays,optional"`
	Double           *string  `hcl:"double,optional"`
	Surrender        *string  `hcl:"surrender,optional"`
	PlayAcePairs     *bool    `hcl:"play_ace_pairs,optional"`
	MaxSplits        *int     `hcl:"max_splits,optional"`
	Decks            *int     `hcl:"decks,optional"`
	PenetrationCards *int     `hcl:"penetration_cards,optional"`
	Holecarding      *bool    `hcl:"holecarding,optional"`
}

// BettingBlock mirrors the four-or-five parameter betting formula, attribute names matching their CLI flag counterparts.
type BettingBlock struct {
	Bet             *float64 `hcl:"bet,optional"`
	BetPerTC        *float64 `hcl:"bet_per_tc,optional"`
	BetMaxTC        *int     `hcl:"bet_max_tc,optional"`
	BetNegTC        *float64 `hcl:"bet_neg_tc,optional"`
	BetWongoutUnder *int     `hcl:"bet_wongout_under,optional"`
}

// DeviationBlock is one `deviation "HAND" "DEALER" { tc = "..."; action =
// "..." }` entry, reusing the same grammar -D parses for tc/action.
type DeviationBlock struct {
	Hand   string `hcl:"hand,label"`
	Dealer string `hcl:"dealer,label"`
	TC     string `hcl:"tc"`
	Action string `hcl:"action"`
}

// Load parses filename as HCL and decodes it into a File.
func Load(filename string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %s", filename, diags.Error())
	}

	var file File
	if diags := gohcl.DecodeBody(f.Body, nil, &file); diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %s", filename, diags.Error())
	}
	return &file, nil
}

// ApplyRules overlays the non-nil fields of a RulesBlock onto base,
// returning the result. A nil block (no `rules` block in the file)
// returns base unchanged.
func ApplyRules(base rules.Rules, b *RulesBlock) (rules.Rules, error) {
	if b == nil {
		return base, nil
	}
	if b.GameType != nil {
		switch *b.GameType {
		case "ahc":
			base.GameType = rules.AHC
		case "enhc":
			base.GameType = rules.ENHC
		default:
			return base, fmt.Errorf("config: invalid game_type %q", *b.GameType)
		}
	}
	if b.Soft17 != nil {
		switch *b.Soft17 {
		case "s17":
			base.Soft17 = rules.S17
		case "h17":
			base.Soft17 = rules.H17
		default:
			return base, fmt.Errorf("config: invalid soft17 %q", *b.Soft17)
		}
	}
	if b.DAS != nil {
		base.DAS = *b.DAS
	}
	if b.BJPays != nil {
		base.BJPays = *b.BJPays
	}
	if b.Double != nil {
		dp, err := parseDoublePolicy(*b.Double)
		if err != nil {
			return base, err
		}
		base.Double = dp
	}
	if b.Surrender != nil {
		sp, err := parseSurrenderPolicy(*b.Surrender)
		if err != nil {
			return base, err
		}
		base.Surrender = sp
	}
	if b.PlayAcePairs != nil {
		base.PlayAcePairs = *b.PlayAcePairs
	}
	if b.MaxSplits != nil {
		base.MaxSplits = *b.MaxSplits
	}
	if b.Decks != nil {
		base.Decks = *b.Decks
	}
	if b.PenetrationCards != nil {
		base.PenetrationCards = *b.PenetrationCards
	}
	if b.Holecarding != nil {
		base.Holecarding = *b.Holecarding
	}
	return base, nil
}

func parseDoublePolicy(s string) (rules.DoublePolicy, error) {
	switch s {
	case "no_double":
		return rules.NoDouble, nil
	case "any_hand":
		return rules.AnyHand, nil
	case "any_two":
		return rules.AnyTwo, nil
	case "hard_9_to_11":
		return rules.Hard9To11, nil
	case "hard_10_to_11":
		return rules.Hard10To11, nil
	default:
		return 0, fmt.Errorf("config: invalid double policy %q", s)
	}
}

func parseSurrenderPolicy(s string) (rules.SurrenderPolicy, error) {
	switch s {
	case "no_surrender":
		return rules.NoSurrender, nil
	case "early_surrender":
		return rules.EarlySurrender, nil
	case "late_surrender":
		return rules.LateSurrender, nil
	default:
		return 0, fmt.Errorf("config: invalid surrender policy %q", s)
	}
}

// ApplyBetting overlays the non-nil fields of a BettingBlock onto base.
func ApplyBetting(base betting.Hilo, b *BettingBlock) betting.Hilo {
	if b == nil {
		return base
	}
	if b.Bet != nil {
		base.Base = *b.Bet
	}
	if b.BetPerTC != nil {
		base.PerTC = *b.BetPerTC
	}
	if b.BetMaxTC != nil {
		base.MaxTC = *b.BetMaxTC
	}
	if b.BetNegTC != nil {
		base.NegBet = *b.BetNegTC
	}
	if b.BetWongoutUnder != nil {
		v := *b.BetWongoutUnder
		base.WongoutUnder = &v
	}
	return base
}

// Deviations parses every DeviationBlock into a strategy.Deviation, in
// file order (appended after any default/CLI deviations).
func Deviations(blocks []DeviationBlock) ([]strategy.Deviation, error) {
	out := make([]strategy.Deviation, 0, len(blocks))
	for _, b := range blocks {
		cmp := ">"
		if len(b.TC) > 0 && (b.TC[0] == '<' || b.TC[0] == '>') {
			cmp = string(b.TC[0])
		}
		spec := fmt.Sprintf("%svs%s:%s%s%s", b.Hand, b.Dealer, cmp, trimCmp(b.TC), b.Action)
		d, err := strategy.ParseDeviation(spec)
		if err != nil {
			return nil, fmt.Errorf("config: deviation %q vs %q: %w", b.Hand, b.Dealer, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func trimCmp(tc string) string {
	if len(tc) > 0 && (tc[0] == '<' || tc[0] == '>') {
		return tc[1:]
	}
	return tc
}
