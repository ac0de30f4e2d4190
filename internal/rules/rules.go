// Package rules defines the immutable table-rule configuration consumed by
// every strategy and round-engine decision.
package rules

import (
	"encoding/json"
	"fmt"

	"github.com/freebj/freebj/internal/hand"
)

// GameType selects whether the dealer peeks for blackjack.
type GameType int

const (
	// AHC is the American holecard game: the dealer is dealt a face-down
	// holecard and peeks it for blackjack when showing an ace or a ten.
	AHC GameType = iota
	// ENHC is the European no-holecard game: the dealer's second card is
	// not dealt (and so cannot be peeked) until after the player acts.
	ENHC
)

func (g GameType) String() string {
	if g == ENHC {
		return "enhc"
	}
	return "ahc"
}

// MarshalJSON renders the exact string enumerants the report format uses.
func (g GameType) MarshalJSON() ([]byte, error) { return json.Marshal(g.String()) }

// UnmarshalJSON parses the string enumerants back into a GameType.
func (g *GameType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "ahc":
		*g = AHC
	case "enhc":
		*g = ENHC
	default:
		return fmt.Errorf("rules: invalid game_type %q", s)
	}
	return nil
}

// Soft17 selects the dealer's action on a soft 17.
type Soft17 int

const (
	// S17 stands on a dealer soft 17.
	S17 Soft17 = iota
	// H17 hits a dealer soft 17.
	H17
)

func (s Soft17) String() string {
	if s == H17 {
		return "h17"
	}
	return "s17"
}

func (s Soft17) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *Soft17) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "s17":
		*s = S17
	case "h17":
		*s = H17
	default:
		return fmt.Errorf("rules: invalid soft17 %q", str)
	}
	return nil
}

// DoublePolicy restricts which hands may double down.
type DoublePolicy int

const (
	NoDouble DoublePolicy = iota
	AnyHand
	AnyTwo
	Hard9To11
	Hard10To11
)

func (d DoublePolicy) String() string {
	switch d {
	case NoDouble:
		return "no_double"
	case AnyHand:
		return "any_hand"
	case AnyTwo:
		return "any_two"
	case Hard9To11:
		return "hard_9_to_11"
	case Hard10To11:
		return "hard_10_to_11"
	default:
		return "any_two"
	}
}

func (d DoublePolicy) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *DoublePolicy) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "no_double":
		*d = NoDouble
	case "any_hand":
		*d = AnyHand
	case "any_two":
		*d = AnyTwo
	case "hard_9_to_11":
		*d = Hard9To11
	case "hard_10_to_11":
		*d = Hard10To11
	default:
		return fmt.Errorf("rules: invalid double policy %q", s)
	}
	return nil
}

// SurrenderPolicy restricts when a player may surrender.
type SurrenderPolicy int

const (
	NoSurrender SurrenderPolicy = iota
	EarlySurrender
	LateSurrender
)

func (s SurrenderPolicy) String() string {
	switch s {
	case EarlySurrender:
		return "early_surrender"
	case LateSurrender:
		return "late_surrender"
	default:
		return "no_surrender"
	}
}

func (s SurrenderPolicy) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *SurrenderPolicy) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "no_surrender":
		*s = NoSurrender
	case "early_surrender":
		*s = EarlySurrender
	case "late_surrender":
		*s = LateSurrender
	default:
		return fmt.Errorf("rules: invalid surrender policy %q", str)
	}
	return nil
}

// Rules is the immutable table configuration shared by every round.
type Rules struct {
	GameType         GameType        `json:"game_type"`
	Soft17           Soft17          `json:"soft17"`
	DAS              bool            `json:"das"`
	BJPays           float64         `json:"bj_pays"`
	Double           DoublePolicy    `json:"double_down"`
	Surrender        SurrenderPolicy `json:"surrender"`
	PlayAcePairs     bool            `json:"play_ace_pairs"`
	MaxSplits        int             `json:"max_splits"`
	Decks            int             `json:"decks"`
	PenetrationCards int             `json:"penetration_cards"`
	Holecarding      bool            `json:"holecarding"`
}

// Default is AHC, S17, no DAS, blackjack pays 1.5, double on any first two
// cards, no surrender, split aces closed, up to 4 hands from splitting, 6
// decks, 5 of the 6 decks (260 cards, about 83%) dealt before a reshuffle.
func Default() Rules {
	return Rules{
		GameType:         AHC,
		Soft17:           S17,
		DAS:              false,
		BJPays:           1.5,
		Double:           AnyTwo,
		Surrender:        NoSurrender,
		PlayAcePairs:     false,
		MaxSplits:        4,
		Decks:            6,
		PenetrationCards: 5 * 52,
		Holecarding:      false,
	}
}

// Validate checks the combinations that are only meaningful together,
// reported as configuration errors before any simulation starts.
func (r Rules) Validate() error {
	if r.Holecarding && r.GameType != AHC {
		return fmt.Errorf("rules: holecarding requires AHC")
	}
	if r.Surrender == LateSurrender && r.GameType == ENHC {
		return fmt.Errorf("rules: late surrender is incompatible with ENHC")
	}
	if r.Decks <= 0 {
		return fmt.Errorf("rules: decks must be positive")
	}
	if r.MaxSplits <= 0 {
		return fmt.Errorf("rules: max_splits must be positive")
	}
	if r.PenetrationCards <= 0 || r.PenetrationCards >= r.Decks*52 {
		return fmt.Errorf("rules: penetration_cards must be in (0, decks*52)")
	}
	return nil
}

// MayDouble implements the double-down legality matrix: the policy×DAS
// combination that decides whether a double is currently legal.
func (r Rules) MayDouble(h *hand.Hand) bool {
	if h.FromSplit() && !r.DAS {
		return false
	}
	switch r.Double {
	case NoDouble:
		return false
	case AnyHand:
		return true
	case AnyTwo:
		return h.Len() == 2
	case Hard9To11:
		return !h.IsSoft() && h.Value() >= 9 && h.Value() <= 11
	case Hard10To11:
		return !h.IsSoft() && h.Value() >= 10 && h.Value() <= 11
	default:
		return false
	}
}
