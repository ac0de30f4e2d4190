package strategy

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/freebj/freebj/internal/card"
)

// tableKind identifies which of the three dense lookup grids a descriptor
// belongs to.
type tableKind int

const (
	hardKind tableKind = iota
	softKind
	pairKind
)

// Deviation is a single count-conditioned override of basic strategy: when
// the current hand matches (kind, row, dealer) and the true count satisfies
// the comparator against TC, Action is taken instead of the table default.
type Deviation struct {
	Kind   tableKind
	Row    int
	Dealer card.Card
	// Above, when true, triggers when the true count is >= TC; when
	// false, triggers when the true count is <= TC.
	Above bool
	TC    int
	Action Decision
}

func (d Deviation) matches(tc int) bool {
	if d.Above {
		return tc >= d.TC
	}
	return tc <= d.TC
}

var deviationGrammar = regexp.MustCompile(`^(\d+|(?:10|[0-9TA])/(?:10|[0-9TA])|A(?:\d+|A))vs(\d+|A):([<>])([+-]?\d+)([+=DV#S])$`)

// ParseDeviation parses a single -D directive: "<HAND>vs<DEALER>:[<>]TC
// ACTION", where HAND is a hard total ("16"), a soft total ("A7"), or a pair
// ("8/8", "A/A", and a pair of tens as "T/T" or "10/10"); DEALER is the
// dealer's upcard; and ACTION is one of +(hit) =(stand) D(double) V(split).
// The surrender codes # and S match the grammar but are rejected with an
// error: a playing deviation cannot surrender.
func ParseDeviation(s string) (Deviation, error) {
	m := deviationGrammar.FindStringSubmatch(s)
	if m == nil {
		return Deviation{}, fmt.Errorf("strategy: invalid deviation syntax %q", s)
	}
	handTok, dealerTok, cmpTok, tcTok, actionTok := m[1], m[2], m[3], m[4], m[5]

	var kind tableKind
	var row int
	switch {
	case containsSlash(handTok):
		kind = pairKind
		rank, err := parsePairRank(handTok[:indexOf(handTok, '/')])
		if err != nil {
			return Deviation{}, err
		}
		row = 10 - rank
	case handTok[0] == 'A':
		kind = softKind
		if handTok == "AA" {
			row = 9
		} else {
			companion, err := strconv.Atoi(handTok[1:])
			if err != nil || companion < 1 || companion > 9 {
				return Deviation{}, fmt.Errorf("strategy: invalid soft total %q", handTok)
			}
			row = 10 - companion
		}
	default:
		kind = hardKind
		total, err := strconv.Atoi(handTok)
		if err != nil || total < 4 || total > 21 {
			return Deviation{}, fmt.Errorf("strategy: invalid hard total %q", handTok)
		}
		row = 20 - total
	}

	var dealer card.Card
	if dealerTok == "A" {
		dealer = card.Ace
	} else {
		n, err := strconv.Atoi(dealerTok)
		if err != nil || n < 1 || n > 10 {
			return Deviation{}, fmt.Errorf("strategy: invalid dealer card %q", dealerTok)
		}
		dealer = card.Card(n)
	}

	tc, err := strconv.Atoi(tcTok)
	if err != nil {
		return Deviation{}, fmt.Errorf("strategy: invalid true count %q", tcTok)
	}

	var action Decision
	switch actionTok {
	case "+":
		action = Hit
	case "=":
		action = Stand
	case "D":
		action = Double
	case "V":
		action = Split
	default:
		return Deviation{}, fmt.Errorf("strategy: %q is a surrender action, not valid in a playing deviation", actionTok)
	}

	return Deviation{
		Kind:   kind,
		Row:    row,
		Dealer: dealer,
		Above:  cmpTok == ">",
		TC:     tc,
		Action: action,
	}, nil
}

func containsSlash(s string) bool { return indexOf(s, '/') >= 0 }

func indexOf(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func parsePairRank(s string) (int, error) {
	switch s {
	case "A":
		return 1, nil
	case "T", "10":
		return 10, nil
	default:
		n, err := strconv.Atoi(s)
		if err != nil || n < 2 || n > 9 {
			return 0, fmt.Errorf("strategy: invalid pair rank %q", s)
		}
		return n, nil
	}
}

// DefaultDeviations returns the hi-lo playing deviations enabled by
// --deviations, in a fixed order where the first match wins: eighteen
// well-known public hi-lo index plays, all on hard totals. The list has no
// pair-split, soft-total, insurance or surrender entries.
func DefaultDeviations() []Deviation {
	hard := func(total int, dealer card.Card, above bool, tc int, action Decision) Deviation {
		return Deviation{Kind: hardKind, Row: 20 - total, Dealer: dealer, Above: above, TC: tc, Action: action}
	}
	return []Deviation{
		hard(16, 10, true, 0, Stand),
		hard(15, 10, true, 4, Stand),
		hard(10, 10, true, 4, Double),
		hard(12, 3, true, 2, Stand),
		hard(12, 2, true, 3, Stand),
		hard(11, card.Ace, true, 1, Double),
		hard(9, 2, true, 1, Double),
		hard(10, card.Ace, true, 4, Double),
		hard(9, 7, true, 3, Double),
		hard(16, 9, true, 5, Stand),
		hard(13, 2, false, -1, Hit),
		hard(12, 4, false, 0, Hit),
		hard(12, 5, false, -2, Hit),
		hard(12, 6, false, -1, Hit),
		hard(13, 3, false, -2, Hit),
		hard(14, 10, true, 3, Stand),
		hard(15, 9, true, 5, Stand),
		hard(10, 9, true, 3, Double),
	}
}
