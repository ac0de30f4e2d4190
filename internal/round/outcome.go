package round

import "github.com/freebj/freebj/internal/hand"

// Outcome classifies a settled hand for statistics purposes.
type Outcome int

const (
	Win Outcome = iota
	Push
	Lose
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Push:
		return "push"
	default:
		return "lose"
	}
}

// settle determines the outcome and normalized result (a multiple of the
// original 1-unit bet) of a played hand against the dealer's final hand.
func settle(player, dealer *hand.Hand, bjPays float64) (Outcome, float64) {
	outcome, res := func() (Outcome, float64) {
		switch {
		case player.Surrendered():
			return Lose, -0.5
		case player.IsBusted():
			return Lose, -1.0
		case player.IsBlackjack() && !dealer.IsBlackjack():
			return Win, bjPays
		case dealer.IsBusted():
			return Win, 1.0
		default:
			playerVal := player.Value()
			if player.IsBlackjack() {
				playerVal++
			}
			dealerVal := dealer.Value()
			if dealer.IsBlackjack() {
				dealerVal++
			}
			switch {
			case playerVal == dealerVal:
				return Push, 0.0
			case playerVal > dealerVal:
				return Win, 1.0
			default:
				return Lose, -1.0
			}
		}
	}()

	if player.Doubled() {
		res *= 2.0
	}

	if player.Insured() {
		if dealer.IsBlackjack() {
			res += 1.0
		} else {
			res -= 0.5
		}
	}

	return outcome, res
}
