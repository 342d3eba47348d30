package bot

import "github.com/truman301/xcasino-sub000/internal/deck"

// preflopScore is a heuristic starting-hand strength: pairs score their
// rank doubled plus a constant, unpaired hands score high + 0.6*low with
// bonuses for suitedness and connectedness.
func preflopScore(hole []deck.Card) float64 {
	if len(hole) != 2 {
		return 0
	}
	hi, lo := hole[0], hole[1]
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}

	if hi.Rank == lo.Rank {
		return float64(2*hi.Value()) + 6
	}

	score := float64(hi.Value()) + 0.6*float64(lo.Value())
	if hi.Suit == lo.Suit {
		score += 2
	}
	switch gap := hi.Value() - lo.Value() - 1; {
	case gap <= 1:
		score += 1
	case gap == 2:
		score += 0.5
	}
	return score
}
