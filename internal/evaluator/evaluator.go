package evaluator

import (
	"sort"

	"github.com/truman301/xcasino-sub000/internal/deck"
)

// Category enumerates hand categories from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable category description
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// HandResult is a total ordering key for a hand: the category first, then
// the tie-break values compared element-wise.
type HandResult struct {
	Category  Category
	TieBreaks []int
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 for a genuine tie.
func Compare(a, b HandResult) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	n := min(len(a.TieBreaks), len(b.TieBreaks))
	for i := 0; i < n; i++ {
		if a.TieBreaks[i] != b.TieBreaks[i] {
			if a.TieBreaks[i] > b.TieBreaks[i] {
				return 1
			}
			return -1
		}
	}
	// Only partial hands (fewer than five cards) differ in length; the hand
	// with more cards wins on full exhaustion of the shorter list.
	switch {
	case len(a.TieBreaks) > len(b.TieBreaks):
		return 1
	case len(a.TieBreaks) < len(b.TieBreaks):
		return -1
	}
	return 0
}

// EvaluateBest finds the best five-card hand from 0-2 hole cards and 0-5
// board cards. With fewer than five cards in total it returns a high-card
// result over the available cards, used for display only before the flop.
func EvaluateBest(hole, board []deck.Card) HandResult {
	cards := make([]deck.Card, 0, 7)
	cards = append(cards, hole...)
	cards = append(cards, board...)

	if len(cards) < 5 {
		values := make([]int, len(cards))
		for i, c := range cards {
			values[i] = c.Value()
		}
		sort.Sort(sort.Reverse(sort.IntSlice(values)))
		return HandResult{Category: HighCard, TieBreaks: values}
	}

	best := HandResult{Category: HighCard}
	first := true
	pick := make([]deck.Card, 5)

	// Enumerate every 5-card subset; at most C(7,5)=21 of them.
	n := len(cards)
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						pick[0], pick[1], pick[2], pick[3], pick[4] =
							cards[a], cards[b], cards[c], cards[d], cards[e]
						result := scoreFive(pick)
						if first || Compare(result, best) > 0 {
							best = result
							first = false
						}
					}
				}
			}
		}
	}
	return best
}

// scoreFive scores exactly five cards.
func scoreFive(cards []deck.Card) HandResult {
	values := make([]int, 5)
	flush := true
	for i, c := range cards {
		values[i] = c.Value()
		if c.Suit != cards[0].Suit {
			flush = false
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	straightHigh := straightHighCard(values)

	if flush && straightHigh > 0 {
		if straightHigh == int(deck.Ace) {
			return HandResult{Category: RoyalFlush, TieBreaks: []int{straightHigh}}
		}
		return HandResult{Category: StraightFlush, TieBreaks: []int{straightHigh}}
	}

	// Group values into (value, count) pairs ordered by count then value,
	// which yields the tie-break order for every paired category.
	groups := groupValues(values)

	switch {
	case groups[0].count == 4:
		return HandResult{Category: FourOfAKind, TieBreaks: []int{groups[0].value, groups[1].value}}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandResult{Category: FullHouse, TieBreaks: []int{groups[0].value, groups[1].value}}
	case flush:
		return HandResult{Category: Flush, TieBreaks: values}
	case straightHigh > 0:
		return HandResult{Category: Straight, TieBreaks: []int{straightHigh}}
	case groups[0].count == 3:
		return HandResult{Category: ThreeOfAKind, TieBreaks: []int{groups[0].value, groups[1].value, groups[2].value}}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandResult{Category: TwoPair, TieBreaks: []int{groups[0].value, groups[1].value, groups[2].value}}
	case groups[0].count == 2:
		return HandResult{Category: OnePair, TieBreaks: []int{groups[0].value, groups[1].value, groups[2].value, groups[3].value}}
	default:
		return HandResult{Category: HighCard, TieBreaks: values}
	}
}

type valueGroup struct {
	value int
	count int
}

// groupValues groups sorted-descending values by multiplicity, ordered by
// count descending then value descending.
func groupValues(values []int) []valueGroup {
	var groups []valueGroup
	for _, v := range values {
		if len(groups) > 0 && groups[len(groups)-1].value == v {
			groups[len(groups)-1].count++
			continue
		}
		groups = append(groups, valueGroup{value: v})
		groups[len(groups)-1].count = 1
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].value > groups[j].value
	})
	return groups
}

// straightHighCard returns the high card of a straight formed by the five
// descending values, or 0 if they do not form one. The wheel (A-2-3-4-5)
// reports a high card of 5, not 14.
func straightHighCard(values []int) int {
	// Wheel check before the run check since the ace sorts high.
	if values[0] == int(deck.Ace) && values[1] == 5 && values[2] == 4 && values[3] == 3 && values[4] == 2 {
		return 5
	}
	for i := 1; i < 5; i++ {
		if values[i] != values[i-1]-1 {
			return 0
		}
	}
	return values[0]
}
