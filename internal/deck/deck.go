package deck

import (
	rand "math/rand/v2"
)

// Deck represents an ordered 52-card deck, consumed from the front.
// The RNG is always injected so that shuffles are reproducible in tests.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a shuffled 52-card deck using the provided RNG.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.shuffle()
	return d
}

func (d *Deck) shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the top card. Running a correctly sized deck dry
// is a programmer error, so exhaustion panics rather than returning an error.
func (d *Deck) Deal() Card {
	if len(d.cards) == 0 {
		panic("deck: dealt from an empty deck")
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card
}

// DealN deals n cards from the top of the deck.
func (d *Deck) DealN(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = d.Deal()
	}
	return cards
}

// Burn discards the top card face down, per standard dealing convention
// before each board reveal.
func (d *Deck) Burn() {
	d.Deal()
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
