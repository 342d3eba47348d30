package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the single-letter suit code used in card notation (e.g. "s" in "As").
func (s Suit) Letter() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// Rank represents a card rank. Aces are high (14).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

const rankLetters = "23456789TJQKA"

// String returns the string representation of a rank
func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return string(rankLetters[r-Two])
}

// Card represents a playing card. The FaceDown flag is presentation state
// only; it never affects evaluation or comparison.
type Card struct {
	Rank     Rank
	Suit     Suit
	FaceDown bool
}

// NewCard creates a new face-down card
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit, FaceDown: true}
}

// String returns the string representation of a card (e.g. "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Code returns the two-character card notation (e.g. "As", "Td").
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Letter()
}

// Value returns the numeric value of the card for comparison
func (c Card) Value() int {
	return int(c.Rank)
}

// Revealed returns a copy of the card turned face up.
func (c Card) Revealed() Card {
	c.FaceDown = false
	return c
}

// ParseCard parses two-character card notation like "As" or "Td".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q: want 2 characters", s)
	}

	idx := strings.IndexByte(rankLetters, s[0])
	if idx < 0 {
		return Card{}, fmt.Errorf("invalid card %q: unknown rank %q", s, s[0])
	}
	rank := Two + Rank(idx)

	var suit Suit
	switch s[1] {
	case 's':
		suit = Spades
	case 'h':
		suit = Hearts
	case 'd':
		suit = Diamonds
	case 'c':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid card %q: unknown suit %q", s, s[1])
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// MustParseCards parses concatenated card notation like "AsKd2c" and panics
// on malformed input. Intended for tests and fixtures.
func MustParseCards(s string) []Card {
	if len(s)%2 != 0 {
		panic(fmt.Sprintf("invalid card string %q", s))
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		card, err := ParseCard(s[i : i+2])
		if err != nil {
			panic(err)
		}
		cards = append(cards, card)
	}
	return cards
}
