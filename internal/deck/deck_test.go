package deck

import (
	"testing"

	"github.com/truman301/xcasino-sub000/internal/randutil"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	d := New(randutil.New(1))
	if d.Remaining() != 52 {
		t.Fatalf("expected 52 cards, got %d", d.Remaining())
	}

	seen := make(map[string]bool)
	for d.Remaining() > 0 {
		card := d.Deal()
		code := card.Code()
		if seen[code] {
			t.Errorf("card %s dealt twice", code)
		}
		seen[code] = true
	}
	if len(seen) != 52 {
		t.Errorf("expected 52 unique cards, got %d", len(seen))
	}
}

func TestDealReducesRemaining(t *testing.T) {
	d := New(randutil.New(2))

	cards := d.DealN(2)
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if d.Remaining() != 50 {
		t.Errorf("expected 50 remaining, got %d", d.Remaining())
	}

	d.Burn()
	if d.Remaining() != 49 {
		t.Errorf("expected 49 remaining after burn, got %d", d.Remaining())
	}
}

func TestDealtCardsAreFaceDown(t *testing.T) {
	d := New(randutil.New(3))
	card := d.Deal()
	if !card.FaceDown {
		t.Errorf("dealt card %s should be face down", card.Code())
	}
	if up := card.Revealed(); up.FaceDown {
		t.Errorf("Revealed should turn the card face up")
	}
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	a := New(randutil.New(42))
	b := New(randutil.New(42))
	for i := 0; i < 52; i++ {
		ca, cb := a.Deal(), b.Deal()
		if ca != cb {
			t.Fatalf("card %d differs between identical seeds: %s vs %s", i, ca.Code(), cb.Code())
		}
	}

	c := New(randutil.New(42))
	d := New(randutil.New(43))
	same := true
	for i := 0; i < 52; i++ {
		if c.Deal() != d.Deal() {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical shuffles")
	}
}

func TestDealFromEmptyDeckPanics(t *testing.T) {
	d := New(randutil.New(4))
	d.DealN(52)

	defer func() {
		if recover() == nil {
			t.Error("expected panic dealing from an empty deck")
		}
	}()
	d.Deal()
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		in   string
		rank Rank
		suit Suit
	}{
		{"As", Ace, Spades},
		{"Td", Ten, Diamonds},
		{"2c", Two, Clubs},
		{"Kh", King, Hearts},
	}
	for _, tt := range tests {
		card, err := ParseCard(tt.in)
		if err != nil {
			t.Errorf("ParseCard(%q) returned error: %v", tt.in, err)
			continue
		}
		if card.Rank != tt.rank || card.Suit != tt.suit {
			t.Errorf("ParseCard(%q) = %v %v, want %v %v", tt.in, card.Rank, card.Suit, tt.rank, tt.suit)
		}
		if card.Code() != tt.in {
			t.Errorf("round trip of %q gave %q", tt.in, card.Code())
		}
	}

	for _, bad := range []string{"", "A", "1s", "Ax", "AsKd"} {
		if _, err := ParseCard(bad); err == nil {
			t.Errorf("ParseCard(%q) should fail", bad)
		}
	}
}

func TestMustParseCards(t *testing.T) {
	cards := MustParseCards("AsKd2c")
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	if cards[0].Code() != "As" || cards[1].Code() != "Kd" || cards[2].Code() != "2c" {
		t.Errorf("unexpected cards: %v", cards)
	}
}

func TestCardString(t *testing.T) {
	card := Card{Rank: Ace, Suit: Spades}
	if card.String() != "A♠" {
		t.Errorf("expected A♠, got %s", card.String())
	}
	if card.Value() != 14 {
		t.Errorf("ace value should be 14, got %d", card.Value())
	}
}
