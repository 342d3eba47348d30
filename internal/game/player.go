package game

import "github.com/truman301/xcasino-sub000/internal/deck"

// player is the engine's per-seat state. It is internal; callers only ever
// see PlayerSnapshot values.
type player struct {
	Seat      int
	Name      string
	Bot       bool
	Chips     int
	HoleCards []deck.Card
	Folded    bool
	AllIn     bool
	Bet       int // contribution to the current betting round
	TotalBet  int // contribution to the whole hand
	Acted     bool
}

// resetForHand clears per-hand state, keeping identity and stack.
func (p *player) resetForHand() {
	p.HoleCards = nil
	p.Folded = false
	p.AllIn = false
	p.Bet = 0
	p.TotalBet = 0
	p.Acted = false
}

// canAct returns true if the player may still take actions this hand.
func (p *player) canAct() bool {
	return !p.Folded && !p.AllIn
}

// commit moves up to amount chips from the stack into the current bet,
// returning the amount actually moved. Emptying the stack marks all-in.
func (p *player) commit(amount int) int {
	if amount > p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
	return amount
}
