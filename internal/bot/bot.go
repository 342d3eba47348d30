package bot

import (
	rand "math/rand/v2"

	"github.com/truman301/xcasino-sub000/internal/deck"
	"github.com/truman301/xcasino-sub000/internal/game"
)

// View is everything a bot sees when deciding: its own cards, the public
// table state and the current price to play.
type View struct {
	HoleCards []deck.Card
	Board     []deck.Card
	Phase     game.Phase
	Chips     int // remaining stack
	Bet       int // contribution to the current round
	HighBet   int
	MinRaise  int
	Pot       int
}

// toCall returns the price of continuing.
func (v View) toCall() int {
	return v.HighBet - v.Bet
}

// Decision is a bot's chosen action. RaiseTo is the target round
// contribution and only meaningful for Raise.
type Decision struct {
	Action  game.Action
	RaiseTo int
}

// Policy is a stateless decision function over a view and an injected RNG.
// BluffChance is the probability that a decision is overridden by the
// loose/bluff branch; zero disables it, which tests rely on.
type Policy struct {
	BigBlind    int
	BluffChance float64
}

// New creates a policy with the default bluff frequency.
func New(bigBlind int) *Policy {
	return &Policy{BigBlind: bigBlind, BluffChance: 0.08}
}

// Decide maps the view to an action. It is a pure function of the view and
// the RNG; the returned decision always respects the bot's stack and the
// table's minimum raise.
func (p *Policy) Decide(rng *rand.Rand, v View) Decision {
	if p.BluffChance > 0 && rng.Float64() < p.BluffChance {
		return p.clamp(v, p.bluff(rng, v))
	}
	if v.Phase == game.PreFlop {
		return p.clamp(v, p.decidePreflop(rng, v))
	}
	return p.clamp(v, p.decidePostflop(rng, v))
}

// bluff is the randomized loose branch that runs ahead of the real logic to
// keep the bot unpredictable.
func (p *Policy) bluff(rng *rand.Rand, v View) Decision {
	if rng.Float64() < 0.5 {
		return Decision{Action: game.Raise, RaiseTo: v.HighBet + (2+rng.IntN(3))*p.BigBlind}
	}
	if v.toCall() == 0 {
		return Decision{Action: game.Check}
	}
	return Decision{Action: game.Call}
}

// clamp enforces the downgrade rules: a raise is capped at the stack and
// must beat the current bet by the minimum increment or it becomes a call;
// a call the stack cannot cover becomes all-in; a free call is a check.
func (p *Policy) clamp(v View, d Decision) Decision {
	if d.Action == game.Raise {
		if d.RaiseTo < v.HighBet+v.MinRaise {
			d.RaiseTo = v.HighBet + v.MinRaise
		}
		if maxTo := v.Chips + v.Bet; d.RaiseTo >= maxTo {
			if maxTo > v.HighBet {
				return Decision{Action: game.AllIn}
			}
			// Cannot exceed the current bet at all; the raise degrades to
			// calling for the rest of the stack.
			d = Decision{Action: game.Call}
		}
	}
	if d.Action == game.Call {
		switch toCall := v.toCall(); {
		case toCall == 0:
			return Decision{Action: game.Check}
		case toCall >= v.Chips:
			return Decision{Action: game.AllIn}
		}
	}
	return d
}
