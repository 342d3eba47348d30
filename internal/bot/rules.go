package bot

import (
	rand "math/rand/v2"

	"github.com/truman301/xcasino-sub000/internal/evaluator"
	"github.com/truman301/xcasino-sub000/internal/game"
)

// The heuristics are ordered rule tables evaluated top-down: the first band
// the hand falls into decides. Thresholds are tunable and deliberately
// approximate.

type preflopRule struct {
	minScore float64
	decide   func(p *Policy, rng *rand.Rand, v View) Decision
}

var preflopRules = []preflopRule{
	{minScore: 26, decide: (*Policy).preflopStrong},
	{minScore: 19, decide: (*Policy).preflopMedium},
	{minScore: 14, decide: (*Policy).preflopPlayable},
	{minScore: 0, decide: (*Policy).preflopWeak},
}

func (p *Policy) decidePreflop(rng *rand.Rand, v View) Decision {
	score := preflopScore(v.HoleCards)
	for _, rule := range preflopRules {
		if score >= rule.minScore {
			return rule.decide(p, rng, v)
		}
	}
	return Decision{Action: game.Fold}
}

// preflopStrong open-raises 3-5 big blinds and re-raises over bets.
func (p *Policy) preflopStrong(rng *rand.Rand, v View) Decision {
	target := (3 + rng.IntN(3)) * p.BigBlind
	if target <= v.HighBet {
		target = v.HighBet + v.MinRaise
	}
	return Decision{Action: game.Raise, RaiseTo: target}
}

// preflopMedium raises or calls depending on how big the bet is relative to
// the big blind.
func (p *Policy) preflopMedium(rng *rand.Rand, v View) Decision {
	if v.toCall() == 0 {
		if rng.Float64() < 0.5 {
			return Decision{Action: game.Raise, RaiseTo: 3 * p.BigBlind}
		}
		return Decision{Action: game.Check}
	}
	if v.HighBet <= 3*p.BigBlind {
		return Decision{Action: game.Call}
	}
	return Decision{Action: game.Fold}
}

// preflopPlayable calls only small bets, otherwise checks or folds.
func (p *Policy) preflopPlayable(_ *rand.Rand, v View) Decision {
	switch toCall := v.toCall(); {
	case toCall == 0:
		return Decision{Action: game.Check}
	case toCall <= p.BigBlind:
		return Decision{Action: game.Call}
	default:
		return Decision{Action: game.Fold}
	}
}

// preflopWeak checks when free, otherwise folds.
func (p *Policy) preflopWeak(_ *rand.Rand, v View) Decision {
	if v.toCall() == 0 {
		return Decision{Action: game.Check}
	}
	return Decision{Action: game.Fold}
}

type postflopRule struct {
	minCategory evaluator.Category
	decide      func(p *Policy, rng *rand.Rand, v View, made evaluator.Category) Decision
}

var postflopRules = []postflopRule{
	{minCategory: evaluator.FullHouse, decide: (*Policy).postflopMonster},
	{minCategory: evaluator.Straight, decide: (*Policy).postflopStrong},
	{minCategory: evaluator.TwoPair, decide: (*Policy).postflopSolid},
	{minCategory: evaluator.OnePair, decide: (*Policy).postflopPair},
	{minCategory: evaluator.HighCard, decide: (*Policy).postflopAir},
}

func (p *Policy) decidePostflop(rng *rand.Rand, v View) Decision {
	made := evaluator.EvaluateBest(v.HoleCards, v.Board).Category
	for _, rule := range postflopRules {
		if made >= rule.minCategory {
			return rule.decide(p, rng, v, made)
		}
	}
	return Decision{Action: game.Fold}
}

// postflopMonster bets the pot with a full house or better.
func (p *Policy) postflopMonster(_ *rand.Rand, v View, _ evaluator.Category) Decision {
	return Decision{Action: game.Raise, RaiseTo: v.HighBet + v.Pot}
}

// postflopStrong raises most of the time with a straight or flush.
func (p *Policy) postflopStrong(rng *rand.Rand, v View, _ evaluator.Category) Decision {
	if rng.Float64() < 0.7 {
		return Decision{Action: game.Raise, RaiseTo: v.HighBet + v.Pot/2}
	}
	if v.toCall() == 0 {
		return Decision{Action: game.Check}
	}
	return Decision{Action: game.Call}
}

// postflopSolid makes a smaller raise or calls with two pair or trips.
func (p *Policy) postflopSolid(rng *rand.Rand, v View, _ evaluator.Category) Decision {
	if rng.Float64() < 0.5 {
		target := v.HighBet + v.Pot/4
		if target < v.HighBet+v.MinRaise {
			target = v.HighBet + v.MinRaise
		}
		return Decision{Action: game.Raise, RaiseTo: target}
	}
	if v.toCall() == 0 {
		return Decision{Action: game.Check}
	}
	return Decision{Action: game.Call}
}

// postflopPair continues only when the price is cheap relative to the pot
// or the blinds.
func (p *Policy) postflopPair(_ *rand.Rand, v View, _ evaluator.Category) Decision {
	toCall := v.toCall()
	switch {
	case toCall == 0:
		return Decision{Action: game.Check}
	case toCall <= v.Pot/4 || toCall <= 2*p.BigBlind:
		return Decision{Action: game.Call}
	default:
		return Decision{Action: game.Fold}
	}
}

// postflopAir checks when free and folds to bets, with a small chance of
// calling a minimal one.
func (p *Policy) postflopAir(rng *rand.Rand, v View, _ evaluator.Category) Decision {
	toCall := v.toCall()
	if toCall == 0 {
		return Decision{Action: game.Check}
	}
	if toCall <= p.BigBlind && rng.Float64() < 0.1 {
		return Decision{Action: game.Call}
	}
	return Decision{Action: game.Fold}
}
