package game

import "errors"

// Illegal actions are rejected synchronously with state unchanged. The
// caller decides whether to re-prompt (human) or recompute (bot).
var (
	ErrHandInProgress   = errors.New("a hand is already in progress")
	ErrNotEnoughPlayers = errors.New("need at least two funded players")
	ErrWrongPhase       = errors.New("no betting allowed in this phase")
	ErrNotYourTurn      = errors.New("not this seat's turn to act")
	ErrNoSuchSeat       = errors.New("no such seat")
	ErrCheckNotAllowed  = errors.New("cannot check while facing a bet")
	ErrRaiseTooSmall    = errors.New("raise below the minimum increment")
)
