package game

import (
	"time"

	"github.com/truman301/xcasino-sub000/internal/deck"
	"github.com/truman301/xcasino-sub000/internal/evaluator"
)

// EventType identifies a game domain event
type EventType string

const (
	EventTypeHandStarted  EventType = "hand_started"
	EventTypeActionTaken  EventType = "action_taken"
	EventTypePhaseChanged EventType = "phase_changed"
	EventTypeShowdown     EventType = "showdown"
	EventTypeHandEnded    EventType = "hand_ended"
)

// Event is a log entry emitted by an engine operation. StartHand and
// ApplyAction return the events they produced; the engine keeps no bus.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

type eventStamp struct {
	at time.Time
}

func (e eventStamp) Timestamp() time.Time { return e.at }

func stamp() eventStamp { return eventStamp{at: time.Now()} }

// HandStartedEvent is emitted when blinds have been posted and hole cards dealt.
type HandStartedEvent struct {
	eventStamp
	HandID     string
	Dealer     int
	SmallBlind BlindPost
	BigBlind   BlindPost
}

// BlindPost records a forced bet.
type BlindPost struct {
	Seat   int
	Amount int
}

func (HandStartedEvent) EventType() EventType { return EventTypeHandStarted }

// ActionTakenEvent is emitted for every applied action.
type ActionTakenEvent struct {
	eventStamp
	Seat   int
	Action Action
	Amount int // chips moved into the pot by this action
	Pot    int
	Phase  Phase
}

func (ActionTakenEvent) EventType() EventType { return EventTypeActionTaken }

// PhaseChangedEvent is emitted when the hand advances to a new phase.
type PhaseChangedEvent struct {
	eventStamp
	Phase Phase
	Board []deck.Card
}

func (PhaseChangedEvent) EventType() EventType { return EventTypePhaseChanged }

// ShowdownResult is one surviving player's revealed hand.
type ShowdownResult struct {
	Seat      int
	Name      string
	HoleCards []deck.Card
	Hand      evaluator.HandResult
}

// ShowdownEvent is emitted when surviving hands are compared.
type ShowdownEvent struct {
	eventStamp
	Results []ShowdownResult
}

func (ShowdownEvent) EventType() EventType { return EventTypeShowdown }

// HandEndedEvent is emitted once the pot has been awarded.
type HandEndedEvent struct {
	eventStamp
	HandID  string
	Pot     int
	Winners []PotShare
	Reason  string // "fold" or "showdown"
	Board   []deck.Card
}

// PotShare records one winner's cut of the pot.
type PotShare struct {
	Seat   int
	Name   string
	Amount int
}

func (HandEndedEvent) EventType() EventType { return EventTypeHandEnded }
