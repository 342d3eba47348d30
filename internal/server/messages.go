package server

import (
	"encoding/json"
	"fmt"

	"github.com/truman301/xcasino-sub000/internal/game"
)

// MessageType identifies a wire message.
type MessageType string

const (
	MessageTypeJoin     MessageType = "join"     // client -> server
	MessageTypeAction   MessageType = "action"   // client -> server
	MessageTypeDeal     MessageType = "deal"     // client -> server, start next hand
	MessageTypeSnapshot MessageType = "snapshot" // server -> client
	MessageTypeError    MessageType = "error"    // server -> client
	MessageTypeJoined   MessageType = "joined"   // server -> client
)

// Message is the envelope for all wire traffic.
type Message struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// NewMessage wraps data in an envelope.
func NewMessage(msgType MessageType, data any) (*Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding %s message: %w", msgType, err)
	}
	return &Message{Type: msgType, Data: raw}, nil
}

// jsonUnmarshal decodes a message payload, rejecting an absent body.
func jsonUnmarshal(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("missing message data")
	}
	return json.Unmarshal(data, v)
}

// JoinData asks for a seat at a table.
type JoinData struct {
	Table  string `json:"table"`
	Player string `json:"player"`
}

// JoinedData confirms a seat assignment.
type JoinedData struct {
	Table string `json:"table"`
	Seat  int    `json:"seat"`
}

// ActionData submits an action for a seat.
type ActionData struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// ErrorData carries a rejection back to the client.
type ErrorData struct {
	Reason string `json:"reason"`
}

// SnapshotData is the table view pushed after every state change.
type SnapshotData struct {
	HandID     string           `json:"hand_id"`
	Phase      string           `json:"phase"`
	Pot        int              `json:"pot"`
	Board      []string         `json:"board"`
	Dealer     int              `json:"dealer"`
	HighestBet int              `json:"highest_bet"`
	MinRaise   int              `json:"min_raise"`
	ActionOn   int              `json:"action_on"`
	Players    []PlayerSnapshot `json:"players"`
}

// PlayerSnapshot is one seat's public state on the wire.
type PlayerSnapshot struct {
	Seat      int      `json:"seat"`
	Name      string   `json:"name"`
	Bot       bool     `json:"bot"`
	Chips     int      `json:"chips"`
	Bet       int      `json:"bet"`
	Folded    bool     `json:"folded"`
	AllIn     bool     `json:"all_in"`
	HasCards  bool     `json:"has_cards"`
	HoleCards []string `json:"hole_cards,omitempty"`
}

// SnapshotDataFromGame converts an engine snapshot for the wire.
func SnapshotDataFromGame(snapshot game.Snapshot) SnapshotData {
	data := SnapshotData{
		HandID:     snapshot.HandID,
		Phase:      snapshot.Phase.String(),
		Pot:        snapshot.Pot,
		Board:      make([]string, len(snapshot.Board)),
		Dealer:     snapshot.Dealer,
		HighestBet: snapshot.HighestBet,
		MinRaise:   snapshot.MinRaise,
		ActionOn:   snapshot.ActionOn,
		Players:    make([]PlayerSnapshot, len(snapshot.Players)),
	}
	for i, card := range snapshot.Board {
		data.Board[i] = card.Code()
	}
	for i, p := range snapshot.Players {
		ps := PlayerSnapshot{
			Seat:     p.Seat,
			Name:     p.Name,
			Bot:      p.Bot,
			Chips:    p.Chips,
			Bet:      p.Bet,
			Folded:   p.Folded,
			AllIn:    p.AllIn,
			HasCards: p.HasCards,
		}
		for _, card := range p.HoleCards {
			ps.HoleCards = append(ps.HoleCards, card.Code())
		}
		data.Players[i] = ps
	}
	return data
}
