package game

import "github.com/truman301/xcasino-sub000/internal/deck"

// Snapshot is an immutable view of the table, safe to hand to the
// presentation layer. Hole cards appear only for the requesting seat and
// for seats revealed at showdown.
type Snapshot struct {
	HandID     string
	Phase      Phase
	Pot        int
	Board      []deck.Card
	Dealer     int
	HighestBet int
	MinRaise   int
	ActionOn   int // -1 when nobody is to act
	Players    []PlayerSnapshot
}

// PlayerSnapshot is one seat's public state.
type PlayerSnapshot struct {
	Seat      int
	Name      string
	Bot       bool
	Chips     int
	Bet       int
	TotalBet  int
	Folded    bool
	AllIn     bool
	HasCards  bool
	HoleCards []deck.Card // populated for the viewer's seat and at showdown
}

// Snapshot returns the public view of the table.
func (t *Table) Snapshot() Snapshot {
	return t.snapshotFor(-1)
}

// SnapshotFor returns the view for one seat, including its own hole cards.
func (t *Table) SnapshotFor(seat int) Snapshot {
	return t.snapshotFor(seat)
}

func (t *Table) snapshotFor(viewer int) Snapshot {
	snap := Snapshot{
		HandID:     t.handID,
		Phase:      t.phase,
		Pot:        t.pot,
		Board:      append([]deck.Card(nil), t.board...),
		Dealer:     t.dealer,
		HighestBet: t.highestBet,
		MinRaise:   t.minRaise,
		ActionOn:   t.actionOn,
		Players:    make([]PlayerSnapshot, len(t.players)),
	}
	for i, p := range t.players {
		ps := PlayerSnapshot{
			Seat:     p.Seat,
			Name:     p.Name,
			Bot:      p.Bot,
			Chips:    p.Chips,
			Bet:      p.Bet,
			TotalBet: p.TotalBet,
			Folded:   p.Folded,
			AllIn:    p.AllIn,
			HasCards: len(p.HoleCards) > 0,
		}
		if len(p.HoleCards) > 0 && (i == viewer || t.revealed[i]) {
			ps.HoleCards = revealAll(p.HoleCards)
		}
		snap.Players[i] = ps
	}
	return snap
}

func revealAll(cards []deck.Card) []deck.Card {
	out := make([]deck.Card, len(cards))
	for i, c := range cards {
		out[i] = c.Revealed()
	}
	return out
}
