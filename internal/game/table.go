package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/truman301/xcasino-sub000/internal/deck"
	"github.com/truman301/xcasino-sub000/internal/evaluator"
)

// Config holds the table stakes.
type Config struct {
	SmallBlind int
	BigBlind   int
}

// Seat describes one participant when the table is created.
type Seat struct {
	Name  string
	Bot   bool
	Chips int
}

// Table owns one hand at a time from blind posting through settlement. It is
// not safe for concurrent use; callers must serialise StartHand and
// ApplyAction per table. All randomness comes from the injected RNG.
type Table struct {
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger
	ledger Ledger

	players  []*player
	dealer   int
	phase    Phase
	board    []deck.Card
	pot      int
	revealed []bool

	highestBet int
	minRaise   int
	actionOn   int

	cards  *deck.Deck
	handID string
}

// NewTable creates a table in the Idle phase.
func NewTable(cfg Config, seats []Seat, rng *rand.Rand, ledger Ledger, logger *log.Logger) *Table {
	t := &Table{
		cfg:      cfg,
		rng:      rng,
		logger:   logger.WithPrefix("table"),
		ledger:   ledger,
		players:  make([]*player, len(seats)),
		dealer:   -1,
		phase:    Idle,
		actionOn: -1,
		revealed: make([]bool, len(seats)),
	}
	for i, s := range seats {
		t.players[i] = &player{Seat: i, Name: s.Name, Bot: s.Bot, Chips: s.Chips}
	}
	return t
}

// Phase returns the current phase.
func (t *Table) Phase() Phase { return t.phase }

// ActionOn returns the seat that must act next, or -1.
func (t *Table) ActionOn() int { return t.actionOn }

// Pot returns the current pot total.
func (t *Table) Pot() int { return t.pot }

// IsBot reports whether the given seat is played by a bot.
func (t *Table) IsBot(seat int) bool {
	return seat >= 0 && seat < len(t.players) && t.players[seat].Bot
}

// StartHand rotates the dealer, resets per-hand state, shuffles a fresh
// deck, deals hole cards and posts the blinds. Legal only from Idle or
// HandOver. Seats without chips sit the hand out.
func (t *Table) StartHand() (Snapshot, []Event, error) {
	if t.phase != Idle && t.phase != HandOver {
		return Snapshot{}, nil, ErrHandInProgress
	}

	funded := 0
	for _, p := range t.players {
		if p.Chips > 0 {
			funded++
		}
	}
	if funded < 2 {
		return Snapshot{}, nil, ErrNotEnoughPlayers
	}

	for i, p := range t.players {
		p.resetForHand()
		t.revealed[i] = false
		if p.Chips == 0 {
			p.Folded = true // sitting out this hand
		}
	}

	t.dealer = t.nextFunded(t.dealer + 1)
	t.handID = uuid.NewString()
	t.board = t.board[:0]
	t.pot = 0
	t.cards = deck.New(t.rng)

	for _, p := range t.players {
		if !p.Folded {
			p.HoleCards = t.cards.DealN(2)
		}
	}

	// Heads-up the dealer posts the small blind; otherwise the two seats
	// after the dealer post.
	var sbSeat int
	if funded == 2 {
		sbSeat = t.dealer
	} else {
		sbSeat = t.nextFunded(t.dealer + 1)
	}
	bbSeat := t.nextFunded(sbSeat + 1)

	sbAmount := t.players[sbSeat].commit(t.cfg.SmallBlind)
	bbAmount := t.players[bbSeat].commit(t.cfg.BigBlind)
	t.pot += sbAmount + bbAmount

	t.phase = PreFlop
	t.highestBet = t.cfg.BigBlind
	t.minRaise = t.cfg.BigBlind
	t.actionOn = t.nextActor(bbSeat + 1)

	events := []Event{HandStartedEvent{
		eventStamp: stamp(),
		HandID:     t.handID,
		Dealer:     t.dealer,
		SmallBlind: BlindPost{Seat: sbSeat, Amount: sbAmount},
		BigBlind:   BlindPost{Seat: bbSeat, Amount: bbAmount},
	}}

	t.logger.Debug("hand started",
		"handID", t.handID, "dealer", t.dealer,
		"sb", sbSeat, "bb", bbSeat, "pot", t.pot)

	// Blinds can put everyone all-in before anybody gets to act.
	if t.actionOn == -1 {
		t.advancePhase(&events)
	}

	return t.Snapshot(), events, nil
}

// ApplyAction validates and applies one action for the given seat. Illegal
// actions are rejected with the table unchanged. The returned events cover
// everything the action caused, including phase changes and settlement.
func (t *Table) ApplyAction(seat int, action Action, amount int) (Snapshot, []Event, error) {
	if seat < 0 || seat >= len(t.players) {
		return Snapshot{}, nil, ErrNoSuchSeat
	}
	if !t.phase.Betting() {
		return Snapshot{}, nil, ErrWrongPhase
	}
	if seat != t.actionOn {
		return Snapshot{}, nil, fmt.Errorf("%w: seat %d (action is on %d)", ErrNotYourTurn, seat, t.actionOn)
	}

	p := t.players[seat]
	moved := 0

	switch action {
	case Fold:
		p.Folded = true
		p.Acted = true

	case Check:
		if p.Bet != t.highestBet {
			return Snapshot{}, nil, fmt.Errorf("%w: %d to call", ErrCheckNotAllowed, t.highestBet-p.Bet)
		}
		p.Acted = true

	case Call:
		moved = p.commit(t.highestBet - p.Bet)
		p.Acted = true

	case Raise:
		target := amount
		if max := p.Chips + p.Bet; target > max {
			target = max
		}
		if target < t.highestBet+t.minRaise && target < p.Chips+p.Bet {
			return Snapshot{}, nil, fmt.Errorf("%w: minimum %d", ErrRaiseTooSmall, t.highestBet+t.minRaise)
		}
		if target <= t.highestBet {
			return Snapshot{}, nil, fmt.Errorf("%w: must exceed %d", ErrRaiseTooSmall, t.highestBet)
		}
		moved = p.commit(target - p.Bet)
		t.applyRaiseTo(p)

	case AllIn:
		moved = p.commit(p.Chips)
		if p.Bet > t.highestBet {
			// Counts as a raise and reopens the round. An all-in below the
			// highest bet is a call for less and does not.
			t.applyRaiseTo(p)
		} else {
			p.Acted = true
		}
	}

	t.pot += moved

	events := []Event{ActionTakenEvent{
		eventStamp: stamp(),
		Seat:       seat,
		Action:     action,
		Amount:     moved,
		Pot:        t.pot,
		Phase:      t.phase,
	}}

	t.logger.Debug("action applied",
		"seat", seat, "player", p.Name, "action", action,
		"amount", moved, "pot", t.pot, "phase", t.phase)

	if t.remainingInHand() == 1 {
		t.awardFoldWin(&events)
		return t.Snapshot(), events, nil
	}

	if t.roundComplete() {
		t.advancePhase(&events)
	} else {
		t.actionOn = t.nextActor(seat + 1)
	}

	return t.Snapshot(), events, nil
}

// applyRaiseTo updates the price after p raised to p.Bet and reopens the
// round: everyone else who can still act must respond to the new bet.
func (t *Table) applyRaiseTo(p *player) {
	if inc := p.Bet - t.highestBet; inc > t.minRaise {
		t.minRaise = inc
	}
	t.highestBet = p.Bet
	for _, other := range t.players {
		if other != p && other.canAct() {
			other.Acted = false
		}
	}
	p.Acted = true
}

// roundComplete reports whether every player who can still act has acted
// and matched the highest bet.
func (t *Table) roundComplete() bool {
	for _, p := range t.players {
		if p.canAct() && (!p.Acted || p.Bet != t.highestBet) {
			return false
		}
	}
	return true
}

// advancePhase resets the betting round and deals the next street. If fewer
// than two players can still act it keeps dealing through to showdown.
func (t *Table) advancePhase(events *[]Event) {
	for {
		for _, p := range t.players {
			p.Bet = 0
			p.Acted = false
		}
		t.highestBet = 0
		t.minRaise = t.cfg.BigBlind
		t.actionOn = -1

		switch t.phase {
		case PreFlop:
			t.phase = Flop
			t.cards.Burn()
			t.dealBoard(3)
		case Flop:
			t.phase = Turn
			t.cards.Burn()
			t.dealBoard(1)
		case Turn:
			t.phase = River
			t.cards.Burn()
			t.dealBoard(1)
		case River:
			t.showdown(events)
			return
		}

		*events = append(*events, PhaseChangedEvent{
			eventStamp: stamp(),
			Phase:      t.phase,
			Board:      append([]deck.Card(nil), t.board...),
		})
		t.logger.Debug("phase advanced", "phase", t.phase, "board", t.board, "pot", t.pot)

		if t.countCanAct() < 2 {
			continue
		}
		t.actionOn = t.nextActor(t.dealer + 1)
		return
	}
}

func (t *Table) dealBoard(n int) {
	for i := 0; i < n; i++ {
		t.board = append(t.board, t.cards.Deal().Revealed())
	}
}

// showdown evaluates every surviving hand against the board, reveals hole
// cards and splits the pot among the tied best hands. Odd chips go to the
// earliest tied seat after the dealer.
func (t *Table) showdown(events *[]Event) {
	t.phase = Showdown

	var results []ShowdownResult
	for i, p := range t.players {
		if p.Folded {
			continue
		}
		t.revealed[i] = true
		results = append(results, ShowdownResult{
			Seat:      i,
			Name:      p.Name,
			HoleCards: revealAll(p.HoleCards),
			Hand:      evaluator.EvaluateBest(p.HoleCards, t.board),
		})
	}
	*events = append(*events, ShowdownEvent{eventStamp: stamp(), Results: results})

	best := results[0].Hand
	for _, r := range results[1:] {
		if evaluator.Compare(r.Hand, best) > 0 {
			best = r.Hand
		}
	}

	// Winners in seat order starting after the dealer, so the odd-chip
	// remainder lands on the earliest tied seat.
	winners := make([]int, 0, len(results))
	for off := 1; off <= len(t.players); off++ {
		seat := (t.dealer + off) % len(t.players)
		for _, r := range results {
			if r.Seat == seat && evaluator.Compare(r.Hand, best) == 0 {
				winners = append(winners, seat)
			}
		}
	}

	share := t.pot / len(winners)
	remainder := t.pot % len(winners)
	shares := make([]PotShare, len(winners))
	for i, seat := range winners {
		amount := share
		if i < remainder {
			amount++
		}
		t.players[seat].Chips += amount
		shares[i] = PotShare{Seat: seat, Name: t.players[seat].Name, Amount: amount}
		t.settle(t.players[seat].Name, amount)
	}

	t.finishHand(events, shares, "showdown")
}

// awardFoldWin pays the last player standing without a showdown.
func (t *Table) awardFoldWin(events *[]Event) {
	for _, p := range t.players {
		if !p.Folded {
			p.Chips += t.pot
			t.settle(p.Name, t.pot)
			shares := []PotShare{{Seat: p.Seat, Name: p.Name, Amount: t.pot}}
			t.finishHand(events, shares, "fold")
			return
		}
	}
}

func (t *Table) finishHand(events *[]Event, winners []PotShare, reason string) {
	*events = append(*events, HandEndedEvent{
		eventStamp: stamp(),
		HandID:     t.handID,
		Pot:        t.pot,
		Winners:    winners,
		Reason:     reason,
		Board:      append([]deck.Card(nil), t.board...),
	})
	t.logger.Info("hand ended",
		"handID", t.handID, "pot", t.pot, "reason", reason, "winners", len(winners))
	t.phase = HandOver
	t.actionOn = -1
}

func (t *Table) settle(name string, amount int) {
	if err := t.ledger.Credit(context.Background(), name, amount); err != nil {
		t.logger.Error("failed to credit winner", "player", name, "amount", amount, "error", err)
	}
}

func (t *Table) remainingInHand() int {
	n := 0
	for _, p := range t.players {
		if !p.Folded {
			n++
		}
	}
	return n
}

func (t *Table) countCanAct() int {
	n := 0
	for _, p := range t.players {
		if p.canAct() {
			n++
		}
	}
	return n
}

// nextActor finds the next seat that can act, searching from the given seat.
func (t *Table) nextActor(from int) int {
	n := len(t.players)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if t.players[seat].canAct() {
			return seat
		}
	}
	return -1
}

// nextFunded finds the next seat with chips or committed chips this hand.
func (t *Table) nextFunded(from int) int {
	n := len(t.players)
	for i := 0; i < n; i++ {
		seat := ((from + i) % n + n) % n
		if t.players[seat].Chips > 0 {
			return seat
		}
	}
	return -1
}
