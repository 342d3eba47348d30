package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/truman301/xcasino-sub000/internal/randutil"
)

func testTable(seed int64, chips ...int) *Table {
	seats := make([]Seat, len(chips))
	for i, c := range chips {
		seats[i] = Seat{Name: fmt.Sprintf("p%d", i), Chips: c}
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return NewTable(Config{SmallBlind: 50, BigBlind: 100}, seats, randutil.New(seed), NopLedger{}, logger)
}

func mustStart(t *testing.T, tbl *Table) (Snapshot, []Event) {
	t.Helper()
	snap, events, err := tbl.StartHand()
	if err != nil {
		t.Fatalf("StartHand failed: %v", err)
	}
	return snap, events
}

func mustApply(t *testing.T, tbl *Table, seat int, action Action, amount int) (Snapshot, []Event) {
	t.Helper()
	snap, events, err := tbl.ApplyAction(seat, action, amount)
	if err != nil {
		t.Fatalf("ApplyAction(seat=%d, %s, %d) failed: %v", seat, action, amount, err)
	}
	return snap, events
}

// checkDown calls or checks every seat until the hand ends.
func checkDown(t *testing.T, tbl *Table) []Event {
	t.Helper()
	var all []Event
	for tbl.Phase().Betting() {
		seat := tbl.ActionOn()
		snap := tbl.Snapshot()
		action := Check
		if snap.Players[seat].Bet < snap.HighestBet {
			action = Call
		}
		_, events := mustApply(t, tbl, seat, action, 0)
		all = append(all, events...)
	}
	return all
}

func totalChips(tbl *Table) int {
	sum := tbl.Pot()
	for _, p := range tbl.Snapshot().Players {
		sum += p.Chips
	}
	return sum
}

func TestStartHandPostsBlinds(t *testing.T) {
	tbl := testTable(1, 1000, 1000, 1000, 1000)
	snap, events := mustStart(t, tbl)

	if snap.Phase != PreFlop {
		t.Errorf("phase = %s, want preflop", snap.Phase)
	}
	if snap.Dealer != 0 {
		t.Errorf("dealer = %d, want 0", snap.Dealer)
	}
	if snap.Pot != 150 {
		t.Errorf("pot = %d, want 150", snap.Pot)
	}
	if snap.ActionOn != 3 {
		t.Errorf("first actor = %d, want 3 (under the gun)", snap.ActionOn)
	}
	if snap.HighestBet != 100 || snap.MinRaise != 100 {
		t.Errorf("highest bet / min raise = %d/%d, want 100/100", snap.HighestBet, snap.MinRaise)
	}

	if snap.Players[1].Bet != 50 || snap.Players[1].Chips != 950 {
		t.Errorf("small blind seat: bet %d chips %d, want 50/950", snap.Players[1].Bet, snap.Players[1].Chips)
	}
	if snap.Players[2].Bet != 100 || snap.Players[2].Chips != 900 {
		t.Errorf("big blind seat: bet %d chips %d, want 100/900", snap.Players[2].Bet, snap.Players[2].Chips)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	started, ok := events[0].(HandStartedEvent)
	if !ok {
		t.Fatalf("expected HandStartedEvent, got %T", events[0])
	}
	if started.SmallBlind != (BlindPost{Seat: 1, Amount: 50}) {
		t.Errorf("small blind post = %+v", started.SmallBlind)
	}
	if started.BigBlind != (BlindPost{Seat: 2, Amount: 100}) {
		t.Errorf("big blind post = %+v", started.BigBlind)
	}
	if started.HandID == "" || started.HandID != snap.HandID {
		t.Errorf("hand ID mismatch: event %q snapshot %q", started.HandID, snap.HandID)
	}
}

func TestStartHandRequiresTwoFundedPlayers(t *testing.T) {
	tbl := testTable(1, 1000, 0, 0)
	if _, _, err := tbl.StartHand(); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Errorf("expected ErrNotEnoughPlayers, got %v", err)
	}
}

func TestStartHandRejectedMidHand(t *testing.T) {
	tbl := testTable(1, 1000, 1000, 1000)
	mustStart(t, tbl)
	if _, _, err := tbl.StartHand(); !errors.Is(err, ErrHandInProgress) {
		t.Errorf("expected ErrHandInProgress, got %v", err)
	}
}

func TestCheckedDownHandReachesShowdown(t *testing.T) {
	tbl := testTable(7, 1000, 1000, 1000, 1000)
	mustStart(t, tbl)
	events := checkDown(t, tbl)

	if tbl.Phase() != HandOver {
		t.Fatalf("phase = %s, want handover", tbl.Phase())
	}

	var showdown *ShowdownEvent
	var ended *HandEndedEvent
	for _, e := range events {
		switch ev := e.(type) {
		case ShowdownEvent:
			showdown = &ev
		case HandEndedEvent:
			ended = &ev
		}
	}
	if showdown == nil || ended == nil {
		t.Fatal("expected showdown and hand-ended events")
	}
	if len(showdown.Results) != 4 {
		t.Errorf("showdown results = %d, want 4", len(showdown.Results))
	}
	if ended.Reason != "showdown" {
		t.Errorf("end reason = %q, want showdown", ended.Reason)
	}
	if ended.Pot != 400 {
		t.Errorf("final pot = %d, want 400", ended.Pot)
	}
	if len(ended.Board) != 5 {
		t.Errorf("board has %d cards, want 5", len(ended.Board))
	}

	paid := 0
	for _, w := range ended.Winners {
		paid += w.Amount
	}
	if paid != 400 {
		t.Errorf("winners paid %d, want the whole pot of 400", paid)
	}
	if got := totalChips(tbl); got != 4000 {
		t.Errorf("chips not conserved: %d, want 4000", got)
	}
}

func TestBigBlindGetsOption(t *testing.T) {
	tbl := testTable(1, 1000, 1000, 1000, 1000)
	mustStart(t, tbl)

	mustApply(t, tbl, 3, Call, 0)
	mustApply(t, tbl, 0, Call, 0)
	snap, _ := mustApply(t, tbl, 1, Call, 0)

	// Everyone has matched the blind but the big blind has not acted yet.
	if snap.Phase != PreFlop {
		t.Fatalf("phase = %s, want preflop", snap.Phase)
	}
	if snap.ActionOn != 2 {
		t.Errorf("action on %d, want 2 (big blind option)", snap.ActionOn)
	}

	snap, _ = mustApply(t, tbl, 2, Check, 0)
	if snap.Phase != Flop {
		t.Errorf("phase after option check = %s, want flop", snap.Phase)
	}
	if len(snap.Board) != 3 {
		t.Errorf("flop has %d cards, want 3", len(snap.Board))
	}
}

func TestFoldWinSkipsShowdown(t *testing.T) {
	tbl := testTable(1, 1000, 1000, 1000, 1000)
	mustStart(t, tbl)

	mustApply(t, tbl, 3, Raise, 300)
	mustApply(t, tbl, 0, Fold, 0)
	mustApply(t, tbl, 1, Fold, 0)
	snap, events := mustApply(t, tbl, 2, Fold, 0)

	if snap.Phase != HandOver {
		t.Fatalf("phase = %s, want handover", snap.Phase)
	}

	var ended *HandEndedEvent
	for _, e := range events {
		if ev, ok := e.(HandEndedEvent); ok {
			ended = &ev
		}
	}
	if ended == nil {
		t.Fatal("expected a hand-ended event")
	}
	if ended.Reason != "fold" {
		t.Errorf("end reason = %q, want fold", ended.Reason)
	}
	if len(ended.Winners) != 1 || ended.Winners[0].Seat != 3 || ended.Winners[0].Amount != 450 {
		t.Errorf("winners = %+v, want seat 3 taking 450", ended.Winners)
	}
	if snap.Players[3].Chips != 1150 {
		t.Errorf("winner stack = %d, want 1150", snap.Players[3].Chips)
	}
	for _, e := range events {
		if _, ok := e.(ShowdownEvent); ok {
			t.Error("fold win must not produce a showdown event")
		}
	}
}

func TestIllegalActionsRejected(t *testing.T) {
	tbl := testTable(1, 1000, 1000, 1000, 1000)

	if _, _, err := tbl.ApplyAction(0, Check, 0); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("acting before the hand: got %v, want ErrWrongPhase", err)
	}

	mustStart(t, tbl)

	if _, _, err := tbl.ApplyAction(9, Call, 0); !errors.Is(err, ErrNoSuchSeat) {
		t.Errorf("bad seat: got %v, want ErrNoSuchSeat", err)
	}
	if _, _, err := tbl.ApplyAction(0, Call, 0); !errors.Is(err, ErrNotYourTurn) {
		t.Errorf("out of turn: got %v, want ErrNotYourTurn", err)
	}
	if _, _, err := tbl.ApplyAction(3, Check, 0); !errors.Is(err, ErrCheckNotAllowed) {
		t.Errorf("check facing a bet: got %v, want ErrCheckNotAllowed", err)
	}
	if _, _, err := tbl.ApplyAction(3, Raise, 150); !errors.Is(err, ErrRaiseTooSmall) {
		t.Errorf("undersized raise: got %v, want ErrRaiseTooSmall", err)
	}

	// A rejected action must leave the table unchanged.
	if tbl.ActionOn() != 3 || tbl.Pot() != 150 {
		t.Errorf("table changed after rejections: actionOn=%d pot=%d", tbl.ActionOn(), tbl.Pot())
	}

	// The minimum legal raise is accepted.
	snap, _ := mustApply(t, tbl, 3, Raise, 200)
	if snap.HighestBet != 200 {
		t.Errorf("highest bet = %d, want 200", snap.HighestBet)
	}
}

func TestRaiseReopensAction(t *testing.T) {
	tbl := testTable(1, 1000, 1000, 1000, 1000)
	mustStart(t, tbl)

	mustApply(t, tbl, 3, Call, 0)
	snap, _ := mustApply(t, tbl, 0, Raise, 300)
	if snap.HighestBet != 300 || snap.MinRaise != 200 {
		t.Errorf("after raise: highest %d minRaise %d, want 300/200", snap.HighestBet, snap.MinRaise)
	}

	mustApply(t, tbl, 1, Fold, 0)
	snap, _ = mustApply(t, tbl, 2, Call, 0)

	// Seat 3 already called once but must respond to the raise.
	if snap.Phase != PreFlop {
		t.Fatalf("phase = %s, want preflop", snap.Phase)
	}
	if snap.ActionOn != 3 {
		t.Errorf("action on %d, want 3 after the raise reopened", snap.ActionOn)
	}

	snap, _ = mustApply(t, tbl, 3, Call, 0)
	if snap.Phase != Flop {
		t.Errorf("phase = %s, want flop once the raise is matched", snap.Phase)
	}
	if snap.Pot != 950 {
		t.Errorf("pot = %d, want 950", snap.Pot)
	}
}

func TestAllInForLessDoesNotReopen(t *testing.T) {
	tbl := testTable(1, 1000, 150, 1000)
	mustStart(t, tbl)

	// Dealer 0, small blind seat 1 (150 stack), big blind seat 2.
	mustApply(t, tbl, 0, Raise, 300)
	snap, _ := mustApply(t, tbl, 1, AllIn, 0)

	// The short all-in is a call for less: price and min raise are unchanged.
	if snap.HighestBet != 300 || snap.MinRaise != 200 {
		t.Errorf("after short all-in: highest %d minRaise %d, want 300/200", snap.HighestBet, snap.MinRaise)
	}
	if !snap.Players[1].AllIn || snap.Players[1].Chips != 0 {
		t.Errorf("seat 1 should be all-in with an empty stack: %+v", snap.Players[1])
	}

	snap, events := mustApply(t, tbl, 2, Fold, 0)

	// Only one player can still act, so the hand runs out to showdown.
	if snap.Phase != HandOver {
		t.Fatalf("phase = %s, want handover after fast-forward", snap.Phase)
	}
	var ended *HandEndedEvent
	for _, e := range events {
		if ev, ok := e.(HandEndedEvent); ok {
			ended = &ev
		}
	}
	if ended == nil {
		t.Fatal("expected a hand-ended event")
	}
	if ended.Reason != "showdown" {
		t.Errorf("end reason = %q, want showdown", ended.Reason)
	}
	if len(ended.Board) != 5 {
		t.Errorf("board has %d cards, want 5", len(ended.Board))
	}
	if ended.Pot != 550 {
		t.Errorf("pot = %d, want 550", ended.Pot)
	}
	if got := totalChips(tbl); got != 2150 {
		t.Errorf("chips not conserved: %d, want 2150", got)
	}
}

func TestHeadsUpDealerPostsSmallBlind(t *testing.T) {
	tbl := testTable(1, 1000, 1000)
	snap, events := mustStart(t, tbl)

	started := events[0].(HandStartedEvent)
	if started.SmallBlind.Seat != 0 {
		t.Errorf("small blind seat = %d, want the dealer (0)", started.SmallBlind.Seat)
	}
	if started.BigBlind.Seat != 1 {
		t.Errorf("big blind seat = %d, want 1", started.BigBlind.Seat)
	}
	if snap.ActionOn != 0 {
		t.Errorf("first actor = %d, want the dealer (0)", snap.ActionOn)
	}
}

func TestBlindsCanForceAllInPreDeal(t *testing.T) {
	tbl := testTable(1, 50, 100)
	snap, events := mustStart(t, tbl)

	// Both stacks went in on the blinds; the hand runs straight to showdown.
	if snap.Phase != HandOver {
		t.Fatalf("phase = %s, want handover", snap.Phase)
	}
	var ended *HandEndedEvent
	for _, e := range events {
		if ev, ok := e.(HandEndedEvent); ok {
			ended = &ev
		}
	}
	if ended == nil {
		t.Fatal("expected a hand-ended event")
	}
	if ended.Pot != 150 {
		t.Errorf("pot = %d, want 150", ended.Pot)
	}
	if got := totalChips(tbl); got != 150 {
		t.Errorf("chips not conserved: %d, want 150", got)
	}
}

func TestDealerRotatesBetweenHands(t *testing.T) {
	tbl := testTable(1, 1000, 1000, 1000, 1000)
	mustStart(t, tbl)

	// Fold everyone to the big blind to end the hand quickly.
	mustApply(t, tbl, 3, Fold, 0)
	mustApply(t, tbl, 0, Fold, 0)
	mustApply(t, tbl, 1, Fold, 0)

	snap, events := mustStart(t, tbl)
	if snap.Dealer != 1 {
		t.Errorf("second hand dealer = %d, want 1", snap.Dealer)
	}
	started := events[0].(HandStartedEvent)
	if started.SmallBlind.Seat != 2 || started.BigBlind.Seat != 3 {
		t.Errorf("second hand blinds = %d/%d, want 2/3", started.SmallBlind.Seat, started.BigBlind.Seat)
	}
}

func TestSnapshotHidesHoleCards(t *testing.T) {
	tbl := testTable(1, 1000, 1000, 1000)
	mustStart(t, tbl)

	public := tbl.Snapshot()
	for _, p := range public.Players {
		if !p.HasCards {
			t.Errorf("seat %d should hold cards", p.Seat)
		}
		if len(p.HoleCards) != 0 {
			t.Errorf("public snapshot leaked seat %d hole cards", p.Seat)
		}
	}

	own := tbl.SnapshotFor(0)
	if len(own.Players[0].HoleCards) != 2 {
		t.Errorf("viewer should see its own 2 hole cards, got %d", len(own.Players[0].HoleCards))
	}
	for _, card := range own.Players[0].HoleCards {
		if card.FaceDown {
			t.Errorf("viewer hole card %s should be face up", card.Code())
		}
	}
	if len(own.Players[1].HoleCards) != 0 {
		t.Error("viewer must not see another seat's hole cards")
	}
}

func TestShowdownRevealsSurvivors(t *testing.T) {
	tbl := testTable(3, 1000, 1000, 1000)
	mustStart(t, tbl)

	// Seat 0 folds preflop, the rest check it down.
	mustApply(t, tbl, tbl.ActionOn(), Fold, 0)
	checkDown(t, tbl)

	snap := tbl.Snapshot()
	if len(snap.Players[0].HoleCards) != 0 {
		t.Error("folded seat must stay hidden at showdown")
	}
	for _, seat := range []int{1, 2} {
		if len(snap.Players[seat].HoleCards) != 2 {
			t.Errorf("seat %d should be revealed at showdown", seat)
		}
	}
}

// recordingLedger captures settlement credits.
type recordingLedger struct {
	credits map[string]int
}

func (l *recordingLedger) Credit(_ context.Context, name string, amount int) error {
	l.credits[name] += amount
	return nil
}

func TestSettlementCreditsWinners(t *testing.T) {
	ledger := &recordingLedger{credits: make(map[string]int)}
	seats := []Seat{
		{Name: "p0", Chips: 1000},
		{Name: "p1", Chips: 1000},
		{Name: "p2", Chips: 1000},
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	tbl := NewTable(Config{SmallBlind: 50, BigBlind: 100}, seats, randutil.New(5), ledger, logger)

	mustStart(t, tbl)
	checkDown(t, tbl)

	total := 0
	for _, amount := range ledger.credits {
		total += amount
	}
	if total != 300 {
		t.Errorf("ledger credited %d, want the whole pot of 300", total)
	}
}

func TestNoDuplicateCardsWithinHand(t *testing.T) {
	tbl := testTable(9, 1000, 1000, 1000, 1000)
	mustStart(t, tbl)
	checkDown(t, tbl)

	snap := tbl.Snapshot()
	seen := make(map[string]bool)
	for _, card := range snap.Board {
		if seen[card.Code()] {
			t.Errorf("card %s dealt twice", card.Code())
		}
		seen[card.Code()] = true
	}
	for _, p := range snap.Players {
		for _, card := range p.HoleCards {
			if seen[card.Code()] {
				t.Errorf("card %s dealt twice", card.Code())
			}
			seen[card.Code()] = true
		}
	}
	// 4 seats went to showdown: 8 hole cards plus 5 board cards.
	if len(seen) != 13 {
		t.Errorf("expected 13 distinct cards, got %d", len(seen))
	}
}

func TestChipConservationOverManyHands(t *testing.T) {
	tbl := testTable(11, 1000, 1000, 1000, 1000)

	for hand := 0; hand < 25; hand++ {
		if _, _, err := tbl.StartHand(); err != nil {
			if errors.Is(err, ErrNotEnoughPlayers) {
				break
			}
			t.Fatalf("hand %d failed to start: %v", hand, err)
		}
		checkDown(t, tbl)
		if got := totalChips(tbl); got != 4000 {
			t.Fatalf("hand %d: chips not conserved, total %d", hand, got)
		}
	}
}
