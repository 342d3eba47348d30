// Package session drives one table: it runs bot turns synchronously after
// every state change, gates human input to the current actor and applies a
// presentation-layer act-timeout. The engine itself stays timer-free.
package session

import (
	"context"
	rand "math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/truman301/xcasino-sub000/internal/bot"
	"github.com/truman301/xcasino-sub000/internal/game"
	"github.com/truman301/xcasino-sub000/internal/history"
)

// Sink receives the snapshot and events produced by each engine operation.
type Sink func(snapshot game.Snapshot, events []game.Event)

// Options configures a session.
type Options struct {
	Name       string        // table name, used in hand history records
	ActTimeout time.Duration // auto-fold a slow human; zero disables
	Clock      quartz.Clock  // defaults to the real clock
	Store      history.Store // finished hands; nil discards them
	Sink       Sink          // nil discards updates
	ViewerSeat int           // seat whose hole cards sink snapshots include; -1 for none
}

// Session serialises all operations against one table.
type Session struct {
	mu     sync.Mutex
	table  *game.Table
	policy *bot.Policy
	rng    *rand.Rand
	logger *log.Logger
	opts   Options
	timer  *quartz.Timer
}

// New creates a session around a table.
func New(table *game.Table, policy *bot.Policy, rng *rand.Rand, logger *log.Logger, opts Options) *Session {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	return &Session{
		table:  table,
		policy: policy,
		rng:    rng,
		logger: logger.WithPrefix("session").With("table", opts.Name),
		opts:   opts,
	}
}

// StartHand begins a new hand and plays bot turns until a human must act or
// the hand is over.
func (s *Session) StartHand() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, events, err := s.table.StartHand()
	if err != nil {
		return err
	}
	s.publish(snapshot, events)
	s.runBots()
	return nil
}

// HumanAction applies an action on behalf of a human seat. Wrong-actor and
// wrong-phase submissions are rejected, never queued.
func (s *Session) HumanAction(seat int, action game.Action, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table.IsBot(seat) {
		return game.ErrNotYourTurn
	}

	snapshot, events, err := s.table.ApplyAction(seat, action, amount)
	if err != nil {
		return err
	}
	s.stopTimer()
	s.publish(snapshot, events)
	s.runBots()
	return nil
}

// Snapshot returns the view for one seat (or the public view for -1).
func (s *Session) Snapshot(seat int) game.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seat < 0 {
		return s.table.Snapshot()
	}
	return s.table.SnapshotFor(seat)
}

// HandInProgress reports whether a hand is being played.
func (s *Session) HandInProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	phase := s.table.Phase()
	return phase != game.Idle && phase != game.HandOver
}

// runBots plays bot turns until the hand pauses on a human or ends.
// Callers must hold the mutex.
func (s *Session) runBots() {
	for s.table.Phase().Betting() && s.table.IsBot(s.table.ActionOn()) {
		seat := s.table.ActionOn()
		view := botView(s.table.SnapshotFor(seat), seat)
		decision := s.policy.Decide(s.rng, view)

		snapshot, events, err := s.table.ApplyAction(seat, decision.Action, decision.RaiseTo)
		if err != nil {
			// The policy clamps its own output, so a rejection here means a
			// policy bug. Fold the seat to keep the hand moving.
			s.logger.Error("bot decision rejected, folding",
				"seat", seat, "action", decision.Action, "error", err)
			snapshot, events, err = s.table.ApplyAction(seat, game.Fold, 0)
			if err != nil {
				s.logger.Error("bot fallback fold rejected", "seat", seat, "error", err)
				return
			}
		}
		s.publish(snapshot, events)
	}

	if s.table.Phase().Betting() {
		s.armTimer(s.table.ActionOn())
	}
}

// armTimer schedules an auto-fold for a slow human. Callers must hold the
// mutex.
func (s *Session) armTimer(seat int) {
	s.stopTimer()
	if s.opts.ActTimeout <= 0 {
		return
	}
	s.timer = s.opts.Clock.AfterFunc(s.opts.ActTimeout, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.table.Phase().Betting() || s.table.ActionOn() != seat {
			return
		}
		s.logger.Info("act timeout, folding", "seat", seat)
		snapshot, events, err := s.table.ApplyAction(seat, game.Fold, 0)
		if err != nil {
			s.logger.Error("timeout fold rejected", "seat", seat, "error", err)
			return
		}
		s.publish(snapshot, events)
		s.runBots()
	})
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// publish forwards the update to the sink and records finished hands.
// Callers must hold the mutex.
func (s *Session) publish(snapshot game.Snapshot, events []game.Event) {
	if s.opts.Sink != nil {
		if s.opts.ViewerSeat >= 0 {
			snapshot = s.table.SnapshotFor(s.opts.ViewerSeat)
		}
		s.opts.Sink(snapshot, events)
	}
	if s.opts.Store == nil {
		return
	}
	for _, event := range events {
		ended, ok := event.(game.HandEndedEvent)
		if !ok {
			continue
		}
		record := recordFromEvent(s.opts.Name, ended)
		if err := s.opts.Store.SaveHand(context.Background(), record); err != nil {
			s.logger.Error("failed to save hand history", "handID", ended.HandID, "error", err)
		}
	}
}

func recordFromEvent(table string, ended game.HandEndedEvent) *history.HandRecord {
	var board strings.Builder
	for _, card := range ended.Board {
		board.WriteString(card.Code())
	}
	winners := make([]history.WinnerRecord, len(ended.Winners))
	for i, w := range ended.Winners {
		winners[i] = history.WinnerRecord{Name: w.Name, Amount: w.Amount}
	}
	return &history.HandRecord{
		ID:       ended.HandID,
		PlayedAt: ended.Timestamp(),
		Table:    table,
		Board:    board.String(),
		Pot:      ended.Pot,
		Reason:   ended.Reason,
		Winners:  winners,
	}
}

// botView projects a seat's snapshot into the bot's decision inputs.
func botView(snapshot game.Snapshot, seat int) bot.View {
	p := snapshot.Players[seat]
	return bot.View{
		HoleCards: p.HoleCards,
		Board:     snapshot.Board,
		Phase:     snapshot.Phase,
		Chips:     p.Chips,
		Bet:       p.Bet,
		HighBet:   snapshot.HighestBet,
		MinRaise:  snapshot.MinRaise,
		Pot:       snapshot.Pot,
	}
}
