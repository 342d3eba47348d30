package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/truman301/xcasino-sub000/internal/bot"
	"github.com/truman301/xcasino-sub000/internal/chips"
	"github.com/truman301/xcasino-sub000/internal/game"
	"github.com/truman301/xcasino-sub000/internal/history"
	"github.com/truman301/xcasino-sub000/internal/randutil"
	"github.com/truman301/xcasino-sub000/internal/session"
	"github.com/truman301/xcasino-sub000/internal/statistics"
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("205"))

var CLI struct {
	Hands      int   `default:"1000" help:"Number of hands to simulate"`
	Seats      int   `default:"6" help:"Number of bot seats"`
	SmallBlind int   `default:"50" help:"Small blind"`
	BigBlind   int   `default:"100" help:"Big blind"`
	Chips      int   `default:"5000" help:"Starting chips per seat"`
	Seed       int64 `default:"0" help:"RNG seed (0 for time-based)"`
	Verbose    bool  `short:"v" help:"Verbose logging"`
}

func main() {
	kctx := kong.Parse(&CLI)

	if CLI.Seed == 0 {
		CLI.Seed = time.Now().UnixNano()
	}
	level := log.WarnLevel
	if CLI.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	fmt.Println(titleStyle.Render("holdem simulator"))
	fmt.Printf("%d hands, %d seats, blinds %d/%d, seed %d\n\n",
		CLI.Hands, CLI.Seats, CLI.SmallBlind, CLI.BigBlind, CLI.Seed)

	seats := make([]game.Seat, CLI.Seats)
	for i := range seats {
		seats[i] = game.Seat{
			Name:  fmt.Sprintf("bot-%d", i+1),
			Bot:   true,
			Chips: CLI.Chips,
		}
	}

	rng := randutil.New(CLI.Seed)
	table := game.NewTable(game.Config{
		SmallBlind: CLI.SmallBlind,
		BigBlind:   CLI.BigBlind,
	}, seats, rng, chips.NewMemoryLedger(), logger)

	tracker := statistics.New(CLI.BigBlind)
	sess := session.New(table, bot.New(CLI.BigBlind), rng, logger, session.Options{
		Name:       "simulate",
		Store:      history.NewMemoryStore(),
		ViewerSeat: -1,
		Sink: func(_ game.Snapshot, events []game.Event) {
			for _, event := range events {
				if ended, ok := event.(game.HandEndedEvent); ok {
					tracker.Record(ended.Pot, ended.Reason == "showdown")
				}
			}
		},
	})

	start := time.Now()
	for i := 0; i < CLI.Hands; i++ {
		if err := sess.StartHand(); err != nil {
			if errors.Is(err, game.ErrNotEnoughPlayers) {
				fmt.Printf("stopping after %d hands: one stack holds all the chips\n\n", tracker.Hands())
				break
			}
			logger.Fatal("failed to start hand", "hand", i+1, "error", err)
		}
	}
	elapsed := time.Since(start)

	printResults(sess, tracker, elapsed)
	kctx.Exit(0)
}

func printResults(sess *session.Session, tracker *statistics.Tracker, elapsed time.Duration) {
	played := tracker.Hands()
	if played == 0 {
		fmt.Println("no hands played")
		return
	}

	fmt.Printf("played %d hands in %v (%.0f hands/sec)\n",
		played, elapsed.Round(time.Millisecond),
		float64(played)/elapsed.Seconds())
	fmt.Printf("showdowns: %d (%.1f%%)\n\n", tracker.Showdowns(), tracker.ShowdownRate()*100)

	low, high := tracker.ConfidenceInterval95()
	fmt.Println("pot sizes (big blinds):")
	fmt.Printf("  mean   %.2f ± %.2f SE, 95%% CI [%.2f, %.2f]\n",
		tracker.MeanPot(), tracker.StdError(), low, high)
	fmt.Printf("  median %.2f  p95 %.2f  max %.2f\n\n",
		tracker.MedianPot(), tracker.Percentile(0.95), tracker.MaxPot())

	fmt.Println("final stacks:")
	for _, p := range sess.Snapshot(-1).Players {
		fmt.Printf("  %-8s %7d chips\n", p.Name, p.Chips)
	}
}
