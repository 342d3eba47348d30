package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/truman301/xcasino-sub000/internal/bot"
	"github.com/truman301/xcasino-sub000/internal/chips"
	"github.com/truman301/xcasino-sub000/internal/game"
	"github.com/truman301/xcasino-sub000/internal/history"
	"github.com/truman301/xcasino-sub000/internal/randutil"
	"github.com/truman301/xcasino-sub000/internal/server"
	"github.com/truman301/xcasino-sub000/internal/session"
)

var CLI struct {
	Config   string `short:"c" default:"holdem-server.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" help:"Address to bind (overrides config)"`
	Port     int    `short:"p" help:"Port to bind (overrides config)"`
	LogLevel string `short:"l" help:"Log level (overrides config)"`
	Seed     int64  `help:"RNG seed (0 for time-based)"`
}

func main() {
	kctx := kong.Parse(&CLI)
	godotenv.Load()

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		kctx.Exit(1)
	}
	if CLI.Addr != "" {
		cfg.Server.Address = CLI.Addr
	}
	if CLI.Port != 0 {
		cfg.Server.Port = CLI.Port
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		kctx.Exit(1)
	}

	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ledger, err := chips.NewSQLiteLedger(cfg.Server.LedgerDB)
	if err != nil {
		logger.Fatal("failed to open chip ledger", "path", cfg.Server.LedgerDB, "error", err)
	}
	defer ledger.Close()

	store, err := history.NewSQLiteStore(cfg.Server.HistoryDB)
	if err != nil {
		logger.Fatal("failed to open hand history", "path", cfg.Server.HistoryDB, "error", err)
	}
	defer store.Close()

	srv := server.New(cfg, logger)
	for i, tableCfg := range cfg.Tables {
		srv.AddTable(buildTable(tableCfg, seed+int64(i), ledger, store, logger))
		logger.Info("created table",
			"name", tableCfg.Name,
			"stakes", fmt.Sprintf("%d/%d", tableCfg.SmallBlind, tableCfg.BigBlind),
			"seats", tableCfg.Seats,
			"bots", tableCfg.Bots)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting holdem server", "addr", cfg.ListenAddress(), "tables", len(cfg.Tables))
	if err := srv.Run(ctx); err != nil {
		logger.Error("server failed", "error", err)
		kctx.Exit(1)
	}
	logger.Info("server stopped")
}

// buildTable wires one configured table: seat 0 is the human, the remaining
// seats are bots. The table handle doubles as the session sink.
func buildTable(cfg server.TableConfig, seed int64, ledger chips.Ledger, store history.Store, logger *log.Logger) *server.Table {
	const humanSeat = 0

	seats := make([]game.Seat, cfg.Seats)
	seats[humanSeat] = game.Seat{Name: cfg.Name + "-player", Chips: cfg.StartingChips}
	for i := 1; i < cfg.Seats; i++ {
		seats[i] = game.Seat{
			Name:  fmt.Sprintf("%s-bot-%d", cfg.Name, i),
			Bot:   i <= cfg.Bots,
			Chips: cfg.StartingChips,
		}
	}

	rng := randutil.New(seed)
	engine := game.NewTable(game.Config{
		SmallBlind: cfg.SmallBlind,
		BigBlind:   cfg.BigBlind,
	}, seats, rng, ledger, logger)

	handle := server.NewTable(cfg.Name, humanSeat, logger)
	sess := session.New(engine, bot.New(cfg.BigBlind), rng, logger, session.Options{
		Name:       cfg.Name,
		ActTimeout: time.Duration(cfg.ActTimeoutSecs) * time.Second,
		Store:      store,
		Sink:       handle.Push,
		ViewerSeat: humanSeat,
	})
	handle.Bind(sess)
	return handle
}
