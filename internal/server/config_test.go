package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigHCL = `
server {
  address    = "0.0.0.0"
  port       = 9000
  log_level  = "debug"
  ledger_db  = "test-chips.db"
  history_db = "test-hands.db"
}

table "high" {
  small_blind         = 100
  big_blind           = 200
  seats               = 9
  bots                = 8
  starting_chips      = 20000
  act_timeout_seconds = 15
}

table "low" {
  small_blind = 5
  big_blind   = 10
}
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdem-server.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testConfigHCL))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Address)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "test-chips.db", cfg.Server.LedgerDB)
	assert.Equal(t, "test-hands.db", cfg.Server.HistoryDB)
	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddress())

	require.Len(t, cfg.Tables, 2)
	high := cfg.Tables[0]
	assert.Equal(t, "high", high.Name)
	assert.Equal(t, 100, high.SmallBlind)
	assert.Equal(t, 200, high.BigBlind)
	assert.Equal(t, 9, high.Seats)
	assert.Equal(t, 8, high.Bots)
	assert.Equal(t, 20000, high.StartingChips)
	assert.Equal(t, 15, high.ActTimeoutSecs)

	// Optional table fields fall back to defaults.
	low := cfg.Tables[1]
	assert.Equal(t, 6, low.Seats)
	assert.Equal(t, 5, low.Bots)
	assert.Equal(t, 500, low.StartingChips) // 50 big blinds
	assert.Equal(t, 30, low.ActTimeoutSecs)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.ListenAddress())
	require.Len(t, cfg.Tables, 1)
	assert.Equal(t, "main", cfg.Tables[0].Name)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigRejectsMalformedHCL(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `server { port = `))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"no tables", func(c *Config) { c.Tables = nil }},
		{"zero small blind", func(c *Config) { c.Tables[0].SmallBlind = 0 }},
		{"big blind not above small", func(c *Config) { c.Tables[0].BigBlind = c.Tables[0].SmallBlind }},
		{"too few seats", func(c *Config) { c.Tables[0].Seats = 1 }},
		{"no open seat for a human", func(c *Config) { c.Tables[0].Bots = c.Tables[0].Seats }},
		{"starting chips below big blind", func(c *Config) { c.Tables[0].StartingChips = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
