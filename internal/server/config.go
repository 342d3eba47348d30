package server

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete server configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Tables []TableConfig  `hcl:"table,block"`
}

// ServerSettings contains server-level configuration.
type ServerSettings struct {
	Address   string `hcl:"address,optional"`
	Port      int    `hcl:"port,optional"`
	LogLevel  string `hcl:"log_level,optional"`
	LedgerDB  string `hcl:"ledger_db,optional"`
	HistoryDB string `hcl:"history_db,optional"`
}

// TableConfig defines one poker table.
type TableConfig struct {
	Name           string `hcl:"name,label"`
	SmallBlind     int    `hcl:"small_blind"`
	BigBlind       int    `hcl:"big_blind"`
	Seats          int    `hcl:"seats,optional"`
	Bots           int    `hcl:"bots,optional"`
	StartingChips  int    `hcl:"starting_chips,optional"`
	ActTimeoutSecs int    `hcl:"act_timeout_seconds,optional"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:   "localhost",
			Port:      8080,
			LogLevel:  "info",
			LedgerDB:  "chips.db",
			HistoryDB: "hands.db",
		},
		Tables: []TableConfig{
			{
				Name:           "main",
				SmallBlind:     50,
				BigBlind:       100,
				Seats:          6,
				Bots:           5,
				StartingChips:  5000,
				ActTimeoutSecs: 30,
			},
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}
	if config.Server.LedgerDB == "" {
		config.Server.LedgerDB = "chips.db"
	}
	if config.Server.HistoryDB == "" {
		config.Server.HistoryDB = "hands.db"
	}

	for i := range config.Tables {
		if config.Tables[i].Seats == 0 {
			config.Tables[i].Seats = 6
		}
		if config.Tables[i].Bots == 0 {
			config.Tables[i].Bots = config.Tables[i].Seats - 1
		}
		if config.Tables[i].StartingChips == 0 {
			config.Tables[i].StartingChips = config.Tables[i].BigBlind * 50
		}
		if config.Tables[i].ActTimeoutSecs == 0 {
			config.Tables[i].ActTimeoutSecs = 30
		}
	}

	return &config, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}
	for _, table := range c.Tables {
		if table.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", table.Name)
		}
		if table.BigBlind <= table.SmallBlind {
			return fmt.Errorf("table %s: big blind must be greater than small blind", table.Name)
		}
		if table.Seats < 2 || table.Seats > 10 {
			return fmt.Errorf("table %s: seats must be between 2 and 10", table.Name)
		}
		if table.Bots >= table.Seats {
			return fmt.Errorf("table %s: bots must leave at least one open seat", table.Name)
		}
		if table.StartingChips < table.BigBlind {
			return fmt.Errorf("table %s: starting chips must cover the big blind", table.Name)
		}
	}
	return nil
}

// ListenAddress returns the host:port to bind.
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}
