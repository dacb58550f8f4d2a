// Package config loads the card room configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete card room configuration
type Config struct {
	Room   *RoomSettings `hcl:"room,block"`
	Tables []TableConfig `hcl:"table,block"`
}

// RoomSettings contains room-level configuration
type RoomSettings struct {
	LogLevel string `hcl:"log_level,optional"`
	// Seed is the root of the room's random stream; zero seeds from the
	// wall clock at startup.
	Seed int64 `hcl:"seed,optional"`
	// OpeningBalance is the bank balance new accounts start with.
	OpeningBalance int `hcl:"opening_balance,optional"`
	// MaxLoan bounds how much a single loan may credit an account.
	MaxLoan int `hcl:"max_loan,optional"`
}

// TableConfig defines one table's stakes
type TableConfig struct {
	Name       string `hcl:"name,label"`
	SmallBlind int    `hcl:"small_blind"`
	BigBlind   int    `hcl:"big_blind"`
	BuyIn      int    `hcl:"buy_in,optional"`
}

// Default returns the default card room configuration
func Default() *Config {
	return &Config{
		Room: &RoomSettings{
			LogLevel:       "info",
			OpeningBalance: 10000,
			MaxLoan:        1000,
		},
		Tables: []TableConfig{
			{
				Name:       "main",
				SmallBlind: 25,
				BigBlind:   50,
				BuyIn:      2500,
			},
		},
	}
}

// Load loads the card room configuration from an HCL file. A missing
// file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
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

	// Apply defaults for missing values
	if config.Room == nil {
		config.Room = &RoomSettings{}
	}
	if config.Room.LogLevel == "" {
		config.Room.LogLevel = "info"
	}
	if config.Room.OpeningBalance == 0 {
		config.Room.OpeningBalance = 10000
	}
	if config.Room.MaxLoan == 0 {
		config.Room.MaxLoan = 1000
	}
	for i := range config.Tables {
		if config.Tables[i].BuyIn == 0 {
			config.Tables[i].BuyIn = config.Tables[i].BigBlind * 50 // 50 big blinds
		}
	}

	return &config, nil
}

// Validate validates the card room configuration
func (c *Config) Validate() error {
	if len(c.Tables) == 0 {
		return fmt.Errorf("at least one table must be configured")
	}
	if c.Room.OpeningBalance < 0 {
		return fmt.Errorf("opening balance must not be negative")
	}
	if c.Room.MaxLoan < 0 {
		return fmt.Errorf("max loan must not be negative")
	}

	seen := make(map[string]bool)
	for _, table := range c.Tables {
		if seen[table.Name] {
			return fmt.Errorf("table %s: configured twice", table.Name)
		}
		seen[table.Name] = true
		if table.SmallBlind <= 0 {
			return fmt.Errorf("table %s: small blind must be positive", table.Name)
		}
		if table.BigBlind <= table.SmallBlind {
			return fmt.Errorf("table %s: big blind must be greater than small blind", table.Name)
		}
		if table.BuyIn < table.BigBlind {
			return fmt.Errorf("table %s: buy-in must cover at least the big blind", table.Name)
		}
	}
	return nil
}

// Table returns a table configuration by name
func (c *Config) Table(name string) *TableConfig {
	for _, table := range c.Tables {
		if table.Name == name {
			return &table
		}
	}
	return nil
}
