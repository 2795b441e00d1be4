package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"papertrader/risk"
)

// Config represents the complete simulation configuration.
type Config struct {
	Account  AccountConfig  `json:"account" yaml:"account"`
	Risk     RiskConfig     `json:"risk" yaml:"risk"`
	Strategy StrategyConfig `json:"strategy" yaml:"strategy"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
}

// AccountConfig is the simulated account the replay starts from.
type AccountConfig struct {
	Currency    string  `json:"currency" yaml:"currency"`
	Equity      float64 `json:"equity" yaml:"equity"`
	FreeBalance float64 `json:"free_balance" yaml:"free_balance"`
}

// RiskConfig mirrors risk.Config in file form.
type RiskConfig struct {
	RiskPerTradePercent   float64 `json:"risk_per_trade_percent" yaml:"risk_per_trade_percent"`
	DailyLossLimitPercent float64 `json:"daily_loss_limit_percent" yaml:"daily_loss_limit_percent"`
	MaxTradesPerDay       int     `json:"max_trades_per_day" yaml:"max_trades_per_day"` // 0 = no cap
	CooldownMinutes       int     `json:"cooldown_minutes_after_loss" yaml:"cooldown_minutes_after_loss"`
	LiveTradingEnabled    bool    `json:"live_trading_enabled" yaml:"live_trading_enabled"`
}

// StrategyConfig contains the market and history window.
type StrategyConfig struct {
	Pair       string `json:"pair" yaml:"pair"`
	MaxHistory int    `json:"max_history,omitempty" yaml:"max_history,omitempty"`
}

// JournalConfig selects where closed trades are persisted.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	TicksFile  string `json:"ticks_file,omitempty" yaml:"ticks_file,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file, YAML for .yaml/.yml and JSON
// otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is usable.
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.Equity < 0 {
		return fmt.Errorf("account.equity must not be negative")
	}
	if c.Risk.RiskPerTradePercent < 0 {
		return fmt.Errorf("risk.risk_per_trade_percent must not be negative")
	}
	if c.Risk.DailyLossLimitPercent < 0 {
		return fmt.Errorf("risk.daily_loss_limit_percent must not be negative")
	}
	if c.Risk.MaxTradesPerDay < 0 {
		return fmt.Errorf("risk.max_trades_per_day must not be negative")
	}
	if c.Strategy.Pair == "" {
		return fmt.Errorf("strategy.pair is required")
	}
	if c.Strategy.MaxHistory < 0 {
		return fmt.Errorf("strategy.max_history must not be negative")
	}
	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.TicksFile == "" {
			return fmt.Errorf("journal trades_file and ticks_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// RiskConfig converts the file form into the risk package's value type.
func (c *Config) RiskConfig() risk.Config {
	return risk.Config{
		RiskPerTradePct:      c.Risk.RiskPerTradePercent,
		DailyLossLimitPct:    c.Risk.DailyLossLimitPercent,
		MaxTradesPerDay:      c.Risk.MaxTradesPerDay,
		CooldownAfterLossMin: c.Risk.CooldownMinutes,
		LiveTradingEnabled:   c.Risk.LiveTradingEnabled,
	}
}

// AccountSnapshot builds the account view handed to the core each tick.
func (c *Config) AccountSnapshot() risk.AccountSnapshot {
	return risk.AccountSnapshot{
		TotalEquityMYR: c.Account.Equity,
		FreeBalanceMYR: c.Account.FreeBalance,
	}
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			Currency:    "MYR",
			Equity:      10000,
			FreeBalance: 10000,
		},
		Risk: RiskConfig{
			RiskPerTradePercent:   1,
			DailyLossLimitPercent: 3,
			MaxTradesPerDay:       5,
			CooldownMinutes:       0,
			LiveTradingEnabled:    true,
		},
		Strategy: StrategyConfig{
			Pair:       "BTC_MYR",
			MaxHistory: 500,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./papertrader.sqlite",
		},
	}
}
