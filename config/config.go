// Package config loads the bot configuration from YAML plus a handful
// of environment variables for secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration lets YAML carry values like "30s" or "1m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: bad duration %q: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the complete bot configuration.
type Config struct {
	StatePath     string         `yaml:"state_path"`
	LockPath      string         `yaml:"lock_path"`
	CheckInterval Duration       `yaml:"check_interval"`
	CandleLimit   int            `yaml:"candle_limit"`
	Listen        string         `yaml:"listen"`
	Journal       JournalConfig  `yaml:"journal"`
	Telegram      TelegramConfig `yaml:"telegram"`
}

// JournalConfig selects the trade journal backend.
type JournalConfig struct {
	Type   string `yaml:"type"` // "sqlite" or "none"
	DBPath string `yaml:"db_path,omitempty"`
}

// TelegramConfig controls trade alerts. The bot token is read from the
// TELEGRAM_BOT_TOKEN environment variable, never from the file.
type TelegramConfig struct {
	Enabled bool   `yaml:"enabled"`
	ChatID  string `yaml:"chat_id,omitempty"`
	Token   string `yaml:"-"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		StatePath:     "paper_trading_state.json",
		LockPath:      "dryrun.lock",
		CheckInterval: Duration(time.Minute),
		CandleLimit:   500,
		Listen:        ":8080",
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "dryrun_journal.db",
		},
	}
}

// LoadFromFile reads a YAML config, filling unset fields with defaults
// and pulling secrets from the environment.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the bot cannot run with.
func (c *Config) Validate() error {
	if c.StatePath == "" {
		return fmt.Errorf("config: state_path is required")
	}
	if c.LockPath == "" {
		return fmt.Errorf("config: lock_path is required")
	}
	if c.CheckInterval <= 0 {
		return fmt.Errorf("config: check_interval must be positive")
	}
	if c.CandleLimit <= 0 {
		return fmt.Errorf("config: candle_limit must be positive")
	}
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("config: journal.db_path required for sqlite")
		}
	case "none", "":
	default:
		return fmt.Errorf("config: unknown journal type %q", c.Journal.Type)
	}
	if c.Telegram.Enabled {
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("config: telegram.chat_id required when enabled")
		}
		if c.Telegram.Token == "" {
			return fmt.Errorf("config: TELEGRAM_BOT_TOKEN not set but telegram enabled")
		}
	}
	return nil
}
