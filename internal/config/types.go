package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Team     TeamConfig      `json:"team"`
	Logging  LoggingConfig   `json:"logging"`
	Roster   RosterConfig    `json:"roster"`
	Storage  *StorageConfig  `json:"storage,omitempty"`
	Telegram *TelegramConfig `json:"telegram,omitempty"`
	Announce AnnounceConfig  `json:"announce"`
}

// TeamConfig scopes the schedule state. Key addresses the persistence
// blob ("schedule:<key>"), so renaming it abandons previous data.
type TeamConfig struct {
	Key string `json:"key"`
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// RosterConfig points at the YAML member list.
type RosterConfig struct {
	Path string `json:"path"`
}

// StorageConfig controls the optional persistence layer.
//
// Example:
//
//	"storage": { "driver": "file", "path": "./dutyboard_store" }
type StorageConfig struct {
	Driver      string `json:"driver"`
	Path        string `json:"path"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string (sqlite)
}

type TelegramConfig struct {
	Token  string `json:"token"`
	ChatID int64  `json:"chat_id"`
	// PollTimeout is a Go duration string (e.g. "10s", "2m").
	PollTimeout string `json:"poll_timeout,omitempty"`
	// RatePerSec throttles outgoing messages; <= 0 means 1.
	RatePerSec int `json:"rate_per_sec,omitempty"`
}

// AnnounceConfig controls the daily who-is-on announcement.
//
// Spec is a standard 5-field cron expression evaluated in Timezone
// (default UTC). Empty Spec with Enabled=true falls back to 09:00 daily.
type AnnounceConfig struct {
	Enabled  bool   `json:"enabled"`
	Spec     string `json:"spec,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Validate checks invariants that strict decoding cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Team.Key) == "" {
		return fmt.Errorf("team.key is required")
	}
	if strings.TrimSpace(c.Roster.Path) == "" {
		return fmt.Errorf("roster.path is required")
	}
	if c.Storage != nil {
		if _, err := ParseDurationField("storage.busy_timeout", c.Storage.BusyTimeout); err != nil {
			return err
		}
	}
	if c.Telegram != nil {
		if strings.TrimSpace(c.Telegram.Token) == "" {
			return fmt.Errorf("telegram.token is required when the telegram section is present")
		}
		if _, err := ParseDurationField("telegram.poll_timeout", c.Telegram.PollTimeout); err != nil {
			return err
		}
	}
	return nil
}
