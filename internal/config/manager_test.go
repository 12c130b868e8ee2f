package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseJSON(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "config.json", `{
		"team": {"key": "platform"},
		"logging": {"level": "debug", "console": true, "file": {"enabled": false, "path": ""}},
		"roster": {"path": "./roster.yaml"},
		"storage": {"driver": "file", "path": "./store"},
		"announce": {"enabled": true, "spec": "0 9 * * *", "timezone": "Europe/Berlin"}
	}`)

	cfg, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Team.Key != "platform" || cfg.Storage.Driver != "file" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Announce.Timezone != "Europe/Berlin" {
		t.Fatalf("announce = %+v", cfg.Announce)
	}
}

func TestParseYAML(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "config.yaml", `
team:
  key: platform
logging:
  level: info
  console: true
  file:
    enabled: false
    path: ""
roster:
  path: ./roster.yaml
announce:
  enabled: false
`)
	cfg, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Team.Key != "platform" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Storage != nil || cfg.Telegram != nil {
		t.Fatalf("omitted sections must stay nil: %+v", cfg)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "config.json", `{
		"team": {"key": "platform"},
		"logging": {"level": "info", "console": true, "file": {"enabled": false, "path": ""}},
		"roster": {"path": "./roster.yaml"},
		"announce": {"enabled": false},
		"typo_section": {}
	}`)
	if _, err := NewManager(path).Parse(); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestParseValidates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "missing team key",
			raw:  `{"team":{"key":""},"logging":{"level":"info","console":true,"file":{"enabled":false,"path":""}},"roster":{"path":"r.yaml"},"announce":{"enabled":false}}`,
		},
		{
			name: "telegram without token",
			raw:  `{"team":{"key":"t"},"logging":{"level":"info","console":true,"file":{"enabled":false,"path":""}},"roster":{"path":"r.yaml"},"telegram":{"token":"","chat_id":1},"announce":{"enabled":false}}`,
		},
		{
			name: "bad busy timeout",
			raw:  `{"team":{"key":"t"},"logging":{"level":"info","console":true,"file":{"enabled":false,"path":""}},"roster":{"path":"r.yaml"},"storage":{"driver":"sqlite","path":"db","busy_timeout":"soon"},"announce":{"enabled":false}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, "config.json", tt.raw)
			if _, err := NewManager(path).Parse(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestParseRejectsTrailingData(t *testing.T) {
	t.Parallel()
	path := writeConfig(t, "config.json",
		`{"team":{"key":"t"},"logging":{"level":"info","console":true,"file":{"enabled":false,"path":""}},"roster":{"path":"r.yaml"},"announce":{"enabled":false}}{}`)
	if _, err := NewManager(path).Parse(); err == nil {
		t.Fatal("expected error for trailing data")
	}
}
