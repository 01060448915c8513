package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_BACKEND", "JSON_DATA_PATH", "SQLITE_DB_PATH", "EXPORT_DIR", "EXPORT_INTERVAL", "DAILY_BUDGET", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DataBackend != "json" {
		t.Errorf("DataBackend = %q, want json", cfg.DataBackend)
	}
	if cfg.JSONDataPath != "./data/expenses.json" {
		t.Errorf("JSONDataPath = %q", cfg.JSONDataPath)
	}
	if cfg.ExportInterval != 24*time.Hour {
		t.Errorf("ExportInterval = %v, want 24h", cfg.ExportInterval)
	}
	if cfg.DailyBudget.Cents != 10_000 {
		t.Errorf("DailyBudget = %d cents, want 10000", cfg.DailyBudget.Cents)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("EXPORT_INTERVAL", "1h30m")
	t.Setenv("DAILY_BUDGET", "75.50")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("DataBackend = %q, want memory", cfg.DataBackend)
	}
	if cfg.ExportInterval != 90*time.Minute {
		t.Errorf("ExportInterval = %v, want 1h30m", cfg.ExportInterval)
	}
	if cfg.DailyBudget.Cents != 7550 {
		t.Errorf("DailyBudget = %d cents, want 7550", cfg.DailyBudget.Cents)
	}
}

func TestLoadBadValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("EXPORT_INTERVAL", "soon")
	t.Setenv("DAILY_BUDGET", "lots")

	cfg := Load()
	if cfg.ExportInterval != 24*time.Hour {
		t.Errorf("ExportInterval = %v, want default 24h", cfg.ExportInterval)
	}
	if cfg.DailyBudget.Cents != 10_000 {
		t.Errorf("DailyBudget = %d cents, want default 10000", cfg.DailyBudget.Cents)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"bad port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "between 1 and 65535"},
		{"unknown backend", func(c *Config) { c.DataBackend = "redis" }, "invalid data backend"},
		{"empty json path", func(c *Config) { c.DataBackend = "json"; c.JSONDataPath = "" }, "JSON data path"},
		{"empty export dir", func(c *Config) { c.ExportDir = "" }, "export directory"},
		{"interval too short", func(c *Config) { c.ExportInterval = time.Second }, "at least 1 minute"},
		{"zero budget", func(c *Config) { c.DailyBudget.Cents = 0 }, "daily budget"},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{"PORT", "DATA_BACKEND", "JSON_DATA_PATH", "SQLITE_DB_PATH", "EXPORT_DIR", "EXPORT_INTERVAL", "DAILY_BUDGET", "LOG_LEVEL"} {
				t.Setenv(key, "")
			}
			cfg := Load()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
