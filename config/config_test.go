package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"stocktracker/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
market:
  tick_interval: 2s
watchlist:
  backend: memory
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Market.TickInterval != 2*time.Second {
		t.Errorf("tick interval = %s", cfg.Market.TickInterval)
	}
	if cfg.Market.RefreshLatency != time.Second {
		t.Errorf("refresh latency default = %s", cfg.Market.RefreshLatency)
	}
	if cfg.Watchlist.Backend != config.BackendMemory || cfg.Watchlist.Key != "stockWatchlist" {
		t.Errorf("unexpected watchlist config: %+v", cfg.Watchlist)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("server addr default = %q", cfg.Server.Addr)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "market:\n  chart_days: 10\n")
	t.Setenv("MARKET_CHART_DAYS", "45")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Market.ChartDays != 45 {
		t.Errorf("chart days = %d, want 45", cfg.Market.ChartDays)
	}
}

func TestLoad_AllowedOrigins(t *testing.T) {
	cfg, err := config.Load(writeConfig(t, "app:\n  env: dev\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Server.AllowedOrigins) != 0 {
		t.Errorf("default origins = %v, want none", cfg.Server.AllowedOrigins)
	}

	path := writeConfig(t, `
server:
  allowed_origins:
    - http://localhost:5173
    - https://dash.example.com
`)
	cfg, err = config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"http://localhost:5173", "https://dash.example.com"}
	if len(cfg.Server.AllowedOrigins) != len(want) {
		t.Fatalf("origins = %v, want %v", cfg.Server.AllowedOrigins, want)
	}
	for i := range want {
		if cfg.Server.AllowedOrigins[i] != want[i] {
			t.Errorf("origin %d = %q, want %q", i, cfg.Server.AllowedOrigins[i], want[i])
		}
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	path := writeConfig(t, "watchlist:\n  backend: sqlite\n")

	_, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "sqlite") {
		t.Fatalf("expected unknown backend error, got %v", err)
	}
}

func TestValidate_Intervals(t *testing.T) {
	path := writeConfig(t, "market:\n  tick_interval: 0s\n")

	if _, err := config.Load(path); err == nil {
		t.Fatal("expected error for zero tick interval")
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := config.PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "pw",
		DBName:   "stocktracker",
		SSLMode:  "disable",
		TimeZone: "UTC",
	}

	want := "host=localhost port=5432 user=postgres password=pw dbname=stocktracker sslmode=disable TimeZone=UTC"
	if got := cfg.DSN("dev"); got != want {
		t.Errorf("DSN = %q", got)
	}
	if got := cfg.AdminDSN(); !strings.Contains(got, "dbname=postgres") {
		t.Errorf("AdminDSN = %q", got)
	}
}
