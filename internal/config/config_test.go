package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Port != "8080" {
		t.Errorf("HTTP.Port = %q, want default 8080", cfg.HTTP.Port)
	}
	if cfg.JWT.TTL != 24*time.Hour {
		t.Errorf("JWT.TTL = %v, want 24h", cfg.JWT.TTL)
	}
	if cfg.Outbox.MaxRetry != 3 || cfg.Outbox.BatchSize != 50 {
		t.Errorf("Outbox = %+v", cfg.Outbox)
	}
	if cfg.Database.URL == "" {
		t.Error("postgres URL not derived from host/port/name parts")
	}
	if cfg.Address() != "0.0.0.0:8080" {
		t.Errorf("Address() = %q", cfg.Address())
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_TTL", "30") // bare integers are read as seconds
	t.Setenv("OUTBOX_BATCH_SIZE", "5")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg := MustLoad()

	if cfg.HTTP.Port != "9090" {
		t.Errorf("HTTP.Port = %q", cfg.HTTP.Port)
	}
	if cfg.JWT.TTL != 30*time.Second {
		t.Errorf("JWT.TTL = %v, want 30s", cfg.JWT.TTL)
	}
	if cfg.Outbox.BatchSize != 5 {
		t.Errorf("Outbox.BatchSize = %d", cfg.Outbox.BatchSize)
	}
	if cfg.Migrations.Enabled {
		t.Error("Migrations.Enabled = true, want false")
	}
}
