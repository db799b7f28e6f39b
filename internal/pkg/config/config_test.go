package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENV", "")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.TokenTTL != 24*time.Hour || !cfg.SeedDemo {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.PasswordMode != "plaintext" || cfg.NotifyWorkers != 4 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Redis.NotificationKey != "ats:notifications" || cfg.Tracing.ServiceName != "ats" {
		t.Errorf("unexpected nested defaults: %+v %+v", cfg.Redis, cfg.Tracing)
	}
	if cfg.JWTSecret == "" {
		t.Error("expected development secret fallback")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "90m")
	t.Setenv("SEED_DEMO", "false")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("REDIS_ADDR", "localhost:6380")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.TokenTTL != 90*time.Minute || cfg.SeedDemo {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.Redis.Addr != "localhost:6380" {
		t.Errorf("unexpected redis addr: %q", cfg.Redis.Addr)
	}
}

func TestValidate_ProductionNeedsSecret(t *testing.T) {
	cfg := &Config{Env: "production", TokenTTL: time.Hour}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error without JWT_SECRET in production")
	}
}
