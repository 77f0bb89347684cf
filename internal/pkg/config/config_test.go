package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.ReminderHorizonDays != 30 {
		t.Fatalf("unexpected ttl/horizon: %v %d", cfg.TokenTTL, cfg.ReminderHorizonDays)
	}
	if cfg.Mongo.Database != "farm_manager" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected store defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
	if cfg.JWTSecret == "" {
		t.Fatalf("expected development secret")
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"ENV": "production"}))
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":                   "production",
		"JWT_SECRET":            "s3cret",
		"TOKEN_TTL":             "2h",
		"REMINDER_HORIZON_DAYS": "14",
		"REDIS_DB":              "2",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.TokenTTL != 2*time.Hour || cfg.ReminderHorizonDays != 14 || cfg.Redis.DB != 2 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestValidate_Horizon(t *testing.T) {
	cfg := &Config{Env: "development", TokenTTL: time.Hour}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected horizon error")
	}
}

func TestLoad_AdminSeedNeedsBoth(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{"ADMIN_EMAIL": "root@farm.test"}))
	if err == nil || !strings.Contains(err.Error(), "ADMIN_PASSWORD") {
		t.Fatalf("expected admin seed error, got %v", err)
	}

	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"ADMIN_EMAIL":    "root@farm.test",
		"ADMIN_PASSWORD": "correct-horse",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Admin.Enabled() || cfg.Admin.FullName != "Administrator" {
		t.Fatalf("unexpected admin config: %+v", cfg.Admin)
	}
}
