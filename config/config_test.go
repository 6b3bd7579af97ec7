package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "development-only-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.App.Environment != "development" {
		t.Errorf("environment = %q, want development", cfg.App.Environment)
	}
	if got := cfg.Server.Address(); got != "0.0.0.0:8080" {
		t.Errorf("address = %q, want 0.0.0.0:8080", got)
	}
	if cfg.JWT.AccessTokenTTL != 15*time.Minute {
		t.Errorf("access ttl = %v, want 15m", cfg.JWT.AccessTokenTTL)
	}
	if cfg.RateLimit.BurstSize != 200 {
		t.Errorf("burst = %d, want 200", cfg.RateLimit.BurstSize)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "development-only-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("TRACING_ENABLED", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("read timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	if cfg.Tracing.Enabled {
		t.Error("tracing should be disabled")
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[0] != want[0] || cfg.CORS.AllowedOrigins[1] != want[1] {
		t.Errorf("origins = %v, want %v", cfg.CORS.AllowedOrigins, want)
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestLoad_ProductionRequirements(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "too-short")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_SSLMODE", "disable")

	_, err := Load()
	if err == nil {
		t.Fatal("expected production validation to fail")
	}
	for _, want := range []string{"JWT_SECRET", "DB_PASSWORD", "DB_SSLMODE"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %s complaint", err, want)
		}
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		Name:     "clinical",
		User:     "svc",
		Password: "hunter2",
		SSLMode:  "require",
	}

	got := d.DSN()
	want := "host=db.internal user=svc password=hunter2 dbname=clinical port=5433 sslmode=require TimeZone=UTC"
	if got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
