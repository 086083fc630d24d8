package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.DB.DSN != "postgres://doxa:pw@localhost:5432/doxa_cleaning_llc?sslmode=disable" {
		t.Fatalf("unexpected DSN %q", cfg.DB.DSN)
	}
	if cfg.JWT.Expiration() != 24*time.Hour {
		t.Fatalf("expected default 24h token expiry, got %v", cfg.JWT.Expiration())
	}
	if cfg.Password.BcryptCost != 10 {
		t.Fatalf("expected default bcrypt cost 10, got %d", cfg.Password.BcryptCost)
	}
	if cfg.AuthRateLimit.LoginWindow != time.Minute {
		t.Fatalf("unexpected login window %v", cfg.AuthRateLimit.LoginWindow)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvAppEnv); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvAppEnv, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func TestLoad_LegacyDBPieces(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDSN, "")
	t.Setenv(EnvDBHost, "db.internal")
	t.Setenv(EnvDBUser, "doxa")
	t.Setenv("DOXA_DB_PASSWORD", "s3cret")
	t.Setenv(EnvDBName, "doxa_cleaning_llc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if !strings.Contains(cfg.DB.DSN, "db.internal:5432") {
		t.Fatalf("expected assembled DSN, got %q", cfg.DB.DSN)
	}
	if !strings.Contains(cfg.DB.DSN, "sslmode=require") {
		t.Fatalf("production DSN should require TLS, got %q", cfg.DB.DSN)
	}
}

func TestLoad_LegacyDBPiecesMissing(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvDBDSN, "")
	t.Setenv(EnvDBHost, "db.internal")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when legacy DB pieces are incomplete")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "3000")
	t.Setenv(EnvDBDSN, "postgres://doxa:pw@localhost:5432/doxa_cleaning_llc?sslmode=disable")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvJWTSecret, "secret")
	t.Setenv(EnvJWTIssuer, "doxa-api")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEVELOPMENT"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "production"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}
