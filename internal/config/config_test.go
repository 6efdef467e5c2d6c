package config

import (
	"os"
	"testing"
)

func TestConfigLoad_Defaults(t *testing.T) {
	_ = os.Unsetenv("DREAMS_BACKEND_HTTP_PORT")
	_ = os.Unsetenv("DREAMS_BACKEND_MONGO_URI")
	_ = os.Unsetenv("DREAMS_BACKEND_TOKEN_TTL_MINUTES")
	_ = os.Setenv("DREAMS_BACKEND_JWT_SECRET", "s3cret")
	defer func() { _ = os.Unsetenv("DREAMS_BACKEND_JWT_SECRET") }()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 8080 || cfg.MongoURI != "mongodb://localhost:27017" || cfg.MongoDatabase != "dreamshare" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.TokenTTLMinutes != 60 || cfg.BcryptCost != 12 {
		t.Fatalf("unexpected auth defaults: ttl=%d cost=%d", cfg.TokenTTLMinutes, cfg.BcryptCost)
	}
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	_ = os.Setenv("DREAMS_BACKEND_JWT_SECRET", "s3cret")
	_ = os.Setenv("DREAMS_BACKEND_HTTP_PORT", "9999")
	_ = os.Setenv("DREAMS_BACKEND_MONGO_DATABASE", "dreams_ci")
	defer func() {
		_ = os.Unsetenv("DREAMS_BACKEND_JWT_SECRET")
		_ = os.Unsetenv("DREAMS_BACKEND_HTTP_PORT")
		_ = os.Unsetenv("DREAMS_BACKEND_MONGO_DATABASE")
	}()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 9999 {
		t.Fatalf("http port env override failed, got %d", cfg.HTTPPort)
	}
	if cfg.MongoDatabase != "dreams_ci" {
		t.Fatalf("mongo database env override failed, got %s", cfg.MongoDatabase)
	}
	if cfg.GetHTTPAddr() != ":9999" {
		t.Fatalf("unexpected http addr: %s", cfg.GetHTTPAddr())
	}
}

func TestConfigLoad_MissingSecret(t *testing.T) {
	_ = os.Unsetenv("DREAMS_BACKEND_JWT_SECRET")

	if _, err := New(); err == nil {
		t.Fatal("expected error when JWT secret is unset")
	}
}

func TestConfigLoad_BcryptCostBounds(t *testing.T) {
	_ = os.Setenv("DREAMS_BACKEND_JWT_SECRET", "s3cret")
	_ = os.Setenv("DREAMS_BACKEND_BCRYPT_COST", "99")
	defer func() {
		_ = os.Unsetenv("DREAMS_BACKEND_JWT_SECRET")
		_ = os.Unsetenv("DREAMS_BACKEND_BCRYPT_COST")
	}()

	if _, err := New(); err == nil {
		t.Fatal("expected error for out-of-range bcrypt cost")
	}
}
