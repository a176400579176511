package config

import (
	"os"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	_ = os.Setenv("JWT_SECRET", "test-secret")
	defer func() { _ = os.Unsetenv("JWT_SECRET") }()
	_ = os.Unsetenv("HTTP_PORT")
	_ = os.Unsetenv("MONGO_URI")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 8080 {
		t.Fatalf("unexpected default port: %d", cfg.HTTPPort)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" || cfg.MongoDatabase != "calorie_tracker" {
		t.Fatalf("unexpected mongo defaults: %+v", cfg)
	}
	if cfg.JWTSecret != "test-secret" {
		t.Fatalf("jwt secret not picked up, got %q", cfg.JWTSecret)
	}
}

func TestConfigEnvOverride(t *testing.T) {
	_ = os.Setenv("JWT_SECRET", "test-secret")
	_ = os.Setenv("HTTP_PORT", "9999")
	defer func() {
		_ = os.Unsetenv("JWT_SECRET")
		_ = os.Unsetenv("HTTP_PORT")
	}()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.HTTPPort != 9999 {
		t.Fatalf("port env override failed, got %d", cfg.HTTPPort)
	}
}

func TestConfigRequiresJWTSecret(t *testing.T) {
	_ = os.Unsetenv("JWT_SECRET")

	if _, err := New(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "n", DBPort: "5433"}
	want := "host=db user=u password=p dbname=n port=5433 sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Fatalf("dsn mismatch:\n got %s\nwant %s", got, want)
	}
}
