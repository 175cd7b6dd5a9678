package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"SERVER_PORT", "APP_ENV",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSL_MODE",
		"DB_MAX_IDLE_CONNS", "DB_MAX_OPEN_CONNS", "DB_CONN_MAX_LIFETIME",
		"JWT_SIGNING_KEY", "JWT_EXPIRATION_TIME",
		"AUTH_REQUIRE_READ", "LOG_LEVEL", "METRICS_PREFIX",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "8085" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "8085")
	}
	if cfg.DB.Host != "localhost" {
		t.Errorf("DB.Host = %q, want %q", cfg.DB.Host, "localhost")
	}
	if cfg.DB.SSLMode != "disable" {
		t.Errorf("DB.SSLMode = %q, want %q", cfg.DB.SSLMode, "disable")
	}
	if cfg.DB.ConnMaxLifetime != time.Hour {
		t.Errorf("DB.ConnMaxLifetime = %v, want %v", cfg.DB.ConnMaxLifetime, time.Hour)
	}
	if cfg.Auth.RequireAuthForRead {
		t.Error("Auth.RequireAuthForRead should default to false")
	}
	if cfg.Metrics.Prefix != "menu" {
		t.Errorf("Metrics.Prefix = %q, want %q", cfg.Metrics.Prefix, "menu")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("DB_MAX_OPEN_CONNS", "25")
	os.Setenv("AUTH_REQUIRE_READ", "true")
	os.Setenv("JWT_EXPIRATION_TIME", "2h")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "9090")
	}
	if cfg.DB.MaxOpenConns != 25 {
		t.Errorf("DB.MaxOpenConns = %d, want %d", cfg.DB.MaxOpenConns, 25)
	}
	if !cfg.Auth.RequireAuthForRead {
		t.Error("Auth.RequireAuthForRead should be true")
	}
	if cfg.JWT.ExpirationTime != 2*time.Hour {
		t.Errorf("JWT.ExpirationTime = %v, want %v", cfg.JWT.ExpirationTime, 2*time.Hour)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	os.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")
	os.Setenv("AUTH_REQUIRE_READ", "maybe")
	defer clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DB.MaxIdleConns != 10 {
		t.Errorf("DB.MaxIdleConns = %d, want default %d", cfg.DB.MaxIdleConns, 10)
	}
	if cfg.Auth.RequireAuthForRead {
		t.Error("Auth.RequireAuthForRead should fall back to false")
	}
}

func TestGetDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "db", Port: "5432", User: "menu", Password: "pw", Name: "menu_db", SSLMode: "disable",
	}
	want := "host=db port=5432 user=menu password=pw dbname=menu_db sslmode=disable"
	if got := db.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
