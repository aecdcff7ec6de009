package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8087" {
		t.Errorf("Expected Port to be 8087, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Scan.LookbackDays != 7 {
		t.Errorf("Expected LookbackDays to be 7, got %d", cfg.Scan.LookbackDays)
	}

	if cfg.Scan.CooldownDays != 30 {
		t.Errorf("Expected CooldownDays to be 30, got %d", cfg.Scan.CooldownDays)
	}

	if cfg.Database.MaxConns != 10 {
		t.Errorf("Expected DB MaxConns to be 10, got %d", cfg.Database.MaxConns)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("SCAN_LOOKBACK_DAYS", "14")
	os.Setenv("SCAN_ENRICH_DELAY", "250ms")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("SCAN_LOOKBACK_DAYS")
		os.Unsetenv("SCAN_ENRICH_DELAY")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Scan.LookbackDays != 14 {
		t.Errorf("Expected LookbackDays to be 14, got %d", cfg.Scan.LookbackDays)
	}

	if cfg.Scan.EnrichDelay != 250*time.Millisecond {
		t.Errorf("Expected EnrichDelay to be 250ms, got %v", cfg.Scan.EnrichDelay)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	os.Setenv("ENV", "invalid")
	defer os.Unsetenv("ENV")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateInvalidScanParams(t *testing.T) {
	os.Setenv("SCAN_LOOKBACK_DAYS", "0")
	defer os.Unsetenv("SCAN_LOOKBACK_DAYS")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when SCAN_LOOKBACK_DAYS is 0, got nil")
	}
}

func TestArtifactPaths(t *testing.T) {
	cfg := &Config{DataDir: "data"}

	if got := cfg.CooldownPath(); got != filepath.Join("data", "cooldown.json") {
		t.Errorf("Unexpected cooldown path: %s", got)
	}

	if got := cfg.LeaderboardPath("atm"); got != filepath.Join("data", "atm_leaderboard.json") {
		t.Errorf("Unexpected leaderboard path: %s", got)
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	os.Setenv("TEST_DURATION", "2h")
	defer os.Unsetenv("TEST_DURATION")

	duration := getEnvAsDuration("TEST_DURATION", "1h")
	expected := 2 * time.Hour

	if duration != expected {
		t.Errorf("Expected duration to be %v, got %v", expected, duration)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	os.Setenv("TEST_INT", "100")
	defer os.Unsetenv("TEST_INT")

	value := getEnvAsInt("TEST_INT", 50)
	if value != 100 {
		t.Errorf("Expected value to be 100, got %d", value)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	os.Setenv("TEST_BOOL", "true")
	defer os.Unsetenv("TEST_BOOL")

	value := getEnvAsBool("TEST_BOOL", false)
	if value != true {
		t.Errorf("Expected value to be true, got %v", value)
	}
}
