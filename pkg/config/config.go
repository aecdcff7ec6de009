package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the scanner.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server (read-only API surface)
	Port string
	Env  string // development, staging, production

	// Persistence
	DataDir  string // cooldown + leaderboard artifacts
	Database DatabaseConfig
	Redis    RedisConfig

	// External APIs
	EDGAR     EDGARConfig
	FMP       FMPConfig
	Anthropic AnthropicConfig
	Webhook   WebhookConfig

	// Scan defaults (overridable per-run via strategy file or flags)
	Scan ScanConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration for the optional
// run-history repository. An empty URL disables it.
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// EDGARConfig holds SEC EDGAR full-text search configuration.
// The SEC requires a descriptive User-Agent with a contact address.
type EDGARConfig struct {
	BaseURL   string
	UserAgent string
}

// FMPConfig holds market-data provider configuration.
type FMPConfig struct {
	APIKey  string
	BaseURL string
}

// AnthropicConfig holds narrative-generator configuration.
// An empty APIKey disables the generator; the deterministic
// fallback template is used instead.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// WebhookConfig holds the alert-posting webhook.
type WebhookConfig struct {
	URL string
}

// ScanConfig holds default run parameters.
type ScanConfig struct {
	LookbackDays int
	CooldownDays int
	MinScore     int
	MaxEntries   int
	EnrichDelay  time.Duration // pause between per-ticker enrichment calls
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8087"),
		Env:  getEnv("ENV", "development"),

		DataDir: getEnv("DATA_DIR", "data"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		EDGAR: EDGARConfig{
			BaseURL:   getEnv("EDGAR_BASE_URL", "https://efts.sec.gov/LATEST"),
			UserAgent: getEnv("EDGAR_USER_AGENT", "edgewatch/1.0 (ops@edgewatch.dev)"),
		},

		FMP: FMPConfig{
			APIKey:  getEnv("FMP_API_KEY", ""),
			BaseURL: getEnv("FMP_BASE_URL", "https://financialmodelingprep.com/api/v3"),
		},

		Anthropic: AnthropicConfig{
			APIKey: getEnv("ANTHROPIC_API_KEY", ""),
			Model:  getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		},

		Webhook: WebhookConfig{
			URL: getEnv("ALERT_WEBHOOK_URL", ""),
		},

		Scan: ScanConfig{
			LookbackDays: getEnvAsInt("SCAN_LOOKBACK_DAYS", 7),
			CooldownDays: getEnvAsInt("SCAN_COOLDOWN_DAYS", 30),
			MinScore:     getEnvAsInt("SCAN_MIN_SCORE", 30),
			MaxEntries:   getEnvAsInt("SCAN_MAX_ENTRIES", 10),
			EnrichDelay:  getEnvAsDuration("SCAN_ENRICH_DELAY", "500ms"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are sane.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Scan.CooldownDays < 0 {
		return fmt.Errorf("SCAN_COOLDOWN_DAYS must be >= 0")
	}
	if c.Scan.LookbackDays < 1 {
		return fmt.Errorf("SCAN_LOOKBACK_DAYS must be >= 1")
	}
	if c.Scan.MaxEntries < 1 {
		return fmt.Errorf("SCAN_MAX_ENTRIES must be >= 1")
	}

	return nil
}

// CooldownPath returns the path of the persisted cooldown file.
func (c *Config) CooldownPath() string {
	return filepath.Join(c.DataDir, "cooldown.json")
}

// LeaderboardPath returns the path of the leaderboard artifact for a variant.
func (c *Config) LeaderboardPath(variant string) string {
	return filepath.Join(c.DataDir, variant+"_leaderboard.json")
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
		"backend/.env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
