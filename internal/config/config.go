package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Telegram
	BotToken     string
	OwnerTgID    int64

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Application
	AppEnv   string
	LogLevel string

	// Game
	WordRoundLimit         int
	WordRoundSeconds       int
	CapitalRoundsPerPlayer int
	CapitalRoundSeconds    int

	// Upload relay
	UploadMaxSize        int64
	UploadTimeoutSeconds int

	// Message archive
	ArchiveEnabled       bool
	ArchiveRetentionDays int

	// Rate Limiting
	RateLimitPerUser int
	RateLimitPerChat int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		BotToken:   getEnv("BOT_TOKEN", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "gamesbot"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "gamesbot_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		WordRoundLimit:         getEnvInt("WORD_ROUND_LIMIT", 10),
		WordRoundSeconds:       getEnvInt("WORD_ROUND_SECONDS", 40),
		CapitalRoundsPerPlayer: getEnvInt("CAPITAL_ROUNDS_PER_PLAYER", 5),
		CapitalRoundSeconds:    getEnvInt("CAPITAL_ROUND_SECONDS", 60),

		UploadMaxSize:        getEnvInt64("UPLOAD_MAX_SIZE", 52428800),
		UploadTimeoutSeconds: getEnvInt("UPLOAD_TIMEOUT_SECONDS", 120),

		ArchiveEnabled:       getEnvBool("ARCHIVE_ENABLED", true),
		ArchiveRetentionDays: getEnvInt("ARCHIVE_RETENTION_DAYS", 7),

		RateLimitPerUser: getEnvInt("RATE_LIMIT_PER_USER", 20),
		RateLimitPerChat: getEnvInt("RATE_LIMIT_PER_CHAT", 60),
	}

	// Parse owner telegram ID
	ownerStr := getEnv("OWNER_TELEGRAM_ID", "")
	if ownerStr != "" {
		id, err := strconv.ParseInt(ownerStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid OWNER_TELEGRAM_ID: %w", err)
		}
		cfg.OwnerTgID = id
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.WordRoundLimit <= 0 {
		return fmt.Errorf("WORD_ROUND_LIMIT must be positive")
	}
	if c.CapitalRoundsPerPlayer <= 0 {
		return fmt.Errorf("CAPITAL_ROUNDS_PER_PLAYER must be positive")
	}
	if c.WordRoundSeconds <= 0 || c.CapitalRoundSeconds <= 0 {
		return fmt.Errorf("round timeouts must be positive")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}
	if c.OwnerTgID == 0 {
		return fmt.Errorf("OWNER_TELEGRAM_ID must be set in production")
	}

	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) WordRoundTimeout() time.Duration {
	return time.Duration(c.WordRoundSeconds) * time.Second
}

func (c *Config) CapitalRoundTimeout() time.Duration {
	return time.Duration(c.CapitalRoundSeconds) * time.Second
}

func (c *Config) UploadTimeout() time.Duration {
	return time.Duration(c.UploadTimeoutSeconds) * time.Second
}

func (c *Config) ArchiveRetention() time.Duration {
	return time.Duration(c.ArchiveRetentionDays) * 24 * time.Hour
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
