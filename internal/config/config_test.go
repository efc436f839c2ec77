package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	// Set required environment variables
	os.Setenv("BOT_TOKEN", "test_bot_token")
	os.Setenv("DB_PASSWORD", "test_password")
	os.Setenv("OWNER_TELEGRAM_ID", "12345")
	defer func() {
		os.Unsetenv("BOT_TOKEN")
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("OWNER_TELEGRAM_ID")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.BotToken != "test_bot_token" {
		t.Errorf("BotToken = %q, want %q", cfg.BotToken, "test_bot_token")
	}
	if cfg.OwnerTgID != 12345 {
		t.Errorf("OwnerTgID = %d, want 12345", cfg.OwnerTgID)
	}

	// Game defaults
	if cfg.WordRoundLimit != 10 {
		t.Errorf("WordRoundLimit = %d, want 10", cfg.WordRoundLimit)
	}
	if cfg.WordRoundTimeout() != 40*time.Second {
		t.Errorf("WordRoundTimeout = %v, want 40s", cfg.WordRoundTimeout())
	}
	if cfg.CapitalRoundsPerPlayer != 5 {
		t.Errorf("CapitalRoundsPerPlayer = %d, want 5", cfg.CapitalRoundsPerPlayer)
	}
	if cfg.CapitalRoundTimeout() != 60*time.Second {
		t.Errorf("CapitalRoundTimeout = %v, want 60s", cfg.CapitalRoundTimeout())
	}
	if cfg.UploadMaxSize != 52428800 {
		t.Errorf("UploadMaxSize = %d, want 50MB", cfg.UploadMaxSize)
	}
	if cfg.ArchiveRetention() != 7*24*time.Hour {
		t.Errorf("ArchiveRetention = %v, want 168h", cfg.ArchiveRetention())
	}
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{
			name: "Missing BOT_TOKEN",
			envVars: map[string]string{
				"DB_PASSWORD": "password",
			},
		},
		{
			name: "Missing DB_PASSWORD",
			envVars: map[string]string{
				"BOT_TOKEN": "token",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("BOT_TOKEN")
			os.Unsetenv("DB_PASSWORD")
			for k, v := range tt.envVars {
				os.Setenv(k, v)
			}
			defer func() {
				for k := range tt.envVars {
					os.Unsetenv(k)
				}
			}()

			if _, err := LoadConfig(); err == nil {
				t.Error("LoadConfig() should fail with missing required variable")
			}
		})
	}
}

func TestLoadConfig_InvalidGameSettings(t *testing.T) {
	os.Setenv("BOT_TOKEN", "token")
	os.Setenv("DB_PASSWORD", "password")
	os.Setenv("WORD_ROUND_LIMIT", "0")
	defer func() {
		os.Unsetenv("BOT_TOKEN")
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("WORD_ROUND_LIMIT")
	}()

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should reject a zero round limit")
	}
}

func TestValidateProductionSecurity(t *testing.T) {
	cfg := &Config{AppEnv: "development", DBSSLMode: "disable"}
	if err := cfg.ValidateProductionSecurity(); err != nil {
		t.Errorf("development validation error = %v", err)
	}

	cfg = &Config{AppEnv: "production", DBSSLMode: "disable", OwnerTgID: 1}
	if err := cfg.ValidateProductionSecurity(); err == nil {
		t.Error("production without SSL should fail validation")
	}

	cfg = &Config{AppEnv: "production", DBSSLMode: "require"}
	if err := cfg.ValidateProductionSecurity(); err == nil {
		t.Error("production without an owner id should fail validation")
	}

	cfg = &Config{AppEnv: "production", DBSSLMode: "require", OwnerTgID: 1}
	if err := cfg.ValidateProductionSecurity(); err != nil {
		t.Errorf("valid production config error = %v", err)
	}
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "localhost", DBPort: "5432", DBUser: "bot",
		DBPassword: "secret", DBName: "botdb", DBSSLMode: "disable",
	}
	want := "host=localhost port=5432 user=bot password=secret dbname=botdb sslmode=disable"
	if got := cfg.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}
