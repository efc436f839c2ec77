package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dreadedbot/group_games_bot/internal/config"
	"github.com/dreadedbot/group_games_bot/internal/database"
	"github.com/dreadedbot/group_games_bot/internal/game"
	"github.com/dreadedbot/group_games_bot/internal/models"
	"github.com/dreadedbot/group_games_bot/pkg/logger"
	"github.com/dreadedbot/group_games_bot/telegram"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	logger.Info("Starting Group Games Bot...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", err)
	}

	// Validate production security settings
	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			logger.Fatal("Production security validation failed", err)
		}
		logger.Info("Production security validation passed")
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}

	// Run GORM auto-migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed the built-in capital pool on first run
	if err := database.SeedCapitals(db, defaultCapitalRows()); err != nil {
		logger.Warn("Failed to seed capital questions", "error", err)
	}

	// Initialize and start Telegram bot
	bot, err := telegram.InitBot(cfg, db)
	if err != nil {
		logger.Fatal("Failed to initialize bot", err)
	}

	logger.Info("Bot started successfully", "env", cfg.AppEnv)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down gracefully...")
	bot.Stop()
	logger.Info("Bot stopped")
}

func defaultCapitalRows() []models.CapitalQuestion {
	pairs := game.DefaultCapitals()
	rows := make([]models.CapitalQuestion, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, models.CapitalQuestion{Country: p.Country, Capital: p.Capital})
	}
	return rows
}
