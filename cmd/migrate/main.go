package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/config"
	"github.com/pageza/pantrymatch/backend/internal/database"
	"github.com/pageza/pantrymatch/backend/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, config.IsDevelopment())
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.New(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	if err := database.Migrate(db, zlog); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	zlog.Info("migrations applied")
}
