package main

import (
	"context"
	"log"

	"github.com/pr-poehali-dev/ai-programmer-disol/config"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/bootstrap"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/database"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	l := logger.NewWithOptions(logger.Options{Mode: cfg.AppMode, FilePath: cfg.LogFilePath})
	logger.SetGlobalLogger(l)
	defer l.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	container := bootstrap.NewContainer(context.Background(), db, cfg, l)
	if err := container.Server.Start(); err != nil {
		l.Errorf("server exited: %v", err)
	}
}
