package database

import (
	"context"
	"fmt"
	"time"

	"github.com/pr-poehali-dev/ai-programmer-disol/config"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Tables owned by this service.
var Tables = []string{"chat_sessions", "chat_messages", "projects"}

// Connect opens the pool described by DATABASE_URL. The handle is returned
// rather than stored globally; callers pass it to the repositories.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := logger.Warn
	if cfg.AppMode == "debug" {
		level = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates every table and constraint.
func Migrate(db *gorm.DB) error {
	return repository.InitSchema(db)
}

func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func TableExists(db *gorm.DB, table string) bool {
	return db.Migrator().HasTable(table)
}

func TableCount(db *gorm.DB, table string) (int64, error) {
	var count int64
	err := db.Table(table).Count(&count).Error
	return count, err
}
