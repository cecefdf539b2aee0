package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pr-poehali-dev/ai-programmer-disol/config"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/database"

	"gorm.io/gorm"
)

const usage = `
Disol - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Create or update tables and constraints
  status      Show database connection status and row counts
  seed-dev    Insert a demo chat session and project
  truncate    Truncate all tables (DANGEROUS)

Flags:
  -user string   User id for seed-dev (default "demo")

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
  go run cmd/migrate/main.go seed-dev -user 42
`

func main() {
	userID := flag.String("user", "demo", "User id for seed-dev")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg := config.LoadConfig()
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer database.Close(db)

	switch command {
	case "up":
		runMigrationsUp(db)
	case "status":
		showStatus(db)
	case "seed-dev":
		runSeedDevelopment(db, *userID)
	case "truncate":
		runTruncate(db)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(db *gorm.DB) {
	log.Println("🚀 Running migrations UP...")

	if err := database.Migrate(db); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Migrations completed successfully!")
}

func showStatus(db *gorm.DB) {
	log.Println("🔍 Checking database status...")

	if err := database.HealthCheck(context.Background(), db); err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	log.Println("✅ Database connection: OK")

	for _, table := range database.Tables {
		if !database.TableExists(db, table) {
			log.Printf("❌ Table %-20s does not exist", table)
			continue
		}
		count, err := database.TableCount(db, table)
		if err != nil {
			log.Printf("⚠️  Error counting table %s: %v", table, err)
			continue
		}
		log.Printf("✅ Table %-20s exists (%d rows)", table, count)
	}
}

func runSeedDevelopment(db *gorm.DB, userID string) {
	log.Println("🌱 Seeding database (development mode)...")

	result, err := database.SeedDevelopment(context.Background(), db, userID)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("📊 Seed Summary:")
	log.Printf("   - Session: %s", result.Session.ID)
	log.Printf("   - Messages: %d", len(result.Messages))
	log.Printf("   - Project: %s", result.Project.ID)
	log.Println("✅ Development seeding completed!")
}

func runTruncate(db *gorm.DB) {
	log.Println("⚠️  WARNING: This will TRUNCATE all tables!")

	if err := database.TruncateAllTables(db); err != nil {
		log.Fatalf("❌ Truncate failed: %v", err)
	}

	log.Println("✅ All tables truncated!")
}
