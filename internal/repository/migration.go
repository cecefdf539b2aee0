package repository

import (
	"fmt"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/chat"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/project"

	"gorm.io/gorm"
)

// Models lists every table the service owns, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&chat.Session{},
		&chat.Message{},
		&project.Project{},
	}
}

// InitSchema creates the tables and the check constraints gorm tags cannot express.
func InitSchema(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	// We use 'DO $$ BEGIN ... END $$' so re-running the migration is a no-op.
	constraints := []string{
		`DO $$ BEGIN
			ALTER TABLE chat_messages ADD CONSTRAINT chk_chat_messages_role CHECK (role IN ('user', 'assistant'));
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$;`,
		`DO $$ BEGIN
			ALTER TABLE projects ADD CONSTRAINT chk_projects_type CHECK (type IN ('image', 'code', 'video'));
		EXCEPTION
			WHEN duplicate_object THEN null;
		END $$;`,
	}
	for _, stmt := range constraints {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to add constraint: %w", err)
		}
	}
	return nil
}
