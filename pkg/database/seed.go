package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/chat"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/project"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedResult holds what SeedDevelopment inserted.
type SeedResult struct {
	Session  *chat.Session
	Messages []*chat.Message
	Project  *project.Project
}

// SeedDevelopment inserts one chat exchange and one code project for userID
// through the same repositories the API uses.
func SeedDevelopment(ctx context.Context, db *gorm.DB, userID string) (*SeedResult, error) {
	sessions := repository.NewChatSessionRepository(db)
	messages := repository.NewChatMessageRepository(db)
	projects := repository.NewProjectRepository(db)

	result := &SeedResult{}

	session := &chat.Session{UserID: userID, Title: "Hello"}
	if err := sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to seed session: %w", err)
	}
	result.Session = session

	turns := []struct {
		role    domain.MessageRole
		content string
	}{
		{domain.MessageRoleUser, "Hello"},
		{domain.MessageRoleAssistant, "Hi! What would you like to build today?"},
	}
	for _, t := range turns {
		m := &chat.Message{SessionID: session.ID, Role: string(t.role), Content: t.content}
		if err := messages.Create(ctx, m); err != nil {
			return nil, fmt.Errorf("failed to seed message: %w", err)
		}
		result.Messages = append(result.Messages, m)
	}

	code := "def hello():\n    print(\"hello\")\n"
	lang := string(domain.LanguagePython)
	p := &project.Project{
		UserID:   userID,
		Title:    "hello in python",
		Type:     string(domain.ProjectTypeCode),
		Content:  code,
		Language: &lang,
		Metadata: datatypes.JSON(fmt.Sprintf(`{"language":%q,"lines":%d}`, lang, strings.Count(code, "\n"))),
	}
	if err := projects.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to seed project: %w", err)
	}
	result.Project = p

	return result, nil
}

func TruncateAllTables(db *gorm.DB) error {
	return db.Exec("TRUNCATE TABLE " + strings.Join(Tables, ", ") + " CASCADE").Error
}
