package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/chat"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/project"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, s *chat.Session) error
	// GetUserSessions returns the user's sessions, most recently updated first.
	GetUserSessions(ctx context.Context, userID string) ([]chat.Session, error)
}

type ChatMessageRepository interface {
	// Create returns ErrNotFound when the session does not exist.
	Create(ctx context.Context, m *chat.Message) error
	// GetSessionMessages returns every message of a session, oldest first.
	GetSessionMessages(ctx context.Context, sessionID uuid.UUID) ([]chat.Message, error)
	// GetRecentMessages returns up to limit messages, newest first.
	GetRecentMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]chat.Message, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, p *project.Project) error
	// GetUserProjects returns the user's projects newest first. An empty
	// projectType matches every type.
	GetUserProjects(ctx context.Context, userID, projectType string) ([]project.Project, error)
}
