package repository

import (
	"context"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/chat"
	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"

	"gorm.io/gorm"
)

type PostgresChatSessionRepository struct {
	db *gorm.DB
}

func NewChatSessionRepository(db *gorm.DB) ChatSessionRepository {
	return &PostgresChatSessionRepository{db: db}
}

func (r *PostgresChatSessionRepository) Create(ctx context.Context, s *chat.Session) error {
	res := r.db.WithContext(ctx).Create(s)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return disol_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresChatSessionRepository) GetUserSessions(ctx context.Context, userID string) ([]chat.Session, error) {
	var sessions []chat.Session
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
