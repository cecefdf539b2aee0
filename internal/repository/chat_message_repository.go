package repository

import (
	"context"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/chat"
	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresChatMessageRepository struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) ChatMessageRepository {
	return &PostgresChatMessageRepository{db: db}
}

func (r *PostgresChatMessageRepository) Create(ctx context.Context, m *chat.Message) error {
	res := r.db.WithContext(ctx).Omit("Session").Create(m)
	if res.Error != nil {
		switch {
		case isForeignKeyViolation(res.Error):
			return disol_errors.ErrNotFound
		case isUniqueViolation(res.Error):
			return disol_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresChatMessageRepository) GetSessionMessages(ctx context.Context, sessionID uuid.UUID) ([]chat.Message, error) {
	var messages []chat.Message
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PostgresChatMessageRepository) GetRecentMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]chat.Message, error) {
	var messages []chat.Message
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
