package chat

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session represents chat_sessions
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"not null;index"`
	Title     string    `gorm:"size:50;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null;index"`
}

func (Session) TableName() string {
	return "chat_sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Message represents chat_messages. Rows are never updated.
type Message struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_messages_session_created,priority:1"`
	Session   *Session  `gorm:"foreignKey:SessionID;constraint:OnDelete:RESTRICT"`
	Role      string    `gorm:"size:16;not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_chat_messages_session_created,priority:2"`
}

func (Message) TableName() string {
	return "chat_messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
