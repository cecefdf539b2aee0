package httpdto

import (
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/chat"
)

// SendChatMessageRequest is used for POST /chat
type SendChatMessageRequest struct {
	UserID    domain.UserID `json:"user_id" binding:"required"`
	Message   string        `json:"message" binding:"required"`
	SessionID *string       `json:"session_id"`
}

// SendChatMessageResponse is returned with the assistant reply
type SendChatMessageResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ListChatRequest holds query parameters for GET /chat
type ListChatRequest struct {
	UserID    domain.UserID `form:"user_id" binding:"required"`
	SessionID string        `form:"session_id"`
}

type ChatSessionDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"created_at"`
}

type ChatMessageDTO struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type ListChatSessionsResponse struct {
	Sessions []ChatSessionDTO `json:"sessions"`
}

type ListChatMessagesResponse struct {
	Messages []ChatMessageDTO `json:"messages"`
}

func NewChatSessionDTO(s chat.Session) ChatSessionDTO {
	return ChatSessionDTO{
		ID:        s.ID.String(),
		Title:     s.Title,
		CreatedAt: Timestamp(s.CreatedAt),
	}
}

func NewChatMessageDTO(m chat.Message) ChatMessageDTO {
	return ChatMessageDTO{
		ID:        m.ID.String(),
		Role:      m.Role,
		Content:   m.Content,
		CreatedAt: Timestamp(m.CreatedAt),
	}
}
