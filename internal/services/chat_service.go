package services

import (
	"context"
	"errors"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/chat"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/llm"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/repository"
	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ChatHistoryLimit   = 10
	SessionTitleLength = 50
	ChatTemperature    = 0.7
	ChatMaxTokens      = 2000
)

// PersonaPrompt is sent ahead of every chat history.
const PersonaPrompt = `You are Timur, a full-cycle AI programmer.
You can:
- Build code for web applications (React, Python, Node.js)
- Develop mobile applications (React Native, Flutter)
- Write backend APIs
- Generate HTML/CSS/JavaScript
- Advise on architecture and best practices

Answer professionally but in a friendly tone. Always offer ready-made solutions with code.`

type ChatService struct {
	sessions repository.ChatSessionRepository
	messages repository.ChatMessageRepository
	llm      llm.Provider
	logger   *logger.Logger
}

type SendMessageInput struct {
	UserID string
	// SessionID is uuid.Nil to start a new conversation.
	SessionID uuid.UUID
	Message   string
}

type SendMessageResult struct {
	SessionID uuid.UUID
	Reply     string
}

func NewChatService(sessions repository.ChatSessionRepository, messages repository.ChatMessageRepository, provider llm.Provider, l *logger.Logger) *ChatService {
	if l == nil {
		l = logger.NewNop()
	}
	return &ChatService{sessions: sessions, messages: messages, llm: provider, logger: l}
}

// SendMessage stores the user turn, asks the model for a reply and stores it.
// The writes are not transactional: if the completion call fails the user
// turn stays persisted without a reply.
func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (SendMessageResult, error) {
	if in.UserID == "" || in.Message == "" {
		return SendMessageResult{}, disol_errors.Validation("user_id and message are required")
	}

	sessionID := in.SessionID
	if sessionID == uuid.Nil {
		session := chat.Session{
			UserID: in.UserID,
			Title:  truncateRunes(in.Message, SessionTitleLength),
		}
		if err := s.sessions.Create(ctx, &session); err != nil {
			return SendMessageResult{}, err
		}
		sessionID = session.ID
	}

	userMsg := chat.Message{SessionID: sessionID, Role: string(domain.MessageRoleUser), Content: in.Message}
	if err := s.messages.Create(ctx, &userMsg); err != nil {
		if errors.Is(err, disol_errors.ErrNotFound) {
			return SendMessageResult{}, disol_errors.Validation("chat session not found")
		}
		return SendMessageResult{}, err
	}

	history, err := s.BuildHistory(ctx, sessionID)
	if err != nil {
		return SendMessageResult{}, err
	}

	reply, err := s.llm.Chat(ctx, history, llm.WithTemperature(ChatTemperature), llm.WithMaxTokens(ChatMaxTokens))
	if err != nil {
		s.logger.WarnCtx(ctx, "chat turn persisted without a reply",
			zap.String("session_id", sessionID.String()), zap.Error(err))
		return SendMessageResult{}, err
	}

	assistantMsg := chat.Message{SessionID: sessionID, Role: string(domain.MessageRoleAssistant), Content: reply}
	if err := s.messages.Create(ctx, &assistantMsg); err != nil {
		return SendMessageResult{}, err
	}

	return SendMessageResult{SessionID: sessionID, Reply: reply}, nil
}

// BuildHistory returns the persona prompt followed by the last
// ChatHistoryLimit messages of the session in chronological order.
func (s *ChatService) BuildHistory(ctx context.Context, sessionID uuid.UUID) ([]llm.Message, error) {
	recent, err := s.messages.GetRecentMessages(ctx, sessionID, ChatHistoryLimit)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(recent)+1)
	history = append(history, llm.Message{Role: string(domain.MessageRoleSystem), Content: PersonaPrompt})
	for i := len(recent) - 1; i >= 0; i-- {
		history = append(history, llm.Message{Role: recent[i].Role, Content: recent[i].Content})
	}
	return history, nil
}

func (s *ChatService) GetUserSessions(ctx context.Context, userID string) ([]chat.Session, error) {
	if userID == "" {
		return nil, disol_errors.Validation("user_id is required")
	}
	return s.sessions.GetUserSessions(ctx, userID)
}

func (s *ChatService) GetSessionMessages(ctx context.Context, sessionID uuid.UUID) ([]chat.Message, error) {
	return s.messages.GetSessionMessages(ctx, sessionID)
}
