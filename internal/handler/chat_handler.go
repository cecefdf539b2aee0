package handler

import (
	"net/http"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/services"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/transport/httpdto"
	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ChatHandler struct {
	service *services.ChatService
}

func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Send handles POST /chat
func (h *ChatHandler) Send(c *gin.Context) {
	var req httpdto.SendChatMessageRequest
	if err := httpdto.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	sessionID := uuid.Nil
	if req.SessionID != nil && *req.SessionID != "" {
		parsed, err := uuid.Parse(*req.SessionID)
		if err != nil {
			c.Error(disol_errors.Validation("invalid session_id"))
			return
		}
		sessionID = parsed
	}

	ctx := logger.WithUserID(c.Request.Context(), req.UserID.String())
	result, err := h.service.SendMessage(ctx, services.SendMessageInput{
		UserID:    req.UserID.String(),
		SessionID: sessionID,
		Message:   req.Message,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, httpdto.SendChatMessageResponse{
		Success:   true,
		SessionID: result.SessionID.String(),
		Message:   result.Reply,
	})
}

// List handles GET /chat: messages of one session, or the user's sessions.
func (h *ChatHandler) List(c *gin.Context) {
	var req httpdto.ListChatRequest
	if err := httpdto.BindQuery(c, &req); err != nil {
		c.Error(err)
		return
	}
	ctx := logger.WithUserID(c.Request.Context(), req.UserID.String())

	if req.SessionID != "" {
		sessionID, err := uuid.Parse(req.SessionID)
		if err != nil {
			c.Error(disol_errors.Validation("invalid session_id"))
			return
		}
		messages, err := h.service.GetSessionMessages(ctx, sessionID)
		if err != nil {
			c.Error(err)
			return
		}
		items := make([]httpdto.ChatMessageDTO, 0, len(messages))
		for _, m := range messages {
			items = append(items, httpdto.NewChatMessageDTO(m))
		}
		c.JSON(http.StatusOK, httpdto.ListChatMessagesResponse{Messages: items})
		return
	}

	sessions, err := h.service.GetUserSessions(ctx, req.UserID.String())
	if err != nil {
		c.Error(err)
		return
	}
	items := make([]httpdto.ChatSessionDTO, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, httpdto.NewChatSessionDTO(s))
	}
	c.JSON(http.StatusOK, httpdto.ListChatSessionsResponse{Sessions: items})
}
