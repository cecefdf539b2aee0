package handler

import (
	"net/http"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/services"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/transport/httpdto"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/logger"

	"github.com/gin-gonic/gin"
)

type GenerationHandler struct {
	service *services.GenerationService
}

func NewGenerationHandler(service *services.GenerationService) *GenerationHandler {
	return &GenerationHandler{service: service}
}

// Generate handles POST /generate
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req httpdto.GenerateRequest
	if err := httpdto.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	ctx := logger.WithUserID(c.Request.Context(), req.UserID.String())
	result, err := h.service.Generate(ctx, services.GenerateInput{
		UserID: req.UserID.String(),
		Type:   req.Type,
		Prompt: req.Prompt,
	})
	if err != nil {
		c.Error(err)
		return
	}

	switch result.Type {
	case domain.ProjectTypeImage:
		c.JSON(http.StatusOK, httpdto.GenerateImageResponse{
			Success:   true,
			Type:      string(result.Type),
			URL:       result.URL,
			ProjectID: result.ProjectID.String(),
		})
	case domain.ProjectTypeCode:
		c.JSON(http.StatusOK, httpdto.GenerateCodeResponse{
			Success:   true,
			Type:      string(result.Type),
			Code:      result.Code,
			Language:  string(result.Language),
			ProjectID: result.ProjectID.String(),
		})
	default:
		c.JSON(http.StatusOK, httpdto.GenerateVideoResponse{
			Success: true,
			Type:    string(result.Type),
			Message: result.Message,
		})
	}
}
