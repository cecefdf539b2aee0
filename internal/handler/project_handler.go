package handler

import (
	"net/http"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/services"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/transport/httpdto"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/logger"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// List handles GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	var req httpdto.ListProjectsRequest
	if err := httpdto.BindQuery(c, &req); err != nil {
		c.Error(err)
		return
	}
	ctx := logger.WithUserID(c.Request.Context(), req.UserID.String())

	projects, err := h.service.List(ctx, req.UserID.String(), req.Type)
	if err != nil {
		c.Error(err)
		return
	}
	items := make([]httpdto.ProjectDTO, 0, len(projects))
	for _, p := range projects {
		items = append(items, httpdto.NewProjectDTO(p))
	}
	c.JSON(http.StatusOK, httpdto.ListProjectsResponse{Projects: items})
}

// Create handles POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req httpdto.CreateProjectRequest
	if err := httpdto.BindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	ctx := logger.WithUserID(c.Request.Context(), req.UserID.String())

	p, err := h.service.Create(ctx, services.CreateProjectInput{
		UserID:   req.UserID.String(),
		Title:    req.Title,
		Type:     req.Type,
		Content:  req.Content,
		Language: req.Language,
		Metadata: req.Metadata,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, httpdto.CreateProjectResponse{Success: true, ProjectID: p.ID.String()})
}
