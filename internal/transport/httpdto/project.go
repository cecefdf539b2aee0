package httpdto

import (
	"encoding/json"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/project"
)

// ListProjectsRequest holds query parameters for GET /projects
type ListProjectsRequest struct {
	UserID domain.UserID      `form:"user_id" binding:"required"`
	Type   domain.ProjectType `form:"type" binding:"omitempty,oneof=image code video"`
}

// CreateProjectRequest is used for POST /projects
type CreateProjectRequest struct {
	UserID   domain.UserID      `json:"user_id" binding:"required"`
	Title    *string            `json:"title"`
	Type     domain.ProjectType `json:"type" binding:"omitempty,oneof=image code video"`
	Content  string             `json:"content"`
	Language *string            `json:"language" binding:"omitempty,max=32"`
	Metadata json.RawMessage    `json:"metadata"`
}

type CreateProjectResponse struct {
	Success   bool   `json:"success"`
	ProjectID string `json:"project_id"`
}

type ProjectDTO struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Type      string          `json:"type"`
	Content   string          `json:"content"`
	Language  *string         `json:"language"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt string          `json:"created_at"`
}

type ListProjectsResponse struct {
	Projects []ProjectDTO `json:"projects"`
}

func NewProjectDTO(p project.Project) ProjectDTO {
	metadata := json.RawMessage(p.Metadata)
	if len(metadata) == 0 {
		metadata = json.RawMessage("{}")
	}
	return ProjectDTO{
		ID:        p.ID.String(),
		Title:     p.Title,
		Type:      p.Type,
		Content:   p.Content,
		Language:  p.Language,
		Metadata:  metadata,
		CreatedAt: Timestamp(p.CreatedAt),
	}
}
