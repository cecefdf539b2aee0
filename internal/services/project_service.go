package services

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/project"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/repository"
	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"

	"gorm.io/datatypes"
)

const (
	DefaultProjectTitle = "New Project"
	ProjectTitleLength  = 100
)

type ProjectService struct {
	repo repository.ProjectRepository
}

type CreateProjectInput struct {
	UserID string
	// Title is nil when the client did not send one.
	Title    *string
	Type     domain.ProjectType
	Content  string
	Language *string
	// Metadata is kept byte for byte. Missing or null means {}.
	Metadata json.RawMessage
}

func NewProjectService(repo repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// Create applies defaults, truncates the title and inserts one row.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (project.Project, error) {
	if in.UserID == "" {
		return project.Project{}, disol_errors.Validation("user_id is required")
	}

	title := DefaultProjectTitle
	if in.Title != nil {
		title = *in.Title
	}

	projectType := in.Type
	if projectType == "" {
		projectType = domain.ProjectTypeCode
	}
	if !projectType.Valid() {
		return project.Project{}, disol_errors.Validation("type must be one of image, code, video")
	}

	metadata, err := metadataObject(in.Metadata)
	if err != nil {
		return project.Project{}, err
	}

	p := project.Project{
		UserID:   in.UserID,
		Title:    truncateRunes(title, ProjectTitleLength),
		Type:     string(projectType),
		Content:  in.Content,
		Language: in.Language,
		Metadata: metadata,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return project.Project{}, err
	}
	return p, nil
}

// List returns the user's projects newest first, optionally of one type.
func (s *ProjectService) List(ctx context.Context, userID string, projectType domain.ProjectType) ([]project.Project, error) {
	if userID == "" {
		return nil, disol_errors.Validation("user_id is required")
	}
	if projectType != "" && !projectType.Valid() {
		return nil, disol_errors.Validation("type must be one of image, code, video")
	}
	return s.repo.GetUserProjects(ctx, userID, string(projectType))
}

func metadataObject(raw json.RawMessage) (datatypes.JSON, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return datatypes.JSON("{}"), nil
	}
	if trimmed[0] != '{' || !json.Valid(trimmed) {
		return nil, disol_errors.Validation("metadata must be a JSON object")
	}
	return datatypes.JSON(trimmed), nil
}
