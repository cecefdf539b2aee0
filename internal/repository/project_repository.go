package repository

import (
	"context"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain/project"
	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"

	"gorm.io/gorm"
)

type PostgresProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) Create(ctx context.Context, p *project.Project) error {
	res := r.db.WithContext(ctx).Create(p)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return disol_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresProjectRepository) GetUserProjects(ctx context.Context, userID, projectType string) ([]project.Project, error) {
	var projects []project.Project
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if projectType != "" {
		q = q.Where("type = ?", projectType)
	}
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}
