package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project represents projects: a saved image URL or piece of generated code.
type Project struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    string         `gorm:"not null;index:idx_projects_user_type,priority:1"`
	Title     string         `gorm:"size:100;not null"`
	Type      string         `gorm:"size:16;not null;index:idx_projects_user_type,priority:2"`
	Content   string         `gorm:"type:text;not null;default:''"`
	Language  *string        `gorm:"size:32"`
	Metadata  datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time      `gorm:"not null;index"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if len(p.Metadata) == 0 {
		p.Metadata = datatypes.JSON("{}")
	}
	return nil
}
