package httpdto

import "github.com/pr-poehali-dev/ai-programmer-disol/internal/domain"

// GenerateRequest is used for POST /generate
type GenerateRequest struct {
	UserID domain.UserID      `json:"user_id" binding:"required"`
	Type   domain.ProjectType `json:"type" binding:"required,oneof=image code video"`
	Prompt string             `json:"prompt" binding:"required"`
}

// GenerateImageResponse is returned for type=image
type GenerateImageResponse struct {
	Success   bool   `json:"success"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	ProjectID string `json:"project_id"`
}

// GenerateCodeResponse is returned for type=code
type GenerateCodeResponse struct {
	Success   bool   `json:"success"`
	Type      string `json:"type"`
	Code      string `json:"code"`
	Language  string `json:"language"`
	ProjectID string `json:"project_id"`
}

// GenerateVideoResponse is returned for type=video
type GenerateVideoResponse struct {
	Success bool   `json:"success"`
	Type    string `json:"type"`
	Message string `json:"message"`
}
