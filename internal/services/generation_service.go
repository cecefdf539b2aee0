package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pr-poehali-dev/ai-programmer-disol/internal/domain"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/imagegen"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/llm"
	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CodeTemperature = 0.3
	CodeMaxTokens   = 3000

	CodeSystemPrompt = "You are Timur, an expert programmer. Write clean, working code for the request. Reply with code only, no explanations."

	VideoNotAvailableMessage = "Video generation is in development and will be available in a future update."

	imageContentType = "image/png"
)

type ImageGenerator interface {
	TextToImage(ctx context.Context, prompt string) ([]byte, error)
}

type ObjectStore interface {
	// Configured reports a configuration error when uploads cannot succeed.
	Configured() error
	PutObject(ctx context.Context, key string, body []byte, contentType string) error
	FileURL(key string) string
}

type GenerationService struct {
	projects *ProjectService
	llm      llm.Provider
	images   ImageGenerator
	store    ObjectStore
	logger   *logger.Logger
}

type GenerateInput struct {
	UserID string
	Type   domain.ProjectType
	Prompt string
}

// GenerateResult holds the artifact reference. Which fields are set depends on Type.
type GenerateResult struct {
	Type      domain.ProjectType
	ProjectID uuid.UUID
	URL       string
	Code      string
	Language  domain.LanguageCode
	Message   string
}

func NewGenerationService(projects *ProjectService, provider llm.Provider, images ImageGenerator, store ObjectStore, l *logger.Logger) *GenerationService {
	if l == nil {
		l = logger.NewNop()
	}
	return &GenerationService{projects: projects, llm: provider, images: images, store: store, logger: l}
}

func (s *GenerationService) Generate(ctx context.Context, in GenerateInput) (GenerateResult, error) {
	if in.UserID == "" || in.Type == "" || in.Prompt == "" {
		return GenerateResult{}, disol_errors.Validation("user_id, type and prompt are required")
	}

	switch in.Type {
	case domain.ProjectTypeImage:
		return s.generateImage(ctx, in)
	case domain.ProjectTypeCode:
		return s.generateCode(ctx, in)
	case domain.ProjectTypeVideo:
		return GenerateResult{Type: domain.ProjectTypeVideo, Message: VideoNotAvailableMessage}, nil
	default:
		return GenerateResult{}, disol_errors.Validation("unknown generation type %q", in.Type)
	}
}

func (s *GenerationService) generateImage(ctx context.Context, in GenerateInput) (GenerateResult, error) {
	if err := s.store.Configured(); err != nil {
		return GenerateResult{}, err
	}
	image, err := s.images.TextToImage(ctx, in.Prompt)
	if err != nil {
		return GenerateResult{}, err
	}

	key := imageObjectKey(in.UserID, requestSuffix(ctx))
	if err := s.store.PutObject(ctx, key, image, imageContentType); err != nil {
		return GenerateResult{}, err
	}
	url := s.store.FileURL(key)

	metadata, err := json.Marshal(map[string]string{
		"format": "PNG",
		"size":   fmt.Sprintf("%dx%d", imagegen.Width, imagegen.Height),
	})
	if err != nil {
		return GenerateResult{}, err
	}
	title := in.Prompt
	p, err := s.projects.Create(ctx, CreateProjectInput{
		UserID:   in.UserID,
		Title:    &title,
		Type:     domain.ProjectTypeImage,
		Content:  url,
		Metadata: metadata,
	})
	if err != nil {
		return GenerateResult{}, err
	}

	s.logger.InfoCtx(ctx, "image generated", zap.String("project_id", p.ID.String()), zap.String("key", key))
	return GenerateResult{Type: domain.ProjectTypeImage, ProjectID: p.ID, URL: url}, nil
}

func (s *GenerationService) generateCode(ctx context.Context, in GenerateInput) (GenerateResult, error) {
	code, err := s.llm.Chat(ctx, []llm.Message{
		{Role: string(domain.MessageRoleSystem), Content: CodeSystemPrompt},
		{Role: string(domain.MessageRoleUser), Content: in.Prompt},
	}, llm.WithTemperature(CodeTemperature), llm.WithMaxTokens(CodeMaxTokens))
	if err != nil {
		return GenerateResult{}, err
	}

	language := InferLanguage(in.Prompt)
	lang := string(language)
	title := in.Prompt
	p, err := s.projects.Create(ctx, CreateProjectInput{
		UserID:   in.UserID,
		Title:    &title,
		Type:     domain.ProjectTypeCode,
		Content:  code,
		Language: &lang,
		Metadata: json.RawMessage(fmt.Sprintf(`{"lines":%d}`, strings.Count(code, "\n"))),
	})
	if err != nil {
		return GenerateResult{}, err
	}

	return GenerateResult{Type: domain.ProjectTypeCode, ProjectID: p.ID, Code: code, Language: language}, nil
}

// imageObjectKey namespaces generated images by user.
func imageObjectKey(userID, suffix string) string {
	return fmt.Sprintf("images/%s_%s.png", userID, suffix)
}

// requestSuffix makes object keys unique per request. Request ids may come
// from the client, so only short alphanumeric ids are used verbatim.
func requestSuffix(ctx context.Context) string {
	if id := logger.RequestIDFromContext(ctx); isSafeKeyPart(id) {
		return id
	}
	return uuid.NewString()
}

func isSafeKeyPart(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}
