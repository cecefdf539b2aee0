package bootstrap

import (
	"context"

	"github.com/pr-poehali-dev/ai-programmer-disol/config"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/handler"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/imagegen"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/llm"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/repository"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/server"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/services"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/storage"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/database"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/logger"

	"gorm.io/gorm"
)

type Container struct {
	ChatService       *services.ChatService
	ProjectService    *services.ProjectService
	GenerationService *services.GenerationService

	Server *server.Server
}

// NewContainer wires repositories, providers, services and routes around
// one database handle. Missing provider credentials do not fail startup;
// the affected operations report a configuration error per request.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, l *logger.Logger) *Container {
	// 1. Repositories
	sessionRepo := repository.NewChatSessionRepository(db)
	messageRepo := repository.NewChatMessageRepository(db)
	projectRepo := repository.NewProjectRepository(db)

	// 2. Providers
	textProvider := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
	})
	imageProvider := imagegen.NewStabilityProvider(cfg.StabilityAPIURL, cfg.StabilityAPIKey)

	s3Client, err := storage.NewClient(ctx, storage.S3Config{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3Endpoint,
		CDNBase:   cfg.CDNBaseURL,
	})
	if err != nil {
		// A nil *storage.Client still answers Configured() with an error.
		l.Warnf("object storage unavailable: %v", err)
	}

	// 3. Services
	chatService := services.NewChatService(sessionRepo, messageRepo, textProvider, l)
	projectService := services.NewProjectService(projectRepo)
	generationService := services.NewGenerationService(projectService, textProvider, imageProvider, s3Client, l)

	// 4. Transport
	srv := server.New(cfg, l)
	srv.SetupRoutes(&server.Handlers{
		Chat:     handler.NewChatHandler(chatService),
		Generate: handler.NewGenerationHandler(generationService),
		Projects: handler.NewProjectHandler(projectService),
	}, func(ctx context.Context) error {
		return database.HealthCheck(ctx, db)
	})

	return &Container{
		ChatService:       chatService,
		ProjectService:    projectService,
		GenerationService: generationService,
		Server:            srv,
	}
}
