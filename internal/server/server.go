package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pr-poehali-dev/ai-programmer-disol/config"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/handler"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/middleware"
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/transport/httpdto"
	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

const (
	ChatPath     = "/chat"
	GeneratePath = "/generate"
	ProjectsPath = "/projects"
)

type Handlers struct {
	Chat     *handler.ChatHandler
	Generate *handler.GenerationHandler
	Projects *handler.ProjectHandler
}

// HealthFunc reports whether the backing store is reachable.
type HealthFunc func(ctx context.Context) error

// Route binds one HTTP method of an endpoint to its handler.
type Route struct {
	Method  string
	Handler gin.HandlerFunc
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	httpdto.SetupValidator()

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if l != nil {
			l.ErrorCtx(c.Request.Context(), "panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			httpdto.NewErrorResponse(fmt.Sprint(recovered), disol_errors.KindUnhandled.String()))
	}))

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Engine exposes the router, e.g. to serve function envelopes.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, health HealthFunc) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.BodyLimitMiddleware(int64(s.config.MaxBodyBytes)))
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.NoMethod(func(c *gin.Context) {
		c.Error(disol_errors.MethodNotAllowed())
	})

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	s.RegisterEndpoint(ChatPath,
		Route{Method: http.MethodPost, Handler: handlers.Chat.Send},
		Route{Method: http.MethodGet, Handler: handlers.Chat.List},
	)
	s.RegisterEndpoint(GeneratePath,
		Route{Method: http.MethodPost, Handler: handlers.Generate.Generate},
	)
	s.RegisterEndpoint(ProjectsPath,
		Route{Method: http.MethodGet, Handler: handlers.Projects.List},
		Route{Method: http.MethodPost, Handler: handlers.Projects.Create},
	)
}

// RegisterEndpoint mounts routes under path and answers the CORS preflight
// with exactly those methods. Other methods get 405 through NoMethod.
func (s *Server) RegisterEndpoint(path string, routes ...Route) {
	methods := make([]string, 0, len(routes))
	for _, r := range routes {
		s.engine.Handle(r.Method, path, r.Handler)
		methods = append(methods, r.Method)
	}
	s.engine.OPTIONS(path, middleware.Preflight(methods...))
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Errorf("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
