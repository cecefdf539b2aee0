package middleware

import (
	"time"

	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func LoggingMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log := l
		if log == nil {
			log = logger.GetGlobalLogger()
		}
		if log != nil {
			log.InfoCtx(c.Request.Context(), "request",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", c.Writer.Status()),
				zap.Duration("latency", time.Since(start)),
			)
		}
	}
}
