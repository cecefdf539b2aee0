package middleware

import (
	"github.com/pr-poehali-dev/ai-programmer-disol/internal/transport/httpdto"
	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"
	"github.com/pr-poehali-dev/ai-programmer-disol/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler is the single place errors become HTTP statuses.
// Handlers call c.Error(err) and return without writing a body.
func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		kind := disol_errors.KindOf(err)
		status := kind.StatusCode()
		if l != nil {
			fields := []zap.Field{zap.Int("status", status), zap.String("kind", kind.String()), zap.Error(err)}
			if status >= 500 {
				l.ErrorCtx(c.Request.Context(), "request failed", fields...)
			} else {
				l.WarnCtx(c.Request.Context(), "request rejected", fields...)
			}
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(status, httpdto.NewErrorResponse(err.Error(), kind.String()))
	}
}
