package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowHeaders = "Content-Type, X-Authorization"
	corsMaxAge       = "86400"
)

// CORSMiddleware lets any origin read every response.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Next()
	}
}

// Preflight answers OPTIONS for an endpoint serving methods. The body is empty.
func Preflight(methods ...string) gin.HandlerFunc {
	allowed := strings.Join(append(append([]string{}, methods...), http.MethodOptions), ", ")
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", allowed)
		c.Header("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Header("Access-Control-Max-Age", corsMaxAge)
		c.AbortWithStatus(http.StatusOK)
	}
}
