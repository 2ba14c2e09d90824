package middleware

import (
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDMiddleware ensures every request has a request_id available in headers and context
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.Request.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Set("request_id", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

// LoggingMiddleware logs one line per completed request, escalating the level for
// client and server errors.
func LoggingMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		durationMs := time.Since(start).Milliseconds()
		status := c.Writer.Status()
		userID, _ := UserID(c)

		fields := []interface{}{
			"request_id", c.GetString("request_id"),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", durationMs,
			"client_ip", c.ClientIP(),
			"user_id", userID,
		}

		if status >= 500 {
			logger.Errorw("request completed with server error", fields...)
			return
		}
		if status >= 400 {
			logger.Warnw("request completed with client error", fields...)
			return
		}
		logger.Infow("request completed", fields...)
	}
}

// RecoveryMiddleware converts panics to 500 responses and logs stack traces with context
func RecoveryMiddleware(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorw("panic recovered",
					"request_id", c.GetString("request_id"),
					"panic", r,
					"stack", string(debug.Stack()),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"client_ip", c.ClientIP(),
				)
				c.AbortWithStatusJSON(500, gin.H{"error": "Internal server error", "request_id": c.GetString("request_id")})
			}
		}()
		c.Next()
	}
}
