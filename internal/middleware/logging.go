package middleware

import (
	"time"

	"vastra-be/internal/logger"
	"vastra-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestID tags every request with an id, echoes it back in the
// X-Request-ID header and threads it through the logger context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", requestID)

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AccessLog logs every HTTP request with structured fields.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remoteIP", c.ClientIP()),
		}
		if userID, ok := utils.GetUserIDFromContext(c.Request.Context()); ok {
			fields = append(fields, zap.String("userID", userID.String()))
		}
		logger.FromCtx(c.Request.Context()).Info("http request", fields...)
	}
}
