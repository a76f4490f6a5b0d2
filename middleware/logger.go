package middleware

import (
	"time"

	"github.com/JeffersonNayron/Turma-B/config"
	"github.com/JeffersonNayron/Turma-B/utils"

	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger writes one access line per request. An X-Request-ID sent by
// a proxy is kept; otherwise a new one is issued and echoed back.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" || len(requestID) > 64 {
			requestID = utils.NewRequestID()
		}
		c.Set("requestID", requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()

		fields := []any{
			"requestID", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"clientIP", c.ClientIP(),
		}
		if session, ok := CurrentSession(c); ok {
			fields = append(fields, "role", session.Role)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "errors", c.Errors.String())
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			config.Logger.Errorw("request", fields...)
		case status >= 400:
			config.Logger.Warnw("request", fields...)
		default:
			config.Logger.Infow("request", fields...)
		}
	}
}
