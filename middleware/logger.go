package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request through slog
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
		}
		if role := c.GetString("role"); role != "" {
			attrs = append(attrs, slog.String("role", role))
		}
		switch {
		case status >= 500:
			slog.Error("Request failed", attrs...)
		case status >= 400:
			slog.Warn("Request rejected", attrs...)
		default:
			slog.Debug("Request served", attrs...)
		}
	}
}
