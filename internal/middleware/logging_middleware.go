package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ikkim/jewel-storefront/pkg/logger"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// LoggingMiddleware tags every request with an id, stores a request-scoped
// logger on the context and logs the outcome at a level matching the status
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		requestID := requestIDFor(c)

		log := logger.WithContext(map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"ip":         c.ClientIP(),
		})
		c.Set(loggerKey, log)

		log.Debug("Incoming request", map[string]interface{}{
			"query":      c.Request.URL.RawQuery,
			"user_agent": c.Request.UserAgent(),
		})

		c.Next()

		logCompletion(c, log, time.Since(started))
	}
}

// requestIDFor keeps a caller-supplied id so traces can cross services
func requestIDFor(c *gin.Context) string {
	id := c.GetHeader(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(RequestIDKey, id)
	c.Header(RequestIDHeader, id)
	return id
}

func logCompletion(c *gin.Context, log *logger.Logger, latency time.Duration) {
	status := c.Writer.Status()
	fields := map[string]interface{}{
		"status_code": status,
		"latency_ms":  latency.Milliseconds(),
		"body_size":   c.Writer.Size(),
	}
	// set by the session middleware, which runs after this one
	if sessionID := c.GetString(SessionIDKey); sessionID != "" {
		fields["session_id"] = sessionID
	}
	if len(c.Errors) > 0 {
		fields["errors"] = c.Errors.String()
	}

	switch {
	case status >= 500:
		log.Error("Request failed", nil, fields)
	case status >= 400:
		log.Warn("Request rejected", fields)
	default:
		log.Info("Request completed", fields)
	}
}

// GetLoggerFromContext returns the request-scoped logger, or the global one
// outside of LoggingMiddleware
func GetLoggerFromContext(c *gin.Context) *logger.Logger {
	if log, exists := c.Get(loggerKey); exists {
		if l, ok := log.(*logger.Logger); ok {
			return l
		}
	}
	return logger.Get()
}
