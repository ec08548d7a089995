package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key holding the request id
const requestIDKey = "request_id"

// RequestID reuses the caller's X-Request-ID or generates a new UUID,
// and echoes it on the response
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}

// GetRequestID returns the id set by RequestID, or "" when the middleware is absent
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Logger attaches a request-scoped zerolog logger to the request context
// and writes one access log line per request
func Logger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqLogger := base.With().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()
		c.Request = c.Request.WithContext(reqLogger.WithContext(c.Request.Context()))

		c.Next()

		status := c.Writer.Status()
		event := reqLogger.Info()
		switch {
		case status >= 500:
			event = reqLogger.Error()
		case status >= 400:
			event = reqLogger.Warn()
		}

		event.
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Int("size", c.Writer.Size()).
			Str("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()).
			Msg("HTTP request")
	}
}

// DefaultLogger is Logger over the global zerolog logger as it is when the
// router is built
func DefaultLogger() gin.HandlerFunc {
	return Logger(log.Logger)
}
