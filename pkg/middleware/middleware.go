package middleware

import (
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Arthur-DiasP/Delivery/internal/session"
)

const (
	RequestIDHeader = "X-Request-ID"
	ClientIDHeader  = "X-Client-ID"
	SessionIDHeader = "X-Session-ID"

	requestIDKey = "request_id"
	identityKey  = "identity"
)

// Client supplied ids are used as storage keys, so only short opaque
// tokens are accepted.
var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("Request failed", fields...)
		case status >= 400:
			logger.Warn("Request rejected", fields...)
		default:
			logger.Info("Request handled", fields...)
		}
	}
}

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !tokenPattern.MatchString(id) {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Session resolves the durable client id and the ephemeral session id.
// Missing or malformed ids are replaced with fresh ones and echoed back
// so the browser can keep them.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := session.Identity{
			ClientID:  token(c.GetHeader(ClientIDHeader)),
			SessionID: token(c.GetHeader(SessionIDHeader)),
		}
		c.Set(identityKey, id)
		c.Header(ClientIDHeader, id.ClientID)
		c.Header(SessionIDHeader, id.SessionID)
		c.Next()
	}
}

func token(v string) string {
	if tokenPattern.MatchString(v) {
		return v
	}
	return uuid.New().String()
}

// Identity returns the identity set by Session.
func Identity(c *gin.Context) session.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(session.Identity); ok {
			return id
		}
	}
	return session.Identity{}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
