package api

import (
	"context"

	"github.com/Alkhemd/SistemaH2-sub000/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Header and gin-context keys for request correlation.
const (
	HeaderRequestID = "X-Request-ID"
	KeyRequestID    = "request_id"
	KeyActor        = "actor"
)

// RequestIDMiddleware assigns every request a correlation ID (reusing the
// caller's X-Request-ID when present) and enriches the request context
// with the values the activity log reads: request ID, source IP and the
// acting user taken from the X-Actor header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(KeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		actor := c.GetHeader("X-Actor")
		if actor != "" {
			c.Set(KeyActor, actor)
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, service.ContextKeyRequestID, requestID)
		ctx = context.WithValue(ctx, service.ContextKeySourceIP, c.ClientIP())
		if actor != "" {
			ctx = context.WithValue(ctx, service.ContextKeyActor, actor)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ActorFromRequest returns the acting user for audit purposes, falling
// back to a system actor when the header is absent.
func ActorFromRequest(c *gin.Context) string {
	if actor := c.GetString(KeyActor); actor != "" {
		return actor
	}
	return "sistema"
}
