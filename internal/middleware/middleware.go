// Package middleware provides the gin middleware shared across all routes.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey is the request-context key carrying the correlation ID.
const RequestIDKey contextKey = "request_id"

// RequestIDHeader is the header used to propagate correlation IDs between
// services.
const RequestIDHeader = "X-Request-ID"

// RequestID attaches a correlation ID to every request. An incoming
// X-Request-ID is reused, otherwise a new one is generated. The ID is stored
// on the request context and echoed in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the correlation ID stored on ctx, or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}
