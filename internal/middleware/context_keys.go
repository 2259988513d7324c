package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// operatorIDKey holds the authenticated operator's ID (the JWT subject).
const operatorIDKey = contextKey("operatorID")

// GetOperatorIDFromContext retrieves the authenticated operator ID from the Gin context.
// It returns the ID and a boolean indicating if it was found.
func GetOperatorIDFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(operatorIDKey)); exists {
		if id, ok := v.(string); ok {
			return id, true
		}
		return "", false
	}
	return GetOperatorIDFromCtx(c.Request.Context())
}

// GetOperatorIDFromCtx retrieves the operator ID from a standard context.
func GetOperatorIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(operatorIDKey).(string)
	return id, ok && id != ""
}

// WithOperatorID returns a copy of ctx carrying the operator ID.
func WithOperatorID(ctx context.Context, operatorID string) context.Context {
	return context.WithValue(ctx, operatorIDKey, operatorID)
}
