package middleware

import "context"

// contextKey is the type for values this package stores in a request context.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey    = contextKey("logger")
	requestIDCtxKey = contextKey("requestID")
)

// GetRequestIDFromCtx returns the id assigned by StructuredLoggingMiddleware, if any.
func GetRequestIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDCtxKey).(string)
	return id, ok && id != ""
}
