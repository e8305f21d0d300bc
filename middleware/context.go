package middleware

import (
	"context"
)

type contextKey string

const operationKey contextKey = "plugforge:operation"

// WithOperation stores the matched OpenAPI operation id.
func WithOperation(ctx context.Context, operationID string) context.Context {
	return context.WithValue(ctx, operationKey, operationID)
}

// OperationID returns the operation id recorded by the middleware, or "".
func OperationID(ctx context.Context) string {
	if v, ok := ctx.Value(operationKey).(string); ok {
		return v
	}
	return ""
}
