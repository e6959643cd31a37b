package logging

import "context"

type contextKey string

const (
	refreshIDKey  contextKey = "refresh_id"
	generationKey contextKey = "generation"
)

// WithRefreshID adds a refresh correlation ID to the context.
func WithRefreshID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, refreshIDKey, id)
}

// WithGeneration adds the refresh generation to the context.
func WithGeneration(ctx context.Context, gen uint64) context.Context {
	return context.WithValue(ctx, generationKey, gen)
}

// GetRefreshID retrieves the refresh ID from the context.
// Returns empty string if not present.
func GetRefreshID(ctx context.Context) string {
	if id, ok := ctx.Value(refreshIDKey).(string); ok {
		return id
	}
	return ""
}

// GetGeneration retrieves the refresh generation from the context.
// Returns 0 if not present.
func GetGeneration(ctx context.Context) uint64 {
	if gen, ok := ctx.Value(generationKey).(uint64); ok {
		return gen
	}
	return 0
}
