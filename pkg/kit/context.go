package kit

import "context"

type contextKey string

const transportKey contextKey = "kit_transport" // "http", "mcp"

// WithTransport tags the context with the transport that carried the
// request.
func WithTransport(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, transportKey, t)
}

// GetTransport returns the transport tag, defaulting to "http".
func GetTransport(ctx context.Context) string {
	if v, ok := ctx.Value(transportKey).(string); ok {
		return v
	}
	return "http"
}
