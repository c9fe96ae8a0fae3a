package ctxutil

import "context"

type ctxKey string

const (
	partnerIDKey ctxKey = "partner_id"
	requestIDKey ctxKey = "request_id"
)

// WithPartnerID stores the partner ID in the context.
func WithPartnerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, partnerIDKey, id)
}

// PartnerIDFromCtx extracts the partner ID from the context.
// Returns "" and false if the value is missing, empty, or wrong type.
func PartnerIDFromCtx(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(partnerIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
