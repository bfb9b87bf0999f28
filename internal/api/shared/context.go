package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/soloadmin/admin-api/internal/domain"
)

// ContextKey is the type of request context keys set by the API layer.
type ContextKey string

const (
	// AdminContextKey holds the *domain.Administrator resolved by the admin gate.
	AdminContextKey ContextKey = "admin"

	// TokenIDContextKey holds the ID of the access token the request was made with.
	TokenIDContextKey ContextKey = "tokenID"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of bytes used to generate the trace ID
	TraceIDLength = 16 // 32 hex characters
)

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithAdmin attaches the authenticated administrator and its token ID to ctx.
func WithAdmin(ctx context.Context, admin *domain.Administrator, tokenID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, AdminContextKey, admin)
	return context.WithValue(ctx, TokenIDContextKey, tokenID)
}

// AdminFromContext returns the administrator attached by the admin gate.
func AdminFromContext(ctx context.Context) (*domain.Administrator, bool) {
	admin, ok := ctx.Value(AdminContextKey).(*domain.Administrator)
	return admin, ok && admin != nil
}

// TokenIDFromContext returns the ID of the token used to authenticate the request.
func TokenIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(TokenIDContextKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// generateTraceID creates a random 32-character hex trace ID.
// If crypto/rand fails it falls back to a time-based ID, never a static value.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	n, err := rand.Read(b)
	if err != nil || n != TraceIDLength {
		slog.Error("failed to generate secure random trace ID",
			"error", err,
			"bytes_read", n,
			"fallback", "time-based generation")
		return generateFallbackTraceID()
	}
	return hex.EncodeToString(b)
}

func generateFallbackTraceID() string {
	id := make([]byte, TraceIDLength)
	now := time.Now()
	binary.BigEndian.PutUint64(id[:8], uint64(now.UnixNano()))
	binary.BigEndian.PutUint32(id[8:12], uint32(now.Nanosecond()))
	binary.BigEndian.PutUint32(id[12:16], uint32(now.Unix()))
	return hex.EncodeToString(id)
}
