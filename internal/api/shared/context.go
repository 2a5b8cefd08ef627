package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// Key type for context values
type ContextKey string

// Context keys for various values
const (
	// OwnerIDContextKey is the context key for the acting owner identity
	OwnerIDContextKey ContextKey = "ownerID"

	// EntitlementsContextKey is the context key for the caller's feature grants
	EntitlementsContextKey ContextKey = "entitlements"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of bytes used to generate the trace ID
	TraceIDLength = 16 // 32 hex characters
)

// WithOwner stores the authenticated owner and their entitlements in ctx.
func WithOwner(ctx context.Context, ownerID string, ent domain.Entitlements) context.Context {
	ctx = context.WithValue(ctx, OwnerIDContextKey, ownerID)
	return context.WithValue(ctx, EntitlementsContextKey, ent)
}

// OwnerFromContext returns the authenticated owner, or false when the
// request was not authenticated.
func OwnerFromContext(ctx context.Context) (string, bool) {
	ownerID, ok := ctx.Value(OwnerIDContextKey).(string)
	if !ok || ownerID == "" {
		return "", false
	}
	return ownerID, true
}

// EntitlementsFromContext returns the caller's grants. A request without
// grants gets an empty set.
func EntitlementsFromContext(ctx context.Context) domain.Entitlements {
	ent, ok := ctx.Value(EntitlementsContextKey).(domain.Entitlements)
	if !ok || ent == nil {
		return domain.Entitlements{}
	}
	return ent
}

// SetTraceID adds a trace ID to the context.
// This is useful for correlating logs and error responses.
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

// generateTraceID returns 32 random hex characters, falling back to a
// time-derived ID if the system random source fails.
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
	b := make([]byte, TraceIDLength)
	now := time.Now()
	binary.BigEndian.PutUint64(b[:8], uint64(now.UnixNano()))
	binary.BigEndian.PutUint32(b[8:12], uint32(now.Nanosecond()))
	binary.BigEndian.PutUint32(b[12:16], uint32(now.Unix()))
	return hex.EncodeToString(b)
}
