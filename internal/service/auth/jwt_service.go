// Package auth verifies the identity tokens that carry the acting owner and
// their feature grants.
package auth

import (
	"context"
	"time"

	"github.com/phrazzld/flashdeck/internal/domain"
)

// JWTService issues and validates identity tokens.
type JWTService interface {
	// GenerateToken signs a token for ownerID granting features.
	GenerateToken(ctx context.Context, ownerID string, features []string) (string, error)

	// ValidateToken checks signature and lifetime and returns the claims.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an identity token.
type Claims struct {
	// OwnerID is the token subject, the opaque identity that owns decks.
	OwnerID   string
	Features  []string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// Entitlements returns the feature grants as a set.
func (c *Claims) Entitlements() domain.Entitlements {
	return domain.NewEntitlements(c.Features...)
}
