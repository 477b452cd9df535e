package session

import (
	"context"

	"example.com/trainmate/internal/domain"
)

type contextKey string

const identityKey contextKey = "trainmate-session-identity"

// WithIdentity stores the identity on the context.
func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// FromContext retrieves the identity stored by WithIdentity.
func FromContext(ctx context.Context) (*domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*domain.Identity)
	return identity, ok && identity != nil
}
