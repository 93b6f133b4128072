package auth

import (
	"context"
	"errors"
)

// ErrNoIdentity is returned when an operation requires an authenticated
// identity and the request context does not carry validated claims.
var ErrNoIdentity = errors.New("authentication required")

type contextKey string

const userClaimsKey = contextKey("userClaims")

// WithClaims returns a context carrying validated token claims. Only the
// authentication middleware should call this, after a successful Validate.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

// CurrentUser returns the validated claims attached to ctx. Services treat
// a missing identity as a hard precondition failure, never a default user.
func CurrentUser(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(userClaimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoIdentity
	}
	return claims, nil
}
