// Package http provides the session endpoints and the authentication and rate
// limiting middleware shared by every protected route.
package http

import (
	"context"

	userDomain "github.com/zkvault/zkvault/internal/user/domain"
)

// userKey is a context key type for storing the authenticated user.
type userKey struct{}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *userDomain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser retrieves the authenticated user from the context.
// Returns (nil, false) when the request did not pass AuthenticationMiddleware.
func GetUser(ctx context.Context) (*userDomain.User, bool) {
	user, ok := ctx.Value(userKey{}).(*userDomain.User)
	return user, ok && user != nil
}
