package user

import (
	"context"

	"github.com/dmitrymomot/gatekeeper/pkg/auth"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{ name string }

var currentUserKey = &contextKey{name: "current_user"}

// withCurrentUser stores the authenticated user in the request context.
func withCurrentUser(ctx context.Context, u *auth.User) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// CurrentUser returns the authenticated user attached by the middleware.
func CurrentUser(ctx context.Context) (*auth.User, bool) {
	u, ok := ctx.Value(currentUserKey).(*auth.User)
	return u, ok
}
