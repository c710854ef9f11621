package middleware

import (
	"context"

	"github.com/MrJamesThe3rd/mda/internal/auth"
	"github.com/MrJamesThe3rd/mda/internal/user"
)

type ctxKey int

const (
	userKey ctxKey = iota
	claimsKey
)

func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFrom returns the authenticated user, or nil for anonymous requests.
func UserFrom(ctx context.Context) *user.User {
	u, _ := ctx.Value(userKey).(*user.User)
	return u
}

func withClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFrom returns the bearer token claims the request authenticated with,
// or nil when it used a session cookie or nothing.
func ClaimsFrom(ctx context.Context) *auth.Claims {
	c, _ := ctx.Value(claimsKey).(*auth.Claims)
	return c
}
