package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/auth"
	"github.com/MrJamesThe3rd/mda/internal/user"
)

type UserGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// Authenticator resolves the caller once per request: a bearer token first,
// then the session cookie. It never rejects a request; guards do that.
type Authenticator struct {
	tokens   *auth.TokenIssuer
	sessions *auth.SessionStore
	users    UserGetter
	revoker  auth.Revoker
}

// NewAuthenticator builds an Authenticator. revoker may be nil, in which case
// tokens stay valid until they expire.
func NewAuthenticator(tokens *auth.TokenIssuer, sessions *auth.SessionStore, users UserGetter, revoker auth.Revoker) *Authenticator {
	return &Authenticator{tokens: tokens, sessions: sessions, users: users, revoker: revoker}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if u, claims := a.resolve(r); u != nil {
			ctx = WithUser(ctx, u)

			if claims != nil {
				ctx = withClaims(ctx, claims)
			}
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) resolve(r *http.Request) (*user.User, *auth.Claims) {
	ctx := r.Context()

	if token := bearerToken(r); token != "" {
		if claims, err := a.tokens.Parse(token); err == nil {
			if a.revoked(ctx, claims.ID) {
				return nil, nil
			}

			id, err := claims.UserID()
			if err != nil {
				return nil, nil
			}

			return a.lookup(ctx, id), claims
		}
	}

	if id, ok := a.sessions.UserID(r); ok {
		return a.lookup(ctx, id), nil
	}

	return nil, nil
}

func (a *Authenticator) revoked(ctx context.Context, tokenID string) bool {
	if a.revoker == nil {
		return false
	}

	revoked, err := a.revoker.IsRevoked(ctx, tokenID)
	if err != nil {
		slog.Warn("token revocation check failed", "error", err)
		return true
	}

	return revoked
}

func (a *Authenticator) lookup(ctx context.Context, id uuid.UUID) *user.User {
	u, err := a.users.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			slog.Error("failed to load request user", "user_id", id, "error", err)
		}

		return nil
	}

	return u
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")

	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}

	return strings.TrimSpace(token)
}
