package middleware

import (
	"net/http"

	"github.com/MrJamesThe3rd/mda/internal/apperr"
	"github.com/MrJamesThe3rd/mda/internal/http/respond"
	"github.com/MrJamesThe3rd/mda/internal/user"
)

// Tier is an access level guarding a group of routes.
type Tier int

const (
	TierClient Tier = iota
	TierAdmin
	TierFinance
	TierLogistique
)

func (t Tier) String() string {
	switch t {
	case TierClient:
		return "client"
	case TierAdmin:
		return "admin"
	case TierFinance:
		return "finance"
	case TierLogistique:
		return "logistique"
	default:
		return "unknown"
	}
}

// Allows reports whether a user with role may use routes of tier t.
func (t Tier) Allows(role user.Role) bool {
	switch t {
	case TierClient:
		return role.Valid()
	case TierAdmin:
		return role == user.RoleAdmin
	case TierFinance:
		return role == user.RoleAdmin || role == user.RoleFinance
	case TierLogistique:
		return role == user.RoleAdmin || role == user.RoleLogistique
	default:
		return false
	}
}

var (
	ErrUnauthorized = apperr.New(apperr.KindUnauthorized, "authentication required")
	ErrForbidden    = apperr.New(apperr.KindForbidden, "insufficient permissions")
)

// Require rejects anonymous callers with 401 and callers whose role the tier
// does not allow with 403, before the wrapped handler runs.
func Require(t Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := UserFrom(r.Context())
			if u == nil {
				respond.Error(w, r, ErrUnauthorized)
				return
			}

			if !t.Allows(u.Role) {
				respond.Error(w, r, ErrForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
