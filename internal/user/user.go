package user

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of access roles.
type Role string

const (
	RoleClient      Role = "client"
	RoleAdmin       Role = "admin"
	RoleFinance     Role = "finance"
	RoleLogistique  Role = "logistique"
	RoleAmbassadeur Role = "ambassadeur"
)

var roles = []Role{RoleClient, RoleAdmin, RoleFinance, RoleLogistique, RoleAmbassadeur}

func (r Role) Valid() bool {
	for _, known := range roles {
		if r == known {
			return true
		}
	}

	return false
}

const (
	LoginMethodEmail = "email"
	LoginMethodOAuth = "oauth"
)

// User is a platform account. PasswordHash is empty for OAuth accounts.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	LoginMethod  string
	Role         Role
	Phone        string
	Address      string
	ReferredBy   *uuid.UUID
	AvoirBalance int64 // FCFA
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSignedIn time.Time
}
