package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/user"
)

type userResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         user.Role `json:"role"`
	LoginMethod  string    `json:"loginMethod"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	AvoirBalance int64     `json:"avoirBalance"`
	CreatedAt    time.Time `json:"createdAt"`
	LastSignedIn time.Time `json:"lastSignedIn"`
}

func toUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		LoginMethod:  u.LoginMethod,
		Phone:        u.Phone,
		Address:      u.Address,
		AvoirBalance: u.AvoirBalance,
		CreatedAt:    u.CreatedAt,
		LastSignedIn: u.LastSignedIn,
	}
}
