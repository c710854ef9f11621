package admin

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/ledger"
	"github.com/MrJamesThe3rd/mda/internal/user"
)

type userResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         user.Role `json:"role"`
	LoginMethod  string    `json:"loginMethod"`
	Phone        string    `json:"phone,omitempty"`
	AvoirBalance int64     `json:"avoirBalance"`
	CreatedAt    time.Time `json:"createdAt"`
	LastSignedIn time.Time `json:"lastSignedIn"`
}

func toUserList(users []*user.User) []userResponse {
	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = userResponse{
			ID:           u.ID,
			Email:        u.Email,
			Name:         u.Name,
			Role:         u.Role,
			LoginMethod:  u.LoginMethod,
			Phone:        u.Phone,
			AvoirBalance: u.AvoirBalance,
			CreatedAt:    u.CreatedAt,
			LastSignedIn: u.LastSignedIn,
		}
	}

	return resp
}

type fluxResponse struct {
	ID            uuid.UUID       `json:"id"`
	TransactionID uuid.UUID       `json:"transactionId"`
	TypeFlux      ledger.FluxType `json:"typeFlux"`
	MontantNet    int64           `json:"montantNet"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type transactionResponse struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"userId"`
	Montant     int64         `json:"montant"`
	Type        ledger.TxType `json:"type"`
	Reference   string        `json:"reference"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type vaultResponse struct {
	Flux         []fluxResponse        `json:"flux"`
	Transactions []transactionResponse `json:"transactions"`
}

func toVault(v *ledger.Vault) vaultResponse {
	resp := vaultResponse{
		Flux:         make([]fluxResponse, len(v.Flux)),
		Transactions: make([]transactionResponse, len(v.Transactions)),
	}

	for i, f := range v.Flux {
		resp.Flux[i] = fluxResponse{
			ID:            f.ID,
			TransactionID: f.TransactionID,
			TypeFlux:      f.TypeFlux,
			MontantNet:    f.MontantNet,
			CreatedAt:     f.CreatedAt,
		}
	}

	for i, tx := range v.Transactions {
		resp.Transactions[i] = transactionResponse{
			ID:          tx.ID,
			UserID:      tx.UserID,
			Montant:     tx.Montant,
			Type:        tx.Type,
			Reference:   tx.Reference,
			Description: tx.Description,
			CreatedAt:   tx.CreatedAt,
		}
	}

	return resp
}
