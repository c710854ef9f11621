package finance

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/cotisation"
)

type liquidationResponse struct {
	PlanID        uuid.UUID `json:"planId"`
	UserID        uuid.UUID `json:"userId"`
	UserName      string    `json:"userName"`
	UserEmail     string    `json:"userEmail"`
	ProductID     uuid.UUID `json:"productId"`
	ProductNom    string    `json:"productNom"`
	MontantTotal  int64     `json:"montantTotal"`
	MontantCotise int64     `json:"montantCotise"`
	Penalite      int64     `json:"penalite"`
	AvoirClient   int64     `json:"avoirClient"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// toLiquidation previews the settlement so finance sees what validation will book.
func toLiquidation(p *cotisation.PendingLiquidation) liquidationResponse {
	split := cotisation.Split(p.MontantCotise)

	resp := liquidationResponse{
		PlanID:        p.ID,
		UserID:        p.UserID,
		ProductID:     p.ProductID,
		MontantTotal:  p.MontantTotal,
		MontantCotise: p.MontantCotise,
		Penalite:      split.Penalite,
		AvoirClient:   split.AvoirClient,
		UpdatedAt:     p.UpdatedAt,
	}

	if p.User != nil {
		resp.UserName = p.User.Name
		resp.UserEmail = p.User.Email
	}

	if p.Product != nil {
		resp.ProductNom = p.Product.Nom
	}

	return resp
}

func toLiquidationList(pending []*cotisation.PendingLiquidation) []liquidationResponse {
	resp := make([]liquidationResponse, len(pending))
	for i, p := range pending {
		resp[i] = toLiquidation(p)
	}

	return resp
}
