package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/product"
)

type productResponse struct {
	ID              uuid.UUID `json:"id"`
	Nom             string    `json:"nom"`
	Description     string    `json:"description"`
	PrixClient      int64     `json:"prixClient"`
	PrixFournisseur int64     `json:"prixFournisseur"`
	StockActuel     int       `json:"stockActuel"`
	Category        string    `json:"category"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toResponse(p *product.Product) productResponse {
	return productResponse{
		ID:              p.ID,
		Nom:             p.Nom,
		Description:     p.Description,
		PrixClient:      p.PrixClient,
		PrixFournisseur: p.PrixFournisseur,
		StockActuel:     p.StockActuel,
		Category:        p.Category,
		ImageURL:        p.ImageURL,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toResponseList(products []*product.Product) []productResponse {
	resp := make([]productResponse, len(products))
	for i, p := range products {
		resp[i] = toResponse(p)
	}

	return resp
}
