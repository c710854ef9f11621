package logistics

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/delivery"
)

type deliveryResponse struct {
	ID               uuid.UUID       `json:"id"`
	PlanID           uuid.UUID       `json:"planId"`
	UserID           uuid.UUID       `json:"userId"`
	ProductID        uuid.UUID       `json:"productId"`
	AdresseLivraison string          `json:"adresseLivraison"`
	Statut           delivery.Statut `json:"statut"`
	DateValidation   *time.Time      `json:"dateValidation"`
	DateLivraison    *time.Time      `json:"dateLivraison"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

func toDelivery(d *delivery.Delivery) deliveryResponse {
	return deliveryResponse{
		ID:               d.ID,
		PlanID:           d.PlanID,
		UserID:           d.UserID,
		ProductID:        d.ProductID,
		AdresseLivraison: d.AdresseLivraison,
		Statut:           d.Statut,
		DateValidation:   d.DateValidation,
		DateLivraison:    d.DateLivraison,
		Notes:            d.Notes,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type clientResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone,omitempty"`
}

type productResponse struct {
	ID  uuid.UUID `json:"id"`
	Nom string    `json:"nom"`
}

type viewResponse struct {
	deliveryResponse
	User    *clientResponse  `json:"user"`
	Product *productResponse `json:"product"`
}

func toView(v *delivery.View) viewResponse {
	resp := viewResponse{deliveryResponse: toDelivery(v.Delivery)}

	if v.User != nil {
		resp.User = &clientResponse{ID: v.User.ID, Name: v.User.Name, Email: v.User.Email, Phone: v.User.Phone}
	}

	if v.Product != nil {
		resp.Product = &productResponse{ID: v.Product.ID, Nom: v.Product.Nom}
	}

	return resp
}

func toViewList(views []*delivery.View) []viewResponse {
	resp := make([]viewResponse, len(views))
	for i, v := range views {
		resp[i] = toView(v)
	}

	return resp
}
