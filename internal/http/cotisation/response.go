package cotisation

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/cotisation"
	"github.com/MrJamesThe3rd/mda/internal/product"
)

type planResponse struct {
	ID                uuid.UUID            `json:"id"`
	UserID            uuid.UUID            `json:"userId"`
	ProductID         uuid.UUID            `json:"productId"`
	MontantTotal      int64                `json:"montantTotal"`
	MontantCotise     int64                `json:"montantCotise"`
	Restant           int64                `json:"restant"`
	Frequence         cotisation.Frequence `json:"frequence"`
	MontantParMise    int64                `json:"montantParMise"`
	Statut            cotisation.Statut    `json:"statut"`
	DateDebut         time.Time            `json:"dateDebut"`
	DateFin           *time.Time           `json:"dateFin"`
	ProchaineEcheance *time.Time           `json:"prochaineEcheance"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

func toPlan(p *cotisation.Plan) planResponse {
	return planResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		ProductID:         p.ProductID,
		MontantTotal:      p.MontantTotal,
		MontantCotise:     p.MontantCotise,
		Restant:           p.Remaining(),
		Frequence:         p.Frequence,
		MontantParMise:    p.MontantParMise,
		Statut:            p.Statut,
		DateDebut:         p.DateDebut,
		DateFin:           p.DateFin,
		ProchaineEcheance: p.ProchaineEcheance,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

type planProductResponse struct {
	ID         uuid.UUID `json:"id"`
	Nom        string    `json:"nom"`
	PrixClient int64     `json:"prixClient"`
	ImageURL   string    `json:"imageUrl,omitempty"`
}

type planViewResponse struct {
	planResponse
	Product *planProductResponse `json:"product"`
}

func toProduct(p *product.Product) *planProductResponse {
	if p == nil {
		return nil
	}

	return &planProductResponse{ID: p.ID, Nom: p.Nom, PrixClient: p.PrixClient, ImageURL: p.ImageURL}
}

func toPlanView(v *cotisation.PlanView) planViewResponse {
	return planViewResponse{planResponse: toPlan(v.Plan), Product: toProduct(v.Product)}
}

func toPlanViewList(views []*cotisation.PlanView) []planViewResponse {
	resp := make([]planViewResponse, len(views))
	for i, v := range views {
		resp[i] = toPlanView(v)
	}

	return resp
}

type paymentResponse struct {
	ID             uuid.UUID                `json:"id"`
	PlanID         uuid.UUID                `json:"planId"`
	Montant        int64                    `json:"montant"`
	PaymentMethod  string                   `json:"paymentMethod"`
	TransactionRef string                   `json:"transactionRef"`
	Statut         cotisation.PaymentStatut `json:"statut"`
	CreatedAt      time.Time                `json:"createdAt"`
}

func toPayment(p *cotisation.Payment) paymentResponse {
	return paymentResponse{
		ID:             p.ID,
		PlanID:         p.PlanID,
		Montant:        p.Montant,
		PaymentMethod:  p.PaymentMethod,
		TransactionRef: p.TransactionRef,
		Statut:         p.Statut,
		CreatedAt:      p.CreatedAt,
	}
}

func toPaymentList(payments []*cotisation.Payment) []paymentResponse {
	resp := make([]paymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = toPayment(p)
	}

	return resp
}
