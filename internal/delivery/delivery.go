package delivery

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/product"
	"github.com/MrJamesThe3rd/mda/internal/user"
)

type Statut string

const (
	StatutEnAttente Statut = "en_attente"
	StatutEnCours   Statut = "en_cours"
	StatutLivree    Statut = "livree"
	StatutAnnulee   Statut = "annulee"
)

// DefaultAddress is used when the client has no address on file.
const DefaultAddress = "À définir"

type Delivery struct {
	ID               uuid.UUID
	PlanID           uuid.UUID
	UserID           uuid.UUID
	ProductID        uuid.UUID
	AdresseLivraison string
	Statut           Statut
	DateValidation   *time.Time
	DateLivraison    *time.Time
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// View is a delivery joined with its client and product.
type View struct {
	*Delivery
	User    *user.User
	Product *product.Product
}
