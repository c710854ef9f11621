package product

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item clients can save toward. Prices are in FCFA.
type Product struct {
	ID              uuid.UUID
	Nom             string
	Description     string
	PrixClient      int64
	PrixFournisseur int64
	StockActuel     int
	Category        string
	ImageURL        string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
