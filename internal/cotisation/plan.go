package cotisation

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/mda/internal/product"
	"github.com/MrJamesThe3rd/mda/internal/user"
)

// MinMise is the smallest allowed installment, in FCFA.
const MinMise int64 = 600

type Frequence string

const (
	FrequenceDaily   Frequence = "daily"
	FrequenceWeekly  Frequence = "weekly"
	FrequenceMonthly Frequence = "monthly"
)

func (f Frequence) Valid() bool {
	switch f {
	case FrequenceDaily, FrequenceWeekly, FrequenceMonthly:
		return true
	default:
		return false
	}
}

// Next returns the due date one period after t.
func (f Frequence) Next(t time.Time) time.Time {
	switch f {
	case FrequenceDaily:
		return t.AddDate(0, 0, 1)
	case FrequenceWeekly:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 1, 0)
	}
}

type Statut string

const (
	StatutActif    Statut = "actif"
	StatutComplete Statut = "complete"
	StatutLiquide  Statut = "liquide"
	StatutLivre    Statut = "livre"
)

type Plan struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	ProductID         uuid.UUID
	MontantTotal      int64
	MontantCotise     int64
	Frequence         Frequence
	MontantParMise    int64
	Statut            Statut
	DateDebut         time.Time
	DateFin           *time.Time
	ProchaineEcheance *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Remaining is what the client still owes, never negative.
func (p *Plan) Remaining() int64 {
	return max(p.MontantTotal-p.MontantCotise, 0)
}

type PaymentStatut string

const (
	PaymentPending   PaymentStatut = "pending"
	PaymentCompleted PaymentStatut = "completed"
	PaymentFailed    PaymentStatut = "failed"
)

type Payment struct {
	ID             uuid.UUID
	PlanID         uuid.UUID
	Montant        int64
	PaymentMethod  string
	TransactionRef string
	Statut         PaymentStatut
	CreatedAt      time.Time
}

// PlanView is a plan joined with its product.
type PlanView struct {
	*Plan
	Product *product.Product
}

// PendingLiquidation is a liquidated plan awaiting settlement, with its owner.
type PendingLiquidation struct {
	*Plan
	User    *user.User
	Product *product.Product
}
