package ledger

import (
	"time"

	"github.com/google/uuid"
)

// TxType tags a money movement. The set is open; these are the ones the
// cotisation workflow writes.
type TxType string

const (
	TxCotisationPayment   TxType = "cotisation_payment"
	TxCotisationComplete  TxType = "cotisation_complete"
	TxVente               TxType = "vente"
	TxLiquidationPenalite TxType = "liquidation_penalite"
	TxLiquidationAvoir    TxType = "liquidation_avoir"
)

// FluxType is the accounting classification of a transaction.
type FluxType string

const (
	FluxVentePhysique      FluxType = "vente_physique"
	FluxVenteDigitale      FluxType = "vente_digitale"
	FluxCotisation         FluxType = "cotisation"
	FluxRevenuExceptionnel FluxType = "revenu_exceptionnel"
	FluxAvoirClient        FluxType = "avoir_client"
	FluxCommission         FluxType = "commission"
	FluxSalaire            FluxType = "salaire"
)

type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Montant     int64
	Type        TxType
	Reference   string
	Description string
	CreatedAt   time.Time
}

type Flux struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	TypeFlux      FluxType
	MontantNet    int64
	CreatedAt     time.Time
}

// Entry is one money movement to record. A nil Flux records the transaction
// without an accounting classification.
type Entry struct {
	UserID      uuid.UUID
	Montant     int64
	Type        TxType
	Reference   string
	Description string
	Flux        *FluxType
}

func Classified(flux FluxType) *FluxType {
	return &flux
}
