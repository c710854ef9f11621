package cotisation

import "github.com/MrJamesThe3rd/mda/internal/apperr"

var (
	ErrPlanNotFound     = apperr.New(apperr.KindNotFound, "plan not found")
	ErrPlanNotActive    = apperr.New(apperr.KindConflict, "plan is not active")
	ErrNotLiquidated    = apperr.New(apperr.KindConflict, "plan has not been liquidated")
	ErrAlreadySettled   = apperr.New(apperr.KindConflict, "liquidation already settled")
	ErrInvalidFrequence = apperr.New(apperr.KindInvalid, "frequence must be daily, weekly or monthly")
	ErrMiseTooLow       = apperr.New(apperr.KindInvalid, "montant par mise must be at least 600 FCFA")
	ErrInvalidMontant   = apperr.New(apperr.KindInvalid, "montant must be positive")
	ErrMissingMethod    = apperr.New(apperr.KindInvalid, "payment method is required")
)
