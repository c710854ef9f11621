package delivery

import "github.com/MrJamesThe3rd/mda/internal/apperr"

var (
	ErrNotFound          = apperr.New(apperr.KindNotFound, "delivery not found")
	ErrInvalidTransition = apperr.New(apperr.KindConflict, "delivery is not in the expected state")
)
