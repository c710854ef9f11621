package product

import "github.com/MrJamesThe3rd/mda/internal/apperr"

var ErrNotFound = apperr.New(apperr.KindNotFound, "product not found")
