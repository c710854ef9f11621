package user

import "github.com/MrJamesThe3rd/mda/internal/apperr"

var (
	ErrNotFound           = apperr.New(apperr.KindNotFound, "user not found")
	ErrEmailTaken         = apperr.New(apperr.KindConflict, "email already registered")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "invalid email or password")
	ErrInvalidRole        = apperr.New(apperr.KindInvalid, "invalid role")
	ErrPasswordTooLong    = apperr.New(apperr.KindInvalid, "password must be at most 72 bytes")
)
