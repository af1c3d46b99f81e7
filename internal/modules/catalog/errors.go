package catalog

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrDuplicateNumber = errors.New("room number already taken")
	ErrNotFound        = errors.New("room not found")
	ErrTransient       = errors.New("store temporarily unavailable")
)
