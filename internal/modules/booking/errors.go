package booking

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrRoomUnavailable = errors.New("room not available for the requested dates")
	ErrNotFound        = errors.New("not found")
	ErrUnauthorized    = errors.New("not allowed to act on this booking")
	ErrTransient       = errors.New("store temporarily unavailable")
)
