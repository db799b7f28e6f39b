package domain

import "errors"

var (
	ErrMissingFields        = errors.New("please fill all required fields")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrForbidden            = errors.New("access forbidden")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrInvalidReference     = errors.New("referenced entity does not exist")
	ErrPositionClosed       = errors.New("position is closed")
	ErrUsernameTaken        = errors.New("username already in use")
	ErrConfirmationRequired = errors.New("explicit confirmation required")
)
