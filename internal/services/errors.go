package services

import "errors"

// Domain errors returned by the service layer. The API layer translates
// these into response envelopes; anything else is treated as unexpected and
// reported generically.
var (
	ErrDuplicateUsername  = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrGameNotFound       = errors.New("game not found")
	ErrAlreadyOwned       = errors.New("game is already in your library")
	ErrNotOwned           = errors.New("game is not in your library")
	ErrForbidden          = errors.New("insufficient permissions")
)
