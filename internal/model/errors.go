package model

import "errors"

// Common errors used across the application
var (
	// Table errors
	ErrTableNotFound = errors.New("table not found")
	ErrTableConflict = errors.New("table was changed by another request")

	// Session errors
	ErrBlankName       = errors.New("player name is required")
	ErrSessionActive   = errors.New("a player session is already active")
	ErrNoActiveSession = errors.New("no active player session")

	// Round errors
	ErrInvalidCard    = errors.New("card does not exist in this round")
	ErrInvalidCatalog = errors.New("catalog must have unique symbols and at least one decoration")
)
