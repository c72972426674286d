package models

import "errors"

// Error classes shared by every layer. Returned errors wrap exactly one of
// them so callers can branch with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrStore      = errors.New("store failure")
	ErrConflict   = errors.New("concurrent modification")
)
