package models

import "errors"

// Typed failures surfaced by the engine. Wrap with fmt.Errorf("...: %w")
// and match with errors.Is at the HTTP edge.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidRange     = errors.New("invalid range")
	ErrValidationFailed = errors.New("validation failed")
)
