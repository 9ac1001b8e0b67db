package services

import "errors"

// Error taxonomy for the booking core. Controllers translate these to HTTP
// status codes; storage failures pass through untouched and map to 500.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("permission denied")
	ErrConflict   = errors.New("table not available at the requested time")
)
