package core

import "errors"

var (
	// ErrInvalidDimension is returned when a position or direction does not have exactly 3 components.
	ErrInvalidDimension = errors.New("vector must have exactly 3 components")
	// ErrZeroVector is returned when a direction of zero length is supplied.
	ErrZeroVector = errors.New("direction must be non-zero")
)
