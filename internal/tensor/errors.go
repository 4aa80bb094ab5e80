package tensor

import "errors"

// Common errors.
var (
	// ErrShapeMismatch is returned when broadcasting or matrix multiplication
	// shape rules are violated.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidShape is returned for shapes with non-positive dimensions or a
	// data length that does not match the shape.
	ErrInvalidShape = errors.New("invalid shape")
)
