package tensor

import "github.com/pkg/errors"

// Common errors.
var (
	ErrInvalidShape  = errors.New("invalid shape")
	ErrShapeMismatch = errors.New("shape mismatch")
	ErrDataSize      = errors.New("data size does not match shape")
)
