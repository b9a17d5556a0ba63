package nn

import "github.com/pkg/errors"

// Common errors.
var (
	ErrInvalidTopology = errors.New("invalid topology")
	ErrShapeMismatch   = errors.New("shape mismatch")
)
