package train

import "github.com/pkg/errors"

// Common errors.
var (
	ErrEmptyBatch    = errors.New("empty batch")
	ErrShapeMismatch = errors.New("sample does not fit model")
)
