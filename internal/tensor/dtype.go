// Package tensor provides the dense matrix type and scalar helpers used by the
// feedforward network, its gradients and its optimizers.
package tensor

// Float is a constraint for the scalar types a network can be built over.
// It uses Go generics so one algorithm serves both precisions.
type Float interface {
	~float32 | ~float64
}

// DataType represents runtime type information for matrices.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// DataTypeOf infers the DataType of T.
func DataTypeOf[T Float]() DataType {
	var dummy T
	if _, ok := any(dummy).(float32); ok {
		return Float32
	}
	return Float64
}
