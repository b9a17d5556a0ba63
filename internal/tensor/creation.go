package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Source is a source of uniformly distributed values in [0, 1).
// *rand.Rand from math/rand and math/rand/v2 both satisfy it.
type Source interface {
	Float64() float64
}

// Zeros creates a rows×cols matrix filled with zeros.
//
// Panics if either dimension is not positive.
func Zeros[T Float](rows, cols int) *Matrix[T] {
	if err := (Shape{Rows: rows, Cols: cols}).Validate(); err != nil {
		panic(err)
	}
	return &Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// Full creates a rows×cols matrix filled with value.
func Full[T Float](rows, cols int, value T) *Matrix[T] {
	m := Zeros[T](rows, cols)
	for i := range m.data {
		m.data[i] = value
	}
	return m
}

// FromSlice creates a matrix from row-major data.
// The slice is copied into the matrix's memory.
func FromSlice[T Float](data []T, rows, cols int) (*Matrix[T], error) {
	shape := Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if shape.NumElements() != len(data) {
		return nil, errors.Wrapf(ErrDataSize, "shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}

	m := Zeros[T](rows, cols)
	copy(m.data, data)
	return m, nil
}

// MustFromSlice is like FromSlice but panics on error.
func MustFromSlice[T Float](data []T, rows, cols int) *Matrix[T] {
	m, err := FromSlice(data, rows, cols)
	if err != nil {
		panic(err)
	}
	return m
}

// NewVector creates a column vector (n×1) holding values.
//
// Example:
//
//	x := tensor.NewVector[float32](0, 1)
func NewVector[T Float](values ...T) *Matrix[T] {
	if len(values) == 0 {
		panic("NewVector: at least one value required")
	}
	m := Zeros[T](len(values), 1)
	copy(m.data, values)
	return m
}

// FromFunc creates a rows×cols matrix where element (i, j) is f(i, j).
func FromFunc[T Float](rows, cols int, f func(i, j int) T) *Matrix[T] {
	m := Zeros[T](rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.data[i*cols+j] = f(i, j)
		}
	}
	return m
}

// Identity creates an n×n identity matrix.
func Identity[T Float](n int) *Matrix[T] {
	return FromFunc(n, n, func(i, j int) T {
		if i == j {
			return 1
		}
		return 0
	})
}

// Diagonal creates a square matrix with values on its diagonal.
func Diagonal[T Float](values []T) *Matrix[T] {
	n := len(values)
	if n == 0 {
		panic("Diagonal: at least one value required")
	}
	return FromFunc(n, n, func(i, j int) T {
		if i == j {
			return values[i]
		}
		return 0
	})
}

// RandUniform creates a rows×cols matrix with entries drawn independently and
// uniformly from [lo, hi) using src.
func RandUniform[T Float](rows, cols int, lo, hi T, src Source) *Matrix[T] {
	if src == nil {
		panic("RandUniform: nil random source")
	}
	if hi < lo {
		panic(fmt.Sprintf("RandUniform: empty range [%v, %v)", lo, hi))
	}
	m := Zeros[T](rows, cols)
	span := float64(hi - lo)
	for i := range m.data {
		m.data[i] = lo + T(src.Float64()*span)
	}
	return m
}
