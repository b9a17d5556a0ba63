// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense matrices the
// feedforward network computes with.
//
// The package defines:
//   - Matrix[T]: row-major matrix of float32 or float64; vectors are n×1
//   - Float: the scalar constraint
//   - Shape, DataType: core type definitions
//
// Example:
//
//	x := tensor.NewVector[float32](1, 2, 3)
//	w := tensor.Identity[float32](3)
//	y := w.MatMul(x).Add(x) // [2, 4, 6]
package tensor

import (
	"github.com/born-ml/feedforward/internal/tensor"
)

// Type aliases for public API

// Float is the constraint for scalar types: float32 or float64.
type Float = tensor.Float

// Matrix is a dense row-major matrix with a fixed shape.
type Matrix[T Float] = tensor.Matrix[T]

// Shape is the (rows, cols) of a matrix.
type Shape = tensor.Shape

// DataType represents the runtime element type of a matrix.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Source is a source of uniform values in [0, 1), such as *rand.Rand.
type Source = tensor.Source

// Errors returned by matrix construction.
var (
	ErrInvalidShape  = tensor.ErrInvalidShape
	ErrShapeMismatch = tensor.ErrShapeMismatch
	ErrDataSize      = tensor.ErrDataSize
)

// Zeros creates a rows×cols matrix filled with zeros.
func Zeros[T Float](rows, cols int) *Matrix[T] {
	return tensor.Zeros[T](rows, cols)
}

// Full creates a rows×cols matrix filled with value.
func Full[T Float](rows, cols int, value T) *Matrix[T] {
	return tensor.Full(rows, cols, value)
}

// FromSlice creates a rows×cols matrix from row-major data.
func FromSlice[T Float](data []T, rows, cols int) (*Matrix[T], error) {
	return tensor.FromSlice(data, rows, cols)
}

// MustFromSlice is FromSlice that panics on error.
func MustFromSlice[T Float](data []T, rows, cols int) *Matrix[T] {
	return tensor.MustFromSlice(data, rows, cols)
}

// NewVector creates an n×1 column vector.
//
// Example:
//
//	x := tensor.NewVector[float64](0, 1)
func NewVector[T Float](values ...T) *Matrix[T] {
	return tensor.NewVector(values...)
}

// FromFunc creates a rows×cols matrix where element (i, j) is f(i, j).
func FromFunc[T Float](rows, cols int, f func(i, j int) T) *Matrix[T] {
	return tensor.FromFunc(rows, cols, f)
}

// Identity creates an n×n identity matrix.
func Identity[T Float](n int) *Matrix[T] {
	return tensor.Identity[T](n)
}

// Diagonal creates a square matrix with values on its diagonal.
func Diagonal[T Float](values []T) *Matrix[T] {
	return tensor.Diagonal(values)
}

// RandUniform creates a rows×cols matrix with entries uniform in [lo, hi).
func RandUniform[T Float](rows, cols int, lo, hi T, src Source) *Matrix[T] {
	return tensor.RandUniform(rows, cols, lo, hi, src)
}

// Outer returns the outer product u·vᵀ of two column vectors.
func Outer[T Float](u, v *Matrix[T]) *Matrix[T] {
	return tensor.Outer(u, v)
}

// Scalar math

// Exp returns e^x.
func Exp[T Float](x T) T {
	return tensor.Exp(x)
}

// Sqrt returns the square root of x.
func Sqrt[T Float](x T) T {
	return tensor.Sqrt(x)
}

// Tanh returns the hyperbolic tangent of x.
func Tanh[T Float](x T) T {
	return tensor.Tanh(x)
}

// Abs returns |x|.
func Abs[T Float](x T) T {
	return tensor.Abs(x)
}
