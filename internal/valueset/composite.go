package valueset

import (
	"fmt"

	"github.com/born-ml/feedforward/internal/tensor"
)

// Pair is a ValueSet made of two ValueSets of possibly different shapes.
type Pair[T tensor.Float, A ValueSet[T, A], B ValueSet[T, B]] struct {
	First  A
	Second B
}

// NewPair creates a Pair.
func NewPair[T tensor.Float, A ValueSet[T, A], B ValueSet[T, B]](first A, second B) Pair[T, A, B] {
	return Pair[T, A, B]{First: first, Second: second}
}

// UnaryOperation applies f to both halves.
func (p Pair[T, A, B]) UnaryOperation(f func(T) T) Pair[T, A, B] {
	return Pair[T, A, B]{
		First:  p.First.UnaryOperation(f),
		Second: p.Second.UnaryOperation(f),
	}
}

// BinaryOperation applies f to both halves pairwise.
func (p Pair[T, A, B]) BinaryOperation(other Pair[T, A, B], f func(a, b T) T) Pair[T, A, B] {
	return Pair[T, A, B]{
		First:  p.First.BinaryOperation(other.First, f),
		Second: p.Second.BinaryOperation(other.Second, f),
	}
}

// UnaryInspection visits the first half, then the second.
func (p Pair[T, A, B]) UnaryInspection(f func(T)) {
	p.First.UnaryInspection(f)
	p.Second.UnaryInspection(f)
}

// BinaryInspection visits the first halves, then the second halves.
func (p Pair[T, A, B]) BinaryInspection(other Pair[T, A, B], f func(a, b T)) {
	p.First.BinaryInspection(other.First, f)
	p.Second.BinaryInspection(other.Second, f)
}

// All fills both halves with v.
func (p Pair[T, A, B]) All(v T) Pair[T, A, B] {
	return Pair[T, A, B]{First: p.First.All(v), Second: p.Second.All(v)}
}

// Slice is a ValueSet made of a fixed number of same-typed ValueSets.
type Slice[T tensor.Float, V ValueSet[T, V]] []V

// UnaryOperation applies f to every element.
func (s Slice[T, V]) UnaryOperation(f func(T) T) Slice[T, V] {
	out := make(Slice[T, V], len(s))
	for i, v := range s {
		out[i] = v.UnaryOperation(f)
	}
	return out
}

// BinaryOperation applies f to corresponding elements.
//
// Panics if the lengths differ.
func (s Slice[T, V]) BinaryOperation(other Slice[T, V], f func(a, b T) T) Slice[T, V] {
	s.mustMatch(other)
	out := make(Slice[T, V], len(s))
	for i, v := range s {
		out[i] = v.BinaryOperation(other[i], f)
	}
	return out
}

// UnaryInspection visits every element in order.
func (s Slice[T, V]) UnaryInspection(f func(T)) {
	for _, v := range s {
		v.UnaryInspection(f)
	}
}

// BinaryInspection visits corresponding elements in order.
func (s Slice[T, V]) BinaryInspection(other Slice[T, V], f func(a, b T)) {
	s.mustMatch(other)
	for i, v := range s {
		v.BinaryInspection(other[i], f)
	}
}

// All fills every element with v.
func (s Slice[T, V]) All(v T) Slice[T, V] {
	out := make(Slice[T, V], len(s))
	for i, e := range s {
		out[i] = e.All(v)
	}
	return out
}

func (s Slice[T, V]) mustMatch(other Slice[T, V]) {
	if len(s) != len(other) {
		panic(fmt.Sprintf("valueset: slice length mismatch %d vs %d", len(s), len(other)))
	}
}

// Empty is a ValueSet with no leaves, used by parameter-free operations.
type Empty[T tensor.Float] struct{}

// UnaryOperation is a no-op.
func (Empty[T]) UnaryOperation(func(T) T) Empty[T] { return Empty[T]{} }

// BinaryOperation is a no-op.
func (Empty[T]) BinaryOperation(Empty[T], func(a, b T) T) Empty[T] { return Empty[T]{} }

// UnaryInspection is a no-op.
func (Empty[T]) UnaryInspection(func(T)) {}

// BinaryInspection is a no-op.
func (Empty[T]) BinaryInspection(Empty[T], func(a, b T)) {}

// All is a no-op.
func (Empty[T]) All(T) Empty[T] { return Empty[T]{} }

// *tensor.Matrix is the base case of the algebra.
var _ ValueSet[float32, *tensor.Matrix[float32]] = (*tensor.Matrix[float32])(nil)
