// Package valueset implements elementwise algebra over nested aggregates of
// scalars (matrices, pairs, slices of those) so optimizer and aggregation math
// is written once for a single matrix, one layer's gradient or a whole
// network's gradient bundle.
package valueset

import "github.com/born-ml/feedforward/internal/tensor"

// ValueSet is anything that is a fixed-shape nested collection of T.
//
// S is the implementing type itself, so operations return the concrete type:
//
//	var g nn.LayerGradient[float32]
//	scaled := g.UnaryOperation(func(v float32) float32 { return v * 2 })
//
// Binary methods require both operands to have the same shape. Mismatched
// shapes are a caller bug, not a recoverable error.
type ValueSet[T tensor.Float, S any] interface {
	// UnaryOperation applies f to every leaf and returns the results in a new
	// set of the same shape.
	UnaryOperation(f func(T) T) S

	// BinaryOperation applies f to every pair of corresponding leaves.
	BinaryOperation(other S, f func(a, b T) T) S

	// UnaryInspection calls f for every leaf.
	UnaryInspection(f func(T))

	// BinaryInspection calls f for every pair of corresponding leaves.
	BinaryInspection(other S, f func(a, b T))

	// All returns a set shaped like the receiver with every leaf set to v.
	All(v T) S
}

// SumCount returns the leafwise sum of items and how many items were summed.
//
// An empty slice yields the zero value of V and a count of zero.
func SumCount[T tensor.Float, V ValueSet[T, V]](items []V) (V, T) {
	var sum V
	var count T
	if len(items) == 0 {
		return sum, count
	}

	sum = items[0].All(0)
	for _, item := range items {
		sum = sum.BinaryOperation(item, func(a, b T) T { return a + b })
		count++
	}
	return sum, count
}

// Mean returns the leafwise mean of items.
//
// An empty slice yields the zero value of V.
func Mean[T tensor.Float, V ValueSet[T, V]](items []V) V {
	sum, count := SumCount[T](items)
	if count == 0 {
		return sum
	}
	return sum.UnaryOperation(func(v T) T { return v / count })
}

// Sum returns the sum of every leaf of v.
func Sum[T tensor.Float, V ValueSet[T, V]](v V) T {
	var total T
	v.UnaryInspection(func(x T) { total += x })
	return total
}

// Count returns the number of leaves in v.
func Count[T tensor.Float, V ValueSet[T, V]](v V) int {
	n := 0
	v.UnaryInspection(func(T) { n++ })
	return n
}

// Scale returns v with every leaf multiplied by s.
func Scale[T tensor.Float, V ValueSet[T, V]](v V, s T) V {
	return v.UnaryOperation(func(x T) T { return x * s })
}

// Add returns the leafwise sum of a and b.
func Add[T tensor.Float, V ValueSet[T, V]](a, b V) V {
	return a.BinaryOperation(b, func(x, y T) T { return x + y })
}
