package nn

import (
	"github.com/born-ml/feedforward/internal/tensor"
	"github.com/born-ml/feedforward/internal/valueset"
)

// LayerGradient holds the gradient of the loss with respect to one layer's
// parameters. Optimizers also use it to describe a step to apply.
type LayerGradient[T tensor.Float] struct {
	Weight *tensor.Matrix[T] // [out, in]
	Bias   *tensor.Matrix[T] // [out, 1]
}

// UnaryOperation applies f to every weight and bias entry.
func (g LayerGradient[T]) UnaryOperation(f func(T) T) LayerGradient[T] {
	return LayerGradient[T]{
		Weight: g.Weight.UnaryOperation(f),
		Bias:   g.Bias.UnaryOperation(f),
	}
}

// BinaryOperation applies f to corresponding entries of g and other.
func (g LayerGradient[T]) BinaryOperation(other LayerGradient[T], f func(a, b T) T) LayerGradient[T] {
	return LayerGradient[T]{
		Weight: g.Weight.BinaryOperation(other.Weight, f),
		Bias:   g.Bias.BinaryOperation(other.Bias, f),
	}
}

// UnaryInspection visits weights, then biases.
func (g LayerGradient[T]) UnaryInspection(f func(T)) {
	g.Weight.UnaryInspection(f)
	g.Bias.UnaryInspection(f)
}

// BinaryInspection visits corresponding weights, then biases.
func (g LayerGradient[T]) BinaryInspection(other LayerGradient[T], f func(a, b T)) {
	g.Weight.BinaryInspection(other.Weight, f)
	g.Bias.BinaryInspection(other.Bias, f)
}

// All returns a LayerGradient shaped like g with every entry set to v.
func (g LayerGradient[T]) All(v T) LayerGradient[T] {
	return LayerGradient[T]{Weight: g.Weight.All(v), Bias: g.Bias.All(v)}
}

// NetworkGradient is the gradient bundle of a whole network: one
// LayerGradient per layer, in forward order.
type NetworkGradient[T tensor.Float] struct {
	Layers []LayerGradient[T]
}

func (g NetworkGradient[T]) slice() valueset.Slice[T, LayerGradient[T]] {
	return valueset.Slice[T, LayerGradient[T]](g.Layers)
}

// UnaryOperation applies f to every entry of every layer.
func (g NetworkGradient[T]) UnaryOperation(f func(T) T) NetworkGradient[T] {
	return NetworkGradient[T]{Layers: g.slice().UnaryOperation(f)}
}

// BinaryOperation applies f to corresponding entries of g and other.
func (g NetworkGradient[T]) BinaryOperation(other NetworkGradient[T], f func(a, b T) T) NetworkGradient[T] {
	return NetworkGradient[T]{Layers: g.slice().BinaryOperation(other.slice(), f)}
}

// UnaryInspection visits every layer in forward order.
func (g NetworkGradient[T]) UnaryInspection(f func(T)) {
	g.slice().UnaryInspection(f)
}

// BinaryInspection visits corresponding layers in forward order.
func (g NetworkGradient[T]) BinaryInspection(other NetworkGradient[T], f func(a, b T)) {
	g.slice().BinaryInspection(other.slice(), f)
}

// All returns a bundle shaped like g with every entry set to v.
func (g NetworkGradient[T]) All(v T) NetworkGradient[T] {
	return NetworkGradient[T]{Layers: g.slice().All(v)}
}

// Len returns the number of layers covered.
func (g NetworkGradient[T]) Len() int {
	return len(g.Layers)
}
