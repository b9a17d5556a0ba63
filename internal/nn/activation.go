package nn

import (
	"github.com/born-ml/feedforward/internal/tensor"
)

// Activator is a scalar nonlinearity together with its derivative.
//
// A layer applies Activation elementwise to its weighted sum before the bias
// is added; ActivationGradient is used to build the layer's local Jacobian
// during backpropagation.
type Activator[T tensor.Float] interface {
	// Activation is the activation function.
	Activation(x T) T

	// ActivationGradient is the derivative of Activation at x.
	ActivationGradient(x T) T
}

// ActivationGradientMatrix returns the Jacobian of a applied elementwise to
// the weighted-sum vector: a diagonal matrix whose entries are
// a.ActivationGradient(weighted[i]).
func ActivationGradientMatrix[T tensor.Float](a Activator[T], weighted *tensor.Matrix[T]) *tensor.Matrix[T] {
	diag := make([]T, weighted.Len())
	for i, v := range weighted.Data() {
		diag[i] = a.ActivationGradient(v)
	}
	return tensor.Diagonal(diag)
}

// activate applies a elementwise.
func activate[T tensor.Float](a Activator[T], weighted *tensor.Matrix[T]) *tensor.Matrix[T] {
	return weighted.Map(a.Activation)
}

// Sigmoid is the logistic activation: σ(x) = 1 / (1 + exp(-x)).
//
// Sigmoid squashes values to the range (0, 1).
type Sigmoid[T tensor.Float] struct{}

// Activation computes σ(x).
func (Sigmoid[T]) Activation(x T) T {
	return 1 / (1 + tensor.Exp(-x))
}

// ActivationGradient computes σ(x)(1 - σ(x)).
func (s Sigmoid[T]) ActivationGradient(x T) T {
	sigma := s.Activation(x)
	return sigma * (1 - sigma)
}

// ReLU is the (optionally leaky) rectified linear unit.
//
// Values at or above zero pass through unchanged; negative values are scaled
// by LeakyGradient. The zero value is a plain ReLU.
//
// Example:
//
//	relu := nn.ReLU[float32]{LeakyGradient: 0.001}
type ReLU[T tensor.Float] struct {
	LeakyGradient T // Gradient below zero
}

// Activation computes x for x >= 0, LeakyGradient*x otherwise.
func (r ReLU[T]) Activation(x T) T {
	if x >= 0 {
		return x
	}
	return r.LeakyGradient * x
}

// ActivationGradient is 1 for x >= 0 (including exactly zero), LeakyGradient otherwise.
func (r ReLU[T]) ActivationGradient(x T) T {
	if x >= 0 {
		return 1
	}
	return r.LeakyGradient
}

// ELU is the exponential linear unit: x for x >= 0, exp(x) - 1 otherwise.
type ELU[T tensor.Float] struct{}

// Activation computes ELU(x).
func (ELU[T]) Activation(x T) T {
	if x >= 0 {
		return x
	}
	return tensor.Exp(x) - 1
}

// ActivationGradient is 1 for x >= 0, exp(x) otherwise.
func (ELU[T]) ActivationGradient(x T) T {
	if x >= 0 {
		return 1
	}
	return tensor.Exp(x)
}

// Tanh is the hyperbolic tangent activation.
//
// Tanh squashes values to the range (-1, 1) and is zero-centered.
type Tanh[T tensor.Float] struct{}

// Activation computes tanh(x).
func (Tanh[T]) Activation(x T) T {
	return tensor.Tanh(x)
}

// ActivationGradient computes 1 - tanh²(x).
func (t Tanh[T]) ActivationGradient(x T) T {
	y := t.Activation(x)
	return 1 - y*y
}

// Linear is the identity activation.
type Linear[T tensor.Float] struct{}

// Activation returns x.
func (Linear[T]) Activation(x T) T {
	return x
}

// ActivationGradient returns 1.
func (Linear[T]) ActivationGradient(T) T {
	return 1
}
