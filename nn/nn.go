// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"io"

	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/tensor"
	"github.com/born-ml/feedforward/internal/valueset"
)

// Errors returned by network construction and loading.
var (
	ErrInvalidTopology = nn.ErrInvalidTopology
	ErrShapeMismatch   = nn.ErrShapeMismatch
)

// Activators

// Activator is a scalar nonlinearity together with its derivative.
type Activator[T tensor.Float] = nn.Activator[T]

// Sigmoid is the logistic activation.
type Sigmoid[T tensor.Float] = nn.Sigmoid[T]

// ReLU is the rectified linear unit with an optional leak.
type ReLU[T tensor.Float] = nn.ReLU[T]

// ELU is the exponential linear unit.
type ELU[T tensor.Float] = nn.ELU[T]

// Tanh is the hyperbolic tangent activation.
type Tanh[T tensor.Float] = nn.Tanh[T]

// Linear is the identity activation.
type Linear[T tensor.Float] = nn.Linear[T]

// ActivationGradientMatrix returns the diagonal Jacobian of a at weighted.
func ActivationGradientMatrix[T tensor.Float](a Activator[T], weighted *tensor.Matrix[T]) *tensor.Matrix[T] {
	return nn.ActivationGradientMatrix(a, weighted)
}

// Layers

// Layer is one affine + activation stage of a network.
type Layer[T tensor.Float] = nn.Layer[T]

// LayerGradient holds the gradient of one layer's weights and biases.
type LayerGradient[T tensor.Float] = nn.LayerGradient[T]

// NewLayer creates a layer from an [out, in] weight and an [out, 1] bias.
func NewLayer[T tensor.Float](weight, bias *tensor.Matrix[T]) (*Layer[T], error) {
	return nn.NewLayer(weight, bias)
}

// RandomLayer creates an in→out layer with parameters uniform in [-1, 1].
func RandomLayer[T tensor.Float](in, out int, src tensor.Source) *Layer[T] {
	return nn.RandomLayer[T](in, out, src)
}

// Networks

// Topology describes the shape of a Network.
type Topology = nn.Topology

// Network is an ordered chain of layers.
type Network[T tensor.Float] = nn.Network[T]

// NetworkGradient is one LayerGradient per layer, in forward order.
type NetworkGradient[T tensor.Float] = nn.NetworkGradient[T]

// TrainingInputs records the input of every layer during a forward pass.
type TrainingInputs[T tensor.Float] = nn.TrainingInputs[T]

// NewNetwork creates a network from explicit layers.
func NewNetwork[T tensor.Float](layers ...*Layer[T]) (*Network[T], error) {
	return nn.NewNetwork(layers...)
}

// RandomNetwork creates a network for topology with random parameters.
//
// Example:
//
//	net, err := nn.RandomNetwork[float64](nn.Topology{Inputs: 2, Outputs: 1, Width: 5}, rand.New(rand.NewSource(1)))
func RandomNetwork[T tensor.Float](topology Topology, src tensor.Source) (*Network[T], error) {
	return nn.RandomNetwork[T](topology, src)
}

// Composition

// Trainable is anything that can be evaluated, backpropagated and nudged.
type Trainable[T tensor.Float, C any, G valueset.ValueSet[T, G]] = nn.Trainable[T, C, G]

// Chained feeds the output of First into Second.
type Chained[T tensor.Float, CA any, GA valueset.ValueSet[T, GA], CB any, GB valueset.ValueSet[T, GB]] = nn.Chained[T, CA, GA, CB, GB]

// ChainInputs is the training record of a Chained pair.
type ChainInputs[A, B any] = nn.ChainInputs[A, B]

// Chain composes two Trainables.
func Chain[T tensor.Float, CA any, GA valueset.ValueSet[T, GA], CB any, GB valueset.ValueSet[T, GB]](
	first Trainable[T, CA, GA],
	second Trainable[T, CB, GB],
) *Chained[T, CA, GA, CB, GB] {
	return nn.Chain(first, second)
}

// Exp applies e^x elementwise.
type Exp[T tensor.Float] = nn.Exp[T]

// Normalize divides by the Euclidean norm.
type Normalize[T tensor.Float] = nn.Normalize[T]

// TaxicabNormalize divides by the sum of the elements.
type TaxicabNormalize[T tensor.Float] = nn.TaxicabNormalize[T]

// Softmax is Exp followed by TaxicabNormalize.
type Softmax[T tensor.Float] = nn.Softmax[T]

// SoftmaxInputs is the training record of Softmax.
type SoftmaxInputs[T tensor.Float] = nn.SoftmaxInputs[T]

// Value sets

// ValueSet is a fixed-shape nested collection of scalars.
type ValueSet[T tensor.Float, S any] = valueset.ValueSet[T, S]

// Pair is a ValueSet made of two ValueSets.
type Pair[T tensor.Float, A valueset.ValueSet[T, A], B valueset.ValueSet[T, B]] = valueset.Pair[T, A, B]

// Empty is the gradient of a parameter-free operation.
type Empty[T tensor.Float] = valueset.Empty[T]

// Mean returns the leafwise mean of items.
func Mean[T tensor.Float, V valueset.ValueSet[T, V]](items []V) V {
	return valueset.Mean[T](items)
}

// Persistence

// SaveNetwork writes the network to a SafeTensors file.
func SaveNetwork[T tensor.Float](path string, net *Network[T], metadata map[string]string) error {
	return nn.SaveNetwork(path, net, metadata)
}

// LoadNetwork reads a network written by SaveNetwork.
func LoadNetwork[T tensor.Float](path string) (*Network[T], map[string]string, error) {
	return nn.LoadNetwork[T](path)
}

// WriteNetwork writes the network in SafeTensors format to w.
func WriteNetwork[T tensor.Float](w io.Writer, net *Network[T], metadata map[string]string) error {
	return nn.WriteNetwork(w, net, metadata)
}

// ReadNetwork reads a network in SafeTensors format from r.
func ReadNetwork[T tensor.Float](r io.Reader) (*Network[T], map[string]string, error) {
	return nn.ReadNetwork[T](r)
}
