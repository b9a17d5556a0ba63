// Package nn implements the feedforward network: activators, layers, the
// layer chain with backpropagation, and composable parameter-free
// operations.
package nn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/feedforward/internal/tensor"
)

// Topology describes the shape of a Network.
//
// The first layer maps Inputs→Width, each of the Hidden interior layers maps
// Width→Width, and the last layer maps Width→Outputs. Hidden may be 0.
type Topology struct {
	Inputs  int `yaml:"inputs"`
	Outputs int `yaml:"outputs"`
	Width   int `yaml:"width"`
	Hidden  int `yaml:"hidden"`
}

// Validate checks that every width is positive and Hidden is not negative.
func (t Topology) Validate() error {
	if t.Inputs <= 0 || t.Outputs <= 0 || t.Width <= 0 {
		return errors.Wrapf(ErrInvalidTopology, "widths must be > 0, got %+v", t)
	}
	if t.Hidden < 0 {
		return errors.Wrapf(ErrInvalidTopology, "hidden layer count must be >= 0, got %d", t.Hidden)
	}
	return nil
}

// NumLayers returns the number of layers, Hidden + 2.
func (t Topology) NumLayers() int {
	return t.Hidden + 2
}

// LayerShape returns the (in, out) widths of layer i.
func (t Topology) LayerShape(i int) (in, out int) {
	switch {
	case i == 0:
		return t.Inputs, t.Width
	case i == t.NumLayers()-1:
		return t.Width, t.Outputs
	default:
		return t.Width, t.Width
	}
}

// NumParameters returns the number of trainable scalars.
func (t Topology) NumParameters() int {
	n := 0
	for i := 0; i < t.NumLayers(); i++ {
		in, out := t.LayerShape(i)
		n += out*in + out
	}
	return n
}

// Network is an ordered chain of Layers: a first layer, zero or more hidden
// layers of equal width, and a last layer. It owns its layers exclusively.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	net, err := nn.RandomNetwork[float32](nn.Topology{Inputs: 2, Outputs: 1, Width: 5, Hidden: 1}, rng)
//	y := net.Evaluate(tensor.NewVector[float32](0, 1), nn.Sigmoid[float32]{})
type Network[T tensor.Float] struct {
	topology Topology
	layers   []*Layer[T]
}

// TrainingInputs records, for every layer of one forward pass, the vector
// that was fed into it: the external input for the first layer and each
// predecessor's output for the rest. It is consumed by Network.Gradient.
type TrainingInputs[T tensor.Float] struct {
	Layers []*tensor.Matrix[T]
}

// Input returns the network's external input.
func (in TrainingInputs[T]) Input() *tensor.Matrix[T] {
	return in.Layers[0]
}

// NewNetwork creates a Network from explicit layers.
//
// Returns ErrInvalidTopology when fewer than two layers are given or the
// hidden layers differ in width, and ErrShapeMismatch when adjacent layers'
// widths do not match.
func NewNetwork[T tensor.Float](layers ...*Layer[T]) (*Network[T], error) {
	if len(layers) < 2 {
		return nil, errors.Wrapf(ErrInvalidTopology, "need at least 2 layers (first and last), got %d", len(layers))
	}
	for i := 1; i < len(layers); i++ {
		if layers[i].InFeatures() != layers[i-1].OutFeatures() {
			return nil, errors.Wrapf(ErrShapeMismatch, "layer %d outputs %d values but layer %d takes %d",
				i-1, layers[i-1].OutFeatures(), i, layers[i].InFeatures())
		}
	}

	width := layers[0].OutFeatures()
	for i := 1; i < len(layers)-1; i++ {
		if layers[i].OutFeatures() != width {
			return nil, errors.Wrapf(ErrInvalidTopology, "hidden layer %d has width %d, expected %d",
				i, layers[i].OutFeatures(), width)
		}
	}

	topology := Topology{
		Inputs:  layers[0].InFeatures(),
		Outputs: layers[len(layers)-1].OutFeatures(),
		Width:   width,
		Hidden:  len(layers) - 2,
	}
	return &Network[T]{topology: topology, layers: layers}, nil
}

// RandomNetwork creates a Network for topology with every layer built by
// RandomLayer from src.
func RandomNetwork[T tensor.Float](topology Topology, src tensor.Source) (*Network[T], error) {
	if err := topology.Validate(); err != nil {
		return nil, err
	}
	layers := make([]*Layer[T], topology.NumLayers())
	for i := range layers {
		in, out := topology.LayerShape(i)
		layers[i] = RandomLayer[T](in, out, src)
	}
	return &Network[T]{topology: topology, layers: layers}, nil
}

// Topology returns the network's shape.
func (n *Network[T]) Topology() Topology {
	return n.topology
}

// Layers returns the layers in forward order.
func (n *Network[T]) Layers() []*Layer[T] {
	return n.layers
}

// InFeatures returns the input width.
func (n *Network[T]) InFeatures() int {
	return n.topology.Inputs
}

// OutFeatures returns the output width.
func (n *Network[T]) OutFeatures() int {
	return n.topology.Outputs
}

// Evaluate feeds inputs through every layer in order.
func (n *Network[T]) Evaluate(inputs *tensor.Matrix[T], activator Activator[T]) *tensor.Matrix[T] {
	current := inputs
	for _, layer := range n.layers {
		current = layer.Through(current, activator)
	}
	return current
}

// EvaluateTraining is Evaluate that also records the input of every layer
// for a subsequent Gradient call.
func (n *Network[T]) EvaluateTraining(
	inputs *tensor.Matrix[T],
	activator Activator[T],
) (*tensor.Matrix[T], TrainingInputs[T]) {
	recorded := make([]*tensor.Matrix[T], len(n.layers))
	current := inputs
	for i, layer := range n.layers {
		recorded[i] = current
		current = layer.Through(current, activator)
	}
	return current, TrainingInputs[T]{Layers: recorded}
}

// Gradient backpropagates outputLossGradient from the last layer to the
// first, threading each layer's input gradient into its predecessor.
//
// Returns the per-layer gradient bundle (index i is layer i in forward
// order) and the loss gradient with respect to the network's input.
func (n *Network[T]) Gradient(
	inputs TrainingInputs[T],
	outputLossGradient *tensor.Matrix[T],
	activator Activator[T],
) (NetworkGradient[T], *tensor.Matrix[T]) {
	if len(inputs.Layers) != len(n.layers) {
		panic(fmt.Sprintf("Network.Gradient: recorded inputs for %d layers, network has %d",
			len(inputs.Layers), len(n.layers)))
	}

	grads := make([]LayerGradient[T], len(n.layers))
	lossGradient := outputLossGradient
	for i := len(n.layers) - 1; i >= 0; i-- {
		grads[i], lossGradient = n.layers[i].Backpropagate(lossGradient, inputs.Layers[i], activator)
	}
	return NetworkGradient[T]{Layers: grads}, lossGradient
}

// ApplyNudge adds every layer's component of nudge to that layer's
// parameters.
func (n *Network[T]) ApplyNudge(nudge NetworkGradient[T]) {
	if nudge.Len() != len(n.layers) {
		panic(fmt.Sprintf("Network.ApplyNudge: nudge covers %d layers, network has %d",
			nudge.Len(), len(n.layers)))
	}
	for i, layer := range n.layers {
		layer.ApplyShifts(nudge.Layers[i].Weight, nudge.Layers[i].Bias)
	}
}

// ZeroGradient returns an all-zero gradient bundle shaped like the network.
func (n *Network[T]) ZeroGradient() NetworkGradient[T] {
	grads := make([]LayerGradient[T], len(n.layers))
	for i, layer := range n.layers {
		grads[i] = layer.ZeroGradient()
	}
	return NetworkGradient[T]{Layers: grads}
}

// StateDict returns every parameter keyed by layer index, e.g. "0.weight",
// "0.bias", "1.weight".
func (n *Network[T]) StateDict() map[string]*tensor.Matrix[T] {
	stateDict := make(map[string]*tensor.Matrix[T])
	for i, layer := range n.layers {
		for name, m := range layer.StateDict() {
			stateDict[fmt.Sprintf("%d.%s", i, name)] = m
		}
	}
	return stateDict
}

// LoadStateDict copies parameters from a state dictionary produced by
// StateDict. Unknown keys are rejected.
func (n *Network[T]) LoadStateDict(stateDict map[string]*tensor.Matrix[T]) error {
	perLayer := make([]map[string]*tensor.Matrix[T], len(n.layers))
	for key, m := range stateDict {
		idx, name, ok := strings.Cut(key, ".")
		i, err := strconv.Atoi(idx)
		if !ok || err != nil || i < 0 || i >= len(n.layers) {
			return errors.Errorf("unexpected key %q in state dict", key)
		}
		if perLayer[i] == nil {
			perLayer[i] = make(map[string]*tensor.Matrix[T])
		}
		perLayer[i][name] = m
	}

	for i, layer := range n.layers {
		if err := layer.LoadStateDict(perLayer[i]); err != nil {
			return errors.Wrapf(err, "failed to load layer %d", i)
		}
	}
	return nil
}
