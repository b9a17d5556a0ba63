package nn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/feedforward/internal/tensor"
)

// Layer is one affine + activation stage of a network.
//
// Performs the transformation: y = activation(W @ x) + b
// where:
//   - x is the input column vector with shape [in, 1]
//   - W is the weight matrix with shape [out, in]
//   - b is the bias vector with shape [out, 1]
//
// The bias is added after the activation, so its local Jacobian is the
// identity. Shapes are fixed at construction and never change.
type Layer[T tensor.Float] struct {
	weight *tensor.Matrix[T] // [out, in]
	bias   *tensor.Matrix[T] // [out, 1]
}

// NewLayer creates a Layer from explicit parameters. The matrices are used
// directly, not copied.
//
// Returns ErrShapeMismatch if bias is not an [out, 1] vector matching weight.
func NewLayer[T tensor.Float](weight, bias *tensor.Matrix[T]) (*Layer[T], error) {
	if weight == nil || bias == nil {
		return nil, errors.New("layer: weight and bias must not be nil")
	}
	if bias.Cols() != 1 || bias.Rows() != weight.Rows() {
		return nil, errors.Wrapf(ErrShapeMismatch, "layer: bias %v does not fit weight %v",
			bias.Shape(), weight.Shape())
	}
	return &Layer[T]{weight: weight, bias: bias}, nil
}

// RandomLayer creates an in→out layer with every weight and bias drawn
// independently and uniformly from [-1, 1] using src.
func RandomLayer[T tensor.Float](in, out int, src tensor.Source) *Layer[T] {
	return &Layer[T]{
		weight: tensor.RandUniform[T](out, in, -1, 1, src),
		bias:   tensor.RandUniform[T](out, 1, -1, 1, src),
	}
}

// Through transforms inputs by the layer's weights, activation and bias.
//
// Panics if inputs is not an [in, 1] vector.
func (l *Layer[T]) Through(inputs *tensor.Matrix[T], activator Activator[T]) *tensor.Matrix[T] {
	l.checkInputs("Layer.Through", inputs)
	weighted := l.weight.MatMul(inputs)
	return activate(activator, weighted).Add(l.bias)
}

// Backpropagate computes the parameter gradients of the layer for one
// sample, given the loss gradient with respect to the layer's outputs and the
// inputs that produced them. It also returns the loss gradient with respect
// to the inputs, for the preceding layer.
//
//	bias gradient   = lossGradient
//	weight gradient = D(W@x) @ lossGradient @ xᵀ
//	input gradient  = (D(W@x) @ W)ᵀ @ lossGradient
//
// where D is the diagonal activation Jacobian.
func (l *Layer[T]) Backpropagate(
	lossGradient, inputs *tensor.Matrix[T],
	activator Activator[T],
) (LayerGradient[T], *tensor.Matrix[T]) {
	l.checkInputs("Layer.Backpropagate", inputs)
	if lossGradient.Cols() != 1 || lossGradient.Rows() != l.OutFeatures() {
		panic(fmt.Sprintf("Layer.Backpropagate: expected loss gradient [%d×1], got %v",
			l.OutFeatures(), lossGradient.Shape()))
	}

	jacobian := ActivationGradientMatrix(activator, l.weight.MatMul(inputs))
	scaled := jacobian.MatMul(lossGradient)

	grad := LayerGradient[T]{
		Weight: tensor.Outer(scaled, inputs),
		Bias:   lossGradient.Clone(),
	}
	inputGradient := jacobian.MatMul(l.weight).Transpose().MatMul(lossGradient)

	return grad, inputGradient
}

// ApplyShifts adds the deltas to the weights and biases in place. The deltas
// are expected to be already scaled (e.g. an optimizer step).
func (l *Layer[T]) ApplyShifts(weightDelta, biasDelta *tensor.Matrix[T]) {
	l.weight.AddInPlace(weightDelta)
	l.bias.AddInPlace(biasDelta)
}

// ZeroGradient returns an all-zero LayerGradient shaped like the layer.
func (l *Layer[T]) ZeroGradient() LayerGradient[T] {
	return LayerGradient[T]{
		Weight: tensor.Zeros[T](l.weight.Rows(), l.weight.Cols()),
		Bias:   tensor.Zeros[T](l.bias.Rows(), 1),
	}
}

// Weight returns the weight matrix.
func (l *Layer[T]) Weight() *tensor.Matrix[T] {
	return l.weight
}

// Bias returns the bias vector.
func (l *Layer[T]) Bias() *tensor.Matrix[T] {
	return l.bias
}

// InFeatures returns the number of inputs.
func (l *Layer[T]) InFeatures() int {
	return l.weight.Cols()
}

// OutFeatures returns the number of outputs.
func (l *Layer[T]) OutFeatures() int {
	return l.weight.Rows()
}

// StateDict returns the layer parameters keyed "weight" and "bias".
func (l *Layer[T]) StateDict() map[string]*tensor.Matrix[T] {
	return map[string]*tensor.Matrix[T]{
		"weight": l.weight,
		"bias":   l.bias,
	}
}

// LoadStateDict copies parameters from a state dictionary holding exactly
// "weight" and "bias".
func (l *Layer[T]) LoadStateDict(stateDict map[string]*tensor.Matrix[T]) error {
	for name := range stateDict {
		if name != "weight" && name != "bias" {
			return errors.Errorf("unexpected %s in state dict", name)
		}
	}
	for name, dst := range l.StateDict() {
		src, ok := stateDict[name]
		if !ok {
			return errors.Errorf("missing %s in state dict", name)
		}
		if !src.Shape().Equal(dst.Shape()) {
			return errors.Wrapf(ErrShapeMismatch, "%s: expected %v, got %v", name, dst.Shape(), src.Shape())
		}
		copy(dst.Data(), src.Data())
	}
	return nil
}

func (l *Layer[T]) checkInputs(op string, inputs *tensor.Matrix[T]) {
	if inputs.Cols() != 1 || inputs.Rows() != l.InFeatures() {
		panic(fmt.Sprintf("%s: expected input [%d×1], got %v", op, l.InFeatures(), inputs.Shape()))
	}
}
