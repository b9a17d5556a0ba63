package nn

import (
	"github.com/born-ml/feedforward/internal/tensor"
	"github.com/born-ml/feedforward/internal/valueset"
)

// The operations below have no parameters: their gradient is valueset.Empty,
// ApplyNudge is a no-op and the activator argument is ignored.

type (
	vector[T tensor.Float] = *tensor.Matrix[T]
	empty[T tensor.Float]  = valueset.Empty[T]
)

// Exp applies e^x to every element.
type Exp[T tensor.Float] struct{}

// Evaluate returns e^x elementwise.
func (Exp[T]) Evaluate(inputs *tensor.Matrix[T], _ Activator[T]) *tensor.Matrix[T] {
	return inputs.Map(tensor.Exp[T])
}

// EvaluateTraining records the outputs, which are also the local derivative.
func (e Exp[T]) EvaluateTraining(inputs *tensor.Matrix[T], a Activator[T]) (*tensor.Matrix[T], *tensor.Matrix[T]) {
	out := e.Evaluate(inputs, a)
	return out, out
}

// Gradient scales the output loss gradient by e^x.
func (Exp[T]) Gradient(outputs, outputLossGradient *tensor.Matrix[T], _ Activator[T]) (valueset.Empty[T], *tensor.Matrix[T]) {
	return valueset.Empty[T]{}, outputs.MulElem(outputLossGradient)
}

// ApplyNudge is a no-op.
func (Exp[T]) ApplyNudge(valueset.Empty[T]) {}

// Normalize divides its input by the input's Euclidean norm.
type Normalize[T tensor.Float] struct{}

// Evaluate returns x / ‖x‖.
func (Normalize[T]) Evaluate(inputs *tensor.Matrix[T], _ Activator[T]) *tensor.Matrix[T] {
	return inputs.Normalize()
}

// EvaluateTraining records the inputs.
func (n Normalize[T]) EvaluateTraining(inputs *tensor.Matrix[T], a Activator[T]) (*tensor.Matrix[T], *tensor.Matrix[T]) {
	return n.Evaluate(inputs, a), inputs
}

// Gradient applies the Jacobian (I - y yᵀ) / ‖x‖, where y = x / ‖x‖.
func (Normalize[T]) Gradient(inputs, outputLossGradient *tensor.Matrix[T], _ Activator[T]) (valueset.Empty[T], *tensor.Matrix[T]) {
	norm := inputs.Norm()
	y := inputs.Scale(1 / norm)
	jacobian := tensor.Identity[T](inputs.Rows()).Sub(tensor.Outer(y, y)).Scale(1 / norm)
	return valueset.Empty[T]{}, jacobian.MatMul(outputLossGradient)
}

// ApplyNudge is a no-op.
func (Normalize[T]) ApplyNudge(valueset.Empty[T]) {}

// TaxicabNormalize divides its input by the sum of its elements, so
// non-negative inputs come out summing to one.
type TaxicabNormalize[T tensor.Float] struct{}

// Evaluate returns x / Σx.
func (TaxicabNormalize[T]) Evaluate(inputs *tensor.Matrix[T], _ Activator[T]) *tensor.Matrix[T] {
	sum := inputs.Sum()
	return inputs.Map(func(v T) T { return v / sum })
}

// EvaluateTraining records the inputs.
func (n TaxicabNormalize[T]) EvaluateTraining(inputs *tensor.Matrix[T], a Activator[T]) (*tensor.Matrix[T], *tensor.Matrix[T]) {
	return n.Evaluate(inputs, a), inputs
}

// Gradient returns g/s - (x·g)/s² for every element, with s = Σx.
func (TaxicabNormalize[T]) Gradient(inputs, outputLossGradient *tensor.Matrix[T], _ Activator[T]) (valueset.Empty[T], *tensor.Matrix[T]) {
	sum := inputs.Sum()
	shift := inputs.Dot(outputLossGradient) / (sum * sum)
	return valueset.Empty[T]{}, outputLossGradient.Map(func(g T) T { return g/sum - shift })
}

// ApplyNudge is a no-op.
func (TaxicabNormalize[T]) ApplyNudge(valueset.Empty[T]) {}

// SoftmaxInputs is the training record of Softmax.
type SoftmaxInputs[T tensor.Float] = ChainInputs[vector[T], vector[T]]

// Softmax is Exp followed by TaxicabNormalize.
type Softmax[T tensor.Float] struct{}

func (Softmax[T]) chain() *Chained[T, vector[T], empty[T], vector[T], empty[T]] {
	return Chain[T, vector[T], empty[T], vector[T], empty[T]](Exp[T]{}, TaxicabNormalize[T]{})
}

// Evaluate returns softmax(x).
func (s Softmax[T]) Evaluate(inputs *tensor.Matrix[T], a Activator[T]) *tensor.Matrix[T] {
	return s.chain().Evaluate(inputs, a)
}

// EvaluateTraining records both stages.
func (s Softmax[T]) EvaluateTraining(inputs *tensor.Matrix[T], a Activator[T]) (*tensor.Matrix[T], SoftmaxInputs[T]) {
	return s.chain().EvaluateTraining(inputs, a)
}

// Gradient backpropagates through both stages.
func (s Softmax[T]) Gradient(record SoftmaxInputs[T], outputLossGradient *tensor.Matrix[T], a Activator[T]) (valueset.Empty[T], *tensor.Matrix[T]) {
	_, inputLoss := s.chain().Gradient(record, outputLossGradient, a)
	return valueset.Empty[T]{}, inputLoss
}

// ApplyNudge is a no-op.
func (Softmax[T]) ApplyNudge(valueset.Empty[T]) {}
