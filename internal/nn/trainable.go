package nn

import (
	"github.com/born-ml/feedforward/internal/tensor"
	"github.com/born-ml/feedforward/internal/valueset"
)

// Trainable is anything that can be evaluated, evaluated while recording
// what backpropagation needs, backpropagated, and nudged.
//
// C is the per-sample record produced by EvaluateTraining and consumed once
// by Gradient. G is the parameter gradient, a ValueSet so optimizers can
// work on it without knowing its shape.
//
// *Network, Exp, Normalize, TaxicabNormalize, Softmax and Chained all
// implement Trainable.
type Trainable[T tensor.Float, C any, G valueset.ValueSet[T, G]] interface {
	// Evaluate computes the outputs for inputs.
	Evaluate(inputs *tensor.Matrix[T], activator Activator[T]) *tensor.Matrix[T]

	// EvaluateTraining computes the outputs and the record for Gradient.
	EvaluateTraining(inputs *tensor.Matrix[T], activator Activator[T]) (*tensor.Matrix[T], C)

	// Gradient returns the parameter gradient and the loss gradient with
	// respect to the inputs, given the loss gradient with respect to the outputs.
	Gradient(record C, outputLossGradient *tensor.Matrix[T], activator Activator[T]) (G, *tensor.Matrix[T])

	// ApplyNudge adds nudge to the parameters.
	ApplyNudge(nudge G)
}

var _ Trainable[float32, TrainingInputs[float32], NetworkGradient[float32]] = (*Network[float32])(nil)

// ChainInputs is the training record of a Chained pair.
type ChainInputs[A, B any] struct {
	First  A
	Second B
}

// Chained evaluates First and feeds its output into Second.
type Chained[T tensor.Float, CA any, GA valueset.ValueSet[T, GA], CB any, GB valueset.ValueSet[T, GB]] struct {
	First  Trainable[T, CA, GA]
	Second Trainable[T, CB, GB]
}

// Chain composes two Trainables. first's output width must equal second's
// input width.
//
// Example:
//
//	type vec = *tensor.Matrix[float32]
//	type none = valueset.Empty[float32]
//	softmax := nn.Chain[float32, vec, none, vec, none](nn.Exp[float32]{}, nn.TaxicabNormalize[float32]{})
func Chain[T tensor.Float, CA any, GA valueset.ValueSet[T, GA], CB any, GB valueset.ValueSet[T, GB]](
	first Trainable[T, CA, GA],
	second Trainable[T, CB, GB],
) *Chained[T, CA, GA, CB, GB] {
	return &Chained[T, CA, GA, CB, GB]{First: first, Second: second}
}

// Evaluate runs First then Second.
func (c *Chained[T, CA, GA, CB, GB]) Evaluate(inputs *tensor.Matrix[T], activator Activator[T]) *tensor.Matrix[T] {
	return c.Second.Evaluate(c.First.Evaluate(inputs, activator), activator)
}

// EvaluateTraining runs First then Second, keeping both records.
func (c *Chained[T, CA, GA, CB, GB]) EvaluateTraining(
	inputs *tensor.Matrix[T],
	activator Activator[T],
) (*tensor.Matrix[T], ChainInputs[CA, CB]) {
	middle, first := c.First.EvaluateTraining(inputs, activator)
	outputs, second := c.Second.EvaluateTraining(middle, activator)
	return outputs, ChainInputs[CA, CB]{First: first, Second: second}
}

// Gradient backpropagates through Second, then First.
func (c *Chained[T, CA, GA, CB, GB]) Gradient(
	record ChainInputs[CA, CB],
	outputLossGradient *tensor.Matrix[T],
	activator Activator[T],
) (valueset.Pair[T, GA, GB], *tensor.Matrix[T]) {
	second, middleLoss := c.Second.Gradient(record.Second, outputLossGradient, activator)
	first, inputLoss := c.First.Gradient(record.First, middleLoss, activator)
	return valueset.Pair[T, GA, GB]{First: first, Second: second}, inputLoss
}

// ApplyNudge nudges both halves.
func (c *Chained[T, CA, GA, CB, GB]) ApplyNudge(nudge valueset.Pair[T, GA, GB]) {
	c.First.ApplyNudge(nudge.First)
	c.Second.ApplyNudge(nudge.Second)
}
