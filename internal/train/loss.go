package train

import "github.com/born-ml/feedforward/internal/tensor"

// LossFunc scores a prediction against the expected output. It returns the
// loss and its gradient with respect to predicted.
type LossFunc[T tensor.Float] func(actual, predicted *tensor.Matrix[T]) (T, *tensor.Matrix[T])

// SquaredError is ‖predicted - actual‖² with gradient 2(predicted - actual).
func SquaredError[T tensor.Float](actual, predicted *tensor.Matrix[T]) (T, *tensor.Matrix[T]) {
	diff := predicted.Sub(actual)
	return diff.NormSquared(), diff.Scale(2)
}

// AbsoluteError is ‖predicted - actual‖ with gradient
// (predicted - actual) / ‖predicted - actual‖.
//
// The gradient direction is undefined when predicted equals actual; the
// result is then NaN in every component.
func AbsoluteError[T tensor.Float](actual, predicted *tensor.Matrix[T]) (T, *tensor.Matrix[T]) {
	diff := predicted.Sub(actual)
	norm := diff.Norm()
	return norm, diff.Map(func(v T) T { return v / norm })
}
