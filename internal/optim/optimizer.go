// Package optim implements optimization algorithms for training the
// feedforward network.
//
// This package provides:
//   - Optimizer interface: turns a gradient into a step
//   - Adam: Adaptive Moment Estimation
//   - SGD: Stochastic Gradient Descent with momentum
//
// Optimizers never touch the network. They return a step shaped like the
// gradient, which the caller adds to the parameters with ApplyNudge.
//
// Example usage:
//
//	net, _ := nn.RandomNetwork[float32](topology, rng)
//	optimizer := optim.NewAdam(net.ZeroGradient(), optim.AdamConfig[float32]{})
//
//	_, inputs := net.EvaluateTraining(x, activator)
//	grad, _ := net.Gradient(inputs, lossGradient, activator)
//	net.ApplyNudge(optimizer.Transform(grad))
package optim

import (
	"github.com/born-ml/feedforward/internal/tensor"
	"github.com/born-ml/feedforward/internal/valueset"
)

// Optimizer is the base interface for all optimization algorithms.
//
// G is the gradient type, any ValueSet: a single matrix, one layer's
// gradient or a whole network's gradient bundle.
type Optimizer[T tensor.Float, G valueset.ValueSet[T, G]] interface {
	// Transform consumes the gradient of the loss and returns the step to
	// add to the parameters. It updates the optimizer's internal state.
	Transform(gradient G) G

	// GetLR returns the current learning rate.
	GetLR() T
}
