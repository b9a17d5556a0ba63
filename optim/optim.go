// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training the
// feedforward network.
//
// # Overview
//
// This package contains:
//   - Adam: Adaptive Moment Estimation with bias correction
//   - SGD: Stochastic Gradient Descent with momentum
//   - Optimizer interface for custom optimizers
//
// An optimizer never mutates the network. Transform turns a gradient into a
// step that the caller applies with ApplyNudge, which train.Train does.
//
// # Basic Usage
//
//	net, _ := nn.RandomNetwork[float32](topology, rand.New(rand.NewSource(1)))
//	optimizer := optim.NewAdam(net.ZeroGradient(), optim.AdamConfig[float32]{
//	    LR: 0.001,
//	})
//
//	for epoch := range 1000 {
//	    loss, err := train.Train(batch, net, nn.Sigmoid[float32]{}, train.SquaredError[float32], optimizer)
//	}
package optim

import (
	"github.com/born-ml/feedforward/internal/optim"
	"github.com/born-ml/feedforward/internal/tensor"
	"github.com/born-ml/feedforward/internal/valueset"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer[T tensor.Float, G valueset.ValueSet[T, G]] = optim.Optimizer[T, G]

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam[T tensor.Float, G valueset.ValueSet[T, G]] = optim.Adam[T, G]

// AdamConfig contains configuration for Adam optimizer.
type AdamConfig[T tensor.Float] = optim.AdamConfig[T]

// NewAdam creates a new Adam optimizer with moments shaped like template.
//
// Example:
//
//	optimizer := optim.NewAdam(net.ZeroGradient(), optim.AdamConfig[float64]{
//	    LR:    0.001,
//	    Betas: [2]float64{0.9, 0.999},
//	})
func NewAdam[T tensor.Float, G valueset.ValueSet[T, G]](template G, config AdamConfig[T]) *Adam[T, G] {
	return optim.NewAdam(template, config)
}

// SGD (Stochastic Gradient Descent)

// SGD represents the SGD optimizer with optional momentum.
type SGD[T tensor.Float, G valueset.ValueSet[T, G]] = optim.SGD[T, G]

// SGDConfig contains configuration for SGD optimizer.
type SGDConfig[T tensor.Float] = optim.SGDConfig[T]

// NewSGD creates a new SGD optimizer.
//
// Example:
//
//	optimizer := optim.NewSGD(net.ZeroGradient(), optim.SGDConfig[float32]{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
func NewSGD[T tensor.Float, G valueset.ValueSet[T, G]](template G, config SGDConfig[T]) *SGD[T, G] {
	return optim.NewSGD(template, config)
}
