// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train drives training of the feedforward network.
//
// # Basic Usage
//
//	batch := train.XOR[float32]()
//	optimizer := optim.NewAdam(net.ZeroGradient(), optim.AdamConfig[float32]{})
//	for epoch := range 1000 {
//	    loss, err := train.Train(batch, net, nn.Sigmoid[float32]{}, train.SquaredError[float32], optimizer)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	}
package train

import (
	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/optim"
	"github.com/born-ml/feedforward/internal/parallel"
	"github.com/born-ml/feedforward/internal/tensor"
	"github.com/born-ml/feedforward/internal/train"
	"github.com/born-ml/feedforward/internal/valueset"
)

// Errors returned by Train and Loss.
var (
	ErrEmptyBatch    = train.ErrEmptyBatch
	ErrShapeMismatch = train.ErrShapeMismatch
)

// Sample is one input vector paired with its expected output.
type Sample[T tensor.Float] = train.Sample[T]

// LossFunc scores a prediction and returns the loss and its gradient.
type LossFunc[T tensor.Float] = train.LossFunc[T]

// Evaluator is any model that can be evaluated.
type Evaluator[T tensor.Float] = train.Evaluator[T]

// ParallelConfig controls how TrainParallel spreads samples over goroutines.
type ParallelConfig = parallel.Config

// DefaultParallelConfig returns defaults based on CPU count.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// SquaredError is ‖predicted - actual‖².
func SquaredError[T tensor.Float](actual, predicted *tensor.Matrix[T]) (T, *tensor.Matrix[T]) {
	return train.SquaredError(actual, predicted)
}

// AbsoluteError is ‖predicted - actual‖.
func AbsoluteError[T tensor.Float](actual, predicted *tensor.Matrix[T]) (T, *tensor.Matrix[T]) {
	return train.AbsoluteError(actual, predicted)
}

// Train performs one optimization step on model and returns the mean loss
// over batch.
func Train[T tensor.Float, C any, G valueset.ValueSet[T, G]](
	batch []Sample[T],
	model nn.Trainable[T, C, G],
	activator nn.Activator[T],
	loss LossFunc[T],
	optimizer optim.Optimizer[T, G],
) (T, error) {
	return train.Train(batch, model, activator, loss, optimizer)
}

// TrainParallel is Train with per-sample work spread over goroutines.
func TrainParallel[T tensor.Float, C any, G valueset.ValueSet[T, G]](
	batch []Sample[T],
	model nn.Trainable[T, C, G],
	activator nn.Activator[T],
	loss LossFunc[T],
	optimizer optim.Optimizer[T, G],
	cfg ParallelConfig,
) (T, error) {
	return train.TrainParallel(batch, model, activator, loss, optimizer, cfg)
}

// Loss returns the mean loss of model over batch without training.
func Loss[T tensor.Float](batch []Sample[T], model Evaluator[T], activator nn.Activator[T], loss LossFunc[T]) (T, error) {
	return train.Loss(batch, model, activator, loss)
}

// XOR returns the four exclusive-or samples.
func XOR[T tensor.Float]() []Sample[T] {
	return train.XOR[T]()
}
