// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the feedforward network and its building blocks.
//
// # Overview
//
// A Network is a chain of fully connected layers. Each layer computes
//
//	y = activation(W·x) + b
//
// with the bias added after the activation. The first layer maps the input
// width to the hidden width, any number of hidden layers keep that width, and
// the last layer maps it to the output width.
//
// Activators:
//   - Sigmoid, Tanh, ELU, Linear
//   - ReLU with an optional leak below zero
//
// Parameter-free operations that compose with a Network through Chain:
//   - Exp, Normalize (L2), TaxicabNormalize (L1), Softmax
//
// # Basic Usage
//
//	rng := rand.New(rand.NewSource(1))
//	net, err := nn.RandomNetwork[float32](nn.Topology{Inputs: 2, Outputs: 1, Width: 5, Hidden: 1}, rng)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	y := net.Evaluate(tensor.NewVector[float32](0, 1), nn.Sigmoid[float32]{})
//
// # Gradients
//
// Every gradient type is a ValueSet: a fixed-shape nested collection of
// scalars with elementwise operations, so optimizers and batch averaging
// work on any of them.
//
// # Persistence
//
// SaveNetwork and LoadNetwork store parameters in SafeTensors format with the
// topology in the header metadata.
package nn
