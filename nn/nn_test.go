// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/feedforward/nn"
	"github.com/born-ml/feedforward/optim"
	"github.com/born-ml/feedforward/tensor"
	"github.com/born-ml/feedforward/train"
)

// TestActivatorInterface verifies that the exported activators implement Activator.
func TestActivatorInterface(t *testing.T) {
	tests := []struct {
		name      string
		activator nn.Activator[float32]
	}{
		{"Sigmoid", nn.Sigmoid[float32]{}},
		{"ReLU", nn.ReLU[float32]{LeakyGradient: 0.01}},
		{"ELU", nn.ELU[float32]{}},
		{"Tanh", nn.Tanh[float32]{}},
		{"Linear", nn.Linear[float32]{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jac := nn.ActivationGradientMatrix(tt.activator, tensor.NewVector[float32](0.5, 1))
			assert.Equal(t, tensor.Shape{Rows: 2, Cols: 2}, jac.Shape())
			assert.Equal(t, float32(0), jac.At(0, 1))
		})
	}
}

// TestPublicTrainingLoop trains XOR and persists the result through the public packages only.
func TestPublicTrainingLoop(t *testing.T) {
	net, err := nn.RandomNetwork[float32](nn.Topology{Inputs: 2, Outputs: 1, Width: 4, Hidden: 1}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	batch := train.XOR[float32]()
	act := nn.Sigmoid[float32]{}
	optimizer := optim.NewAdam(net.ZeroGradient(), optim.AdamConfig[float32]{LR: 0.01})

	before, err := train.Loss(batch, net, act, train.SquaredError[float32])
	require.NoError(t, err)
	for epoch := 0; epoch < 200; epoch++ {
		_, err := train.TrainParallel(batch, net, act, train.SquaredError[float32], optimizer, train.DefaultParallelConfig())
		require.NoError(t, err)
	}
	after, err := train.Loss(batch, net, act, train.SquaredError[float32])
	require.NoError(t, err)
	assert.LessOrEqual(t, after, before)

	var buf bytes.Buffer
	require.NoError(t, nn.WriteNetwork(&buf, net, nil))
	loaded, _, err := nn.ReadNetwork[float32](&buf)
	require.NoError(t, err)
	for _, s := range batch {
		assert.True(t, net.Evaluate(s.Input, act).Equal(loaded.Evaluate(s.Input, act)))
	}
}

// TestPublicMean averages gradients through the exported ValueSet helpers.
func TestPublicMean(t *testing.T) {
	a := tensor.NewVector[float64](1, 3)
	b := tensor.NewVector[float64](3, 5)
	mean := nn.Mean[float64]([]*tensor.Matrix[float64]{a, b})
	assert.Equal(t, []float64{2, 4}, mean.Data())
}
