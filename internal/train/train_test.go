package train

import (
	"math/rand"
	"strconv"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/optim"
	"github.com/born-ml/feedforward/internal/parallel"
	"github.com/born-ml/feedforward/internal/tensor"
	"github.com/born-ml/feedforward/internal/valueset"
)

var xorTopology = nn.Topology{Inputs: 2, Outputs: 1, Width: 5, Hidden: 1}

func newNetwork[T tensor.Float](t *testing.T, topology nn.Topology, seed int64) *nn.Network[T] {
	t.Helper()
	net, err := nn.RandomNetwork[T](topology, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return net
}

func snapshot[T tensor.Float](net *nn.Network[T]) map[string]*tensor.Matrix[T] {
	out := make(map[string]*tensor.Matrix[T])
	for k, m := range net.StateDict() {
		out[k] = m.Clone()
	}
	return out
}

func assertSameParameters[T tensor.Float](t *testing.T, want map[string]*tensor.Matrix[T], net *nn.Network[T]) {
	t.Helper()
	got := net.StateDict()
	require.Len(t, got, len(want))
	for k, m := range want {
		assert.True(t, m.Equal(got[k]), "%s: want %v, got %v", k, m, got[k])
	}
}

func TestTrain_XORImproves(t *testing.T) {
	net := newNetwork[float32](t, xorTopology, 1)
	batch := XOR[float32]()
	act := nn.Sigmoid[float32]{}
	adam := optim.NewAdam(net.ZeroGradient(), optim.AdamConfig[float32]{LR: 0.01})

	before, err := Loss(batch, net, act, SquaredError[float32])
	require.NoError(t, err)

	for epoch := 0; epoch < 500; epoch++ {
		_, err := Train(batch, net, act, SquaredError[float32], adam)
		require.NoError(t, err)
	}

	after, err := Loss(batch, net, act, SquaredError[float32])
	require.NoError(t, err)
	assert.LessOrEqual(t, after, before)
	assert.Equal(t, 500, adam.GetTimestep())
}

func TestTrain_ReturnsLossBeforeStep(t *testing.T) {
	net := newNetwork[float64](t, xorTopology, 2)
	batch := XOR[float64]()
	act := nn.ReLU[float64]{LeakyGradient: 0.01}

	want, err := Loss(batch, net, act, SquaredError[float64])
	require.NoError(t, err)

	got, err := Train(batch, net, act, SquaredError[float64], optim.NewAdam(net.ZeroGradient(), optim.AdamConfig[float64]{}))
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-12)
}

func TestTrain_AppliesStepForMeanGradient(t *testing.T) {
	net := newNetwork[float64](t, nn.Topology{Inputs: 2, Outputs: 2, Width: 3}, 3)
	batch := []Sample[float64]{
		{Input: tensor.NewVector[float64](1, 0), Target: tensor.NewVector[float64](0, 1)},
		{Input: tensor.NewVector[float64](0.5, -1), Target: tensor.NewVector[float64](1, 1)},
	}
	act := nn.Tanh[float64]{}
	const lr = 0.1

	grads := make([]nn.NetworkGradient[float64], len(batch))
	for i, s := range batch {
		predicted, inputs := net.EvaluateTraining(s.Input, act)
		_, lossGrad := SquaredError(s.Target, predicted)
		grads[i], _ = net.Gradient(inputs, lossGrad, act)
	}
	mean := valueset.Mean[float64](grads)
	before := snapshot(net)

	_, err := Train(batch, net, act, SquaredError[float64], optim.NewSGD(net.ZeroGradient(), optim.SGDConfig[float64]{LR: lr}))
	require.NoError(t, err)

	for i, layer := range net.Layers() {
		wantWeight := before[keyOf(i, "weight")].Sub(mean.Layers[i].Weight.Scale(lr))
		wantBias := before[keyOf(i, "bias")].Sub(mean.Layers[i].Bias.Scale(lr))
		assert.True(t, wantWeight.EqualApprox(layer.Weight(), 1e-12), "layer %d weight", i)
		assert.True(t, wantBias.EqualApprox(layer.Bias(), 1e-12), "layer %d bias", i)
	}
}

func keyOf(layer int, name string) string {
	return strconv.Itoa(layer) + "." + name
}

func TestTrain_EmptyBatch(t *testing.T) {
	net := newNetwork[float32](t, xorTopology, 1)
	adam := optim.NewAdam(net.ZeroGradient(), optim.AdamConfig[float32]{})

	_, err := Train(nil, net, nn.Sigmoid[float32]{}, SquaredError[float32], adam)
	assert.True(t, errors.Is(err, ErrEmptyBatch))
	assert.Equal(t, 0, adam.GetTimestep())

	_, err = Loss([]Sample[float32]{}, net, nn.Sigmoid[float32]{}, SquaredError[float32])
	assert.True(t, errors.Is(err, ErrEmptyBatch))
}

func TestTrain_ShapeMismatchLeavesModelUntouched(t *testing.T) {
	net := newNetwork[float32](t, xorTopology, 1)
	before := snapshot(net)
	adam := optim.NewAdam(net.ZeroGradient(), optim.AdamConfig[float32]{})

	bad := [][]Sample[float32]{
		append(XOR[float32](), Sample[float32]{Input: tensor.NewVector[float32](1, 2, 3), Target: tensor.NewVector[float32](0)}),
		append(XOR[float32](), Sample[float32]{Input: tensor.NewVector[float32](1, 2), Target: tensor.NewVector[float32](0, 1)}),
		append(XOR[float32](), Sample[float32]{Input: tensor.Zeros[float32](2, 2), Target: tensor.NewVector[float32](0)}),
		{{Input: tensor.NewVector[float32](1, 2)}},
	}
	for i, batch := range bad {
		_, err := Train(batch, net, nn.Sigmoid[float32]{}, SquaredError[float32], adam)
		assert.True(t, errors.Is(err, ErrShapeMismatch), "batch %d: %v", i, err)

		_, err = Loss(batch, net, nn.Sigmoid[float32]{}, SquaredError[float32])
		assert.True(t, errors.Is(err, ErrShapeMismatch), "batch %d: %v", i, err)
	}

	assertSameParameters(t, before, net)
	assert.Equal(t, 0, adam.GetTimestep())
}

func TestTrainParallel_MatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	batch := make([]Sample[float64], 32)
	for i := range batch {
		batch[i] = Sample[float64]{
			Input:  tensor.RandUniform[float64](3, 1, -1, 1, rng),
			Target: tensor.RandUniform[float64](2, 1, 0, 1, rng),
		}
	}
	topology := nn.Topology{Inputs: 3, Outputs: 2, Width: 6, Hidden: 2}
	act := nn.Sigmoid[float64]{}

	seq := newNetwork[float64](t, topology, 7)
	par := newNetwork[float64](t, topology, 7)
	seqAdam := optim.NewAdam(seq.ZeroGradient(), optim.AdamConfig[float64]{LR: 0.01})
	parAdam := optim.NewAdam(par.ZeroGradient(), optim.AdamConfig[float64]{LR: 0.01})
	cfg := parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	for epoch := 0; epoch < 10; epoch++ {
		seqLoss, err := Train(batch, seq, act, SquaredError[float64], seqAdam)
		require.NoError(t, err)
		parLoss, err := TrainParallel(batch, par, act, SquaredError[float64], parAdam, cfg)
		require.NoError(t, err)
		assert.Equal(t, seqLoss, parLoss, "epoch %d", epoch)
	}

	assertSameParameters(t, snapshot(seq), par)
}

func TestTrain_ChainedSoftmax(t *testing.T) {
	type none = valueset.Empty[float64]

	net := newNetwork[float64](t, nn.Topology{Inputs: 2, Outputs: 3, Width: 4, Hidden: 1}, 5)
	model := nn.Chain[float64, nn.TrainingInputs[float64], nn.NetworkGradient[float64], nn.SoftmaxInputs[float64], none](
		net, nn.Softmax[float64]{})
	adam := optim.NewAdam(valueset.NewPair[float64](net.ZeroGradient(), none{}), optim.AdamConfig[float64]{LR: 0.01})
	batch := []Sample[float64]{
		{Input: tensor.NewVector[float64](0, 1), Target: tensor.NewVector[float64](1, 0, 0)},
		{Input: tensor.NewVector[float64](1, 0), Target: tensor.NewVector[float64](0, 0, 1)},
	}
	act := nn.Sigmoid[float64]{}

	before, err := Loss(batch, model, act, SquaredError[float64])
	require.NoError(t, err)
	for epoch := 0; epoch < 200; epoch++ {
		_, err := Train(batch, model, act, SquaredError[float64], adam)
		require.NoError(t, err)
	}
	after, err := Loss(batch, model, act, SquaredError[float64])
	require.NoError(t, err)
	assert.LessOrEqual(t, after, before)
	assert.InDelta(t, 1, model.Evaluate(batch[0].Input, act).Sum(), 1e-9)
}

func TestXOR(t *testing.T) {
	batch := XOR[float32]()
	require.Len(t, batch, 4)
	var ones int
	for _, s := range batch {
		a, b := s.Input.At(0, 0), s.Input.At(1, 0)
		want := float32(0)
		if a != b {
			want = 1
			ones++
		}
		assert.Equal(t, want, s.Target.At(0, 0))
	}
	assert.Equal(t, 2, ones)
}
