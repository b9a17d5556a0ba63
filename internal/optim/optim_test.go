package optim_test

import (
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/optim"
	"github.com/born-ml/feedforward/internal/tensor"
	"github.com/born-ml/feedforward/internal/valueset"
)

var (
	_ optim.Optimizer[float32, *tensor.Matrix[float32]]      = (*optim.Adam[float32, *tensor.Matrix[float32]])(nil)
	_ optim.Optimizer[float64, nn.NetworkGradient[float64]] = (*optim.SGD[float64, nn.NetworkGradient[float64]])(nil)
)

func TestAdam_Defaults(t *testing.T) {
	adam := optim.NewAdam(tensor.Zeros[float32](2, 1), optim.AdamConfig[float32]{})
	assert.Equal(t, float32(0.001), adam.GetLR())
	assert.Equal(t, 0, adam.GetTimestep())

	m, v := adam.Moments()
	assert.Equal(t, []float32{0, 0}, m.Data())
	assert.Equal(t, []float32{0, 0}, v.Data())
}

func TestAdam_FirstStepOpposesGradient(t *testing.T) {
	adam := optim.NewAdam(tensor.Zeros[float64](4, 1), optim.AdamConfig[float64]{LR: 0.01})
	grad := tensor.NewVector[float64](3, -0.5, 1e-3, -200)

	step := adam.Transform(grad)

	// Bias correction reduces the first step to -lr * g / |g|.
	for i, g := range grad.Data() {
		s := step.Data()[i]
		assert.InDelta(t, -0.01*math.Copysign(1, g), s, 1e-9, "component %d", i)
	}
	assert.Equal(t, 1, adam.GetTimestep())
}

func TestAdam_ZeroGradientGivesZeroStep(t *testing.T) {
	adam := optim.NewAdam(tensor.Zeros[float32](3, 1), optim.AdamConfig[float32]{})
	step := adam.Transform(tensor.Zeros[float32](3, 1))
	assert.Equal(t, []float32{0, 0, 0}, step.Data())
}

func TestAdam_BiasCorrection(t *testing.T) {
	const (
		lr    = 0.1
		beta1 = 0.8
		beta2 = 0.9
	)
	adam := optim.NewAdam(tensor.Zeros[float64](1, 1), optim.AdamConfig[float64]{
		LR:    lr,
		Betas: [2]float64{beta1, beta2},
		Eps:   1e-12,
	})
	grads := []float64{1, -2, 0.5}

	var m, v float64
	for i, g := range grads {
		step := adam.Transform(tensor.NewVector(g))

		tstep := float64(i + 1)
		m = beta1*m + (1-beta1)*g
		v = beta2*v + (1-beta2)*g*g
		mHat := m / (1 - math.Pow(beta1, tstep))
		vHat := v / (1 - math.Pow(beta2, tstep))
		want := -lr * mHat / (math.Sqrt(vHat) + 1e-12)

		assert.InDelta(t, want, step.At(0, 0), 1e-12, "step %d", i+1)
	}

	momentum, velocity := adam.Moments()
	assert.InDelta(t, m, momentum.At(0, 0), 1e-12)
	assert.InDelta(t, v, velocity.At(0, 0), 1e-12)
}

func TestAdam_DoesNotMutateGradient(t *testing.T) {
	adam := optim.NewAdam(tensor.Zeros[float32](2, 1), optim.AdamConfig[float32]{})
	grad := tensor.NewVector[float32](1, 2)
	adam.Transform(grad)
	assert.Equal(t, []float32{1, 2}, grad.Data())
}

func TestAdam_SetLR(t *testing.T) {
	adam := optim.NewAdam(tensor.Zeros[float64](1, 1), optim.AdamConfig[float64]{})
	adam.SetLR(0.5)
	assert.Equal(t, 0.5, adam.GetLR())

	step := adam.Transform(tensor.NewVector[float64](4))
	assert.InDelta(t, -0.5, step.At(0, 0), 1e-9)
}

func TestAdam_NetworkGradient(t *testing.T) {
	net, err := nn.RandomNetwork[float32](nn.Topology{Inputs: 2, Outputs: 1, Width: 3, Hidden: 1}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	adam := optim.NewAdam(net.ZeroGradient(), optim.AdamConfig[float32]{})
	step := adam.Transform(net.ZeroGradient().All(1))

	require.Equal(t, 3, step.Len())
	assert.Equal(t, net.Topology().NumParameters(), valueset.Count[float32](step))
	step.UnaryInspection(func(s float32) {
		assert.InDelta(t, -0.001, float64(s), 1e-6)
	})
}

func TestAdam_ConcurrentTransform(t *testing.T) {
	adam := optim.NewAdam(tensor.Zeros[float64](8, 1), optim.AdamConfig[float64]{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			adam.Transform(tensor.Full[float64](8, 1, 1))
		}()
	}
	wg.Wait()

	assert.Equal(t, 16, adam.GetTimestep())
}

func TestSGD_SimpleUpdate(t *testing.T) {
	sgd := optim.NewSGD(tensor.Zeros[float32](1, 1), optim.SGDConfig[float32]{LR: 0.1})

	// x_new = x_old - lr * grad = 2.0 - 0.1 * 1.0 = 1.9
	x := tensor.NewVector[float32](2)
	x.AddInPlace(sgd.Transform(tensor.NewVector[float32](1)))
	assert.InDelta(t, 1.9, float64(x.At(0, 0)), 1e-6)
}

func TestSGD_WithMomentum(t *testing.T) {
	sgd := optim.NewSGD(tensor.Zeros[float64](1, 1), optim.SGDConfig[float64]{LR: 0.1, Momentum: 0.9})
	grad := tensor.NewVector[float64](1)

	// velocity: 1, then 0.9*1 + 1 = 1.9
	assert.InDelta(t, -0.1, sgd.Transform(grad).At(0, 0), 1e-12)
	assert.InDelta(t, -0.19, sgd.Transform(grad).At(0, 0), 1e-12)
}

func TestSGD_DefaultLR(t *testing.T) {
	sgd := optim.NewSGD(tensor.Zeros[float32](1, 1), optim.SGDConfig[float32]{})
	assert.Equal(t, float32(0.01), sgd.GetLR())
	sgd.SetLR(0.2)
	assert.Equal(t, float32(0.2), sgd.GetLR())
}
