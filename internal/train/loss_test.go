package train

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/born-ml/feedforward/internal/tensor"
)

func TestSquaredError(t *testing.T) {
	loss, grad := SquaredError(tensor.NewVector[float64](1, 2), tensor.NewVector[float64](2, 4))
	assert.Equal(t, 5.0, loss)
	assert.Equal(t, []float64{2, 4}, grad.Data())

	loss32, grad32 := SquaredError(tensor.NewVector[float32](1), tensor.NewVector[float32](1))
	assert.Equal(t, float32(0), loss32)
	assert.Equal(t, []float32{0}, grad32.Data())
}

func TestAbsoluteError(t *testing.T) {
	loss, grad := AbsoluteError(tensor.NewVector[float64](1, 2), tensor.NewVector[float64](4, 6))
	assert.InDelta(t, 5, loss, 1e-12)
	assert.InDeltaSlice(t, []float64{0.6, 0.8}, grad.Data(), 1e-12)
}

func TestAbsoluteError_ExactPredictionIsNaN(t *testing.T) {
	loss, grad := AbsoluteError(tensor.NewVector[float64](1, 2), tensor.NewVector[float64](1, 2))
	assert.Equal(t, 0.0, loss)
	for _, v := range grad.Data() {
		assert.True(t, math.IsNaN(v))
	}
}
