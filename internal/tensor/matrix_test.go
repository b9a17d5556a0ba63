package tensor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// toDense copies m into a gonum matrix for cross-checking.
func toDense(m *Matrix[float64]) *mat.Dense {
	data := make([]float64, m.Len())
	copy(data, m.Data())
	return mat.NewDense(m.Rows(), m.Cols(), data)
}

func assertMatchesDense(t *testing.T, want mat.Matrix, got *Matrix[float64]) {
	t.Helper()
	r, c := want.Dims()
	require.Equal(t, Shape{Rows: r, Cols: c}, got.Shape())
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.InDelta(t, want.At(i, j), got.At(i, j), 1e-12, "element (%d, %d)", i, j)
		}
	}
}

func TestMatMul_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := RandUniform[float64](4, 3, -1, 1, rng)
	b := RandUniform[float64](3, 5, -1, 1, rng)

	var want mat.Dense
	want.Mul(toDense(a), toDense(b))

	assertMatchesDense(t, &want, a.MatMul(b))
}

func TestMatMul_ShapeMismatchPanics(t *testing.T) {
	a := Zeros[float32](2, 3)
	b := Zeros[float32](2, 3)
	assert.Panics(t, func() { a.MatMul(b) })
}

func TestTranspose_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := RandUniform[float64](2, 5, -1, 1, rng)

	assertMatchesDense(t, toDense(a).T(), a.Transpose())
}

func TestAdd_MatchesGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := RandUniform[float64](8, 8, -1, 1, rng)
	b := RandUniform[float64](8, 8, -1, 1, rng)

	var want mat.Dense
	want.Add(toDense(a), toDense(b))

	assertMatchesDense(t, &want, a.Add(b))
}

func TestOuter(t *testing.T) {
	u := NewVector[float32](1, 2)
	v := NewVector[float32](3, 4, 5)

	got := Outer(u, v)

	require.Equal(t, Shape{Rows: 2, Cols: 3}, got.Shape())
	assert.Equal(t, []float32{3, 4, 5, 6, 8, 10}, got.Data())
}

func TestNorms(t *testing.T) {
	v := NewVector[float64](3, 4)

	assert.InDelta(t, 25.0, v.NormSquared(), 1e-12)
	assert.InDelta(t, 5.0, v.Norm(), 1e-12)

	n := v.Normalize()
	assert.InDelta(t, 0.6, n.At(0, 0), 1e-12)
	assert.InDelta(t, 0.8, n.At(1, 0), 1e-12)
	assert.InDelta(t, 1.0, n.Norm(), 1e-12)
}

func TestSumDotScale(t *testing.T) {
	a := MustFromSlice([]float32{1, 2, 3, 4}, 2, 2)
	b := MustFromSlice([]float32{5, 6, 7, 8}, 2, 2)

	assert.Equal(t, float32(10), a.Sum())
	assert.Equal(t, float32(70), a.Dot(b))
	assert.Equal(t, []float32{2, 4, 6, 8}, a.Scale(2).Data())
	assert.Equal(t, []float32{5, 12, 21, 32}, a.MulElem(b).Data())
	assert.Equal(t, []float32{-4, -4, -4, -4}, a.Sub(b).Data())
}

func TestAddInPlace(t *testing.T) {
	a := MustFromSlice([]float64{1, 2}, 2, 1)
	a.AddInPlace(NewVector[float64](0.5, -2))

	assert.Equal(t, []float64{1.5, 0}, a.Data())
}

func TestValueSetMethods(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a := RandUniform[float64](8, 8, -1, 1, rng)
	b := RandUniform[float64](8, 8, -1, 1, rng)

	assert.True(t, a.Add(b).Equal(a.BinaryOperation(b, func(p, q float64) float64 { return p + q })))
	assert.True(t, a.Equal(a.UnaryOperation(func(v float64) float64 { return v })))
	assert.True(t, a.Equal(a.All(0).BinaryOperation(a, func(p, q float64) float64 { return p + q })))

	var sum float64
	a.UnaryInspection(func(v float64) { sum += v })
	assert.InDelta(t, a.Sum(), sum, 1e-12)

	var dot float64
	a.BinaryInspection(b, func(p, q float64) { dot += p * q })
	assert.InDelta(t, a.Dot(b), dot, 1e-12)
}

func TestAtSetClone(t *testing.T) {
	m := Zeros[float32](2, 2)
	m.Set(1, 0, 7)
	c := m.Clone()
	c.Set(1, 0, 9)

	assert.Equal(t, float32(7), m.At(1, 0))
	assert.Equal(t, float32(9), c.At(1, 0))
	assert.Panics(t, func() { m.At(2, 0) })
}
