package tensor

import "fmt"

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
//
// Panics if the inner dimensions differ.
func (m *Matrix[T]) MatMul(other *Matrix[T]) *Matrix[T] {
	if m.cols != other.rows {
		panic(fmt.Sprintf("matmul: shape mismatch %v @ %v", m.Shape(), other.Shape()))
	}

	out := Zeros[T](m.rows, other.cols)
	matmul(out.data, m.data, other.data, m.rows, m.cols, other.cols)
	return out
}

// matmul performs naive matrix multiplication.
// C[i,j] = sum_k A[i,k] * B[k,j]
func matmul[T Float](c, a, b []T, m, k, n int) {
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			var sum T
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += a[i*k+kIdx] * b[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}
}

// Outer returns the outer product u·vᵀ of two column vectors.
func Outer[T Float](u, v *Matrix[T]) *Matrix[T] {
	if u.cols != 1 || v.cols != 1 {
		panic(fmt.Sprintf("outer: expected column vectors, got %v and %v", u.Shape(), v.Shape()))
	}
	return u.MatMul(v.Transpose())
}
