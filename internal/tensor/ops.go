package tensor

// Map applies f to every element and returns a new matrix of the same shape.
func (m *Matrix[T]) Map(f func(T) T) *Matrix[T] {
	out := &Matrix[T]{rows: m.rows, cols: m.cols, data: make([]T, len(m.data))}
	for i, v := range m.data {
		out.data[i] = f(v)
	}
	return out
}

// Zip applies f to corresponding elements of m and other.
//
// Panics if the shapes differ.
func (m *Matrix[T]) Zip(other *Matrix[T], f func(a, b T) T) *Matrix[T] {
	m.mustMatch("Zip", other)
	out := &Matrix[T]{rows: m.rows, cols: m.cols, data: make([]T, len(m.data))}
	for i, v := range m.data {
		out.data[i] = f(v, other.data[i])
	}
	return out
}

// Add returns m + other.
func (m *Matrix[T]) Add(other *Matrix[T]) *Matrix[T] {
	m.mustMatch("Add", other)
	return m.Zip(other, func(a, b T) T { return a + b })
}

// Sub returns m - other.
func (m *Matrix[T]) Sub(other *Matrix[T]) *Matrix[T] {
	m.mustMatch("Sub", other)
	return m.Zip(other, func(a, b T) T { return a - b })
}

// Scale returns m * s.
func (m *Matrix[T]) Scale(s T) *Matrix[T] {
	return m.Map(func(v T) T { return v * s })
}

// MulElem returns the elementwise (Hadamard) product.
func (m *Matrix[T]) MulElem(other *Matrix[T]) *Matrix[T] {
	m.mustMatch("MulElem", other)
	return m.Zip(other, func(a, b T) T { return a * b })
}

// AddInPlace adds other into m.
func (m *Matrix[T]) AddInPlace(other *Matrix[T]) {
	m.mustMatch("AddInPlace", other)
	for i, v := range other.data {
		m.data[i] += v
	}
}

// Transpose returns the transposed matrix.
func (m *Matrix[T]) Transpose() *Matrix[T] {
	out := &Matrix[T]{rows: m.cols, cols: m.rows, data: make([]T, len(m.data))}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// Sum returns the sum of all elements.
func (m *Matrix[T]) Sum() T {
	var sum T
	for _, v := range m.data {
		sum += v
	}
	return sum
}

// Dot returns the sum of elementwise products of two same-shaped matrices.
func (m *Matrix[T]) Dot(other *Matrix[T]) T {
	m.mustMatch("Dot", other)
	var sum T
	for i, v := range m.data {
		sum += v * other.data[i]
	}
	return sum
}

// NormSquared returns the squared Euclidean (Frobenius) norm.
func (m *Matrix[T]) NormSquared() T {
	return m.Dot(m)
}

// Norm returns the Euclidean (Frobenius) norm.
func (m *Matrix[T]) Norm() T {
	return Sqrt(m.NormSquared())
}

// Normalize returns m divided by its Euclidean norm.
//
// A zero matrix yields NaN entries; callers that can produce one must check.
func (m *Matrix[T]) Normalize() *Matrix[T] {
	n := m.Norm()
	return m.Map(func(v T) T { return v / n })
}

// Equal reports whether both matrices have the same shape and elements.
func (m *Matrix[T]) Equal(other *Matrix[T]) bool {
	if !m.Shape().Equal(other.Shape()) {
		return false
	}
	for i, v := range m.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// EqualApprox reports whether both matrices have the same shape and every
// pair of elements differs by at most tol.
func (m *Matrix[T]) EqualApprox(other *Matrix[T], tol T) bool {
	if !m.Shape().Equal(other.Shape()) {
		return false
	}
	for i, v := range m.data {
		if Abs(v-other.data[i]) > tol {
			return false
		}
	}
	return true
}
