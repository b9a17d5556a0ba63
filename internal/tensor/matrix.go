package tensor

import "fmt"

// Matrix is a dense, row-major matrix of scalars.
//
// Its dimensions are fixed at construction and never change. Column vectors
// are represented as n×1 matrices (see NewVector).
//
// Example:
//
//	w := tensor.Zeros[float32](3, 2)
//	x := tensor.NewVector[float32](1, 2)
//	y := w.MatMul(x) // [3×1]
type Matrix[T Float] struct {
	rows int
	cols int
	data []T
}

// Rows returns the number of rows.
func (m *Matrix[T]) Rows() int {
	return m.rows
}

// Cols returns the number of columns.
func (m *Matrix[T]) Cols() int {
	return m.cols
}

// Shape returns the matrix dimensions.
func (m *Matrix[T]) Shape() Shape {
	return Shape{Rows: m.rows, Cols: m.cols}
}

// Len returns the number of elements.
func (m *Matrix[T]) Len() int {
	return len(m.data)
}

// Data returns the backing row-major slice. Writes are visible to the matrix.
func (m *Matrix[T]) Data() []T {
	return m.data
}

// DType returns the runtime data type.
func (m *Matrix[T]) DType() DataType {
	return DataTypeOf[T]()
}

// At returns the element at row i, column j.
func (m *Matrix[T]) At(i, j int) T {
	m.checkIndex(i, j)
	return m.data[i*m.cols+j]
}

// Set writes v at row i, column j.
func (m *Matrix[T]) Set(i, j int, v T) {
	m.checkIndex(i, j)
	m.data[i*m.cols+j] = v
}

// Clone returns a deep copy.
func (m *Matrix[T]) Clone() *Matrix[T] {
	data := make([]T, len(m.data))
	copy(data, m.data)
	return &Matrix[T]{rows: m.rows, cols: m.cols, data: data}
}

// String formats the matrix row by row.
func (m *Matrix[T]) String() string {
	s := fmt.Sprintf("Matrix%v[", m.Shape())
	for i := 0; i < m.rows; i++ {
		if i > 0 {
			s += "; "
		}
		s += fmt.Sprint(m.data[i*m.cols : (i+1)*m.cols])
	}
	return s + "]"
}

func (m *Matrix[T]) checkIndex(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("matrix: index (%d, %d) out of bounds for %v", i, j, m.Shape()))
	}
}

func (m *Matrix[T]) mustMatch(op string, other *Matrix[T]) {
	if m.rows != other.rows || m.cols != other.cols {
		panic(fmt.Sprintf("%s: shape mismatch %v vs %v", op, m.Shape(), other.Shape()))
	}
}

// UnaryOperation applies f to every element and returns a new matrix.
func (m *Matrix[T]) UnaryOperation(f func(T) T) *Matrix[T] {
	return m.Map(f)
}

// BinaryOperation applies f to corresponding elements of m and other.
func (m *Matrix[T]) BinaryOperation(other *Matrix[T], f func(a, b T) T) *Matrix[T] {
	return m.Zip(other, f)
}

// UnaryInspection calls f for every element in row-major order.
func (m *Matrix[T]) UnaryInspection(f func(T)) {
	for _, v := range m.data {
		f(v)
	}
}

// BinaryInspection calls f for every pair of corresponding elements.
func (m *Matrix[T]) BinaryInspection(other *Matrix[T], f func(a, b T)) {
	m.mustMatch("BinaryInspection", other)
	for i, v := range m.data {
		f(v, other.data[i])
	}
}

// All returns a matrix shaped like m with every element set to v.
func (m *Matrix[T]) All(v T) *Matrix[T] {
	return Full[T](m.rows, m.cols, v)
}
