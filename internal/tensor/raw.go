package tensor

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// Bytes returns the elements encoded as little-endian IEEE 754 values.
func (m *Matrix[T]) Bytes() []byte {
	size := m.DType().Size()
	out := make([]byte, len(m.data)*size)
	for i, v := range m.data {
		if size == 4 {
			binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(float32(v)))
		} else {
			binary.LittleEndian.PutUint64(out[i*8:], math.Float64bits(float64(v)))
		}
	}
	return out
}

// FromBytes decodes little-endian IEEE 754 data of the given dtype into a
// rows×cols matrix of T. Float64 data decoded into float32 loses precision.
func FromBytes[T Float](data []byte, dtype DataType, rows, cols int) (*Matrix[T], error) {
	shape := Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if dtype != Float32 && dtype != Float64 {
		return nil, errors.Errorf("unsupported dtype %v", dtype)
	}
	size := dtype.Size()
	if len(data) != shape.NumElements()*size {
		return nil, errors.Wrapf(ErrDataSize, "shape %v as %v requires %d bytes, but got %d",
			shape, dtype, shape.NumElements()*size, len(data))
	}

	m := Zeros[T](rows, cols)
	for i := range m.data {
		if size == 4 {
			m.data[i] = T(math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:])))
		} else {
			m.data[i] = T(math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:])))
		}
	}
	return m, nil
}
