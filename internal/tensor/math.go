package tensor

import (
	"math"

	"github.com/chewxy/math32"
)

// Exp returns e**x. float32 values stay in single precision.
func Exp[T Float](x T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Exp(v))
	}
	return T(math.Exp(float64(x)))
}

// Sqrt returns the square root of x.
func Sqrt[T Float](x T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Sqrt(v))
	}
	return T(math.Sqrt(float64(x)))
}

// Tanh returns the hyperbolic tangent of x.
func Tanh[T Float](x T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Tanh(v))
	}
	return T(math.Tanh(float64(x)))
}

// Abs returns the absolute value of x.
func Abs[T Float](x T) T {
	if v, ok := any(x).(float32); ok {
		return T(math32.Abs(v))
	}
	return T(math.Abs(float64(x)))
}

// SmallestPositive returns the smallest positive value representable by T.
// Used as the division guard in optimizers.
func SmallestPositive[T Float]() T {
	if DataTypeOf[T]() == Float32 {
		var v float32 = math.SmallestNonzeroFloat32
		return T(v)
	}
	var v float64 = math.SmallestNonzeroFloat64
	return T(v)
}
