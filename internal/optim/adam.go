package optim

import (
	"sync"

	"github.com/born-ml/feedforward/internal/tensor"
	"github.com/born-ml/feedforward/internal/valueset"
)

// Adam implements the Adam (Adaptive Moment Estimation) optimizer.
//
// Update rule:
//
//	m_t   = beta1 * m_{t-1} + (1-beta1) * gradient   // First moment
//	v_t   = beta2 * v_{t-1} + (1-beta2) * gradient²  // Second moment
//	m_hat = m_t / (1 - beta1^t)                      // Bias correction
//	v_hat = v_t / (1 - beta2^t)                      // Bias correction
//	step  = -lr * m_hat / (sqrt(v_hat) + eps)
//
// The powers beta1^t and beta2^t are kept as running products starting at
// beta1 and beta2, so the first Transform is step t=1.
//
// An Adam instance belongs to one model. Transform is serialized by a mutex.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
//
// Example:
//
//	optimizer := optim.NewAdam(net.ZeroGradient(), optim.AdamConfig[float32]{
//	    LR: 0.01,
//	})
type Adam[T tensor.Float, G valueset.ValueSet[T, G]] struct {
	mu       sync.Mutex
	lr       T
	beta1    T
	beta2    T
	eps      T
	accBeta1 T // beta1^t for the next step
	accBeta2 T // beta2^t for the next step
	t        int
	momentum G
	velocity G
}

// AdamConfig holds configuration for Adam optimizer.
type AdamConfig[T tensor.Float] struct {
	LR    T    // Learning rate (default: 0.001)
	Betas [2]T // Momentum and velocity mixers (default: [0.9, 0.999]); a zero beta takes its default, so beta1 = 0 is not expressible
	Eps   T    // Denominator guard (default: smallest positive T)
}

// NewAdam creates a new Adam optimizer whose moment estimates are shaped like
// template and start at zero. Zero config fields take their defaults.
func NewAdam[T tensor.Float, G valueset.ValueSet[T, G]](template G, config AdamConfig[T]) *Adam[T, G] {
	if config.LR == 0 {
		config.LR = 0.001
	}
	if config.Betas[0] == 0 {
		config.Betas[0] = 0.9
	}
	if config.Betas[1] == 0 {
		config.Betas[1] = 0.999
	}
	if config.Eps == 0 {
		config.Eps = tensor.SmallestPositive[T]()
	}

	return &Adam[T, G]{
		lr:       config.LR,
		beta1:    config.Betas[0],
		beta2:    config.Betas[1],
		eps:      config.Eps,
		accBeta1: config.Betas[0],
		accBeta2: config.Betas[1],
		momentum: template.All(0),
		velocity: template.All(0),
	}
}

// Transform folds gradient into the moment estimates and returns the
// bias-corrected step.
func (a *Adam[T, G]) Transform(gradient G) G {
	a.mu.Lock()
	defer a.mu.Unlock()

	beta1, beta2 := a.beta1, a.beta2
	a.momentum = a.momentum.BinaryOperation(gradient, func(m, g T) T {
		return m*beta1 + g*(1-beta1)
	})
	a.velocity = a.velocity.BinaryOperation(gradient, func(v, g T) T {
		return v*beta2 + g*g*(1-beta2)
	})

	correction1 := 1 - a.accBeta1
	correction2 := 1 - a.accBeta2
	a.accBeta1 *= beta1
	a.accBeta2 *= beta2
	a.t++

	lr, eps := a.lr, a.eps
	return a.momentum.BinaryOperation(a.velocity, func(m, v T) T {
		return -lr * (m / correction1) / (tensor.Sqrt(v/correction2) + eps)
	})
}

// GetLR returns the current learning rate.
func (a *Adam[T, G]) GetLR() T {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lr
}

// SetLR updates the learning rate, e.g. from a schedule.
func (a *Adam[T, G]) SetLR(lr T) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lr = lr
}

// GetTimestep returns how many steps have been taken.
func (a *Adam[T, G]) GetTimestep() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.t
}

// Moments returns the current first and second moment estimates.
func (a *Adam[T, G]) Moments() (momentum, velocity G) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.momentum, a.velocity
}
