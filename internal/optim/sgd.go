package optim

import (
	"sync"

	"github.com/born-ml/feedforward/internal/tensor"
	"github.com/born-ml/feedforward/internal/valueset"
)

// SGD implements Stochastic Gradient Descent with optional momentum.
//
// Update rule without momentum:
//
//	step = -lr * gradient
//
// Update rule with momentum:
//
//	velocity = momentum * velocity + gradient
//	step     = -lr * velocity
//
// Example:
//
//	optimizer := optim.NewSGD(net.ZeroGradient(), optim.SGDConfig[float32]{
//	    LR:       0.01,
//	    Momentum: 0.9,
//	})
type SGD[T tensor.Float, G valueset.ValueSet[T, G]] struct {
	mu       sync.Mutex
	lr       T
	momentum T
	velocity G
}

// SGDConfig holds configuration for SGD optimizer.
type SGDConfig[T tensor.Float] struct {
	LR       T // Learning rate (default: 0.01)
	Momentum T // Momentum factor (default: 0.0, range: [0, 1))
}

// NewSGD creates a new SGD optimizer with its velocity shaped like template.
func NewSGD[T tensor.Float, G valueset.ValueSet[T, G]](template G, config SGDConfig[T]) *SGD[T, G] {
	if config.LR == 0 {
		config.LR = 0.01
	}
	return &SGD[T, G]{
		lr:       config.LR,
		momentum: config.Momentum,
		velocity: template.All(0),
	}
}

// Transform returns the step for gradient.
func (s *SGD[T, G]) Transform(gradient G) G {
	s.mu.Lock()
	defer s.mu.Unlock()

	lr := s.lr
	if s.momentum == 0 {
		return gradient.UnaryOperation(func(g T) T { return -lr * g })
	}

	momentum := s.momentum
	s.velocity = s.velocity.BinaryOperation(gradient, func(v, g T) T {
		return momentum*v + g
	})
	return s.velocity.UnaryOperation(func(v T) T { return -lr * v })
}

// GetLR returns the current learning rate.
func (s *SGD[T, G]) GetLR() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lr
}

// SetLR updates the learning rate.
func (s *SGD[T, G]) SetLR(lr T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lr = lr
}
