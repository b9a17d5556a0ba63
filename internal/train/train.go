// Package train drives the feedforward network: it scores batches of samples
// and performs one optimizer step per batch.
package train

import (
	"github.com/pkg/errors"

	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/optim"
	"github.com/born-ml/feedforward/internal/parallel"
	"github.com/born-ml/feedforward/internal/tensor"
	"github.com/born-ml/feedforward/internal/valueset"
)

// Sample is one input vector paired with its expected output.
type Sample[T tensor.Float] struct {
	Input  *tensor.Matrix[T]
	Target *tensor.Matrix[T]
}

// Evaluator is the part of a model Loss needs.
type Evaluator[T tensor.Float] interface {
	Evaluate(inputs *tensor.Matrix[T], activator nn.Activator[T]) *tensor.Matrix[T]
}

// shaped is implemented by models that declare their widths, such as
// *nn.Network. Batches for other models are not checked up front.
type shaped interface {
	InFeatures() int
	OutFeatures() int
}

// Train performs one optimization step on model using batch.
//
// Every sample is evaluated and backpropagated, the per-sample gradients are
// averaged, optimizer turns the mean into a step and the step is applied to
// model. Returns the mean loss over the batch as it was before the step.
//
// Returns ErrEmptyBatch for an empty batch and ErrShapeMismatch when a sample
// does not fit the model; the model is untouched in both cases.
//
// Example:
//
//	adam := optim.NewAdam(net.ZeroGradient(), optim.AdamConfig[float32]{})
//	for epoch := 0; epoch < 1000; epoch++ {
//	    loss, err := train.Train(batch, net, nn.Sigmoid[float32]{}, train.SquaredError[float32], adam)
//	}
func Train[T tensor.Float, C any, G valueset.ValueSet[T, G]](
	batch []Sample[T],
	model nn.Trainable[T, C, G],
	activator nn.Activator[T],
	loss LossFunc[T],
	optimizer optim.Optimizer[T, G],
) (T, error) {
	return trainWith(batch, model, activator, loss, optimizer, parallel.Config{})
}

// TrainParallel is Train with the per-sample forward and backward passes
// spread over goroutines according to cfg.
//
// Gradients are reduced in sample order, so the result is identical to Train.
// model must tolerate concurrent Evaluate, EvaluateTraining and Gradient
// calls, which every model in package nn does.
func TrainParallel[T tensor.Float, C any, G valueset.ValueSet[T, G]](
	batch []Sample[T],
	model nn.Trainable[T, C, G],
	activator nn.Activator[T],
	loss LossFunc[T],
	optimizer optim.Optimizer[T, G],
	cfg parallel.Config,
) (T, error) {
	return trainWith(batch, model, activator, loss, optimizer, cfg)
}

type sampleResult[T tensor.Float, G any] struct {
	loss     T
	gradient G
}

func trainWith[T tensor.Float, C any, G valueset.ValueSet[T, G]](
	batch []Sample[T],
	model nn.Trainable[T, C, G],
	activator nn.Activator[T],
	loss LossFunc[T],
	optimizer optim.Optimizer[T, G],
	cfg parallel.Config,
) (T, error) {
	if err := validateBatch(batch, model); err != nil {
		return 0, err
	}

	results := parallel.Map(len(batch), func(i int) sampleResult[T, G] {
		sample := batch[i]
		predicted, record := model.EvaluateTraining(sample.Input, activator)
		instanceLoss, lossGradient := loss(sample.Target, predicted)
		gradient, _ := model.Gradient(record, lossGradient, activator)
		return sampleResult[T, G]{loss: instanceLoss, gradient: gradient}
	}, cfg)

	var total T
	gradients := make([]G, len(results))
	for i, r := range results {
		total += r.loss
		gradients[i] = r.gradient
	}

	step := optimizer.Transform(valueset.Mean[T](gradients))
	model.ApplyNudge(step)

	return total / T(len(batch)), nil
}

// Loss returns the mean loss of model over batch without training.
//
// Returns ErrEmptyBatch for an empty batch and ErrShapeMismatch when a sample
// does not fit the model.
func Loss[T tensor.Float](
	batch []Sample[T],
	model Evaluator[T],
	activator nn.Activator[T],
	loss LossFunc[T],
) (T, error) {
	if err := validateBatch(batch, model); err != nil {
		return 0, err
	}

	var total T
	for _, sample := range batch {
		instanceLoss, _ := loss(sample.Target, model.Evaluate(sample.Input, activator))
		total += instanceLoss
	}
	return total / T(len(batch)), nil
}

func validateBatch[T tensor.Float](batch []Sample[T], model any) error {
	if len(batch) == 0 {
		return ErrEmptyBatch
	}

	s, ok := model.(shaped)
	for i, sample := range batch {
		if sample.Input == nil || sample.Target == nil {
			return errors.Wrapf(ErrShapeMismatch, "sample %d: missing input or target", i)
		}
		if sample.Input.Cols() != 1 || sample.Target.Cols() != 1 {
			return errors.Wrapf(ErrShapeMismatch, "sample %d: input %v and target %v must be column vectors",
				i, sample.Input.Shape(), sample.Target.Shape())
		}
		if !ok {
			continue
		}
		if sample.Input.Rows() != s.InFeatures() {
			return errors.Wrapf(ErrShapeMismatch, "sample %d: input has %d values, model takes %d",
				i, sample.Input.Rows(), s.InFeatures())
		}
		if sample.Target.Rows() != s.OutFeatures() {
			return errors.Wrapf(ErrShapeMismatch, "sample %d: target has %d values, model produces %d",
				i, sample.Target.Rows(), s.OutFeatures())
		}
	}
	return nil
}

// XOR returns the four exclusive-or samples: (0,0)→0, (1,0)→1, (0,1)→1,
// (1,1)→0.
func XOR[T tensor.Float]() []Sample[T] {
	return []Sample[T]{
		{Input: tensor.NewVector[T](0, 0), Target: tensor.NewVector[T](0)},
		{Input: tensor.NewVector[T](1, 0), Target: tensor.NewVector[T](1)},
		{Input: tensor.NewVector[T](0, 1), Target: tensor.NewVector[T](1)},
		{Input: tensor.NewVector[T](1, 1), Target: tensor.NewVector[T](0)},
	}
}
