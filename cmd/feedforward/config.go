package main

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/optim"
)

// Config is a training run. It is read from a YAML file and then
// overridden by command-line flags.
//
//	topology: {inputs: 2, outputs: 1, width: 5, hidden: 1}
//	activator: sigmoid
//	optimizer: {name: adam, lr: 0.01}
//	epochs: 5000
//	target_loss: 0.01
//	output: xor.safetensors
type Config struct {
	Topology   nn.Topology     `yaml:"topology"`
	Activator  string          `yaml:"activator"` // sigmoid, relu, elu, tanh or linear
	Leak       float64         `yaml:"leak"`      // ReLU gradient below zero
	Optimizer  OptimizerConfig `yaml:"optimizer"`
	Epochs     int             `yaml:"epochs"`
	Seed       int64           `yaml:"seed"`
	TargetLoss float64         `yaml:"target_loss"` // Stop once the mean loss is at or below this; 0 disables
	LogEvery   int             `yaml:"log_every"`
	Workers    int             `yaml:"workers"` // 0 trains sequentially
	Output     string          `yaml:"output"`  // Checkpoint path; empty skips saving
}

// OptimizerConfig selects and tunes the optimizer.
type OptimizerConfig struct {
	Name     string  `yaml:"name"` // adam or sgd
	LR       float64 `yaml:"lr"`
	Beta1    float64 `yaml:"beta1"`
	Beta2    float64 `yaml:"beta2"`
	Momentum float64 `yaml:"momentum"`
}

// DefaultConfig returns the XOR run.
func DefaultConfig() Config {
	return Config{
		Topology:  nn.Topology{Inputs: 2, Outputs: 1, Width: 5, Hidden: 1},
		Activator: "sigmoid",
		Optimizer: OptimizerConfig{Name: "adam", LR: 0.01},
		Epochs:    5000,
		Seed:      1,
		LogEvery:  500,
	}
}

// LoadConfig reads a YAML file over cfg. Keys missing from the file keep
// their current values; unknown keys are rejected.
func LoadConfig(path string, cfg *Config) error {
	//nolint:gosec // G304: the path is chosen by the user.
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrapf(err, "failed to parse %s", path)
	}
	return nil
}

// Validate checks the run before any work starts.
func (c Config) Validate() error {
	if err := c.Topology.Validate(); err != nil {
		return err
	}
	if c.Topology.Inputs != 2 || c.Topology.Outputs != 1 {
		return errors.Errorf("the XOR run needs 2 inputs and 1 output, got %d and %d",
			c.Topology.Inputs, c.Topology.Outputs)
	}
	if c.Epochs <= 0 {
		return errors.Errorf("epochs must be > 0, got %d", c.Epochs)
	}
	if _, err := ParseActivator(c.Activator, c.Leak); err != nil {
		return err
	}
	switch strings.ToLower(c.Optimizer.Name) {
	case "adam", "sgd":
	default:
		return errors.Errorf("unknown optimizer %q", c.Optimizer.Name)
	}
	return nil
}

// ParseActivator maps a name to an activator.
func ParseActivator(name string, leak float64) (nn.Activator[float32], error) {
	switch strings.ToLower(name) {
	case "sigmoid":
		return nn.Sigmoid[float32]{}, nil
	case "relu":
		return nn.ReLU[float32]{LeakyGradient: float32(leak)}, nil
	case "elu":
		return nn.ELU[float32]{}, nil
	case "tanh":
		return nn.Tanh[float32]{}, nil
	case "linear":
		return nn.Linear[float32]{}, nil
	default:
		return nil, errors.Errorf("unknown activator %q", name)
	}
}

// newOptimizer builds the configured optimizer for net.
func (c Config) newOptimizer(net *nn.Network[float32]) optim.Optimizer[float32, nn.NetworkGradient[float32]] {
	o := c.Optimizer
	if strings.ToLower(o.Name) == "sgd" {
		return optim.NewSGD(net.ZeroGradient(), optim.SGDConfig[float32]{
			LR:       float32(o.LR),
			Momentum: float32(o.Momentum),
		})
	}
	return optim.NewAdam(net.ZeroGradient(), optim.AdamConfig[float32]{
		LR:    float32(o.LR),
		Betas: [2]float32{float32(o.Beta1), float32(o.Beta2)},
	})
}
