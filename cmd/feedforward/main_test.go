package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/feedforward/internal/nn"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"version"}, &out))
	assert.Contains(t, out.String(), version)
}

func TestRun_UnknownCommand(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"serve"}, &out))
	assert.Contains(t, out.String(), "Commands:")
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "run.yaml", `
topology:
  inputs: 2
  outputs: 1
  width: 8
  hidden: 2
activator: relu
leak: 0.01
optimizer:
  name: sgd
  lr: 0.1
  momentum: 0.9
epochs: 300
`)

	cfg := DefaultConfig()
	require.NoError(t, LoadConfig(path, &cfg))

	assert.Equal(t, nn.Topology{Inputs: 2, Outputs: 1, Width: 8, Hidden: 2}, cfg.Topology)
	assert.Equal(t, "relu", cfg.Activator)
	assert.Equal(t, OptimizerConfig{Name: "sgd", LR: 0.1, Momentum: 0.9}, cfg.Optimizer)
	assert.Equal(t, 300, cfg.Epochs)
	assert.Equal(t, int64(1), cfg.Seed, "keys missing from the file keep their defaults")
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Errors(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, LoadConfig(writeFile(t, "bad.yaml", "epochz: 3\n"), &cfg), "unknown key")
	assert.Error(t, LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), &cfg))

	require.NoError(t, LoadConfig(writeFile(t, "empty.yaml", ""), &cfg))
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"topology", func(c *Config) { c.Topology.Width = 0 }},
		{"xor shape", func(c *Config) { c.Topology.Inputs = 3 }},
		{"epochs", func(c *Config) { c.Epochs = 0 }},
		{"activator", func(c *Config) { c.Activator = "swish" }},
		{"optimizer", func(c *Config) { c.Optimizer.Name = "lbfgs" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParseTrainFlags_OverrideConfig(t *testing.T) {
	path := writeFile(t, "run.yaml", "epochs: 300\nactivator: tanh\nseed: 4\n")

	cfg, err := parseTrainFlags([]string{"-config", path, "-epochs", "20", "-width", "3"})
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Epochs, "flag wins over file")
	assert.Equal(t, 3, cfg.Topology.Width)
	assert.Equal(t, "tanh", cfg.Activator, "file wins over default")
	assert.Equal(t, int64(4), cfg.Seed)
}

func TestParseActivator(t *testing.T) {
	for _, name := range []string{"sigmoid", "ReLU", "elu", "tanh", "linear"} {
		a, err := ParseActivator(name, 0.1)
		require.NoError(t, err, name)
		assert.NotNil(t, a)
	}
	relu, err := ParseActivator("relu", 0.1)
	require.NoError(t, err)
	assert.Equal(t, nn.ReLU[float32]{LeakyGradient: 0.1}, relu)
}

func TestTrainThenEval(t *testing.T) {
	checkpoint := filepath.Join(t.TempDir(), "xor.safetensors")

	var out bytes.Buffer
	require.NoError(t, run([]string{"train", "-epochs", "50", "-workers", "2", "-o", checkpoint}, &out))
	assert.Contains(t, out.String(), "Final loss:")
	assert.Contains(t, out.String(), "Saved "+checkpoint)

	net, metadata, err := nn.LoadNetwork[float32](checkpoint)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Topology, net.Topology())
	assert.Equal(t, "sigmoid", metadata["activator"])
	assert.Equal(t, "50", metadata["epochs"])

	out.Reset()
	require.NoError(t, run([]string{"eval", "-model", checkpoint}, &out))
	assert.Contains(t, out.String(), "Loss:")
	assert.Contains(t, out.String(), "1 XOR 1")
}

func TestEval_RequiresModel(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"eval"}, &out))
}
