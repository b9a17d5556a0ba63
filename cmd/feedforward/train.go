package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/pkg/errors"

	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/parallel"
	"github.com/born-ml/feedforward/internal/train"
)

// parseTrainFlags builds the run from defaults, then the -config file, then
// any flags given explicitly.
func parseTrainFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML run file")
	width := fs.Int("width", 0, "Hidden width")
	hidden := fs.Int("hidden", 0, "Number of hidden layers")
	activator := fs.String("activator", "", "sigmoid, relu, elu, tanh or linear")
	leak := fs.Float64("leak", 0, "ReLU gradient below zero")
	optimizer := fs.String("optimizer", "", "adam or sgd")
	lr := fs.Float64("lr", 0, "Learning rate")
	momentum := fs.Float64("momentum", 0, "SGD momentum")
	epochs := fs.Int("epochs", 0, "Number of training epochs")
	seed := fs.Int64("seed", 0, "Random seed for the initial parameters")
	target := fs.Float64("target", 0, "Stop once the mean loss is at or below this")
	workers := fs.Int("workers", 0, "Goroutines per batch (0 = sequential)")
	output := fs.String("o", "", "Checkpoint path")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		if err := LoadConfig(*configPath, &cfg); err != nil {
			return Config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Topology.Width = *width
		case "hidden":
			cfg.Topology.Hidden = *hidden
		case "activator":
			cfg.Activator = *activator
		case "leak":
			cfg.Leak = *leak
		case "optimizer":
			cfg.Optimizer.Name = *optimizer
		case "lr":
			cfg.Optimizer.LR = *lr
		case "momentum":
			cfg.Optimizer.Momentum = *momentum
		case "epochs":
			cfg.Epochs = *epochs
		case "seed":
			cfg.Seed = *seed
		case "target":
			cfg.TargetLoss = *target
		case "workers":
			cfg.Workers = *workers
		case "o":
			cfg.Output = *output
		}
	})

	return cfg, cfg.Validate()
}

func runTrain(args []string, out io.Writer) error {
	cfg, err := parseTrainFlags(args)
	if err != nil {
		return err
	}
	activator, err := ParseActivator(cfg.Activator, cfg.Leak)
	if err != nil {
		return err
	}

	net, err := nn.RandomNetwork[float32](cfg.Topology, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return errors.Wrap(err, "failed to create network")
	}
	optimizer := cfg.newOptimizer(net)
	batch := train.XOR[float32]()
	workers := parallel.Config{
		Enabled:      cfg.Workers > 0,
		NumWorkers:   cfg.Workers,
		MinChunkSize: 1,
	}

	fmt.Fprintf(out, "Network: %+v, %d parameters\n", cfg.Topology, cfg.Topology.NumParameters())
	fmt.Fprintf(out, "Optimizer: %s (lr=%g), activator: %s\n", cfg.Optimizer.Name, optimizer.GetLR(), cfg.Activator)

	var loss float32
	epoch := 0
	for epoch < cfg.Epochs {
		loss, err = train.TrainParallel(batch, net, activator, train.SquaredError[float32], optimizer, workers)
		if err != nil {
			return err
		}
		epoch++

		if cfg.LogEvery > 0 && epoch%cfg.LogEvery == 0 {
			fmt.Fprintf(out, "Epoch %5d/%d: Loss=%.6f\n", epoch, cfg.Epochs, loss)
		}
		if cfg.TargetLoss > 0 && float64(loss) <= cfg.TargetLoss {
			fmt.Fprintf(out, "Reached target loss %g after %d epochs\n", cfg.TargetLoss, epoch)
			break
		}
	}

	final, err := train.Loss(batch, net, activator, train.SquaredError[float32])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Final loss: %.6f\n", final)
	printPredictions(out, net, activator, batch)

	if cfg.Output == "" {
		return nil
	}
	metadata := map[string]string{
		"activator": cfg.Activator,
		"leak":      strconv.FormatFloat(cfg.Leak, 'g', -1, 64),
		"epochs":    strconv.Itoa(epoch),
		"loss":      strconv.FormatFloat(float64(final), 'g', -1, 32),
	}
	if err := nn.SaveNetwork(cfg.Output, net, metadata); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %s\n", cfg.Output)
	return nil
}

func printPredictions(out io.Writer, net *nn.Network[float32], activator nn.Activator[float32], batch []train.Sample[float32]) {
	for _, s := range batch {
		y := net.Evaluate(s.Input, activator)
		fmt.Fprintf(out, "  %v XOR %v = %.4f (want %v)\n",
			s.Input.At(0, 0), s.Input.At(1, 0), y.At(0, 0), s.Target.At(0, 0))
	}
}
