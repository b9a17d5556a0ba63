package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/born-ml/feedforward/internal/nn"
	"github.com/born-ml/feedforward/internal/train"
)

func runEval(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	model := fs.String("model", "", "Checkpoint written by train")
	activator := fs.String("activator", "", "Overrides the activator stored in the checkpoint")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *model == "" {
		return errors.New("-model is required")
	}

	net, metadata, err := nn.LoadNetwork[float32](*model)
	if err != nil {
		return err
	}

	name := metadata["activator"]
	if *activator != "" {
		name = *activator
	}
	var leak float64
	if s, ok := metadata["leak"]; ok {
		if leak, err = strconv.ParseFloat(s, 64); err != nil {
			return errors.Wrap(err, "bad leak in checkpoint")
		}
	}
	act, err := ParseActivator(name, leak)
	if err != nil {
		return err
	}

	batch := train.XOR[float32]()
	loss, err := train.Loss(batch, net, act, train.SquaredError[float32])
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Network: %+v, activator: %s\n", net.Topology(), name)
	fmt.Fprintf(out, "Loss: %.6f\n", loss)
	printPredictions(out, net, act, batch)
	return nil
}
