// Package main provides the feedforward CLI.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
)

const version = "v0.1.0"

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("feedforward: %v", err)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return nil
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(out, "feedforward %s\n", version)
		return nil
	case "train":
		return runTrain(args[1:], out)
	case "eval":
		return runEval(args[1:], out)
	case "help", "-h", "-help", "--help":
		usage(out)
		return nil
	default:
		usage(out)
		return errors.Errorf("unknown command %q", args[0])
	}
}

func usage(out io.Writer) {
	fmt.Fprintln(out, "feedforward - small trainable feedforward networks")
	fmt.Fprintf(out, "Version: %s\n\n", version)
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  version    Show version")
	fmt.Fprintln(out, "  train      Train a network on XOR (-config run.yaml, see -h)")
	fmt.Fprintln(out, "  eval       Load a checkpoint and print its XOR predictions")
}
