package nn

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/born-ml/feedforward/internal/serialization"
	"github.com/born-ml/feedforward/internal/tensor"
)

// Metadata keys reserved for the network topology in a checkpoint.
const (
	MetaInputs  = "topology.inputs"
	MetaOutputs = "topology.outputs"
	MetaWidth   = "topology.width"
	MetaHidden  = "topology.hidden"
)

// SaveNetwork writes the network parameters to a SafeTensors file at path.
//
// The topology is stored in the header metadata alongside the caller's
// entries, so LoadNetwork can rebuild the network without knowing its shape.
//
// Example:
//
//	err := nn.SaveNetwork("xor.safetensors", net, map[string]string{"epochs": "1000"})
func SaveNetwork[T tensor.Float](path string, net *Network[T], metadata map[string]string) error {
	if err := serialization.SaveSafeTensors(path, net.StateDict(), networkMetadata(net, metadata)); err != nil {
		return errors.Wrap(err, "failed to save network")
	}
	return nil
}

// WriteNetwork is SaveNetwork for an arbitrary writer.
func WriteNetwork[T tensor.Float](w io.Writer, net *Network[T], metadata map[string]string) error {
	return serialization.WriteSafeTensors(w, net.StateDict(), networkMetadata(net, metadata))
}

// LoadNetwork reads a network written by SaveNetwork. The returned metadata
// excludes the topology entries.
func LoadNetwork[T tensor.Float](path string) (*Network[T], map[string]string, error) {
	stateDict, metadata, err := serialization.LoadSafeTensors[T](path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load network")
	}
	return networkFromState(stateDict, metadata)
}

// ReadNetwork is LoadNetwork for an arbitrary reader.
func ReadNetwork[T tensor.Float](r io.Reader) (*Network[T], map[string]string, error) {
	stateDict, metadata, err := serialization.ReadSafeTensors[T](r)
	if err != nil {
		return nil, nil, err
	}
	return networkFromState(stateDict, metadata)
}

func networkMetadata[T tensor.Float](net *Network[T], extra map[string]string) map[string]string {
	metadata := make(map[string]string, len(extra)+4)
	for k, v := range extra {
		metadata[k] = v
	}
	t := net.Topology()
	metadata[MetaInputs] = strconv.Itoa(t.Inputs)
	metadata[MetaOutputs] = strconv.Itoa(t.Outputs)
	metadata[MetaWidth] = strconv.Itoa(t.Width)
	metadata[MetaHidden] = strconv.Itoa(t.Hidden)
	return metadata
}

func networkFromState[T tensor.Float](
	stateDict map[string]*tensor.Matrix[T],
	metadata map[string]string,
) (*Network[T], map[string]string, error) {
	var topology Topology
	fields := []struct {
		key string
		dst *int
	}{
		{MetaInputs, &topology.Inputs},
		{MetaOutputs, &topology.Outputs},
		{MetaWidth, &topology.Width},
		{MetaHidden, &topology.Hidden},
	}

	rest := make(map[string]string, len(metadata))
	for k, v := range metadata {
		rest[k] = v
	}
	for _, f := range fields {
		v, ok := metadata[f.key]
		if !ok {
			return nil, nil, errors.Wrapf(ErrInvalidTopology, "checkpoint has no %s", f.key)
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, nil, errors.Wrapf(ErrInvalidTopology, "%s: %v", f.key, err)
		}
		*f.dst = n
		delete(rest, f.key)
	}
	if err := topology.Validate(); err != nil {
		return nil, nil, err
	}

	// The stored tensors bound every allocation below, not the metadata.
	numLayers := len(stateDict) / 2
	if len(stateDict)%2 != 0 || numLayers-2 != topology.Hidden {
		return nil, nil, errors.Wrapf(ErrInvalidTopology, "%d tensors do not fit %d hidden layers",
			len(stateDict), topology.Hidden)
	}

	layers := make([]*Layer[T], numLayers)
	for i := range layers {
		in, out := topology.LayerShape(i)
		weight, err := checkpointTensor(stateDict, fmt.Sprintf("%d.weight", i), tensor.Shape{Rows: out, Cols: in})
		if err != nil {
			return nil, nil, err
		}
		bias, err := checkpointTensor(stateDict, fmt.Sprintf("%d.bias", i), tensor.Shape{Rows: out, Cols: 1})
		if err != nil {
			return nil, nil, err
		}
		if layers[i], err = NewLayer(weight, bias); err != nil {
			return nil, nil, errors.Wrapf(err, "layer %d", i)
		}
	}

	net, err := NewNetwork(layers...)
	if err != nil {
		return nil, nil, err
	}
	return net, rest, nil
}

func checkpointTensor[T tensor.Float](
	stateDict map[string]*tensor.Matrix[T],
	name string,
	shape tensor.Shape,
) (*tensor.Matrix[T], error) {
	m, ok := stateDict[name]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidTopology, "checkpoint has no %s", name)
	}
	if !m.Shape().Equal(shape) {
		return nil, errors.Wrapf(ErrShapeMismatch, "%s: expected %v, got %v", name, shape, m.Shape())
	}
	return m, nil
}
