// Package serialization reads and writes matrix state dictionaries in the
// SafeTensors format.
//
// Layout:
//
//	[8 bytes: header_size (uint64 LE)]
//	[header_size bytes: JSON header]
//	[tensor data: raw little-endian bytes]
package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/born-ml/feedforward/internal/tensor"
)

// MetadataKey is the reserved header entry holding free-form string metadata.
const MetadataKey = "__metadata__"

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// SaveSafeTensors writes stateDict and metadata to a new file at path.
func SaveSafeTensors[T tensor.Float](path string, stateDict map[string]*tensor.Matrix[T], metadata map[string]string) error {
	//nolint:gosec // G304: the path is chosen by the caller.
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}

	buf := bufio.NewWriter(file)
	if err := WriteSafeTensors(buf, stateDict, metadata); err != nil {
		_ = file.Close()
		return err
	}
	if err := buf.Flush(); err != nil {
		_ = file.Close()
		return errors.Wrap(err, "failed to flush")
	}
	return file.Close()
}

// WriteSafeTensors encodes stateDict and metadata to w.
//
// Tensors are written in alphabetical order by name. Every matrix is stored
// with shape [rows, cols].
func WriteSafeTensors[T tensor.Float](w io.Writer, stateDict map[string]*tensor.Matrix[T], metadata map[string]string) error {
	names := make([]string, 0, len(stateDict))
	for name := range stateDict {
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		if name == MetadataKey {
			return &ValidationError{Kind: ErrInvalidTensorName, Tensor: name, Details: "reserved"}
		}
		names = append(names, name)
	}
	sort.Strings(names)

	header := make(map[string]any, len(names)+1)
	if len(metadata) > 0 {
		header[MetadataKey] = metadata
	}

	dtype := dtypeToSafeTensors(tensor.DataTypeOf[T]())
	var offset int64
	for _, name := range names {
		m := stateDict[name]
		size := int64(m.Len() * m.DType().Size())
		header[name] = SafeTensorHeader{
			DType:       dtype,
			Shape:       []int64{int64(m.Rows()), int64(m.Cols())},
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return errors.Wrap(err, "failed to write header size")
	}
	if _, err := w.Write(headerJSON); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for _, name := range names {
		if _, err := w.Write(stateDict[name].Bytes()); err != nil {
			return errors.Wrapf(err, "failed to write tensor %s", name)
		}
	}
	return nil
}

func dtypeToSafeTensors(dt tensor.DataType) string {
	switch dt {
	case tensor.Float64:
		return "F64"
	default:
		return "F32"
	}
}

func dtypeFromSafeTensors(s string) (tensor.DataType, error) {
	switch s {
	case "F32":
		return tensor.Float32, nil
	case "F64":
		return tensor.Float64, nil
	default:
		return 0, errors.Wrap(ErrUnsupportedDType, s)
	}
}
