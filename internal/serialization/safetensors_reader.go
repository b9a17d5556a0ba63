package serialization

import (
	"encoding/binary"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/born-ml/feedforward/internal/tensor"
)

// LoadSafeTensors reads a state dictionary and its metadata from path.
func LoadSafeTensors[T tensor.Float](path string) (map[string]*tensor.Matrix[T], map[string]string, error) {
	//nolint:gosec // G304: the path is chosen by the caller.
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open file")
	}
	defer func() {
		_ = file.Close()
	}()
	return ReadSafeTensors[T](file)
}

// ReadSafeTensors decodes a state dictionary and its metadata from r.
//
// F32 and F64 tensors of rank 1 or 2 are accepted; rank 1 tensors become
// column vectors. Values are converted to T.
func ReadSafeTensors[T tensor.Float](r io.Reader) (map[string]*tensor.Matrix[T], map[string]string, error) {
	var headerLen uint64
	if err := binary.Read(r, binary.LittleEndian, &headerLen); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header size")
	}
	if headerLen > MaxHeaderSize {
		return nil, nil, errors.Wrapf(ErrHeaderTooLarge, "%d bytes", headerLen)
	}

	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header")
	}

	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(headerBytes, &raw); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse header")
	}

	var metadata map[string]string
	if m, ok := raw[MetadataKey]; ok {
		if err := json.Unmarshal(m, &metadata); err != nil {
			return nil, nil, errors.Wrap(err, "failed to parse metadata")
		}
		delete(raw, MetadataKey)
	}

	headers := make(map[string]SafeTensorHeader, len(raw))
	metas := make([]TensorMeta, 0, len(raw))
	for name, msg := range raw {
		if err := ValidateTensorName(name); err != nil {
			return nil, nil, err
		}
		var h SafeTensorHeader
		if err := json.Unmarshal(msg, &h); err != nil {
			return nil, nil, errors.Wrapf(err, "failed to parse header entry %s", name)
		}
		headers[name] = h
		metas = append(metas, TensorMeta{
			Name:   name,
			Offset: h.DataOffsets[0],
			Size:   h.DataOffsets[1] - h.DataOffsets[0],
		})
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read tensor data")
	}
	if err := ValidateTensorOffsets(metas, int64(len(data))); err != nil {
		return nil, nil, err
	}

	stateDict := make(map[string]*tensor.Matrix[T], len(headers))
	for name, h := range headers {
		dtype, err := dtypeFromSafeTensors(h.DType)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "tensor %s", name)
		}
		rows, cols, err := matrixShape(h.Shape)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "tensor %s", name)
		}
		m, err := tensor.FromBytes[T](data[h.DataOffsets[0]:h.DataOffsets[1]], dtype, rows, cols)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "tensor %s", name)
		}
		stateDict[name] = m
	}
	return stateDict, metadata, nil
}

func matrixShape(shape []int64) (rows, cols int, err error) {
	switch len(shape) {
	case 1:
		rows, cols = int(shape[0]), 1
	case 2:
		rows, cols = int(shape[0]), int(shape[1])
	default:
		return 0, 0, errors.Wrapf(ErrUnsupportedShape, "rank %d", len(shape))
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, errors.Wrapf(ErrUnsupportedShape, "%v", shape)
	}
	return rows, cols, nil
}
