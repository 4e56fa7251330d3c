package model

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Model wraps an onnxruntime session around the exported review classifier.
// The network takes one fixed-length index sequence and emits a single
// sigmoid probability. Loaded once at startup; Predict is serialized with a
// mutex since the service handles one inference at a time.
type Model struct {
	mu         sync.Mutex
	session    *ort.DynamicAdvancedSession
	inputName  string
	inputType  ort.TensorElementDataType
	outputName string
	seqLength  int
}

// Load initializes the onnxruntime environment and opens the model at path.
// libPath optionally points at the onnxruntime shared library; when empty
// the platform default name is used and resolved from the loader path.
func Load(path string, libPath string, seqLength int) (*Model, error) {
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	} else if runtime.GOOS == "darwin" {
		ort.SetSharedLibraryPath("libonnxruntime.dylib")
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("[Model] failed to initialize onnxruntime: %w", err)
	}

	inputs, outputs, err := ort.GetInputOutputInfo(path)
	if err != nil {
		return nil, fmt.Errorf("[Model] failed to inspect %s: %w", path, err)
	}
	if len(inputs) != 1 || len(outputs) != 1 {
		return nil, fmt.Errorf("[Model] expected 1 input and 1 output, got %d/%d",
			len(inputs), len(outputs))
	}

	session, err := ort.NewDynamicAdvancedSession(path,
		[]string{inputs[0].Name}, []string{outputs[0].Name}, nil)
	if err != nil {
		return nil, fmt.Errorf("[Model] failed to open session for %s: %w", path, err)
	}

	slog.Info("[Model] Loaded ONNX model",
		slog.String("path", path),
		slog.String("input", inputs[0].Name),
		slog.String("output", outputs[0].Name),
		slog.Int("sequence_length", seqLength))

	return &Model{
		session:    session,
		inputName:  inputs[0].Name,
		inputType:  inputs[0].DataType,
		outputName: outputs[0].Name,
		seqLength:  seqLength,
	}, nil
}

// Predict runs one inference over a padded index sequence and returns the
// model's positive-class probability.
func (m *Model) Predict(seq []int32) (float64, error) {
	if len(seq) != m.seqLength {
		return 0, fmt.Errorf("[Model] sequence length %d, want %d", len(seq), m.seqLength)
	}

	input, err := m.newInputTensor(seq)
	if err != nil {
		return 0, err
	}
	defer input.Destroy()

	m.mu.Lock()
	outputs := []ort.Value{nil}
	err = m.session.Run([]ort.Value{input}, outputs)
	m.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("[Model] inference failed: %w", err)
	}
	defer outputs[0].Destroy()

	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return 0, fmt.Errorf("[Model] unexpected output tensor type %T", outputs[0])
	}
	data := out.GetData()
	if len(data) == 0 {
		return 0, fmt.Errorf("[Model] empty output tensor")
	}

	return float64(data[0]), nil
}

// newInputTensor builds a [1, seqLength] tensor matching the element type
// the exported graph declares. Exporters differ on whether the embedding
// input survives as int32, int64 or float32.
func (m *Model) newInputTensor(seq []int32) (ort.Value, error) {
	shape := ort.NewShape(1, int64(m.seqLength))

	switch m.inputType {
	case ort.TensorElementDataTypeInt32:
		return ort.NewTensor(shape, seq)
	case ort.TensorElementDataTypeInt64:
		data := make([]int64, len(seq))
		for i, v := range seq {
			data[i] = int64(v)
		}
		return ort.NewTensor(shape, data)
	case ort.TensorElementDataTypeFloat:
		data := make([]float32, len(seq))
		for i, v := range seq {
			data[i] = float32(v)
		}
		return ort.NewTensor(shape, data)
	default:
		return nil, fmt.Errorf("[Model] unsupported input element type %d", m.inputType)
	}
}

// Close releases the session and the onnxruntime environment.
func (m *Model) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		m.session.Destroy()
		m.session = nil
	}
	ort.DestroyEnvironment()
}
