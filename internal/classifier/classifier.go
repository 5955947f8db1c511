package classifier

import (
	"encoding/json"
	"fmt"
	"os"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
)

// Metadata is stored beside the ONNX artifact and must list classes in
// the same order as the model's output indices.
type Metadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
	ImageSize   int      `json:"image_size"`
}

// runner abstracts the ONNX session so post-processing can be tested
// without the native runtime.
type runner interface {
	Run(input []float32) ([]float32, error)
	Close()
}

type Classifier struct {
	Metadata Metadata
	runner   runner
}

func New(modelPath, metadataPath string) (*Classifier, error) {
	metaFile, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var metadata Metadata
	if err := json.Unmarshal(metaFile, &metadata); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}
	if len(metadata.Classes) == 0 {
		return nil, fmt.Errorf("metadata lists no classes")
	}

	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
	}

	session, err := newOrtSession(modelPath, metadata)
	if err != nil {
		return nil, err
	}

	return &Classifier{Metadata: metadata, runner: session}, nil
}

// Predict runs one forward pass. The prediction is the argmax of the
// probability vector, ties resolving to the lowest class index.
func (c *Classifier) Predict(t entity.PixelTensor) (*entity.ClassificationResult, error) {
	output, err := c.runner.Run(t.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInference, err)
	}
	if len(output) < len(c.Metadata.Classes) {
		return nil, fmt.Errorf("%w: got %d scores for %d classes",
			entity.ErrInference, len(output), len(c.Metadata.Classes))
	}

	maxIdx := 0
	maxVal := output[0]
	probabilities := make(map[string]float32, len(c.Metadata.Classes))

	for i, val := range output {
		if i >= len(c.Metadata.Classes) {
			break
		}
		probabilities[c.Metadata.Classes[i]] = val
		if val > maxVal {
			maxVal = val
			maxIdx = i
		}
	}

	return &entity.ClassificationResult{
		Prediction:    c.Metadata.Classes[maxIdx],
		Confidence:    maxVal,
		Probabilities: probabilities,
	}, nil
}

func (c *Classifier) Close() {
	if c.runner != nil {
		c.runner.Close()
	}
	ort.DestroyEnvironment()
}

type ortSession struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

func newOrtSession(modelPath string, metadata Metadata) (*ortSession, error) {
	inputShape := ort.NewShape(metadata.InputShape...)
	outputShape := ort.NewShape(metadata.OutputShape...)

	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ortSession{session: session, input: inputTensor, output: outputTensor}, nil
}

func (s *ortSession) Run(input []float32) ([]float32, error) {
	if len(input) != len(s.input.GetData()) {
		return nil, fmt.Errorf("input has %d values, model expects %d",
			len(input), len(s.input.GetData()))
	}

	copy(s.input.GetData(), input)

	if err := s.session.Run(); err != nil {
		return nil, err
	}

	output := make([]float32, len(s.output.GetData()))
	copy(output, s.output.GetData())
	return output, nil
}

func (s *ortSession) Close() {
	if s.input != nil {
		s.input.Destroy()
	}
	if s.output != nil {
		s.output.Destroy()
	}
	if s.session != nil {
		s.session.Destroy()
	}
}
