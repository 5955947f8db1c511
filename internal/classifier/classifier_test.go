package classifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
)

type fakeRunner struct {
	output []float32
	err    error
}

func (f *fakeRunner) Run(input []float32) ([]float32, error) {
	return f.output, f.err
}

func (f *fakeRunner) Close() {}

var flowerClasses = []string{"daisy", "dandelion", "roses", "sunflowers", "tulips"}

func TestPredictArgmax(t *testing.T) {
	tests := []struct {
		name           string
		output         []float32
		wantPrediction string
		wantConfidence float32
	}{
		{
			name:           "clear winner in the middle",
			output:         []float32{0.05, 0.1, 0.7, 0.1, 0.05},
			wantPrediction: "roses",
			wantConfidence: 0.7,
		},
		{
			name:           "winner at index zero",
			output:         []float32{0.9, 0.025, 0.025, 0.025, 0.025},
			wantPrediction: "daisy",
			wantConfidence: 0.9,
		},
		{
			name:           "winner at last index",
			output:         []float32{0.025, 0.025, 0.025, 0.025, 0.9},
			wantPrediction: "tulips",
			wantConfidence: 0.9,
		},
		{
			name:           "tie resolves to lowest index",
			output:         []float32{0.1, 0.4, 0.4, 0.05, 0.05},
			wantPrediction: "dandelion",
			wantConfidence: 0.4,
		},
		{
			name:           "all equal resolves to first class",
			output:         []float32{0.2, 0.2, 0.2, 0.2, 0.2},
			wantPrediction: "daisy",
			wantConfidence: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Classifier{
				Metadata: Metadata{Classes: flowerClasses},
				runner:   &fakeRunner{output: tt.output},
			}

			result, err := c.Predict(entity.PixelTensor{Data: make([]float32, 4)})

			require.NoError(t, err)
			assert.Equal(t, tt.wantPrediction, result.Prediction)
			assert.Equal(t, tt.wantConfidence, result.Confidence)
		})
	}
}

func TestPredictProbabilities(t *testing.T) {
	output := []float32{0.05, 0.1, 0.7, 0.1, 0.05}
	c := &Classifier{
		Metadata: Metadata{Classes: flowerClasses},
		runner:   &fakeRunner{output: output},
	}

	result, err := c.Predict(entity.PixelTensor{})
	require.NoError(t, err)

	// Every class appears, the map mirrors the output vector, the values
	// sum to ~1, and the prediction is exactly the argmax entry.
	require.Len(t, result.Probabilities, len(flowerClasses))

	var sum float32
	for i, class := range flowerClasses {
		assert.Equal(t, output[i], result.Probabilities[class])
		sum += result.Probabilities[class]
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
	assert.Equal(t, result.Confidence, result.Probabilities[result.Prediction])
}

func TestPredictErrors(t *testing.T) {
	tests := []struct {
		name   string
		runner runner
	}{
		{
			name:   "backend failure",
			runner: &fakeRunner{err: errors.New("session run failed")},
		},
		{
			name:   "fewer scores than classes",
			runner: &fakeRunner{output: []float32{0.5, 0.5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Classifier{
				Metadata: Metadata{Classes: flowerClasses},
				runner:   tt.runner,
			}

			_, err := c.Predict(entity.PixelTensor{})

			require.Error(t, err)
			assert.ErrorIs(t, err, entity.ErrInference)
		})
	}
}
