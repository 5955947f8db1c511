package entity

import "time"

// ImageInput carries one uploaded image through a single request.
type ImageInput struct {
	Data        []byte
	ContentType string
}

// PixelTensor is a flattened NHWC tensor with batch size 1.
// Values are raw 8-bit intensities (0..255) as float32; the model
// contains its own rescaling layer, so no normalization happens here.
type PixelTensor struct {
	Data   []float32
	Height int
	Width  int
}

type ClassificationResult struct {
	Prediction    string             `json:"prediction"`
	Confidence    float32            `json:"confidence"`
	Probabilities map[string]float32 `json:"probabilities"`
}

type DiseaseReport struct {
	DiseaseName string `json:"diseaseName"`
	Causes      string `json:"causes"`
	Precautions string `json:"precautions"`
	Solutions   string `json:"solutions"`
}

// AdviceEntry is a static catalog record for one disease.
type AdviceEntry struct {
	Causes      string `json:"causes"`
	Precautions string `json:"precautions"`
	Solutions   string `json:"solutions"`
}

// PredictionEvent is published to Kafka after a successful classification.
type PredictionEvent struct {
	ID         string    `json:"id"`
	Prediction string    `json:"prediction"`
	Confidence float32   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}
