package service

import (
	"context"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/pkg/events"
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/pkg/preprocess"
)

type ClassifyService interface {
	Classify(raw []byte) (*entity.ClassificationResult, error)
	Ready() bool
}

type DiseaseService interface {
	Detect(ctx context.Context, raw []byte, apiKey string) (*entity.DiseaseReport, error)
}

// Predictor is what the classify service needs from the loaded model.
type Predictor interface {
	Predict(t entity.PixelTensor) (*entity.ClassificationResult, error)
}

// Detector is the fallback-chain entry point.
type Detector interface {
	Detect(ctx context.Context, img entity.ImageInput, apiKey string) (*entity.DiseaseReport, error)
}

type classifyService struct {
	predictor    Predictor
	preprocessor *preprocess.Preprocessor
	producer     events.Producer
}

func NewClassifyService(predictor Predictor, preprocessor *preprocess.Preprocessor, producer events.Producer) ClassifyService {
	return &classifyService{
		predictor:    predictor,
		preprocessor: preprocessor,
		producer:     producer,
	}
}

type diseaseService struct {
	detector Detector
}

func NewDiseaseService(detector Detector) DiseaseService {
	return &diseaseService{detector: detector}
}
