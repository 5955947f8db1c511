package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
)

func (s *classifyService) Ready() bool {
	return s.predictor != nil
}

func (s *classifyService) Classify(raw []byte) (*entity.ClassificationResult, error) {
	if s.predictor == nil {
		return nil, entity.ErrModelUnavailable
	}

	tensor, err := s.preprocessor.Preprocess(raw)
	if err != nil {
		return nil, err
	}

	result, err := s.predictor.Predict(tensor)
	if err != nil {
		return nil, err
	}

	event := entity.PredictionEvent{
		ID:         uuid.New().String(),
		Prediction: result.Prediction,
		Confidence: result.Confidence,
		CreatedAt:  time.Now(),
	}
	if err := s.producer.PublishPrediction(event); err != nil {
		logrus.Warnf("failed to publish prediction event: %s", err.Error())
	}

	return result, nil
}
