package service

import (
	"context"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/pkg/preprocess"
)

// Detect validates the upload before the fallback chain runs: an
// undecodable image is the only client-visible failure on this path.
func (s *diseaseService) Detect(ctx context.Context, raw []byte, apiKey string) (*entity.DiseaseReport, error) {
	img, err := preprocess.Decode(raw)
	if err != nil {
		return nil, err
	}

	jpegBytes, err := preprocess.EncodeJPEG(img)
	if err != nil {
		return nil, err
	}

	return s.detector.Detect(ctx, entity.ImageInput{
		Data:        jpegBytes,
		ContentType: "image/jpeg",
	}, apiKey)
}
