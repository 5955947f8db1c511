package detector

import (
	"context"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
)

// StaticDiseaseName is the disease name of the terminal fallback report.
const StaticDiseaseName = "Plant Health Analysis"

// StaticStrategy is the terminal tier. It never fails, which is what
// guarantees the orchestrator always produces a report.
type StaticStrategy struct{}

func NewStaticStrategy() *StaticStrategy {
	return &StaticStrategy{}
}

func (s *StaticStrategy) Name() string {
	return "static"
}

func (s *StaticStrategy) Detect(_ context.Context, _ entity.ImageInput) (*entity.DiseaseReport, error) {
	return &entity.DiseaseReport{
		DiseaseName: StaticDiseaseName,
		Causes:      "Common plant diseases are caused by fungi, bacteria, viruses, pests, or environmental stress. Visual inspection can help identify symptoms like spots, wilting, discoloration, or abnormal growth patterns.",
		Precautions: "Maintain proper watering schedule, ensure good air circulation, use clean tools, avoid overwatering, provide adequate sunlight, and regularly inspect plants for early signs of problems.",
		Solutions:   "For fungal issues: Remove affected leaves and apply fungicide. For pests: Use insecticidal soap or neem oil. For bacterial issues: Remove infected parts and improve drainage. Always isolate affected plants to prevent spread. Consider consulting a local plant expert for specific treatment recommendations.",
	}, nil
}
