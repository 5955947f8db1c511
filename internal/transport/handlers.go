package transport

import (
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/service"
)

type FlowerHandler struct {
	classify service.ClassifyService
	disease  service.DiseaseService
}

func NewFlowerHandler(classify service.ClassifyService, disease service.DiseaseService) *FlowerHandler {
	return &FlowerHandler{classify: classify, disease: disease}
}
