package transport

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
)

func (h *FlowerHandler) Predict(c *gin.Context) {
	raw, err := readImageFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided. Use 'image' as the form field name"})
		return
	}

	result, err := h.classify.Classify(raw)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrInvalidImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image file. Supported: JPEG, PNG, GIF"})
		case errors.Is(err, entity.ErrModelUnavailable):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Model is not loaded. Please check server logs."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to make prediction: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *FlowerHandler) DetectDisease(c *gin.Context) {
	raw, err := readImageFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided. Use 'image' as the form field name"})
		return
	}

	apiKey := c.PostForm("api_key")

	report, err := h.disease.Detect(c.Request.Context(), raw, apiKey)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image file. Supported: JPEG, PNG, GIF"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func readImageFile(c *gin.Context) ([]byte, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}
