package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/pkg/advice"
)

const maxInferenceBody = 1 << 20

// HostedStrategy posts the JPEG bytes to an unauthenticated hosted
// inference endpoint. A 503 means the model is cold-starting; like any
// other failure here it makes the orchestrator fall through.
type HostedStrategy struct {
	url     string
	client  *http.Client
	catalog *advice.Catalog
}

func NewHostedStrategy(url string, timeout time.Duration, catalog *advice.Catalog) *HostedStrategy {
	return &HostedStrategy{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		catalog: catalog,
	}
}

func (h *HostedStrategy) Name() string {
	return "huggingface"
}

func (h *HostedStrategy) Detect(ctx context.Context, img entity.ImageInput) (*entity.DiseaseReport, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(img.Data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "image/jpeg")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("inference request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxInferenceBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read inference response: %w", err)
	}

	predictions, err := parsePredictions(body)
	if err != nil {
		return nil, err
	}

	top := predictions[0]
	for _, p := range predictions[1:] {
		if p.Score > top.Score {
			top = p
		}
	}

	name := NormalizeLabel(top.Label)
	entry := h.catalog.Lookup(name)

	return &entity.DiseaseReport{
		DiseaseName: name,
		Causes:      entry.Causes,
		Precautions: entry.Precautions,
		Solutions:   entry.Solutions,
	}, nil
}

type prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// parsePredictions accepts both response shapes the inference API uses:
// a flat list of predictions or a batch wrapping one list per image.
func parsePredictions(body []byte) ([]prediction, error) {
	var flat []prediction
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}

	var nested [][]prediction
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	return nil, errors.New("unexpected inference response shape")
}

// NormalizeLabel turns a raw model label like "powdery_mildew" into the
// catalog key "Powdery Mildew". Anything the model considers healthy
// collapses to the fixed name "Healthy Plant".
func NormalizeLabel(label string) string {
	// cases.Caser is stateful, so one is built per call.
	name := cases.Title(language.English).String(strings.ReplaceAll(label, "_", " "))
	if strings.Contains(strings.ToLower(name), "healthy") {
		return "Healthy Plant"
	}
	return name
}
