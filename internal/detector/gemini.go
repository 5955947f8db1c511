package detector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
)

const detectionPrompt = `Analyze this plant image and detect any diseases or health issues.

Please provide a detailed analysis in the following JSON format:
{
  "diseaseName": "Name of the disease or 'Healthy' if no disease detected",
  "causes": "Detailed explanation of what causes this disease (2-3 sentences)",
  "precautions": "Preventive measures to avoid this disease (2-3 sentences)",
  "solutions": "Treatment methods and solutions to cure the disease (2-3 sentences)"
}

If the plant appears healthy, indicate that in the diseaseName field and provide general care tips in the other fields.

Be specific and provide actionable advice. Format your response as valid JSON only, without markdown code blocks.`

const missingField = "No information available."

// GeminiStrategy is the keyed tier. A fresh client is built per request
// because the credential is caller-supplied.
type GeminiStrategy struct {
	apiKey string
	models []string
}

func NewGeminiStrategy(apiKey string, models []string) *GeminiStrategy {
	return &GeminiStrategy{apiKey: apiKey, models: models}
}

func (g *GeminiStrategy) Name() string {
	return "gemini"
}

func (g *GeminiStrategy) Detect(ctx context.Context, img entity.ImageInput) (*entity.DiseaseReport, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	contentType := img.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{
			genai.NewPartFromText(detectionPrompt),
			genai.NewPartFromBytes(img.Data, contentType),
		},
	}}

	// Model ids are tried in order; the first one that answers wins.
	var lastErr error
	for _, model := range g.models {
		resp, err := client.Models.GenerateContent(ctx, model, contents, nil)
		if err != nil {
			lastErr = fmt.Errorf("gemini model %s: %w", model, err)
			continue
		}

		text := responseText(resp)
		if text == "" {
			lastErr = fmt.Errorf("gemini model %s: empty response", model)
			continue
		}

		report, err := parseReportJSON(text)
		if err != nil {
			lastErr = fmt.Errorf("gemini model %s: %w", model, err)
			continue
		}
		return report, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no gemini model configured")
	}
	return nil, lastErr
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		text += part.Text
	}
	return strings.TrimSpace(text)
}

func parseReportJSON(text string) (*entity.DiseaseReport, error) {
	cleaned := stripCodeFence(text)

	var report entity.DiseaseReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return nil, fmt.Errorf("malformed report JSON: %w", err)
	}

	if report.DiseaseName == "" {
		report.DiseaseName = "Unknown"
	}
	if report.Causes == "" {
		report.Causes = missingField
	}
	if report.Precautions == "" {
		report.Precautions = missingField
	}
	if report.Solutions == "" {
		report.Solutions = missingField
	}

	return &report, nil
}

// stripCodeFence removes a markdown code fence wrapper (``` or ```json)
// that models add despite being told not to.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
