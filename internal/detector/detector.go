package detector

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
)

// Strategy is one tier of the disease detection fallback chain.
type Strategy interface {
	Name() string
	Detect(ctx context.Context, img entity.ImageInput) (*entity.DiseaseReport, error)
}

// Orchestrator walks the tiers in priority order: keyed Gemini API when a
// key was supplied, then hosted inference, then the static report. Tier
// failures are logged and swallowed; the static tier never fails, so a
// request that reaches the orchestrator always gets a report.
type Orchestrator struct {
	hosted       Strategy
	static       Strategy
	geminiModels []string
}

func NewOrchestrator(hosted, static Strategy, geminiModels []string) *Orchestrator {
	return &Orchestrator{
		hosted:       hosted,
		static:       static,
		geminiModels: geminiModels,
	}
}

func (o *Orchestrator) Detect(ctx context.Context, img entity.ImageInput, apiKey string) (*entity.DiseaseReport, error) {
	strategies := make([]Strategy, 0, 3)
	if strings.TrimSpace(apiKey) != "" {
		strategies = append(strategies, NewGeminiStrategy(apiKey, o.geminiModels))
	}
	strategies = append(strategies, o.hosted, o.static)

	var lastErr error
	for _, strategy := range strategies {
		report, err := strategy.Detect(ctx, img)
		if err != nil {
			logrus.Warnf("disease detection tier %s failed: %s", strategy.Name(), err.Error())
			lastErr = err
			continue
		}
		return report, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no detection strategy available")
	}
	return nil, lastErr
}
