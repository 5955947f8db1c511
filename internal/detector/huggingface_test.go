package detector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
	"github.com/Hitesh-Bhor28/bloomai-backend/internal/pkg/advice"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  string
	}{
		{name: "underscores to title case", label: "powdery_mildew", want: "Powdery Mildew"},
		{name: "already clean", label: "Rust", want: "Rust"},
		{name: "lowercase words", label: "leaf spot", want: "Leaf Spot"},
		{name: "healthy lowercase", label: "tomato_healthy", want: "Healthy Plant"},
		{name: "healthy uppercase", label: "HEALTHY", want: "Healthy Plant"},
		{name: "healthy mid-label", label: "Apple___Healthy_Leaf", want: "Healthy Plant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeLabel(tt.label))
		})
	}
}

func TestHostedStrategyDetect(t *testing.T) {
	catalog := advice.NewCatalog()
	img := entity.ImageInput{Data: []byte("jpeg-bytes"), ContentType: "image/jpeg"}

	tests := []struct {
		name     string
		response string
		wantName string
	}{
		{
			name:     "flat prediction list",
			response: `[{"label": "powdery_mildew", "score": 0.92}, {"label": "rust", "score": 0.05}]`,
			wantName: "Powdery Mildew",
		},
		{
			name:     "nested prediction list",
			response: `[[{"label": "rust", "score": 0.81}, {"label": "leaf_spot", "score": 0.12}]]`,
			wantName: "Rust",
		},
		{
			name:     "top score wins regardless of order",
			response: `[{"label": "rust", "score": 0.1}, {"label": "leaf_spot", "score": 0.8}]`,
			wantName: "Leaf Spot",
		},
		{
			name:     "healthy label collapses",
			response: `[{"label": "plant_Healthy", "score": 0.99}]`,
			wantName: "Healthy Plant",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				w.Write([]byte(tt.response))
			}))
			defer server.Close()

			strategy := NewHostedStrategy(server.URL, 5*time.Second, catalog)
			report, err := strategy.Detect(context.Background(), img)

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, report.DiseaseName)

			// Advice fields must match the catalog entry exactly.
			entry := catalog.Lookup(tt.wantName)
			assert.Equal(t, entry.Causes, report.Causes)
			assert.Equal(t, entry.Precautions, report.Precautions)
			assert.Equal(t, entry.Solutions, report.Solutions)
		})
	}
}

func TestHostedStrategyFailures(t *testing.T) {
	catalog := advice.NewCatalog()
	img := entity.ImageInput{Data: []byte("jpeg-bytes")}

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "model cold-starting",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "unparsable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>not json</html>"))
			},
		},
		{
			name: "empty prediction list",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("[]"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			strategy := NewHostedStrategy(server.URL, 5*time.Second, catalog)
			_, err := strategy.Detect(context.Background(), img)

			assert.Error(t, err)
		})
	}
}

func TestHostedStrategyUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	strategy := NewHostedStrategy(server.URL, time.Second, advice.NewCatalog())
	_, err := strategy.Detect(context.Background(), entity.ImageInput{Data: []byte("x")})

	assert.Error(t, err)
}
