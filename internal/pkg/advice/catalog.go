package advice

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Hitesh-Bhor28/bloomai-backend/internal/entity"
)

// Catalog maps normalized disease names to canned advice. Lookup is
// total: unknown names get the pathogen-agnostic default entry.
type Catalog struct {
	entries      map[string]entity.AdviceEntry
	defaultEntry entity.AdviceEntry
}

func NewCatalog() *Catalog {
	return &Catalog{
		entries:      builtinEntries(),
		defaultEntry: defaultEntry(),
	}
}

// NewCatalogFromFile extends the built-in table with entries from a JSON
// file ({"Disease Name": {"causes": ..., "precautions": ..., "solutions": ...}}).
// File entries override built-ins with the same name.
func NewCatalogFromFile(path string) (*Catalog, error) {
	catalog := NewCatalog()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read advice catalog: %w", err)
	}

	var overrides map[string]entity.AdviceEntry
	if err := json.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse advice catalog: %w", err)
	}

	for name, entry := range overrides {
		catalog.entries[name] = entry
	}

	return catalog, nil
}

func (c *Catalog) Lookup(diseaseName string) entity.AdviceEntry {
	if entry, ok := c.entries[diseaseName]; ok {
		return entry
	}
	return c.defaultEntry
}

func builtinEntries() map[string]entity.AdviceEntry {
	return map[string]entity.AdviceEntry{
		"Healthy Plant": {
			Causes:      "A healthy plant shows no signs of disease, pests, or stress. Proper care including adequate water, sunlight, and nutrients contributes to plant health.",
			Precautions: "Continue regular care: water appropriately, provide adequate sunlight, ensure good drainage, and monitor for early signs of problems.",
			Solutions:   "Continue current care practices. Monitor regularly and maintain optimal growing conditions for your plant species.",
		},
		"Powdery Mildew": {
			Causes:      "Powdery mildew is caused by fungal spores that thrive in humid conditions with poor air circulation. It spreads through wind and water splashes.",
			Precautions: "Ensure good air circulation around plants, avoid overhead watering, space plants properly, and remove affected leaves promptly.",
			Solutions:   "Apply fungicidal sprays containing sulfur or neem oil. Remove severely affected leaves. Improve air circulation and reduce humidity.",
		},
		"Leaf Spot": {
			Causes:      "Leaf spots are typically caused by fungal or bacterial pathogens that enter through wounds or natural openings. Overwatering and high humidity favor their development.",
			Precautions: "Water at the base of plants, avoid wetting foliage, ensure proper spacing, and remove infected leaves to prevent spread.",
			Solutions:   "Remove and destroy infected leaves. Apply copper-based fungicides. Improve growing conditions and ensure proper drainage.",
		},
		"Rust": {
			Causes:      "Rust diseases are caused by fungal pathogens that require specific host plants and moisture. They spread through spores carried by wind or water.",
			Precautions: "Remove infected plant parts, improve air circulation, avoid overhead watering, and ensure plants receive adequate sunlight.",
			Solutions:   "Remove infected plant parts immediately. Apply fungicides containing myclobutanil or propiconazole. Improve growing conditions.",
		},
	}
}

func defaultEntry() entity.AdviceEntry {
	return entity.AdviceEntry{
		Causes:      "Plant diseases can be caused by various pathogens including fungi, bacteria, viruses, or environmental stressors. Proper identification is key to effective treatment.",
		Precautions: "Maintain proper plant hygiene, ensure good air circulation, water appropriately, avoid overcrowding, and regularly inspect plants for early signs of disease.",
		Solutions:   "Remove affected plant parts, apply appropriate fungicides or treatments, improve growing conditions, and consider consulting a plant expert for severe cases.",
	}
}
