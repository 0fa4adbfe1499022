package normalize

import (
	"encoding/json"
	"fmt"
	"os"

	"tablerag/internal/domain/document"
	"tablerag/pkg/logger_i"
)

// jsonStrategy emits one unit for the whole document, plus one unit per
// element when the top level is an array, so both document-wide and per-item
// questions can retrieve a well-scoped chunk.
type jsonStrategy struct{}

func (s *jsonStrategy) Name() string         { return "json" }
func (s *jsonStrategy) Extensions() []string { return []string{".json"} }

func (s *jsonStrategy) Normalize(path string) ([]document.Unit, error) {
	logger := logger_i.NewLogger("JSONLoader")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read json: %w", err)
	}

	var content any
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("failed to parse json: %w", err)
	}

	whole, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, err
	}

	units := []document.Unit{{
		Content: string(whole),
		Meta:    document.Metadata{Source: path, Type: document.JSON},
	}}

	if items, ok := content.([]any); ok {
		for i, item := range items {
			text, err := json.MarshalIndent(item, "", "  ")
			if err != nil {
				logger.Warn("Skipping unserializable item", "item", i+1, "error", err)
				continue
			}
			units = append(units, document.Unit{
				Content: string(text),
				Meta: document.Metadata{
					Source:     path,
					Type:       document.JSON,
					ItemNumber: i + 1,
				},
			})
		}
	}
	return units, nil
}
