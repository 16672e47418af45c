package rubric

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/boletin/internal/schemacheck"
)

// FileSchema is the JSON Schema of a rubric file.
var FileSchema = &schemacheck.Schema{
	Name: "rubric",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"outcomes"},
		"properties": map[string]any{
			"outcomes": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []any{"id", "name", "weight", "criteria"},
					"properties": map[string]any{
						"id":   map[string]any{"type": "string", "minLength": 1},
						"name": map[string]any{"type": "string"},
						"weight": map[string]any{
							"type":             "number",
							"exclusiveMinimum": 0,
							"maximum":          1,
						},
						"criteria": map[string]any{
							"type":     "array",
							"minItems": 1,
							"items": map[string]any{
								"type":     "object",
								"required": []any{"id"},
								"properties": map[string]any{
									"id":   map[string]any{"type": "string", "minLength": 1},
									"name": map[string]any{"type": "string"},
								},
							},
						},
					},
				},
			},
		},
	},
}

type file struct {
	Outcomes []Outcome `json:"outcomes"`
}

// Parse builds a Rubric from a JSON rubric document.
func Parse(data []byte) (*Rubric, error) {
	if err := schemacheck.Validate(FileSchema, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRubric, err)
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidRubric, err)
	}
	return New(f.Outcomes)
}

// Load reads and parses the rubric file at path.
func Load(path string) (*Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rubric: %w", err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load rubric %s: %w", path, err)
	}
	return r, nil
}

// MarshalJSON encodes the rubric in the same shape Parse accepts.
func (r *Rubric) MarshalJSON() ([]byte, error) {
	return json.Marshal(file{Outcomes: r.Outcomes()})
}
