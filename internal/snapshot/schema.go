package snapshot

import "github.com/abhisek/boletin/internal/schemacheck"

var nullableScore = map[string]any{
	"type": []any{"number", "null"},
}

var periodScores = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"t1": nullableScore,
		"t2": nullableScore,
		"t3": nullableScore,
	},
	"additionalProperties": false,
}

// FileSchema describes the shape of a snapshot file. Value ranges and
// cross-record rules are checked after decoding.
var FileSchema = &schemacheck.Schema{
	Name: "snapshot",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"students"},
		"properties": map[string]any{
			"students": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"id", "first_name"},
					"properties": map[string]any{
						"id":               map[string]any{"type": "string"},
						"first_name":       map[string]any{"type": "string"},
						"last_name":        map[string]any{"type": "string"},
						"second_last_name": map[string]any{"type": "string"},
						"group":            map[string]any{"type": "string"},
						"subgroup":         map[string]any{"type": "string"},
						"email":            map[string]any{"type": "string"},
						"phone":            map[string]any{"type": "string"},
					},
				},
			},
			"academic_grades": map[string]any{
				"type": "object",
				"additionalProperties": map[string]any{
					"type": "object",
					"propertyNames": map[string]any{
						"enum": []any{"t1", "t2", "t3", "rec"},
					},
					"additionalProperties": map[string]any{
						"type":                 "object",
						"additionalProperties": nullableScore,
					},
				},
			},
			"service_averages": map[string]any{
				"type":                 "object",
				"additionalProperties": periodScores,
			},
			"evaluations": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []any{"student_id", "period"},
					"properties": map[string]any{
						"id":         map[string]any{"type": "string"},
						"student_id": map[string]any{"type": "string"},
						"period": map[string]any{
							"type": "string",
							"enum": []any{"t1", "t2", "t3", "rec"},
						},
						"scores": map[string]any{
							"type": "object",
							"additionalProperties": map[string]any{
								"type": "object",
								"additionalProperties": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"score": nullableScore,
										"notes": map[string]any{"type": "string"},
									},
								},
							},
						},
						"final_score": nullableScore,
					},
				},
			},
		},
	},
}
