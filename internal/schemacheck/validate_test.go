package schemacheck

import (
	"strings"
	"sync"
	"testing"
)

var scoreSchema = &Schema{
	Name: "score",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"id", "score"},
		"properties": map[string]any{
			"id":    map[string]any{"type": "string", "minLength": 1},
			"score": map[string]any{"type": []any{"number", "null"}, "minimum": 0, "maximum": 10},
		},
	},
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"valid", `{"id": "e1", "score": 7.5}`, ""},
		{"null score", `{"id": "e1", "score": null}`, ""},
		{"missing required", `{"id": "e1"}`, "schema validation failed"},
		{"out of range", `{"id": "e1", "score": 11}`, "schema validation failed"},
		{"wrong type", `{"id": 3, "score": 1}`, "schema validation failed"},
		{"malformed", `{"id": `, "invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(scoreSchema, []byte(tt.raw))
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NilSchema(t *testing.T) {
	if err := Validate(nil, []byte(`not json`)); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestValidate_BadDefinition(t *testing.T) {
	bad := &Schema{Name: "bad", Definition: map[string]any{"type": 12}}
	err := Validate(bad, []byte(`{}`))
	if err == nil || !strings.Contains(err.Error(), `compile schema "bad"`) {
		t.Fatalf("error = %v, want compile error", err)
	}
}

func TestValidate_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := Validate(scoreSchema, []byte(`{"id": "x", "score": 1}`)); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
}
