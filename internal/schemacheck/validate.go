// Package schemacheck validates raw JSON documents against JSON Schemas
// declared as Go values.
package schemacheck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema names a JSON Schema definition. Declare schemas as package-level
// pointers; compiled forms are cached per pointer.
type Schema struct {
	Name       string
	Definition map[string]any
}

var compiledSchemas sync.Map // *Schema -> *jsonschema.Schema

// Validate checks that raw is well-formed JSON conforming to schema.
// A nil schema accepts anything.
func Validate(schema *Schema, raw []byte) error {
	if schema == nil {
		return nil
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	sch, err := schema.compile()
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", schema.Name, err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func (s *Schema) compile() (*jsonschema.Schema, error) {
	if v, ok := compiledSchemas.Load(s); ok {
		return v.(*jsonschema.Schema), nil
	}

	// jsonschema wants its own decoded form (json.Number for numbers).
	def, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	url := "schema://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	sch, err := c.Compile(url)
	if err != nil {
		return nil, err
	}

	v, _ := compiledSchemas.LoadOrStore(s, sch)
	return v.(*jsonschema.Schema), nil
}
