package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema is a named JSON Schema definition for a response body.
type Schema struct {
	Name       string
	Definition map[string]any
}

// QuizSchema describes the question list returned by GET /quiz.
var QuizSchema = &Schema{
	Name: "quiz-questions",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question_id": map[string]any{"type": "string", "minLength": 1},
				"title":       map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 2,
				},
				"concept":       map[string]any{"type": "string"},
				"sub_concept":   map[string]any{"type": "string"},
				"difficulty":    map[string]any{"type": "number"},
				"expected_time": map[string]any{"type": "number"},
			},
			"required": []any{"question_id", "title", "options"},
		},
	},
}

// AnalyticsSchema describes GET /analytics/<id>. Only the shape the
// dashboard relies on is constrained; per-record fields are checked by the
// analytics decoder.
var AnalyticsSchema = &Schema{
	Name: "analytics",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message":            map[string]any{"type": "string"},
			"concept_mastery":    map[string]any{"type": "object"},
			"subconcept_mastery": map[string]any{"type": "object"},
			"weak_areas": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"sub_concept":   map[string]any{"type": "string"},
						"mastery_score": map[string]any{"type": "number"},
						"status":        map[string]any{"type": "string"},
					},
					"required": []any{"sub_concept", "status"},
				},
			},
			"recommendations": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "object"},
			},
		},
	},
}

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateResponse checks raw against schema. It returns *ErrInvalidResponse
// on failure.
func validateResponse(endpoint string, schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := getCompiledSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidResponse{
			Endpoint: endpoint,
			Content:  raw,
			Err:      fmt.Errorf("schema validation failed: %w", err),
		}
	}

	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a plain decoded value, so round-trip the Go literal.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}
