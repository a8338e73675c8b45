package course

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const manifestSchemaURL = "schema://course-manifest.json"

var manifestSchema = map[string]any{
	"type":     "object",
	"required": []any{"course", "modules"},
	"properties": map[string]any{
		"course": map[string]any{"type": "string", "minLength": 1},
		"title":  map[string]any{"type": "string"},
		"modules": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "items"},
				"properties": map[string]any{
					"id":    map[string]any{"type": "string", "minLength": 1},
					"title": map[string]any{"type": "string"},
					"items": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"key"},
							"properties": map[string]any{
								"key":     map[string]any{"type": "string", "pattern": "^[A-Za-z0-9_.-]+$"},
								"label":   map[string]any{"type": "string"},
								"concept": map[string]any{"type": "string"},
							},
						},
					},
				},
			},
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a parsed JSON value, so round-trip the definition.
		defBytes, err := json.Marshal(manifestSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema definition: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(manifestSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(manifestSchemaURL)
	})
	return compiled, compileErr
}

// Parse decodes and validates a YAML course manifest.
func Parse(data []byte) (*Course, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse course manifest: %w", err)
	}

	// The validator wants plain JSON values, not YAML-typed ones.
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse course manifest: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(b, &parsed); err != nil {
		return nil, fmt.Errorf("parse course manifest: %w", err)
	}

	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile manifest schema: %w", err)
	}
	if err := sch.Validate(parsed); err != nil {
		return nil, fmt.Errorf("invalid course manifest: %w", err)
	}

	var c Course
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode course manifest: %w", err)
	}
	if err := c.finish(); err != nil {
		return nil, fmt.Errorf("invalid course manifest: %w", err)
	}
	return &c, nil
}
