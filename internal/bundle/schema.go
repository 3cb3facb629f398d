package bundle

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var bloomEnum = []any{"knowledge", "comprehension", "application", "analysis", "synthesis", "evaluation"}

var confidenceMap = map[string]any{
	"type":                 "object",
	"additionalProperties": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
}

// domainSchema describes a domain bundle file.
var domainSchema = map[string]any{
	"type":     "object",
	"required": []any{"domain", "skills"},
	"properties": map[string]any{
		"domain": map[string]any{"type": "string", "minLength": 1},
		"skills": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "bloom"},
				"properties": map[string]any{
					"id":         map[string]any{"type": "string", "minLength": 1},
					"label":      map[string]any{"type": "string"},
					"bloom":      map[string]any{"enum": bloomEnum},
					"assessable": map[string]any{"type": "boolean"},
				},
			},
		},
		"edges": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"source", "target"},
				"properties": map[string]any{
					"source":     map[string]any{"type": "string", "minLength": 1},
					"target":     map[string]any{"type": "string", "minLength": 1},
					"type":       map[string]any{"enum": []any{"prerequisite", "related", "extends"}},
					"confidence": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
				},
			},
		},
	},
}

// groupSchema describes the envelope of a group bundle file. Learners are
// checked one by one against learnerSchema so a bad entry does not reject
// the whole group.
var groupSchema = map[string]any{
	"type":     "object",
	"required": []any{"name", "learners"},
	"properties": map[string]any{
		"name":     map[string]any{"type": "string", "minLength": 1},
		"learners": map[string]any{"type": "array"},
	},
}

var learnerSchema = map[string]any{
	"type":     "object",
	"required": []any{"id"},
	"properties": map[string]any{
		"id":       map[string]any{"type": "string", "minLength": 1},
		"name":     map[string]any{"type": "string"},
		"assessed": confidenceMap,
		"inferred": confidenceMap,
	},
}

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

func compiled(name string, def map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://lessonlens/%s.json", name)
	doc, err := toJSONValue(def)
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	schemaCache.Store(name, s)
	return s, nil
}

func validate(name string, def map[string]any, doc any) error {
	s, err := compiled(name, def)
	if err != nil {
		return err
	}
	return s.Validate(doc)
}

// toJSONValue round-trips v through encoding/json so that the validator
// sees plain JSON types (float64, map[string]any, []any).
func toJSONValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return out, nil
}
