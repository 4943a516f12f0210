// Package validation checks declarative graph definitions before they are
// turned into runtime object graphs: JSON Schema validation first, then
// structural checks the schema cannot express (duplicate IDs, dangling
// references).
package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/rendis/flowviz/pkg/schema"
)

// graphSchemaJSON is the JSON Schema for GraphDefinition validation.
// Embedded as a constant to avoid filesystem dependencies.
const graphSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://flowviz.dev/schemas/graph.json",
  "type": "object",
  "required": ["entry"],
  "properties": {
    "entry": { "type": "string", "minLength": 1 },
    "nodes": {
      "type": "array",
      "items": { "$ref": "#/$defs/node" }
    },
    "flows": {
      "type": "array",
      "items": { "$ref": "#/$defs/flow" }
    }
  },
  "additionalProperties": false,
  "$defs": {
    "node": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "successors": {
          "type": "object",
          "additionalProperties": { "type": "string", "minLength": 1 }
        }
      },
      "additionalProperties": false
    },
    "flow": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": { "type": "string", "minLength": 1 },
        "start": { "type": "string", "minLength": 1 },
        "successors": {
          "type": "object",
          "additionalProperties": { "type": "string", "minLength": 1 }
        }
      },
      "additionalProperties": false
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// graphSchema compiles the embedded schema once per process.
func graphSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.AssertFormat()

		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(graphSchemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal graph schema: %w", err)
			return
		}
		if err := c.AddResource("https://flowviz.dev/schemas/graph.json", doc); err != nil {
			compileErr = fmt.Errorf("add graph schema resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile("https://flowviz.dev/schemas/graph.json")
	})
	return compiled, compileErr
}

// ValidateDefinition validates a GraphDefinition against the embedded JSON
// Schema, then checks that every successor, start, and entry reference
// resolves to a declared ID.
func ValidateDefinition(def *schema.GraphDefinition) error {
	if def == nil {
		return schema.NewError(schema.ErrCodeValidation, "graph definition is nil")
	}

	s, err := graphSchema()
	if err != nil {
		return schema.NewError(schema.ErrCodeValidation, "graph schema unavailable").WithCause(err)
	}

	doc, err := toJSONValue(def)
	if err != nil {
		return schema.NewError(schema.ErrCodeValidation, "failed to serialize graph definition").WithCause(err)
	}
	if err := s.Validate(doc); err != nil {
		return toFlowvizError(err)
	}

	return checkReferences(def)
}

// checkReferences enforces ID uniqueness and reference integrity.
func checkReferences(def *schema.GraphDefinition) error {
	ids := make(map[string]struct{}, len(def.Nodes)+len(def.Flows))
	for _, nd := range def.Nodes {
		if _, exists := ids[nd.ID]; exists {
			return schema.NewErrorf(schema.ErrCodeValidation, "duplicate id %q", nd.ID)
		}
		ids[nd.ID] = struct{}{}
	}
	for _, fd := range def.Flows {
		if _, exists := ids[fd.ID]; exists {
			return schema.NewErrorf(schema.ErrCodeValidation, "duplicate id %q", fd.ID)
		}
		ids[fd.ID] = struct{}{}
	}

	if _, ok := ids[def.Entry]; !ok {
		return schema.NewErrorf(schema.ErrCodeValidation, "entry references unknown id %q", def.Entry)
	}

	for _, nd := range def.Nodes {
		if err := checkSuccessors(nd.ID, nd.Successors, ids); err != nil {
			return err
		}
	}
	for _, fd := range def.Flows {
		if fd.Start != "" {
			if _, ok := ids[fd.Start]; !ok {
				return schema.NewErrorf(schema.ErrCodeValidation, "flow %q start references unknown id %q", fd.ID, fd.Start)
			}
		}
		if err := checkSuccessors(fd.ID, fd.Successors, ids); err != nil {
			return err
		}
	}
	return nil
}

func checkSuccessors(id string, succ map[string]string, ids map[string]struct{}) error {
	actions := make([]string, 0, len(succ))
	for action := range succ {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	for _, action := range actions {
		if _, ok := ids[succ[action]]; !ok {
			return schema.NewErrorf(schema.ErrCodeValidation,
				"%q successor %q references unknown id %q", id, action, succ[action])
		}
	}
	return nil
}

// toJSONValue round-trips a Go value through JSON encoding/decoding so that
// numeric values become json.Number (required by the jsonschema library).
func toJSONValue(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(strings.NewReader(string(b)))
}

// toFlowvizError converts a jsonschema.ValidationError into a FlowvizError
// with per-location violation messages.
func toFlowvizError(err error) *schema.FlowvizError {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return schema.NewError(schema.ErrCodeValidation, err.Error())
	}

	violations := collectViolations(verr)
	if len(violations) == 0 {
		return schema.NewError(schema.ErrCodeValidation, verr.Error())
	}
	if len(violations) == 1 {
		return schema.NewError(schema.ErrCodeValidation, violations[0]).
			WithDetails(map[string]any{"violations": violations})
	}
	return schema.NewErrorf(schema.ErrCodeValidation, "validation failed with %d errors", len(violations)).
		WithDetails(map[string]any{"violations": violations})
}

// collectViolations walks a ValidationError tree and collects leaf error
// messages with their instance locations.
func collectViolations(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		loc := "/"
		if len(verr.InstanceLocation) > 0 {
			loc = "/" + strings.Join(verr.InstanceLocation, "/")
		}
		return []string{fmt.Sprintf("%s: %s", loc, verr.Error())}
	}

	var violations []string
	for _, cause := range verr.Causes {
		violations = append(violations, collectViolations(cause)...)
	}
	return violations
}
