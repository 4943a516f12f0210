package schema

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// GraphDefinition is the declarative form of a flow graph. It names every
// node and flow by a string ID; references between them (successors, start
// nodes, the entry point) are by ID. flow.FromDefinition turns it into a
// runtime object graph.
type GraphDefinition struct {
	Entry string           `json:"entry" yaml:"entry"`
	Nodes []NodeDefinition `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Flows []FlowDefinition `json:"flows,omitempty" yaml:"flows,omitempty"`
}

// NodeDefinition declares a plain node and its labeled transitions.
type NodeDefinition struct {
	ID         string            `json:"id" yaml:"id"`
	Successors map[string]string `json:"successors,omitempty" yaml:"successors,omitempty"`
}

// FlowDefinition declares a composite flow. Start is the ID of the node the
// flow delegates to; an empty Start declares a leaf-like flow with no body.
type FlowDefinition struct {
	ID         string            `json:"id" yaml:"id"`
	Start      string            `json:"start,omitempty" yaml:"start,omitempty"`
	Successors map[string]string `json:"successors,omitempty" yaml:"successors,omitempty"`
}

// ParseJSON decodes a GraphDefinition from JSON bytes.
func ParseJSON(data []byte) (*GraphDefinition, error) {
	var def GraphDefinition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, NewError(ErrCodeValidation, "invalid graph definition JSON").WithCause(err)
	}
	return &def, nil
}

// ParseYAML decodes a GraphDefinition from YAML bytes.
func ParseYAML(data []byte) (*GraphDefinition, error) {
	var def GraphDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, NewError(ErrCodeValidation, "invalid graph definition YAML").WithCause(err)
	}
	return &def, nil
}
