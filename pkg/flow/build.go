package flow

import (
	"github.com/rendis/flowviz/internal/validation"
	"github.com/rendis/flowviz/pkg/schema"
)

// FromDefinition builds a runtime object graph from a declarative
// definition. It returns the entry object and a namespace mapping every
// definition ID to its object, ready to pass to diagram.Visualize.
func FromDefinition(def *schema.GraphDefinition) (Node, map[string]any, error) {
	if err := validation.ValidateDefinition(def); err != nil {
		return nil, nil, err
	}

	// First pass: create every object so references can be wired in any order.
	objs := make(map[string]Node, len(def.Nodes)+len(def.Flows))
	nodes := make(map[string]*BaseNode, len(def.Nodes))
	flows := make(map[string]*BaseFlow, len(def.Flows))
	for _, nd := range def.Nodes {
		n := NewNode()
		nodes[nd.ID] = n
		objs[nd.ID] = n
	}
	for _, fd := range def.Flows {
		f := NewFlow(nil)
		flows[fd.ID] = f
		objs[fd.ID] = f
	}

	// Second pass: wire successors and start nodes.
	for _, nd := range def.Nodes {
		for action, tgt := range nd.Successors {
			nodes[nd.ID].Connect(action, objs[tgt])
		}
	}
	for _, fd := range def.Flows {
		if fd.Start != "" {
			flows[fd.ID].SetStart(objs[fd.Start])
		}
		for action, tgt := range fd.Successors {
			flows[fd.ID].Connect(action, objs[tgt])
		}
	}

	namespace := make(map[string]any, len(objs))
	for id, obj := range objs {
		namespace[id] = obj
	}
	return objs[def.Entry], namespace, nil
}
