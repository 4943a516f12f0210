package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rendis/flowviz/pkg/schema"
)

func orderDefinition() *schema.GraphDefinition {
	return &schema.GraphDefinition{
		Entry: "pipeline",
		Nodes: []schema.NodeDefinition{
			{ID: "validate", Successors: map[string]string{"default": "charge"}},
			{ID: "charge", Successors: map[string]string{"ok": "ship", "declined": "notify"}},
			{ID: "ship"},
			{ID: "notify"},
		},
		Flows: []schema.FlowDefinition{
			{ID: "pipeline", Start: "validate"},
		},
	}
}

func TestFromDefinition(t *testing.T) {
	entry, namespace, err := FromDefinition(orderDefinition())
	require.NoError(t, err)

	f, ok := entry.(Flow)
	require.True(t, ok)
	assert.Same(t, namespace["validate"], f.StartNode())

	assert.Len(t, namespace, 5)
	charge := namespace["charge"].(Node)
	assert.Same(t, namespace["ship"], charge.Successors()["ok"])
	assert.Same(t, namespace["notify"], charge.Successors()["declined"])
}

func TestFromDefinitionFlowSuccessors(t *testing.T) {
	def := &schema.GraphDefinition{
		Entry: "outer",
		Nodes: []schema.NodeDefinition{{ID: "cleanup"}, {ID: "work"}},
		Flows: []schema.FlowDefinition{
			{ID: "outer", Start: "inner"},
			{ID: "inner", Start: "work", Successors: map[string]string{"default": "cleanup"}},
		},
	}

	entry, namespace, err := FromDefinition(def)
	require.NoError(t, err)

	outer := entry.(Flow)
	inner := outer.StartNode().(Flow)
	assert.Same(t, namespace["work"], inner.StartNode())
	assert.Same(t, namespace["cleanup"], inner.Successors()["default"])
}

func TestFromDefinitionDanglingReference(t *testing.T) {
	def := &schema.GraphDefinition{
		Entry: "a",
		Nodes: []schema.NodeDefinition{
			{ID: "a", Successors: map[string]string{"default": "ghost"}},
		},
	}

	_, _, err := FromDefinition(def)
	var ferr *schema.FlowvizError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, schema.ErrCodeValidation, ferr.Code)
	assert.Contains(t, ferr.Message, "ghost")
}

func TestFromDefinitionUnknownEntry(t *testing.T) {
	def := &schema.GraphDefinition{
		Entry: "missing",
		Nodes: []schema.NodeDefinition{{ID: "a"}},
	}

	_, _, err := FromDefinition(def)
	var ferr *schema.FlowvizError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, schema.ErrCodeValidation, ferr.Code)
}

func TestFromDefinitionYAMLRoundTrip(t *testing.T) {
	raw := []byte(`
entry: pipeline
nodes:
  - id: fetch
    successors:
      default: parse
  - id: parse
flows:
  - id: pipeline
    start: fetch
`)
	def, err := schema.ParseYAML(raw)
	require.NoError(t, err)

	entry, namespace, err := FromDefinition(def)
	require.NoError(t, err)

	f := entry.(Flow)
	assert.Same(t, namespace["fetch"], f.StartNode())
	fetch := namespace["fetch"].(Node)
	assert.Same(t, namespace["parse"], fetch.Successors()["default"])
}
