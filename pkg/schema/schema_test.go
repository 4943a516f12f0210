package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowvizError(t *testing.T) {
	err := NewErrorf(ErrCodeConfig, "bad value: %d", 7)
	assert.Equal(t, "[CONFIG_ERROR] bad value: 7", err.Error())

	cause := errors.New("root cause")
	wrapped := NewError(ErrCodeValidation, "outer").WithCause(cause)
	assert.ErrorIs(t, wrapped, cause)

	detailed := NewError(ErrCodeValidation, "v").WithDetails(map[string]any{"k": 1})
	assert.Equal(t, 1, detailed.Details["k"])
}

func TestParseJSON(t *testing.T) {
	raw := []byte(`{
		"entry": "main",
		"nodes": [{"id": "a", "successors": {"default": "b"}}, {"id": "b"}],
		"flows": [{"id": "main", "start": "a"}]
	}`)

	def, err := ParseJSON(raw)
	require.NoError(t, err)
	assert.Equal(t, "main", def.Entry)
	require.Len(t, def.Nodes, 2)
	assert.Equal(t, "b", def.Nodes[0].Successors["default"])
	require.Len(t, def.Flows, 1)
	assert.Equal(t, "a", def.Flows[0].Start)
}

func TestParseJSONInvalid(t *testing.T) {
	_, err := ParseJSON([]byte(`{not json`))
	var ferr *FlowvizError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, ErrCodeValidation, ferr.Code)
}

func TestParseYAML(t *testing.T) {
	raw := []byte(`
entry: main
flows:
  - id: main
    start: a
nodes:
  - id: a
`)
	def, err := ParseYAML(raw)
	require.NoError(t, err)
	assert.Equal(t, "main", def.Entry)
	require.Len(t, def.Flows, 1)
	assert.Equal(t, "a", def.Flows[0].Start)
}

func TestParseYAMLInvalid(t *testing.T) {
	_, err := ParseYAML([]byte("entry: [unclosed"))
	var ferr *FlowvizError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, ErrCodeValidation, ferr.Code)
}
