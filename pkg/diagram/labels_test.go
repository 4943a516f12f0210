package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rendis/flowviz/pkg/flow"
)

func newTestDiagnostics() *Diagnostics {
	return newDiagnostics(nil)
}

func TestLabelFromNamespace(t *testing.T) {
	a := flow.NewNode()
	diag := newTestDiagnostics()
	r := newLabelResolver(map[string]any{"fetch": a}, diag)

	assert.Equal(t, "fetch", r.labelFor(a))
	assert.Empty(t, diag.Warnings())
}

func TestLabelMultipleNamesPicksSmallest(t *testing.T) {
	a := flow.NewNode()
	diag := newTestDiagnostics()
	r := newLabelResolver(map[string]any{"zeta": a, "alpha": a}, diag)

	assert.Equal(t, "alpha", r.labelFor(a))
	assert.Equal(t, "alpha", r.labelFor(a))

	// Warning fires once despite repeated lookups.
	warnings := diag.Warnings()
	assert.Len(t, warnings, 1)
	assert.Equal(t, WarnMultipleNames, warnings[0].Code)
	assert.Contains(t, warnings[0].Message, "alpha, zeta")
}

func TestLabelTypeNameFallbackWithCounter(t *testing.T) {
	a := flow.NewNode()
	b := flow.NewNode()
	f := flow.NewFlow(nil)
	diag := newTestDiagnostics()
	r := newLabelResolver(map[string]any{"named": flow.NewNode()}, diag)

	assert.Equal(t, "BaseNode", r.labelFor(a))
	assert.Equal(t, "BaseNode#2", r.labelFor(b))
	assert.Equal(t, "BaseFlow", r.labelFor(f))

	assert.Len(t, diag.Warnings(), 3)
	for _, w := range diag.Warnings() {
		assert.Equal(t, WarnMissingName, w.Code)
	}
}

func TestLabelEmptyNamespaceWarnsOnce(t *testing.T) {
	diag := newTestDiagnostics()
	newLabelResolver(nil, diag)

	warnings := diag.Warnings()
	assert.Len(t, warnings, 1)
	assert.Equal(t, WarnMissingNamespace, warnings[0].Code)
}

func TestLabelIgnoresNonGraphValues(t *testing.T) {
	a := flow.NewNode()
	diag := newTestDiagnostics()
	r := newLabelResolver(map[string]any{"a": a, "config": "not a node", "n": 42}, diag)

	assert.Equal(t, "a", r.labelFor(a))
	assert.Empty(t, diag.Warnings())
}
