// Package diagram inspects an in-memory flow graph, without executing any
// of its logic, and renders the structure as a fenced mermaid flowchart:
// discovery under a node budget, per-flow body and containment resolution,
// delegation-chain entry/exit resolution, edge rewriting, and deterministic
// text emission.
package diagram

import (
	"github.com/rendis/flowviz/pkg/flow"
	"github.com/rendis/flowviz/pkg/schema"
)

// Visualize renders the graph reachable from entry as a markdown-fenced
// mermaid flowchart. The namespace maps names to objects and is used only
// to recover display labels; pass the IDs-to-objects map from
// flow.FromDefinition, or any name binding the caller keeps.
//
// The graph is treated as read-only. Recoverable problems (naming
// conflicts, unresolvable flow starts) are collected in the returned
// Diagnostics; configuration errors and a graph larger than
// Options.MaxNodes fail the call outright.
func Visualize(entry flow.Node, namespace map[string]any, opts Options) (string, *Diagnostics, error) {
	diag := newDiagnostics(opts.Logger)

	direction, err := ParseDirection(opts.Direction)
	if err != nil {
		return "", diag, err
	}
	if opts.MaxNodes <= 0 {
		return "", diag, schema.NewErrorf(schema.ErrCodeConfig, "max nodes must be a positive integer, got %d", opts.MaxNodes)
	}
	if entry == nil {
		return "", diag, schema.NewError(schema.ErrCodeConfig, "entry node is nil")
	}

	labels := newLabelResolver(namespace, diag)

	g, err := discover(entry, opts.MaxNodes)
	if err != nil {
		return "", diag, err
	}

	res := newResolver(g)
	rd := newRenderer(res, labels, diag, direction, opts.ShowDefault, opts.HighlightStarts)
	return rd.render(g.index[entry]), diag, nil
}
