package diagram

import (
	"sort"

	"github.com/rendis/flowviz/pkg/flow"
	"github.com/rendis/flowviz/pkg/schema"
)

// edge is a discovered transition between visit indices.
type edge struct {
	src    int
	action string
	tgt    int
}

// objectGraph holds everything reachable from the entry object. The visit
// index assigned at first visit is the object's identity for the rest of
// the pass: map keys, edge endpoints, render IDs, and sort keys all use it.
type objectGraph struct {
	objs  []flow.Node       // discovery order
	index map[flow.Node]int // identity -> visit index
	edges []edge            // deduplicated discovery edges
	flows []int             // indices of Flow objects, in discovery order
}

// discover breadth-first walks successors (action-sorted) and flow start
// nodes from entry, visiting each distinct identity exactly once. It fails
// with BUDGET_EXCEEDED when more than maxNodes objects are found.
func discover(entry flow.Node, maxNodes int) (*objectGraph, error) {
	g := &objectGraph{index: make(map[flow.Node]int)}

	type rawEdge struct {
		src, tgt flow.Node
		action   string
	}
	edgeSet := make(map[rawEdge]struct{})
	var rawEdges []rawEdge

	queue := []flow.Node{entry}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if curr == nil {
			continue
		}
		if _, visited := g.index[curr]; visited {
			continue
		}
		g.index[curr] = len(g.objs)
		g.objs = append(g.objs, curr)
		if len(g.objs) > maxNodes {
			return nil, schema.NewErrorf(schema.ErrCodeBudgetExceeded, "max nodes exceeded: %d", maxNodes)
		}

		if f, ok := curr.(flow.Flow); ok {
			if start := f.StartNode(); start != nil {
				queue = append(queue, start)
			}
			g.flows = append(g.flows, g.index[curr])
		}

		succ := curr.Successors()
		for _, action := range sortedActions(succ) {
			next := succ[action]
			if next == nil {
				continue
			}
			e := rawEdge{src: curr, tgt: next, action: action}
			if _, dup := edgeSet[e]; !dup {
				edgeSet[e] = struct{}{}
				rawEdges = append(rawEdges, e)
			}
			queue = append(queue, next)
		}
	}

	// Every raw endpoint was enqueued, so both sides are indexed by now.
	g.edges = make([]edge, 0, len(rawEdges))
	for _, e := range rawEdges {
		g.edges = append(g.edges, edge{src: g.index[e.src], action: e.action, tgt: g.index[e.tgt]})
	}
	return g, nil
}

// flowAt returns the object at idx as a Flow, when it is one.
func (g *objectGraph) flowAt(idx int) (flow.Flow, bool) {
	f, ok := g.objs[idx].(flow.Flow)
	return f, ok
}

// sortedActions returns the action labels of a successor map in
// lexicographic order, for deterministic traversal.
func sortedActions(succ map[string]flow.Node) []string {
	actions := make([]string, 0, len(succ))
	for action := range succ {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	return actions
}
