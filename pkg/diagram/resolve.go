package diagram

import "github.com/rendis/flowviz/pkg/flow"

// unresolved marks a flow whose real start cannot be determined, either
// because its delegation chain cycles or because it has no start node.
const unresolved = -1

// resolver derives per-flow structure from a discovered graph: bodies,
// containment, parent chains, real starts, and exit source sets.
type resolver struct {
	g *objectGraph

	bodies    map[int]map[int]struct{} // flow idx -> body node indices
	container map[int]int              // node idx -> owning flow idx (first claim)
	parent    map[int]int              // flow idx -> parent flow idx

	realStarts map[int]int // flow idx -> resolved start idx, or unresolved

	exits       map[int]map[int]struct{}
	exitPending map[int]struct{}
}

func newResolver(g *objectGraph) *resolver {
	r := &resolver{
		g:           g,
		bodies:      make(map[int]map[int]struct{}, len(g.flows)),
		container:   make(map[int]int),
		parent:      make(map[int]int),
		realStarts:  make(map[int]int, len(g.flows)),
		exits:       make(map[int]map[int]struct{}),
		exitPending: make(map[int]struct{}),
	}
	r.resolveBodies()
	r.resolveContainment()
	return r
}

// resolveBodies computes, for each flow, the set of nodes reachable from
// its start node via successors only. Nested flows are treated as ordinary
// nodes here; their own bodies are resolved in their own right. A node may
// appear in several bodies; containment picks a single owner afterwards.
func (r *resolver) resolveBodies() {
	for _, fid := range r.g.flows {
		body := make(map[int]struct{})
		r.bodies[fid] = body

		f, _ := r.g.flowAt(fid)
		start := f.StartNode()
		if start == nil {
			continue
		}

		queue := []flow.Node{start}
		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			if curr == nil {
				continue
			}
			idx, known := r.g.index[curr]
			if !known {
				continue
			}
			if _, dup := body[idx]; dup {
				continue
			}
			body[idx] = struct{}{}

			succ := curr.Successors()
			for _, action := range sortedActions(succ) {
				if next := succ[action]; next != nil {
					queue = append(queue, next)
				}
			}
		}
	}
}

// resolveContainment assigns each node to the first flow, in discovery
// order, whose body contains it. First claim wins over nesting depth:
// discovery tends to reach outer flows before the inner flows they delegate
// to, and the resulting visual grouping is part of the output contract.
func (r *resolver) resolveContainment() {
	for _, fid := range r.g.flows {
		for nid := range r.bodies[fid] {
			if _, claimed := r.container[nid]; !claimed {
				r.container[nid] = fid
			}
		}
	}

	// A flow's parent is its own container, admitted only when that
	// container is a flow other than itself. Keeps parent pointers acyclic
	// at the self-loop level.
	for _, fid := range r.g.flows {
		c, ok := r.container[fid]
		if !ok || c == fid {
			continue
		}
		if _, isFlow := r.g.flowAt(c); isFlow {
			r.parent[fid] = c
		}
	}
}

// realStartIdx follows the flow's start-node chain while each successive
// object is itself a delegating flow, and returns the index of the first
// object that is not. A repeated identity on the chain means a delegation
// cycle; the result is unresolved.
func (r *resolver) realStartIdx(fid int) int {
	if idx, done := r.realStarts[fid]; done {
		return idx
	}

	f, _ := r.g.flowAt(fid)
	curr := f.StartNode()
	seen := make(map[int]struct{})
	for {
		cf, isFlow := curr.(flow.Flow)
		if !isFlow || cf.StartNode() == nil {
			break
		}
		cid := r.g.index[curr]
		if _, dup := seen[cid]; dup {
			r.realStarts[fid] = unresolved
			return unresolved
		}
		seen[cid] = struct{}{}
		curr = cf.StartNode()
	}

	idx := unresolved
	if curr != nil {
		idx = r.g.index[curr]
	}
	r.realStarts[fid] = idx
	return idx
}

// expanded reports whether the object at idx renders as a subgraph: a flow
// with a start node and a successfully resolved real start. Everything else
// renders as an opaque box.
func (r *resolver) expanded(idx int) bool {
	f, isFlow := r.g.flowAt(idx)
	if !isFlow || f.StartNode() == nil {
		return false
	}
	return r.realStartIdx(idx) != unresolved
}

// entryIdx resolves where an edge into idx should point: an expanded flow's
// real start, any other object itself.
func (r *resolver) entryIdx(idx int) int {
	if r.expanded(idx) {
		return r.realStartIdx(idx)
	}
	return idx
}

// exitSources resolves the set of node identities from which control can
// leave the object at idx. Non-expanded objects are their own sole exit.
// For an expanded flow, the exits are the leaves of its body, with leaf
// flows recursively replaced by their own exits. An in-progress marker
// breaks recursion cycles by short-circuiting to the flow's real start.
func (r *resolver) exitSources(idx int) map[int]struct{} {
	if !r.expanded(idx) {
		return map[int]struct{}{idx: {}}
	}
	if cached, done := r.exits[idx]; done {
		return cached
	}
	if _, pending := r.exitPending[idx]; pending {
		if rs := r.realStartIdx(idx); rs != unresolved {
			return map[int]struct{}{rs: {}}
		}
	}
	r.exitPending[idx] = struct{}{}

	// Local traversal over successors; a node with no outgoing transitions
	// is a leaf of this flow.
	f, _ := r.g.flowAt(idx)
	leaves := make(map[int]struct{})
	seen := make(map[int]struct{})
	queue := []flow.Node{f.StartNode()}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		if curr == nil {
			continue
		}
		nid, known := r.g.index[curr]
		if !known {
			continue
		}
		if _, dup := seen[nid]; dup {
			continue
		}
		seen[nid] = struct{}{}

		succ := curr.Successors()
		if len(succ) > 0 {
			for _, action := range sortedActions(succ) {
				if next := succ[action]; next != nil {
					queue = append(queue, next)
				}
			}
		} else {
			leaves[nid] = struct{}{}
		}
	}

	resolved := make(map[int]struct{})
	for lid := range leaves {
		if r.expanded(lid) {
			for eid := range r.exitSources(lid) {
				resolved[eid] = struct{}{}
			}
		} else {
			resolved[lid] = struct{}{}
		}
	}

	// No resolvable leaves: fall back to the real start, then to the flow
	// itself.
	if len(resolved) == 0 {
		if rs := r.realStartIdx(idx); rs != unresolved {
			resolved[rs] = struct{}{}
		}
	}
	if len(resolved) == 0 {
		resolved[idx] = struct{}{}
	}

	r.exits[idx] = resolved
	delete(r.exitPending, idx)
	return resolved
}
