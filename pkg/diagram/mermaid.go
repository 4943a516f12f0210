package diagram

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rendis/flowviz/pkg/flow"
)

// startClass styles the resolved entry node of each flow.
const startClass = "real_start"

// renderer emits the fenced mermaid document for one resolved graph.
type renderer struct {
	res    *resolver
	labels *labelResolver
	diag   *Diagnostics

	direction   Direction
	showDefault bool
	highlight   bool

	buckets map[int][]edge
	lines   []string

	renderedFlows map[int]struct{}
	renderStack   map[int]struct{}
}

func newRenderer(res *resolver, labels *labelResolver, diag *Diagnostics, direction Direction, showDefault, highlight bool) *renderer {
	return &renderer{
		res:           res,
		labels:        labels,
		diag:          diag,
		direction:     direction,
		showDefault:   showDefault,
		highlight:     highlight,
		buckets:       res.rewriteEdges(),
		renderedFlows: make(map[int]struct{}),
		renderStack:   make(map[int]struct{}),
	}
}

// render emits the full document: header, synthetic start edge, top-level
// subgraph blocks, remaining top-level nodes and edges, then highlights.
func (rd *renderer) render(entryIdx int) string {
	rd.lines = append(rd.lines, "```mermaid", fmt.Sprintf("flowchart %s", rd.direction))

	startTarget := entryIdx
	if rd.res.expanded(entryIdx) {
		startTarget = rd.res.realStartIdx(entryIdx)
	}
	rd.lines = append(rd.lines, fmt.Sprintf("  start((Start)) --> %s", nodeID(startTarget)))

	// The entry flow first, then every other top-level expanded flow in
	// discovery order.
	if rd.res.expanded(entryIdx) {
		rd.renderFlow(entryIdx, "  ")
	}
	for _, fid := range rd.res.g.flows {
		if fid == entryIdx || !rd.res.expanded(fid) {
			continue
		}
		if _, contained := rd.res.container[fid]; contained {
			continue
		}
		if _, done := rd.renderedFlows[fid]; done {
			continue
		}
		rd.renderFlow(fid, "  ")
	}

	// Top-level node declarations: anything neither expanded nor contained.
	for idx := range rd.res.g.objs {
		if rd.res.expanded(idx) {
			continue
		}
		if _, contained := rd.res.container[idx]; contained {
			continue
		}
		rd.lines = append(rd.lines, "  "+rd.nodeDef(idx))
	}
	for _, e := range rd.buckets[topLevel] {
		rd.lines = append(rd.lines, "  "+rd.edgeLine(e))
	}

	if rd.highlight {
		rd.renderHighlights()
	}

	rd.lines = append(rd.lines, "```")
	return strings.Join(rd.lines, "\n")
}

// renderFlow emits one subgraph block: the flow's direct non-expanded
// children, its expanded child flows as nested blocks, then its edge
// bucket. The active-stack guard stops infinite nesting if containment is
// ever misconfigured into a cycle.
func (rd *renderer) renderFlow(fid int, indent string) {
	if _, active := rd.renderStack[fid]; active {
		return
	}
	rd.renderStack[fid] = struct{}{}

	label := escapeLabel(rd.labels.labelFor(rd.res.g.objs[fid]))
	rd.lines = append(rd.lines, fmt.Sprintf("%ssubgraph subflow_%s[%s]", indent, nodeID(fid), label))
	inner := indent + "  "

	var plain, children []int
	for nid := range rd.res.bodies[fid] {
		if c, owned := rd.res.container[nid]; !owned || c != fid {
			continue
		}
		if rd.res.expanded(nid) {
			children = append(children, nid)
		} else {
			plain = append(plain, nid)
		}
	}
	sort.Ints(plain)
	sort.Ints(children)

	for _, nid := range plain {
		rd.lines = append(rd.lines, inner+rd.nodeDef(nid))
	}
	for _, child := range children {
		rd.renderFlow(child, inner)
	}
	for _, e := range rd.buckets[fid] {
		rd.lines = append(rd.lines, inner+rd.edgeLine(e))
	}

	rd.lines = append(rd.lines, indent+"end")
	rd.renderedFlows[fid] = struct{}{}
	delete(rd.renderStack, fid)
}

// renderHighlights marks the resolved real start of every flow. Flows whose
// start cannot be resolved warn and contribute nothing.
func (rd *renderer) renderHighlights() {
	seen := make(map[int]struct{})
	var ids []int
	for _, fid := range rd.res.g.flows {
		rs := rd.res.realStartIdx(fid)
		if rs == unresolved {
			rd.diag.warnf(WarnUnresolvedStart, "flow %s has no resolvable start node", nodeID(fid))
			continue
		}
		if _, dup := seen[rs]; dup {
			continue
		}
		seen[rs] = struct{}{}
		ids = append(ids, rs)
	}
	if len(ids) == 0 {
		return
	}
	sort.Ints(ids)

	rd.lines = append(rd.lines, fmt.Sprintf("  classDef %s stroke:#d33,stroke-width:3px,fill:#fff5f5;", startClass))
	for _, idx := range ids {
		rd.lines = append(rd.lines, fmt.Sprintf("  class %s %s", nodeID(idx), startClass))
	}
}

func (rd *renderer) nodeDef(idx int) string {
	return fmt.Sprintf("%s[\"%s\"]", nodeID(idx), escapeLabel(rd.labels.labelFor(rd.res.g.objs[idx])))
}

func (rd *renderer) edgeLine(e edge) string {
	src, tgt := nodeID(e.src), nodeID(e.tgt)
	if e.action == flow.DefaultAction && !rd.showDefault {
		return fmt.Sprintf("%s --> %s", src, tgt)
	}
	return fmt.Sprintf("%s -->|%s| %s", src, escapeEdgeLabel(e.action), tgt)
}

// nodeID is the render identity of a visit index.
func nodeID(idx int) string {
	return fmt.Sprintf("n%d", idx)
}

// escapeLabel escapes a node or subgraph label: backslashes doubled, quotes
// escaped.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// escapeEdgeLabel escapes an edge label: backslashes doubled, pipes escaped.
func escapeEdgeLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, "|", `\|`)
}
