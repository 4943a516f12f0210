// Package flow defines the structural graph model consumed by pkg/diagram:
// nodes with labeled transitions, and flows that delegate to an internal
// start node. The model is purely structural; nothing in this module ever
// executes or mutates a graph.
package flow

// DefaultAction is the action label used for unlabeled transitions.
const DefaultAction = "default"

// Node is a unit exposing labeled transitions to successor units.
// Implementations must be comparable (pointer receivers are the norm);
// identity, not structure, distinguishes two nodes.
type Node interface {
	// Successors maps action labels to next nodes. A nil or empty map means
	// the node is terminal. Entries with nil values are ignored.
	Successors() map[string]Node
}

// Flow is a Node that delegates to an internal entry point, representing a
// composite subgraph. A nil StartNode declares a flow with an empty body.
type Flow interface {
	Node
	StartNode() Node
}

// BaseNode is a ready-made Node for building graphs in code.
type BaseNode struct {
	succ map[string]Node
}

// NewNode creates an unconnected node.
func NewNode() *BaseNode {
	return &BaseNode{}
}

func (n *BaseNode) Successors() map[string]Node {
	return n.succ
}

// Connect wires next as the successor for the given action, replacing any
// previous successor under that action.
func (n *BaseNode) Connect(action string, next Node) {
	if n.succ == nil {
		n.succ = make(map[string]Node)
	}
	n.succ[action] = next
}

// Then wires next under the default action and returns next for chaining.
func (n *BaseNode) Then(next Node) Node {
	n.Connect(DefaultAction, next)
	return next
}

// BaseFlow is a ready-made Flow. It is itself a node, so flows nest and
// chain like any other node.
type BaseFlow struct {
	BaseNode
	start Node
}

// NewFlow creates a flow delegating to start. A nil start is allowed and
// declares a flow with an empty body.
func NewFlow(start Node) *BaseFlow {
	return &BaseFlow{start: start}
}

func (f *BaseFlow) StartNode() Node {
	return f.start
}

// SetStart replaces the flow's delegation target. Needed when wiring graphs
// whose flows reference each other.
func (f *BaseFlow) SetStart(start Node) {
	f.start = start
}
