package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectAndThen(t *testing.T) {
	a := NewNode()
	b := NewNode()
	c := NewNode()

	ret := a.Then(b)
	assert.Same(t, b, ret)
	a.Connect("retry", c)

	succ := a.Successors()
	assert.Len(t, succ, 2)
	assert.Same(t, b, succ[DefaultAction])
	assert.Same(t, c, succ["retry"])
	assert.Empty(t, b.Successors())
}

func TestConnectReplaces(t *testing.T) {
	a := NewNode()
	b := NewNode()
	c := NewNode()
	a.Then(b)
	a.Then(c)

	assert.Same(t, c, a.Successors()[DefaultAction])
	assert.Len(t, a.Successors(), 1)
}

func TestFlowStartNode(t *testing.T) {
	start := NewNode()
	f := NewFlow(start)
	assert.Same(t, start, f.StartNode())

	empty := NewFlow(nil)
	assert.Nil(t, empty.StartNode())

	other := NewNode()
	empty.SetStart(other)
	assert.Same(t, other, empty.StartNode())
}

func TestFlowIsNode(t *testing.T) {
	f := NewFlow(nil)
	next := NewNode()
	f.Connect("done", next)

	// Flows chain like any node.
	var n Node = f
	assert.Same(t, next, n.Successors()["done"])
}
