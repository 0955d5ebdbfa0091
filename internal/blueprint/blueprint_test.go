package blueprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func newTestGraph(t *testing.T) *Graph {
	t.Helper()

	g := NewGraph(Metadata{Name: "test"})
	require.NoError(t, g.AddNode(&Node{
		ID:   "start",
		Type: "main",
		Outputs: []*Pin{
			{Name: "Body", Kind: PinExec},
		},
	}))
	require.NoError(t, g.AddNode(&Node{
		ID:   "greet",
		Type: "print_string",
		Properties: map[string]cty.Value{
			"message": cty.StringVal("hi"),
		},
		Inputs: []*Pin{
			{Name: "exec", Kind: PinExec},
			{Name: "message", Kind: PinData, Type: cty.String},
		},
		Outputs: []*Pin{
			{Name: "exec", Kind: PinExec},
		},
	}))
	g.AddConnection(&Connection{
		ID: "c1", FromNode: "start", FromPin: "Body", ToNode: "greet", ToPin: "exec", Kind: PinExec,
	})
	return g
}

func TestGraphAddNode(t *testing.T) {
	t.Parallel()

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()
		g := newTestGraph(t)
		assert.Equal(t, []string{"start", "greet"}, g.NodeIDs())
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		t.Parallel()
		g := newTestGraph(t)
		err := g.AddNode(&Node{ID: "start", Type: "main"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate node id")
	})

	t.Run("rejects empty id", func(t *testing.T) {
		t.Parallel()
		g := NewGraph(Metadata{})
		require.Error(t, g.AddNode(&Node{Type: "main"}))
	})
}

func TestGraphRemoveNode(t *testing.T) {
	t.Parallel()

	g := newTestGraph(t)
	g.RemoveNode("start")

	assert.Equal(t, []string{"greet"}, g.NodeIDs())
	_, ok := g.Node("start")
	assert.False(t, ok)

	// Connections are intentionally left for the caller to rewire.
	assert.Len(t, g.Connections, 1)
}

func TestGraphCloneIsDeep(t *testing.T) {
	t.Parallel()

	g := newTestGraph(t)
	c := g.Clone()
	require.True(t, g.Equal(c))

	// Mutating the clone must not leak into the original.
	cloneNode, ok := c.Node("greet")
	require.True(t, ok)
	cloneNode.Properties["message"] = cty.StringVal("changed")
	cloneNode.Inputs[1].Name = "renamed"
	c.Connections[0].ToPin = "elsewhere"
	c.RemoveNode("start")

	origNode, ok := g.Node("greet")
	require.True(t, ok)
	assert.True(t, origNode.Properties["message"].RawEquals(cty.StringVal("hi")))
	assert.Equal(t, "message", origNode.Inputs[1].Name)
	assert.Equal(t, "exec", g.Connections[0].ToPin)
	assert.Equal(t, []string{"start", "greet"}, g.NodeIDs())
}

func TestGraphEqual(t *testing.T) {
	t.Parallel()

	t.Run("equal graphs", func(t *testing.T) {
		t.Parallel()
		assert.True(t, newTestGraph(t).Equal(newTestGraph(t)))
	})

	t.Run("different property values", func(t *testing.T) {
		t.Parallel()
		a := newTestGraph(t)
		b := newTestGraph(t)
		n, _ := b.Node("greet")
		n.Properties["message"] = cty.StringVal("bye")
		assert.False(t, a.Equal(b))
	})

	t.Run("different connection lists", func(t *testing.T) {
		t.Parallel()
		a := newTestGraph(t)
		b := newTestGraph(t)
		b.AddConnection(&Connection{ID: "c2", FromNode: "greet", FromPin: "exec", ToNode: "start", ToPin: "Body", Kind: PinExec})
		assert.False(t, a.Equal(b))
	})
}

func TestConnectionLookups(t *testing.T) {
	t.Parallel()

	g := newTestGraph(t)
	g.AddConnection(&Connection{ID: "c2", FromNode: "start", FromPin: "Body", ToNode: "greet", ToPin: "exec", Kind: PinExec})

	from := g.ConnectionsFrom("start")
	require.Len(t, from, 2)
	assert.Equal(t, "c1", from[0].ID, "declaration order must be preserved")
	assert.Equal(t, "c2", from[1].ID)

	to := g.ConnectionsTo("greet")
	require.Len(t, to, 2)

	assert.Empty(t, g.ConnectionsFrom("greet"))
}

func TestIncomingData(t *testing.T) {
	t.Parallel()

	g := newTestGraph(t)
	require.NoError(t, g.AddNode(&Node{
		ID:   "name",
		Type: "string_literal",
		Outputs: []*Pin{
			{Name: "result", Kind: PinData, Type: cty.String},
		},
	}))
	g.AddConnection(&Connection{
		ID: "d1", FromNode: "name", FromPin: "result", ToNode: "greet", ToPin: "message", Kind: PinData,
	})

	conn := g.IncomingData("greet", "message")
	require.NotNil(t, conn)
	assert.Equal(t, "d1", conn.ID)

	assert.Nil(t, g.IncomingData("greet", "exec"), "exec connections are not data sources")
	assert.Nil(t, g.IncomingData("greet", "missing"))
}

func TestNodeSubGraphID(t *testing.T) {
	t.Parallel()

	n := &Node{ID: "i1", Type: "subgraph:clamp01"}
	id, ok := n.SubGraphID()
	require.True(t, ok)
	assert.Equal(t, "clamp01", id)
	assert.True(t, n.IsSubGraph())

	plain := &Node{ID: "i2", Type: "add"}
	_, ok = plain.SubGraphID()
	assert.False(t, ok)
}

func TestFilterConnections(t *testing.T) {
	t.Parallel()

	g := newTestGraph(t)
	g.AddConnection(&Connection{ID: "c2", FromNode: "greet", FromPin: "exec", ToNode: "start", ToPin: "Body", Kind: PinExec})

	g.FilterConnections(func(c *Connection) bool { return c.FromNode != "greet" })

	require.Len(t, g.Connections, 1)
	assert.Equal(t, "c1", g.Connections[0].ID)
}
