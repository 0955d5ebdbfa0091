package blueprint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const sampleGraphJSON = `{
  "metadata": { "name": "hello", "version": "1" },
  "nodes": {
    "start": {
      "node_type": "main",
      "position": { "x": 10, "y": 20 },
      "outputs": [ { "name": "Body", "kind": "exec" } ]
    },
    "greet": {
      "node_type": "print_string",
      "position": { "x": 200, "y": 20 },
      "properties": { "message": "Hello World" },
      "inputs": [
        { "name": "exec", "kind": "exec" },
        { "name": "message", "kind": "data", "type": "string" }
      ],
      "outputs": [ { "name": "exec", "kind": "exec" } ]
    }
  },
  "connections": [
    { "id": "c1", "from_node": "start", "from_pin": "Body", "to_node": "greet", "to_pin": "exec", "kind": "exec" }
  ]
}`

func TestParseGraph(t *testing.T) {
	t.Parallel()

	g, err := ParseGraph([]byte(sampleGraphJSON))
	require.NoError(t, err)

	assert.Equal(t, "hello", g.Metadata.Name)
	assert.Equal(t, []string{"start", "greet"}, g.NodeIDs(), "file order is insertion order")

	greet, ok := g.Node("greet")
	require.True(t, ok)
	assert.Equal(t, "print_string", greet.Type)
	assert.Equal(t, 200.0, greet.Position.X)

	msg, ok := greet.Property("message")
	require.True(t, ok)
	assert.True(t, msg.RawEquals(cty.StringVal("Hello World")))

	pin, ok := greet.Input("message")
	require.True(t, ok)
	assert.Equal(t, PinData, pin.Kind)
	assert.True(t, pin.Type.Equals(cty.String))

	require.Len(t, g.Connections, 1)
	assert.Equal(t, PinExec, g.Connections[0].Kind)
}

func TestParseGraphNumericAndCollectionProperties(t *testing.T) {
	t.Parallel()

	src := `{
  "metadata": { "name": "props" },
  "nodes": {
    "n": {
      "node_type": "add",
      "properties": { "a": 2, "b": 3.5, "flag": true, "items": [1, 2] }
    }
  },
  "connections": []
}`
	g, err := ParseGraph([]byte(src))
	require.NoError(t, err)

	n, _ := g.Node("n")
	a, _ := n.Property("a")
	assert.True(t, a.RawEquals(cty.NumberIntVal(2)))
	b, _ := n.Property("b")
	assert.True(t, b.RawEquals(cty.NumberFloatVal(3.5)))
	flag, _ := n.Property("flag")
	assert.True(t, flag.RawEquals(cty.True))
	items, _ := n.Property("items")
	assert.True(t, items.Type().IsTupleType())
}

func TestParseGraphErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     string
		errText string
	}{
		{
			name:    "invalid json",
			src:     `{`,
			errText: "parsing graph document",
		},
		{
			name: "conflicting node id",
			src: `{"nodes": {"a": {"id": "b", "node_type": "x"}},
			      "connections": [], "metadata": {"name": ""}}`,
			errText: "conflicting id",
		},
		{
			name: "bad connection kind",
			src: `{"nodes": {}, "metadata": {"name": ""},
			      "connections": [{"from_node": "a", "from_pin": "p", "to_node": "b", "to_pin": "q", "kind": "wires"}]}`,
			errText: "unknown pin kind",
		},
		{
			name: "bad pin type expression",
			src: `{"metadata": {"name": ""}, "connections": [],
			      "nodes": {"a": {"node_type": "x", "inputs": [{"name": "v", "kind": "data", "type": "wibble"}]}}}`,
			errText: "unknown primitive type",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseGraph([]byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errText)
		})
	}
}

func TestGraphRoundTrip(t *testing.T) {
	t.Parallel()

	g, err := ParseGraph([]byte(sampleGraphJSON))
	require.NoError(t, err)

	encoded, err := EncodeGraph(g)
	require.NoError(t, err)

	reparsed, err := ParseGraph(encoded)
	require.NoError(t, err)

	assert.True(t, g.Equal(reparsed), "round trip must preserve structure and order")
}

func TestLoadGraph(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "g.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleGraphJSON), 0o644))

	g, err := LoadGraph(path)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())

	_, err = LoadGraph(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

const sampleLibraryJSON = `{
  "id": "mathlib",
  "name": "Math Macros",
  "subgraphs": [
    {
      "id": "double_add",
      "name": "Double Add",
      "inputs": [ { "name": "x", "kind": "data", "type": "number" } ],
      "outputs": [ { "name": "result", "kind": "data", "type": "number" } ],
      "graph": {
        "metadata": { "name": "double_add" },
        "nodes": {
          "entry": {
            "node_type": "graph_input",
            "outputs": [ { "name": "x", "kind": "data", "type": "number" } ]
          },
          "add": {
            "node_type": "add",
            "inputs": [
              { "name": "a", "kind": "data", "type": "number" },
              { "name": "b", "kind": "data", "type": "number" }
            ],
            "outputs": [ { "name": "result", "kind": "data", "type": "number" } ]
          },
          "exit": {
            "node_type": "graph_output",
            "inputs": [ { "name": "result", "kind": "data", "type": "number" } ]
          }
        },
        "connections": [
          { "from_node": "entry", "from_pin": "x", "to_node": "add", "to_pin": "a", "kind": "data" },
          { "from_node": "entry", "from_pin": "x", "to_node": "add", "to_pin": "b", "kind": "data" },
          { "from_node": "add", "from_pin": "result", "to_node": "exit", "to_pin": "result", "kind": "data" }
        ]
      }
    }
  ]
}`

func TestParseLibrary(t *testing.T) {
	t.Parallel()

	lib, err := ParseLibrary([]byte(sampleLibraryJSON))
	require.NoError(t, err)

	assert.Equal(t, "mathlib", lib.ID)
	require.Len(t, lib.SubGraphs, 1)

	sub, ok := lib.Get("double_add")
	require.True(t, ok)
	assert.Equal(t, "Double Add", sub.Name)
	require.Len(t, sub.Inputs, 1)
	assert.True(t, sub.Inputs[0].Type.Equals(cty.Number))

	entry, ok := sub.EntryNode()
	require.True(t, ok)
	assert.Equal(t, "entry", entry.ID)
	exit, ok := sub.ExitNode()
	require.True(t, ok)
	assert.Equal(t, "exit", exit.ID)

	assert.Empty(t, sub.Instantiated())
}

func TestParseLibraryRejectsMissingInterfaceNodes(t *testing.T) {
	t.Parallel()

	src := `{
  "id": "broken",
  "name": "Broken",
  "subgraphs": [
    {
      "id": "no_entry",
      "name": "No Entry",
      "graph": { "metadata": { "name": "x" }, "nodes": {}, "connections": [] }
    }
  ]
}`
	_, err := ParseLibrary([]byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "graph_input")
}

func TestLibraryMerge(t *testing.T) {
	t.Parallel()

	a, err := ParseLibrary([]byte(sampleLibraryJSON))
	require.NoError(t, err)
	b, err := ParseLibrary([]byte(strings.ReplaceAll(sampleLibraryJSON, "double_add", "triple_add")))
	require.NoError(t, err)

	require.NoError(t, a.Merge(b))
	assert.Len(t, a.SubGraphs, 2)

	t.Run("duplicate ids rejected", func(t *testing.T) {
		t.Parallel()
		c, err := ParseLibrary([]byte(sampleLibraryJSON))
		require.NoError(t, err)
		d, err := ParseLibrary([]byte(sampleLibraryJSON))
		require.NoError(t, err)
		err = c.Merge(d)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate sub-graph id")
	})
}

func TestLoadLibrary(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lib.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleLibraryJSON), 0o644))

	lib, err := LoadLibrary(path)
	require.NoError(t, err)
	assert.Equal(t, "mathlib", lib.ID)
}
