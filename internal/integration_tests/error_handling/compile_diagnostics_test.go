package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bluewire/internal/diag"
	"github.com/vk/bluewire/internal/testutil"
)

// Test for: a single compile reports every finding at once, so the editor
// can highlight all of them without replaying the run.
func TestErrorHandling_DiagnosticsAccumulate(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Two unknown node types plus a print node missing its required input.
	graph := `{
  "metadata": { "name": "messy" },
  "nodes": {
    "main_1": { "node_type": "main" },
    "ghost_1": { "node_type": "phantom" },
    "ghost_2": { "node_type": "spectre" },
    "print_1": { "node_type": "print_string" }
  },
  "connections": [
    { "from_node": "main_1", "from_pin": "Body", "to_node": "print_1", "to_pin": "exec", "kind": "exec" }
  ]
}`
	files := map[string]string{
		"graphs/messy.json": graph,
	}

	// --- Act ---
	result := testutil.RunCompile(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Empty(t, result.Stdout, "diagnostics must suppress generated output")

	list, ok := diag.AsList(result.Err)
	require.True(t, ok)
	require.Len(t, list, 3)

	assert.Equal(t, diag.NodeNotFound, list[0].Code)
	assert.Equal(t, "ghost_1", list[0].Node)
	assert.Equal(t, diag.NodeNotFound, list[1].Code)
	assert.Equal(t, "ghost_2", list[1].Node)
	assert.Equal(t, diag.MissingConnection, list[2].Code)
	assert.Equal(t, "print_1", list[2].Node)
	assert.Equal(t, "message", list[2].Pin)
}

// Test for: diagnostics render one per line, each prefixed by its code, so
// a CLI user can grep them.
func TestErrorHandling_DiagnosticRendering(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"graphs/empty.json": `{ "metadata": { "name": "empty" }, "nodes": {}, "connections": [] }`,
	}

	// --- Act ---
	result := testutil.RunCompile(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "invalid_control_flow")
	assert.Contains(t, result.Err.Error(), "no event node")
}
