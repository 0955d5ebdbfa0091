package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/bluewire/internal/model"
	"github.com/vk/bluewire/internal/testutil"
	"github.com/vk/bluewire/modules/events"
	"github.com/vk/bluewire/modules/io"
)

const clampManifest = `
node "clamp_range" {
  kind     = "pure"
  category = "Math"
  target   = "std.Clamp"

  input "value" {
    type = number
  }
  input "min" {
    type = number
  }
  input "max" {
    type = number
  }

  output "result" {
    type = number
  }
}
`

const clampGraph = `{
  "metadata": { "name": "clamped" },
  "nodes": {
    "main_1": { "node_type": "main" },
    "clamp_1": { "node_type": "clamp_range", "properties": { "value": 15, "min": 0, "max": 10 } },
    "print_1": { "node_type": "print_number" }
  },
  "connections": [
    { "from_node": "main_1", "from_pin": "Body", "to_node": "print_1", "to_pin": "exec", "kind": "exec" },
    { "from_node": "clamp_1", "from_pin": "result", "to_node": "print_1", "to_pin": "value", "kind": "data" }
  ]
}`

// goClampModule registers the same definition the manifest above declares,
// through the Go pack path instead.
func goClampModule() *testutil.SimpleModule {
	return &testutil.SimpleModule{Defs: []*model.Definition{{
		Type:     "clamp_range",
		Kind:     model.KindPure,
		Category: "Math",
		Target:   "std.Clamp",
		Params: []model.Param{
			{Name: "value", Type: cty.Number},
			{Name: "min", Type: cty.Number},
			{Name: "max", Type: cty.Number},
		},
		Outputs: []model.Output{{Name: "result", Type: cty.Number}},
	}}}
}

// Test for: a node declared in an HCL manifest compiles byte-for-byte like
// the same node registered from Go.
func TestManifestNodes_CompileIdenticallyToGoPackNodes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	viaManifest := map[string]string{
		"defs/clamp.hcl":      clampManifest,
		"graphs/clamped.json": clampGraph,
	}
	viaGoPack := map[string]string{
		"graphs/clamped.json": clampGraph,
	}

	// --- Act ---
	manifestResult := testutil.RunCompile(t, viaManifest)
	goResult := testutil.RunCompile(t, viaGoPack,
		&events.Module{}, &io.Module{}, goClampModule())

	// --- Assert ---
	require.NoError(t, manifestResult.Err)
	require.NoError(t, goResult.Err)

	assert.Contains(t, manifestResult.Stdout, "node_clamp_1_result := std.Clamp(15, 0, 10)")
	assert.Contains(t, manifestResult.Stdout, "std.PrintNumber(node_clamp_1_result)")
	assert.Equal(t, goResult.Stdout, manifestResult.Stdout,
		"registration path must not leak into generated source")
}

const unlessManifest = `
node "unless" {
  kind     = "control_flow"
  category = "Flow"

  input "condition" {
    type = bool
  }

  exec_out "Body" {
    description = "Taken when the condition is false."
  }

  body = <<-EOT
    if !condition {
        exec_output("Body")
    }
  EOT
}
`

const unlessGraph = `{
  "metadata": { "name": "guarded" },
  "nodes": {
    "main_1": { "node_type": "main" },
    "eq_1": { "node_type": "equals", "properties": { "a": 1, "b": 2 } },
    "unless_1": { "node_type": "unless" },
    "print_1": { "node_type": "print_string", "properties": { "message": "ran anyway" } }
  },
  "connections": [
    { "from_node": "main_1", "from_pin": "Body", "to_node": "unless_1", "to_pin": "exec", "kind": "exec" },
    { "from_node": "unless_1", "from_pin": "Body", "to_node": "print_1", "to_pin": "exec", "kind": "exec" },
    { "from_node": "eq_1", "from_pin": "result", "to_node": "unless_1", "to_pin": "condition", "kind": "data" }
  ]
}`

// Test for: a control_flow node declared in a manifest inlines its body
// template at the use site, exactly like the built-in flow pack does.
func TestManifestNodes_ControlFlowBodyInlines(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"defs/unless.hcl":    unlessManifest,
		"graphs/unless.json": unlessGraph,
	}

	// --- Act ---
	result := testutil.RunCompile(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)

	want := `func main() {
    // Pure node evaluations
    node_eq_1_result := std.Equals(1, 2)

    if !node_eq_1_result {
        std.PrintString("ran anyway")
    }
}`
	assert.Contains(t, result.Stdout, want)
	assert.NotContains(t, result.Stdout, "unless",
		"the node type must not appear in generated source")
}
