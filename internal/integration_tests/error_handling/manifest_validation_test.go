package integration_tests

import (
	"strings"
	"testing"

	"github.com/vk/bluewire/internal/testutil"
)

// Test for: startup fails when a manifest gives a pure definition a body
// template with an exec slot. Pure nodes pre-evaluate into variables; they
// have no execution wiring to route.
func TestErrorHandling_PureDefinitionWithExecSlot_FailsStartup(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	manifestHCL := `
node "sneaky" {
  kind   = "pure"
  target = "std.Abs"

  input "value" {
    type = number
  }

  output "result" {
    type = number
  }

  body = <<-EOT
    exec_output("Then")
  EOT
}
`
	files := map[string]string{
		"defs/sneaky.hcl": manifestHCL,
		"graphs/any.json": `{ "metadata": { "name": "any" }, "nodes": {}, "connections": [] }`,
	}

	// --- Act ---
	result := testutil.RunCompile(t, files)

	// --- Assert ---
	if result.Err == nil {
		t.Fatal("startup should have failed for a pure definition with a body, but it did not")
	}

	errStr := result.Err.Error()
	if !strings.Contains(errStr, "registry validation failed") {
		t.Errorf("expected a registry validation error, got: %v", result.Err)
	}
	if !strings.Contains(errStr, "pure kind does not take a body template") {
		t.Errorf("expected the pure-body violation to be named, got: %v", result.Err)
	}
}

// Test for: every violation in a manifest is reported in one pass, not one
// per run.
func TestErrorHandling_ManifestViolationsAggregate(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	manifestHCL := `
node "first" {
  kind   = "pure"
  target = "std.Abs"

  input "value" {
    type = number
  }
}

node "second" {
  kind = "function"

  input "value" {
    type = number
  }
}
`
	files := map[string]string{
		"defs/bad.hcl":    manifestHCL,
		"graphs/any.json": `{ "metadata": { "name": "any" }, "nodes": {}, "connections": [] }`,
	}

	// --- Act ---
	result := testutil.RunCompile(t, files)

	// --- Assert ---
	if result.Err == nil {
		t.Fatal("startup should have failed, but it did not")
	}

	errStr := result.Err.Error()
	for _, want := range []string{
		"node 'first'",
		"node 'second'",
	} {
		if !strings.Contains(errStr, want) {
			t.Errorf("expected aggregated error to mention %q, got: %v", want, result.Err)
		}
	}
}
