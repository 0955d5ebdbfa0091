package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const mainTestGraph = `{
  "metadata": { "name": "hello" },
  "nodes": {
    "main_1": { "node_type": "main" },
    "print_1": { "node_type": "print_string", "properties": { "message": "Hello World" } }
  },
  "connections": [
    { "from_node": "main_1", "from_pin": "Body", "to_node": "print_1", "to_pin": "exec", "kind": "exec" }
  ]
}`

func TestRun_CompilesGraphToStdout(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	graphPath := filepath.Join(tempDir, "hello.json")
	require.NoError(t, os.WriteFile(graphPath, []byte(mainTestGraph), 0600))

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"-g", graphPath})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "// Code generated by bluewire. DO NOT EDIT.")
	require.Contains(t, out.String(), `std.PrintString("Hello World")`)
}

func TestRun_StartupErrorSurfacesCleanly(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A manifest that is valid HCL but declares an ill-formed definition, so
	// startup fails at registry validation rather than at graph compile time.
	invalidManifest := `
node "broken" {
  kind   = "pure"
  target = "std.Abs"

  exec_in "exec" {}

  input "value" {
    type = number
  }

  output "result" {
    type = number
  }
}
`
	tempDir := t.TempDir()
	defsDir := filepath.Join(tempDir, "defs")
	require.NoError(t, os.MkdirAll(defsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(defsDir, "broken.hcl"), []byte(invalidManifest), 0600))

	graphPath := filepath.Join(tempDir, "hello.json")
	require.NoError(t, os.WriteFile(graphPath, []byte(mainTestGraph), 0600))

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"-g", graphPath, "--defs", defsDir})

	// --- Assert ---
	require.Error(t, err)
	require.Contains(t, err.Error(), "registry validation failed")
	require.Empty(t, out.String(), "no source may be generated on a startup error")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should see `shouldExit=true` and return a nil error.
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should propagate the error from cli.Parse.
	err := run(out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
