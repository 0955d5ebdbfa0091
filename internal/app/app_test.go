package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bluewire/internal/config"
)

const helloGraphJSON = `{
  "metadata": { "name": "hello" },
  "nodes": {
    "main_1": { "node_type": "main" },
    "print_1": { "node_type": "print_string", "properties": { "message": "Hello World" } }
  },
  "connections": [
    { "from_node": "main_1", "from_pin": "Body", "to_node": "print_1", "to_pin": "exec", "kind": "exec" }
  ]
}`

const helloGenerated = `// Code generated by bluewire. DO NOT EDIT.
//
// Graph: hello (2 nodes, 1 connections)

package main

import std "github.com/vk/bluewire/std"

func main() {
    std.PrintString("Hello World")
}
`

// badGraphJSON references a node type no pack registers.
const badGraphJSON = `{
  "metadata": { "name": "broken" },
  "nodes": {
    "main_1": { "node_type": "main" },
    "x_1": { "node_type": "no_such_type" }
  },
  "connections": [
    { "from_node": "main_1", "from_pin": "Body", "to_node": "x_1", "to_pin": "exec", "kind": "exec" }
  ]
}`

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func testConfig(t *testing.T, graphPath string) *config.Config {
	t.Helper()
	cfg, err := config.New(config.Config{
		GraphPath: graphPath,
		LogFormat: "text",
		Workers:   4,
	})
	require.NoError(t, err)
	return cfg
}

func TestNewRegistersCorePacks(t *testing.T) {
	t.Parallel()

	a, _, _ := SetupAppTest(t, testConfig(t, "unused.json"))

	for _, nodeType := range []string{"main", "branch", "add", "equals", "print_string", "concat"} {
		_, ok := a.Registry().Get(nodeType)
		assert.True(t, ok, "core pack should register %q", nodeType)
	}
}

func TestNewLoadsManifestDefinitions(t *testing.T) {
	t.Parallel()

	manifest := `
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
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "defs", "clamp.hcl"), manifest)

	cfg := testConfig(t, "unused.json")
	cfg.DefsPaths = []string{filepath.Join(dir, "defs")}
	a, _, _ := SetupAppTest(t, cfg)

	def, ok := a.Registry().Get("clamp_range")
	require.True(t, ok)
	assert.Equal(t, "std.Clamp", def.Target)
}

func TestNewRejectsManifestCollidingWithCorePack(t *testing.T) {
	t.Parallel()

	manifest := `
node "add" {
  kind   = "pure"
  target = "std.Add"

  input "a" {
    type = number
  }

  output "result" {
    type = number
  }
}
`
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "defs", "add.hcl"), manifest)

	cfg := testConfig(t, "unused.json")
	cfg.DefsPaths = []string{filepath.Join(dir, "defs")}

	_, err := New(&bytes.Buffer{}, &bytes.Buffer{}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load node manifests")
	assert.Contains(t, err.Error(), `node type "add" is already registered`)
}

func TestNewRejectsMalformedManifestDefinition(t *testing.T) {
	t.Parallel()

	// A pure node must not declare exec pins; registry validation runs at
	// startup, before any graph is touched.
	manifest := `
node "weird" {
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
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "defs", "weird.hcl"), manifest)

	cfg := testConfig(t, "unused.json")
	cfg.DefsPaths = []string{filepath.Join(dir, "defs")}

	_, err := New(&bytes.Buffer{}, &bytes.Buffer{}, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry validation failed")
	assert.Contains(t, err.Error(), "must not declare exec pins")
}
