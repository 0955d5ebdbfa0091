package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bluewire/internal/ctxlog"
	"github.com/vk/bluewire/internal/model"
	"github.com/zclconf/go-cty/cty"
)

const sampleManifest = `
node "clamp" {
  kind        = "pure"
  category    = "Math"
  description = "Clamps a number into a closed range."
  target      = "std.Clamp"

  input "value" {
    type = number
  }
  input "min" {
    type    = number
    default = 0
  }
  input "max" {
    type    = number
    default = 1
  }

  output "result" {
    type = number
  }
}

node "repeat" {
  kind     = "control_flow"
  category = "Flow"

  input "count" {
    type = number
  }

  exec_out "Body" {
    description = "Runs once per iteration."
  }
  exec_out "Done" {}

  body = <<-EOT
    for i := 0; i < int(count); i++ {
        exec_output("Body")
    }
    exec_output("Done")
  EOT
}
`

func TestParseDefinitions(t *testing.T) {
	t.Parallel()

	defs, err := ParseDefinitions([]byte(sampleManifest), "sample.hcl")
	require.NoError(t, err)
	require.Len(t, defs, 2)

	t.Run("pure node translates fully", func(t *testing.T) {
		t.Parallel()
		clamp := defs[0]
		assert.Equal(t, "clamp", clamp.Type)
		assert.Equal(t, model.KindPure, clamp.Kind)
		assert.Equal(t, "std.Clamp", clamp.Target)
		assert.Empty(t, clamp.ExecInputs)
		assert.Empty(t, clamp.ExecOutputs)

		require.Len(t, clamp.Params, 3)
		assert.Equal(t, "value", clamp.Params[0].Name)
		assert.True(t, clamp.Params[0].Type.Equals(cty.Number))
		assert.False(t, clamp.Params[0].Optional)

		minParam := clamp.Params[1]
		require.NotNil(t, minParam.Default)
		assert.True(t, minParam.Optional, "a default should make the input optional")
		assert.True(t, minParam.Default.RawEquals(cty.NumberIntVal(0)))

		ret, ok := clamp.Return()
		require.True(t, ok)
		assert.Equal(t, "result", ret.Name)
	})

	t.Run("control flow node gets implicit exec input", func(t *testing.T) {
		t.Parallel()
		repeat := defs[1]
		assert.Equal(t, model.KindControlFlow, repeat.Kind)
		require.Len(t, repeat.ExecInputs, 1)
		assert.Equal(t, model.ImplicitExecPin, repeat.ExecInputs[0].Name)
		assert.Equal(t, []string{"Body", "Done"}, repeat.ExecOutputNames())
		assert.Contains(t, repeat.Body, `exec_output("Body")`)
	})
}

func TestParseDefinitionsRejectsBadDefault(t *testing.T) {
	t.Parallel()

	src := `
node "bad" {
  kind   = "pure"
  target = "std.Bad"
  input "n" {
    type    = number
    default = "not a number"
  }
  output "result" { type = number }
}
`
	_, err := ParseDefinitions([]byte(src), "bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not fit declared type")
}

func TestParseDefinitionsRejectsUnknownKind(t *testing.T) {
	t.Parallel()

	src := `
node "mystery" {
  kind = "quantum"
}
`
	_, err := ParseDefinitions([]byte(src), "mystery.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown node kind")
}

func TestLoadDefinitionsWalksDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`
node "one" {
  kind   = "function"
  target = "std.One"
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.hcl"), []byte(`
node "two" {
  kind   = "function"
  target = "std.Two"
}
`), 0o644))
	// A non-manifest file in the tree is ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))

	ctx := ctxlog.WithLogger(context.Background(), ctxlog.Discard())

	defs, err := LoadDefinitions(ctx, dir)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	types := []string{defs[0].Type, defs[1].Type}
	assert.ElementsMatch(t, []string{"one", "two"}, types)

	t.Run("function kind gains implicit exec pair", func(t *testing.T) {
		t.Parallel()
		for _, def := range defs {
			require.Len(t, def.ExecInputs, 1)
			require.Len(t, def.ExecOutputs, 1)
			assert.Equal(t, model.ImplicitExecPin, def.ExecInputs[0].Name)
			assert.Equal(t, model.ImplicitExecPin, def.ExecOutputs[0].Name)
		}
	})
}

func TestLoadDefinitionsSkipsMissingPath(t *testing.T) {
	t.Parallel()

	ctx := ctxlog.WithLogger(context.Background(), ctxlog.Discard())

	defs, err := LoadDefinitions(ctx, filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, defs)
}
