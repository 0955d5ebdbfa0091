package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ReadGeneratedFile reads a generated source file under the harness root,
// failing the test when it is missing. The path is relative to the temp
// root, e.g. "graphs/hello.go".
func ReadGeneratedFile(t *testing.T, result *HarnessResult, rel string) string {
	t.Helper()

	b, err := os.ReadFile(filepath.Join(result.Dir, rel))
	require.NoError(t, err, "expected generated file %s", rel)
	return string(b)
}
