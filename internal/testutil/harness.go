package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/bluewire/internal/app"
	"github.com/vk/bluewire/internal/config"
	"github.com/vk/bluewire/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration compile run.
type HarnessResult struct {
	Stdout    string // generated source, when a single graph compiles to stdout
	LogOutput string
	Err       error
	App       *app.App
	Dir       string // temp root holding the written inputs and any generated outputs
}

// RunCompile provides a standardized harness for running compile integration
// tests using a default background context.
func RunCompile(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunCompileWithConfig(context.Background(), t, files, nil, modules...)
}

// RunCompileWithConfig writes the given files under a temporary root and
// runs the full app lifecycle against them. Paths are sorted by convention:
// graph files under graphs/, manifest files under defs/, sub-graph library
// files under libs/. A single graph compiles to stdout; several compile in
// place, each next to its source. The mutate callback can adjust the config
// before validation.
func RunCompileWithConfig(ctx context.Context, t *testing.T, files map[string]string, mutate func(*config.Config), modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", ".tmp-integration-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	var graphFiles, libFiles []string
	hasDefs := false
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))

		switch {
		case strings.HasPrefix(name, "graphs/"):
			graphFiles = append(graphFiles, filePath)
		case strings.HasPrefix(name, "libs/"):
			libFiles = append(libFiles, filePath)
		case strings.HasPrefix(name, "defs/"):
			hasDefs = true
		}
	}
	sort.Strings(graphFiles)
	sort.Strings(libFiles)

	graphPath := filepath.Join(tmpDir, "graphs")
	if len(graphFiles) == 1 {
		graphPath = graphFiles[0]
	}

	cfg := config.Config{
		GraphPath:    graphPath,
		LibraryPaths: libFiles,
		LogLevel:     "debug",
		LogFormat:    "text",
		Workers:      4,
	}
	if hasDefs {
		cfg.DefsPaths = []string{filepath.Join(tmpDir, "defs")}
	}
	if mutate != nil {
		mutate(&cfg)
	}

	validated, err := config.New(cfg)
	require.NoError(t, err)

	outBuffer := &bytes.Buffer{}
	logBuffer := &SafeBuffer{}

	testApp, err := app.New(outBuffer, logBuffer, validated, modules...)
	if err != nil {
		return &HarnessResult{
			LogOutput: logBuffer.String(),
			Err:       err,
			Dir:       tmpDir,
		}
	}

	runErr := testApp.Run(ctx)

	if os.Getenv("BLUEWIRE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Stdout:    outBuffer.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
		Dir:       tmpDir,
	}
}
