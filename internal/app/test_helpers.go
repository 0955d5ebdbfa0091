package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/vk/bluewire/internal/config"
	"github.com/vk/bluewire/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
// Batch compiles log from several workers at once.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing. Generated
// source is captured in the returned bytes.Buffer, logs in the SafeBuffer.
func SetupAppTest(t *testing.T, cfg *config.Config, modules ...registry.Module) (*App, *bytes.Buffer, *SafeBuffer) {
	t.Helper()

	outBuffer := &bytes.Buffer{}
	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"

	testApp, err := New(outBuffer, logBuffer, cfg, modules...)
	if err != nil {
		t.Fatalf("failed to construct app: %v", err)
	}

	t.Cleanup(func() {
		if os.Getenv("BLUEWIRE_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
