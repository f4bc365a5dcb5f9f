package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/burstworld/internal/catalog"
	"github.com/specialistvlad/burstworld/internal/hcl_adapter"
	"github.com/specialistvlad/burstworld/internal/session"
	"github.com/stretchr/testify/require"
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

// HarnessResult holds the outcomes of a session test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	Session   *session.Session
}

// WriteManifest writes files (relative path -> content) under a fresh
// temporary directory and returns the directory.
func WriteManifest(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

// RunSession provides a standardized harness for running a whole session
// using a default background context.
func RunSession(t *testing.T, files map[string]string, modules ...catalog.Module) *HarnessResult {
	t.Helper()
	return RunSessionWithContext(context.Background(), t, files, modules...)
}

// RunSessionWithContext writes files as a manifest directory, creates a
// session over it with debug text logging and runs it. Startup and run
// errors, and panics, are reported in Err.
func RunSessionWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...catalog.Module) *HarnessResult {
	t.Helper()

	cfg, err := session.NewConfig(session.Config{
		ManifestPath: WriteManifest(t, files),
		LogLevel:     "debug",
		LogFormat:    "text",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	result := &HarnessResult{}

	func() {
		defer func() {
			if r := recover(); r != nil {
				if os.Getenv("BURSTWORLD_TEST_LOGS") == "true" {
					t.Logf("--- HARNESS RECOVERED PANIC ---\n%q", fmt.Sprintf("%v", r))
				}
				result.Err = fmt.Errorf("session panicked | %v", r)
			}
		}()

		s, err := session.New(ctx, logBuffer, cfg, hcl_adapter.NewLoader(), modules...)
		if err != nil {
			result.Err = err
			return
		}
		result.Session = s
		result.Err = s.Run(ctx)
	}()

	result.LogOutput = logBuffer.String()
	if os.Getenv("BURSTWORLD_TEST_LOGS") == "true" {
		t.Logf("--- SESSION LOGS ---\n%s", result.LogOutput)
	}
	return result
}
