package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/burstworld/internal/cli"
	"github.com/specialistvlad/burstworld/internal/hcl_adapter"
	"github.com/specialistvlad/burstworld/internal/yaml_adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestRun_HCLManifest(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeFile(t, t.TempDir(), "main.hcl", `
		app {
			ticks = 3
		}
		plugin "clock" {}
		plugin "print" {}
	`)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{"--log-format", "text", path})

	// --- Assert ---
	require.NoError(t, err, out.String())
	assert.Contains(t, out.String(), "Session ready.")
	assert.Contains(t, out.String(), "frame=3")
}

func TestRun_YAMLManifest(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "world.yaml", "plugins:\n  - name: transform\n")
	out := &bytes.Buffer{}

	err := run(out, []string{"--log-format", "text", "--ticks", "2", path})

	require.NoError(t, err, out.String())
	assert.Contains(t, out.String(), "App finished.")
	assert.Contains(t, out.String(), "ticks=2")
}

func TestRun_StartupError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	invalidHCL := `
		plugin "print" {
			settings = {
		// Missing closing brace here
	`
	path := writeFile(t, t.TempDir(), "main.hcl", invalidHCL)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{path})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load manifest")
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"--this-is-not-a-valid-flag"})

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "got %v", err)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "unknown flag: --this-is-not-a-valid-flag")
}

func TestLoaderFor(t *testing.T) {
	t.Parallel()

	yamlDir := t.TempDir()
	writeFile(t, yamlDir, "a.yml", "")

	mixedDir := t.TempDir()
	writeFile(t, mixedDir, "a.yaml", "")
	writeFile(t, mixedDir, "b.hcl", "")

	assert.IsType(t, &yaml_adapter.Loader{}, loaderFor("world.yaml"))
	assert.IsType(t, &yaml_adapter.Loader{}, loaderFor(yamlDir))
	assert.IsType(t, &hcl_adapter.Loader{}, loaderFor(mixedDir))
	assert.IsType(t, &hcl_adapter.Loader{}, loaderFor("main.hcl"))
	assert.IsType(t, &hcl_adapter.Loader{}, loaderFor(filepath.Join(yamlDir, "missing")))
}
