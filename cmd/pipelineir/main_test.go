package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/pipelineir/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loopDefinition = `
pipeline "loop-pipeline" {
  loop "for-loop-1" {
    items = [1, 2, 3]

    task "x" {
      inputs = { value = loop.for-loop-1.item }
      executor {
        image = "alpine"
      }
    }
  }
}
`

func TestRun_CompilesToStdout(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(loopDefinition), 0o600))
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, []string{"compile", path, "--format", "yaml"})

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "name: loop-pipeline")
	assert.Contains(t, out.String(), "comp-for-loop-1")
	assert.Contains(t, logs.String(), "Compilation finished.")
	assert.NotContains(t, out.String(), "Compilation finished.", "logs stay off the document stream")
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A definition with a syntax error fails in the loader and comes back as
	// a plain error, not an ExitError.
	invalidHCL := `
		pipeline "p" {
			task "a" {
		// Missing closing braces here
	`
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(invalidHCL), 0o600))

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"compile", path})

	// --- Assert ---
	require.Error(t, err)
	var exitErr *cli.ExitError
	assert.False(t, errors.As(err, &exitErr))
	assert.Contains(t, err.Error(), "failed to load pipeline definition")
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	assert.Contains(t, logs.String(), "Usage:", "Expected help text to be printed")
	assert.Empty(t, out.String())
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{"compile", "--this-is-not-a-valid-flag"})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Message, "unknown flag: --this-is-not-a-valid-flag")
}
