package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Compile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{
		"compile", "defs/pipeline.hcl",
		"-o", "out/spec.yaml",
		"--name", "renamed",
		"--pipeline-root", "gs://bucket/root",
		"--job",
		"--param", "threshold=7",
		"--param", "query=a=b",
		"--log-level", "DEBUG",
		"--log-format", "json",
	}
	out := &bytes.Buffer{}

	// --- Act ---
	cfg, shouldExit, err := Parse(args, out)

	// --- Assert ---
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.NotNil(t, cfg)
	assert.Equal(t, "defs/pipeline.hcl", cfg.DefinitionPath)
	assert.Equal(t, "out/spec.yaml", cfg.OutputPath)
	assert.Equal(t, "renamed", cfg.PipelineName)
	assert.Equal(t, "gs://bucket/root", cfg.PipelineRoot)
	assert.True(t, cfg.Job)
	assert.Equal(t, map[string]string{"threshold": "7", "query": "a=b"}, cfg.Params)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestParse_ShouldExit(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		args     []string
		wantText string
	}{
		{name: "no arguments", args: nil, wantText: "Available Commands:"},
		{name: "root help", args: []string{"-h"}, wantText: "Usage:"},
		{name: "compile help", args: []string{"compile", "--help"}, wantText: "--pipeline-root"},
		{name: "compile without path", args: []string{"compile"}, wantText: "compile [DEFINITION_PATH]"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := &bytes.Buffer{}

			cfg, shouldExit, err := Parse(tc.args, out)

			require.NoError(t, err)
			assert.True(t, shouldExit)
			assert.Nil(t, cfg)
			assert.Contains(t, out.String(), tc.wantText)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "unknown flag", args: []string{"compile", "p.hcl", "--bogus"}, wantErr: "unknown flag: --bogus"},
		{name: "unknown command", args: []string{"deploy"}, wantErr: `unknown command "deploy"`},
		{name: "too many paths", args: []string{"compile", "a.hcl", "b.hcl"}, wantErr: "accepts at most 1 arg(s)"},
		{name: "malformed param", args: []string{"compile", "p.hcl", "--job", "--param", "novalue"}, wantErr: `invalid --param "novalue"`},
		{name: "param without job", args: []string{"compile", "p.hcl", "--param", "a=1"}, wantErr: "pipeline job"},
		{name: "bad format", args: []string{"compile", "p.hcl", "--format", "xml"}, wantErr: "unsupported output format"},
		{name: "bad output extension", args: []string{"compile", "p.hcl", "-o", "spec.txt"}, wantErr: "should end with"},
		{name: "bad log level", args: []string{"compile", "p.hcl", "--log-level", "loud"}, wantErr: "invalid log level"},
		{name: "bad log format", args: []string{"compile", "p.hcl", "--log-format", "xml"}, wantErr: "invalid log format"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, shouldExit, err := Parse(tc.args, &bytes.Buffer{})

			require.Error(t, err)
			assert.False(t, shouldExit)
			assert.Nil(t, cfg)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantErr)
		})
	}
}

func TestParseParams(t *testing.T) {
	t.Parallel()

	params, err := parseParams([]string{"a=1", " b =two", "a=3", "empty="})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "3", "b": "two", "empty": ""}, params)

	none, err := parseParams(nil)
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = parseParams([]string{"=x"})
	assert.ErrorContains(t, err, "expected key=value")
}
