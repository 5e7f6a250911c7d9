package app

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/pipelineir/internal/publish"
	"github.com/specialistvlad/pipelineir/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var s3Creds = publish.Config{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "b"}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	t.Run("normalizes defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := NewConfig(Config{DefinitionPath: "p.hcl", OutputFormat: "YML", LogLevel: "DEBUG"})

		require.NoError(t, err)
		assert.Equal(t, "yaml", cfg.OutputFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("accepts remote output", func(t *testing.T) {
		t.Parallel()

		cfg, err := NewConfig(Config{DefinitionPath: "p.hcl", OutputPath: "s3://bucket/team/spec.yaml", S3: s3Creds})

		require.NoError(t, err)
		assert.Equal(t, "s3://bucket/team/spec.yaml", cfg.OutputPath)
	})

	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "missing definition", cfg: Config{}, wantErr: "DefinitionPath is a required"},
		{name: "bad output extension", cfg: Config{DefinitionPath: "p.hcl", OutputPath: "out.txt"}, wantErr: `should end with ".json"`},
		{name: "bad remote location", cfg: Config{DefinitionPath: "p.hcl", OutputPath: "s3://bucket"}, wantErr: "expected s3://<bucket>/<key>"},
		{name: "bad remote extension", cfg: Config{DefinitionPath: "p.hcl", OutputPath: "s3://bucket/spec.txt", S3: s3Creds}, wantErr: `should end with ".json"`},
		{name: "remote without credentials", cfg: Config{DefinitionPath: "p.hcl", OutputPath: "s3://bucket/spec.json"}, wantErr: "s3 endpoint is required"},
		{name: "bad output format", cfg: Config{DefinitionPath: "p.hcl", OutputFormat: "xml"}, wantErr: "unsupported output format"},
		{name: "bad pipeline name", cfg: Config{DefinitionPath: "p.hcl", PipelineName: "Bad_Name"}, wantErr: "Bad_Name"},
		{name: "params without job", cfg: Config{DefinitionPath: "p.hcl", Params: map[string]string{"a": "1"}}, wantErr: "pipeline job"},
		{name: "bad log format", cfg: Config{DefinitionPath: "p.hcl", LogFormat: "xml"}, wantErr: "invalid log format"},
		{name: "bad log level", cfg: Config{DefinitionPath: "p.hcl", LogLevel: "verbose"}, wantErr: "invalid log level"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := NewConfig(tc.cfg)

			assert.Nil(t, cfg)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

var allEnv = []string{
	EnvLogLevel, EnvLogFormat, EnvOutputFormat, EnvPipelineRoot,
	EnvS3Endpoint, EnvS3Region, EnvS3AccessKey, EnvS3SecretKey, EnvS3UseSSL,
}

// unsetEnv clears key for the duration of the test and restores it after.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestDefaults(t *testing.T) {
	// --- Arrange ---
	for _, key := range allEnv {
		unsetEnv(t, key)
	}
	t.Setenv(EnvLogLevel, "warn")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		EnvLogLevel+"=debug\n"+
			EnvOutputFormat+"=yaml\n"+
			EnvPipelineRoot+"=gs://bucket/root\n"+
			EnvS3Endpoint+"=minio:9000\n"+
			EnvS3UseSSL+"=false\n",
	), 0o644))

	// --- Act ---
	cfg := Defaults(envFile)

	// --- Assert ---
	assert.Equal(t, "warn", cfg.LogLevel, "the environment wins over the file")
	assert.Equal(t, "yaml", cfg.OutputFormat)
	assert.Equal(t, "gs://bucket/root", cfg.PipelineRoot)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, publish.Config{Endpoint: "minio:9000", UseSSL: false}, cfg.S3)
}

func TestDefaults_MissingFile(t *testing.T) {
	for _, key := range allEnv {
		unsetEnv(t, key)
	}

	cfg := Defaults(filepath.Join(t.TempDir(), "missing.env"))

	assert.Equal(t, Config{
		OutputFormat: "json",
		LogFormat:    "text",
		LogLevel:     "info",
		S3:           publish.Config{UseSSL: true},
	}, cfg)
}

func TestDefaults_MalformedFileWarns(t *testing.T) {
	// --- Arrange ---
	for _, key := range allEnv {
		unsetEnv(t, key)
	}
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("bad-line\n"), 0o644))

	logs := &testutil.SafeBuffer{}
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(logs, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	// --- Act ---
	cfg := Defaults(envFile)

	// --- Assert ---
	assert.Equal(t, "info", cfg.LogLevel, "defaults still apply")
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "Ignoring env file.")
}

func TestDefaults_MissingFileIsSilent(t *testing.T) {
	// --- Arrange ---
	logs := &testutil.SafeBuffer{}
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(logs, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	// --- Act ---
	Defaults(filepath.Join(t.TempDir(), "missing.env"))

	// --- Assert ---
	assert.Empty(t, logs.String())
}
