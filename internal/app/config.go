package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/pipelineir/internal/compiler"
	"github.com/specialistvlad/pipelineir/internal/ir"
	"github.com/specialistvlad/pipelineir/internal/publish"
)

// Environment variables consulted for configuration defaults.
const (
	EnvLogLevel     = "PIPELINEIR_LOG_LEVEL"
	EnvLogFormat    = "PIPELINEIR_LOG_FORMAT"
	EnvOutputFormat = "PIPELINEIR_OUTPUT_FORMAT"
	EnvPipelineRoot = "PIPELINEIR_PIPELINE_ROOT"

	EnvS3Endpoint  = "PIPELINEIR_S3_ENDPOINT"
	EnvS3Region    = "PIPELINEIR_S3_REGION"
	EnvS3AccessKey = "PIPELINEIR_S3_ACCESS_KEY"
	EnvS3SecretKey = "PIPELINEIR_S3_SECRET_KEY"
	EnvS3UseSSL    = "PIPELINEIR_S3_USE_SSL"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DefinitionPath string // .hcl file or directory

	// OutputPath is the package file to write, or an s3://bucket/key
	// location. Empty means the output writer, encoded as OutputFormat.
	OutputPath   string
	OutputFormat string
	// S3 addresses the object storage used for s3:// outputs.
	S3 publish.Config

	// PipelineName overrides the name declared in the definition.
	PipelineName string
	PipelineRoot string

	// Job wraps the compiled spec into a pipeline job with runtime
	// parameter values.
	Job    bool
	Params map[string]string

	LogFormat string
	LogLevel  string
}

// Defaults returns the configuration defaults. Values come from the
// environment after loading envFiles (".env" when none are given) with
// godotenv; a missing file is skipped, an unreadable or malformed one is
// logged and skipped. Variables already set in the environment win over
// file contents.
func Defaults(envFiles ...string) Config {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Ignoring env file.", "files", envFiles, "error", err)
	}

	return Config{
		OutputFormat: envOr(EnvOutputFormat, string(ir.FormatJSON)),
		PipelineRoot: strings.TrimSpace(os.Getenv(EnvPipelineRoot)),
		LogFormat:    envOr(EnvLogFormat, "text"),
		LogLevel:     envOr(EnvLogLevel, "info"),
		S3: publish.Config{
			Endpoint:  strings.TrimSpace(os.Getenv(EnvS3Endpoint)),
			Region:    strings.TrimSpace(os.Getenv(EnvS3Region)),
			AccessKey: strings.TrimSpace(os.Getenv(EnvS3AccessKey)),
			SecretKey: strings.TrimSpace(os.Getenv(EnvS3SecretKey)),
			UseSSL:    envBool(EnvS3UseSSL, true),
		},
	}
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// NewConfig validates cfg and returns a normalized copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DefinitionPath == "" {
		return nil, errors.New("DefinitionPath is a required configuration field and cannot be empty")
	}

	if err := validateOutput(cfg); err != nil {
		return nil, err
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = string(ir.FormatJSON)
	}
	format, err := ir.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return nil, err
	}
	cfg.OutputFormat = string(format)

	if cfg.PipelineName != "" {
		if err := compiler.ValidatePipelineName(cfg.PipelineName); err != nil {
			return nil, err
		}
	}
	if len(cfg.Params) > 0 && !cfg.Job {
		return nil, errors.New("parameter values can only be set when compiling a pipeline job")
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	return &cfg, nil
}

func validateOutput(cfg Config) error {
	if !publish.IsRemote(cfg.OutputPath) {
		if cfg.OutputPath == "" {
			return nil
		}
		_, err := ir.FormatForPath(cfg.OutputPath)
		return err
	}

	loc, err := publish.ParseURI(cfg.OutputPath)
	if err != nil {
		return err
	}
	if _, err := ir.FormatForPath(loc.Key); err != nil {
		return err
	}
	if err := cfg.S3.Validate(); err != nil {
		return fmt.Errorf("output %s: %w", cfg.OutputPath, err)
	}
	return nil
}
