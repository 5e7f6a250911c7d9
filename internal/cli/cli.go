package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/pipelineir/internal/app"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Flag defaults come from the environment and an optional .env file.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	defaults := app.Defaults()

	var config *app.Config
	rootCmd := &cobra.Command{
		Use:   "pipelineir",
		Short: "Compile scope-tree pipeline definitions into pipeline IR.",
		Long: `pipelineir compiles a pipeline written as nested HCL scopes (tasks,
groups, conditions, loops and recursive references) into a flat,
deterministic pipeline spec.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	var (
		outputPath string
		params     []string
	)
	cfg := defaults
	compileCmd := &cobra.Command{
		Use:   "compile [DEFINITION_PATH]",
		Short: "Compile a pipeline definition",
		Long: `Compile a pipeline definition.

DEFINITION_PATH is a single .hcl file or a directory containing .hcl files.
Without --output the result is printed in the --format encoding; with it the
format follows the file extension (.json, .yaml or .yml). An s3://<bucket>/<key>
output is uploaded to the endpoint named by PIPELINEIR_S3_ENDPOINT.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				slog.Debug("No definition path provided, printing usage and exiting.")
				return cmd.Usage()
			}
			cfg.DefinitionPath = args[0]
			cfg.OutputPath = outputPath

			parsed, err := parseParams(params)
			if err != nil {
				return err
			}
			cfg.Params = parsed

			validated, err := app.NewConfig(cfg)
			if err != nil {
				return err
			}
			config = validated
			return nil
		},
	}

	flags := compileCmd.Flags()
	flags.StringVarP(&outputPath, "output", "o", "", "Write the compiled package to this .json, .yaml or .yml file, or upload it to an s3://<bucket>/<key> location.")
	flags.StringVar(&cfg.OutputFormat, "format", defaults.OutputFormat, "Encoding when printing to stdout: 'json' or 'yaml'.")
	flags.StringVar(&cfg.PipelineName, "name", "", "Override the pipeline name declared in the definition.")
	flags.StringVar(&cfg.PipelineRoot, "pipeline-root", defaults.PipelineRoot, "Default output location recorded in the job's runtime config.")
	flags.BoolVar(&cfg.Job, "job", false, "Emit a pipeline job (spec plus runtime config) instead of the bare spec.")
	flags.StringArrayVar(&params, "param", nil, "Pipeline parameter value as key=value for --job. Repeatable.")
	flags.StringVar(&cfg.LogLevel, "log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.StringVar(&cfg.LogFormat, "log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")

	rootCmd.AddCommand(compileCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(output)
	rootCmd.SetErr(output)

	if err := rootCmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if config == nil {
		// Help, usage or a bare invocation.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// parseParams splits repeated key=value flags. A later value for the same
// key replaces an earlier one.
func parseParams(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	params := make(map[string]string, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", kv)
		}
		params[key] = value
	}
	return params, nil
}
