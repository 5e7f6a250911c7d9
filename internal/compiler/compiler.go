package compiler

import (
	"context"
	"fmt"
	"regexp"

	"github.com/specialistvlad/pipelineir/internal/ctxlog"
	"github.com/specialistvlad/pipelineir/internal/ir"
	"github.com/specialistvlad/pipelineir/internal/model"
	"github.com/specialistvlad/pipelineir/internal/resolve"
)

// Version is stamped into the sdkVersion of every compiled spec. It is
// overridden at link time for release builds.
var Version = "dev"

var pipelineNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{0,127}$`)

// Result is the outcome of a successful compilation.
type Result struct {
	Spec *ir.PipelineSpec
	// Warnings lists non-fatal findings, in the order they were raised.
	Warnings []string
}

// ValidatePipelineName checks that name can identify a pipeline.
func ValidatePipelineName(name string) error {
	if !pipelineNameRegex.MatchString(name) {
		return fmt.Errorf("%w %q: must consist of lower case alphanumeric characters or '-', start with an alphanumeric character and be at most 128 characters long", ErrInvalidName, name)
	}
	return nil
}

// Compile resolves the scope tree of p and emits its pipeline spec.
func Compile(ctx context.Context, p *model.Pipeline) (*Result, error) {
	ctx = ctxlog.With(ctx, "pipeline", p.Name)
	logger := ctxlog.FromContext(ctx)

	if err := ValidatePipelineName(p.Name); err != nil {
		return nil, err
	}

	logger.Debug("Compile: Resolving scope tree.")
	res, err := resolve.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	logger.Debug("Compile: Emitting pipeline spec.")
	e := newEmitter(ctx, p, res)
	spec, err := e.emit()
	if err != nil {
		return nil, err
	}

	logger.Info("Compile: Pipeline compiled.",
		"components", len(spec.Components),
		"executors", len(spec.DeploymentSpec.Executors),
		"warnings", len(e.warnings),
	)
	return &Result{Spec: spec, Warnings: e.warnings}, nil
}
