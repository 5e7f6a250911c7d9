package compiler

import (
	"context"
	"fmt"
	"slices"

	"github.com/specialistvlad/pipelineir/internal/ctxlog"
	"github.com/specialistvlad/pipelineir/internal/ir"
	"github.com/specialistvlad/pipelineir/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// NewJob wraps a compiled spec into a runnable job. Parameter values start
// from the pipeline's declared defaults; overrides replace them by name and
// are converted to the parameter's declared type.
func NewJob(ctx context.Context, spec *ir.PipelineSpec, p *model.Pipeline, overrides map[string]string) (*ir.PipelineJob, error) {
	logger := ctxlog.FromContext(ctx)

	values := make(map[string]*ir.Value)
	for _, param := range p.Params {
		if !param.IsLiteral() {
			continue
		}
		v, err := ir.Constant(param.Value, paramType(param))
		if err != nil {
			return nil, fmt.Errorf("default of pipeline parameter %q: %w", param.Name, err)
		}
		values[param.Name] = v
	}

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		param, ok := p.Param(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
		}
		v, err := ir.Constant(cty.StringVal(overrides[name]), paramType(param))
		if err != nil {
			return nil, fmt.Errorf("value of pipeline parameter %q: %w", name, err)
		}
		values[name] = v
		logger.Debug("Job: Parameter overridden.", "parameter", name)
	}

	if p.PipelineRoot == "" {
		logger.Warn("Job: No pipeline root set, the runner's default output location will be used.")
	}

	job := &ir.PipelineJob{
		DisplayName:  spec.PipelineInfo.Name,
		PipelineSpec: spec,
		RuntimeConfig: ir.RuntimeConfig{
			GCSOutputDirectory: p.PipelineRoot,
		},
	}
	if len(values) > 0 {
		job.RuntimeConfig.Parameters = values
	}
	return job, nil
}

func paramType(p *model.Parameter) string {
	if p.Type == "" && p.IsLiteral() {
		return ir.InferType(p.Value)
	}
	return p.Type
}
