package hclpipeline

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/pipelineir/internal/model"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

func (b *treeBuilder) task(block *hcl.Block) (*model.Task, hcl.Diagnostics) {
	var decoded taskBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &decoded); diags.HasErrors() {
		return nil, diags
	}

	t := &model.Task{
		Name:          block.Labels[0],
		DependsOn:     decoded.DependsOn,
		IsExitHandler: decoded.ExitHandler,
	}
	var diags hcl.Diagnostics

	if t.IsExitHandler && len(b.stack) > 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Nested exit handler",
			Detail:   fmt.Sprintf("Task %q sets exit_handler but is declared inside %q; exit handlers must be declared at the top level of the pipeline.", t.Name, b.stack[len(b.stack)-1].Name),
			Subject:  &block.DefRange,
		})
	}

	if isExprDefined(decoded.Inputs) {
		pairs, mapDiags := hcl.ExprMap(decoded.Inputs)
		diags = append(diags, mapDiags...)
		for _, pair := range pairs {
			var name string
			if keyDiags := gohcl.DecodeExpression(pair.Key, nil, &name); keyDiags.HasErrors() {
				// Bare identifiers are accepted as keys.
				name = hcl.ExprAsKeyword(pair.Key)
				if name == "" {
					diags = append(diags, keyDiags...)
					continue
				}
			}
			p, valueDiags := b.value(pair.Value)
			diags = append(diags, valueDiags...)
			if p != nil {
				t.Inputs = append(t.Inputs, model.Argument{Name: name, Param: p})
			}
		}
	}

	for _, out := range decoded.Outputs {
		t.Outputs = append(t.Outputs, model.Output{Name: out.Name, Type: out.Type})
	}

	executor, execDiags := b.executor(&decoded)
	diags = append(diags, execDiags...)
	t.Executor = executor

	b.logger.Debug("Built task.", "task", t.Name, "inputs", len(t.Inputs), "outputs", len(t.Outputs), "has_executor", t.Executor != nil)
	return t, diags
}

func (b *treeBuilder) executor(decoded *taskBlock) (*model.Executor, hcl.Diagnostics) {
	ex := &model.Executor{Label: decoded.Label}
	if decoded.Executor != nil {
		ex.Container = &model.Container{
			Image:   decoded.Executor.Image,
			Command: decoded.Executor.Command,
			Args:    decoded.Executor.Args,
		}
	}
	if decoded.Importer != nil {
		ex.Importer = &model.Importer{
			ArtifactURI: decoded.Importer.ArtifactURI,
			SchemaTitle: decoded.Importer.SchemaTitle,
			Reimport:    decoded.Importer.Reimport,
		}
	}
	if isExprDefined(decoded.CustomJob) {
		job, diags := customJob(decoded.CustomJob)
		if diags.HasErrors() {
			return nil, diags
		}
		ex.CustomJob = job
	}

	if ex.Container == nil && ex.Importer == nil && ex.CustomJob == nil {
		return nil, nil
	}
	return ex, nil
}

// customJob converts an object expression into a protobuf Struct by way of
// its JSON encoding.
func customJob(expr hcl.Expression) (*structpb.Struct, hcl.Diagnostics) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if !v.Type().IsObjectType() && !v.Type().IsMapType() {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid custom job",
			Detail:   fmt.Sprintf("custom_job must be an object, got %s.", v.Type().FriendlyName()),
			Subject:  expr.Range().Ptr(),
		}}
	}

	data, err := ctyjson.Marshal(v, v.Type())
	if err == nil {
		job := &structpb.Struct{}
		if err = protojson.Unmarshal(data, job); err == nil {
			return job, nil
		}
	}
	return nil, hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid custom job",
		Detail:   fmt.Sprintf("custom_job cannot be converted: %s.", err),
		Subject:  expr.Range().Ptr(),
	}}
}
