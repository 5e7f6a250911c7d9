package compiler

import (
	"github.com/specialistvlad/pipelineir/internal/ir"
	"github.com/specialistvlad/pipelineir/internal/model"
)

// registerExecutor records the executor of t under its label and returns
// the label, or "" when t has nothing to run. The first executor registered
// under a label is kept. A custom job takes precedence over a container.
func (e *emitter) registerExecutor(t *model.Task) string {
	ex := t.Executor
	if ex == nil {
		return ""
	}

	var spec *ir.ExecutorSpec
	switch {
	case ex.CustomJob != nil:
		spec = &ir.ExecutorSpec{CustomJob: &ir.CustomJobSpec{CustomJob: ex.CustomJob}}
	case ex.Container != nil:
		spec = &ir.ExecutorSpec{Container: &ir.ContainerSpec{
			Image:   ex.Container.Image,
			Command: ex.Container.Command,
			Args:    ex.Container.Args,
		}}
	case ex.Importer != nil:
		spec = &ir.ExecutorSpec{Importer: &ir.ImporterSpec{
			ArtifactURI: ir.RuntimeValue{ConstantValue: ir.StringConstant(ex.Importer.ArtifactURI)},
			TypeSchema:  ir.ArtifactType{SchemaTitle: ir.ArtifactSchema(ex.Importer.SchemaTitle)},
			Reimport:    ex.Importer.Reimport,
		}}
	default:
		return ""
	}

	label := ex.Label
	if label == "" {
		label = ir.ExecutorLabel(t.Name)
	}
	if _, ok := e.executors[label]; !ok {
		e.executors[label] = spec
		e.logger.Debug("Emit: Executor registered.", "label", label, "task", t.Name)
	}
	return label
}
