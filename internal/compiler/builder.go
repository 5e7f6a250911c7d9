package compiler

import (
	"github.com/specialistvlad/pipelineir/internal/ir"
)

// componentBuilder accumulates one component. Maps are created on first
// use so empty sections are omitted from the encoded document.
type componentBuilder struct {
	spec ir.ComponentSpec
}

func (b *componentBuilder) declareInput(key, typeName string) {
	if b.spec.InputDefinitions == nil {
		b.spec.InputDefinitions = &ir.InterfaceSpec{}
	}
	declare(b.spec.InputDefinitions, key, typeName)
}

func (b *componentBuilder) declareOutput(key, typeName string) {
	if b.spec.OutputDefinitions == nil {
		b.spec.OutputDefinitions = &ir.InterfaceSpec{}
	}
	declare(b.spec.OutputDefinitions, key, typeName)
}

func declare(iface *ir.InterfaceSpec, key, typeName string) {
	if ir.IsParameterType(typeName) {
		if iface.Parameters == nil {
			iface.Parameters = make(map[string]*ir.ParameterSpec)
		}
		iface.Parameters[key] = &ir.ParameterSpec{Type: ir.ParameterType(typeName)}
		return
	}
	if iface.Artifacts == nil {
		iface.Artifacts = make(map[string]*ir.ArtifactSpec)
	}
	iface.Artifacts[key] = &ir.ArtifactSpec{ArtifactType: ir.ArtifactType{SchemaTitle: ir.ArtifactSchema(typeName)}}
}

func (b *componentBuilder) dag() *ir.DAGSpec {
	if b.spec.DAG == nil {
		b.spec.DAG = &ir.DAGSpec{}
	}
	return b.spec.DAG
}

func (b *componentBuilder) addTask(ts *ir.TaskSpec) {
	dag := b.dag()
	if dag.Tasks == nil {
		dag.Tasks = make(map[string]*ir.TaskSpec)
	}
	dag.Tasks[ts.TaskInfo.Name] = ts
}

func (b *componentBuilder) dagOutputs() *ir.DAGOutputsSpec {
	dag := b.dag()
	if dag.Outputs == nil {
		dag.Outputs = &ir.DAGOutputsSpec{}
	}
	return dag.Outputs
}

// exposeParameter backs the component output key with an output of a
// subtask.
func (b *componentBuilder) exposeParameter(key, subtask, outputKey string) {
	outputs := b.dagOutputs()
	if outputs.Parameters == nil {
		outputs.Parameters = make(map[string]*ir.DAGOutputParameterSpec)
	}
	outputs.Parameters[key] = &ir.DAGOutputParameterSpec{
		ValueFromParameter: ir.ParameterSelectorSpec{ProducerSubtask: subtask, OutputParameterKey: outputKey},
	}
}

// exposeArtifact adds a selector for the component output artifact key.
// Repeated selectors are ignored.
func (b *componentBuilder) exposeArtifact(key, subtask, outputKey string) {
	outputs := b.dagOutputs()
	if outputs.Artifacts == nil {
		outputs.Artifacts = make(map[string]*ir.DAGOutputArtifactSpec)
	}
	out, ok := outputs.Artifacts[key]
	if !ok {
		out = &ir.DAGOutputArtifactSpec{}
		outputs.Artifacts[key] = out
	}
	selector := ir.ArtifactSelectorSpec{ProducerSubtask: subtask, OutputArtifactKey: outputKey}
	for _, existing := range out.ArtifactSelectors {
		if existing == selector {
			return
		}
	}
	out.ArtifactSelectors = append(out.ArtifactSelectors, selector)
}

func (b *componentBuilder) build() *ir.ComponentSpec {
	spec := b.spec
	return &spec
}

// newTaskSpec creates the invocation of component inside a dag body.
func newTaskSpec(name, component string) *ir.TaskSpec {
	return &ir.TaskSpec{
		TaskInfo:     ir.TaskInfo{Name: name},
		ComponentRef: ir.ComponentRef{Name: component},
	}
}

func setParameter(ts *ir.TaskSpec, key string, in *ir.InputParameterSpec) {
	if ts.Inputs == nil {
		ts.Inputs = &ir.TaskInputsSpec{}
	}
	if ts.Inputs.Parameters == nil {
		ts.Inputs.Parameters = make(map[string]*ir.InputParameterSpec)
	}
	ts.Inputs.Parameters[key] = in
}

func setArtifact(ts *ir.TaskSpec, key string, in *ir.InputArtifactSpec) {
	if ts.Inputs == nil {
		ts.Inputs = &ir.TaskInputsSpec{}
	}
	if ts.Inputs.Artifacts == nil {
		ts.Inputs.Artifacts = make(map[string]*ir.InputArtifactSpec)
	}
	ts.Inputs.Artifacts[key] = in
}
