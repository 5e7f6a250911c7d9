package ir

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// SchemaVersion is the pipeline spec schema version emitted by the compiler.
const SchemaVersion = "2.0.0"

// PipelineSpec is the compiled pipeline.
type PipelineSpec struct {
	PipelineInfo   PipelineInfo              `json:"pipelineInfo" yaml:"pipelineInfo"`
	SDKVersion     string                    `json:"sdkVersion" yaml:"sdkVersion"`
	SchemaVersion  string                    `json:"schemaVersion" yaml:"schemaVersion"`
	Components     map[string]*ComponentSpec `json:"components,omitempty" yaml:"components,omitempty"`
	Root           *ComponentSpec            `json:"root" yaml:"root"`
	DeploymentSpec DeploymentSpec            `json:"deploymentSpec" yaml:"deploymentSpec"`
}

// PipelineInfo carries the pipeline identity.
type PipelineInfo struct {
	Name string `json:"name" yaml:"name"`
}

// DeploymentSpec is the executor registry.
type DeploymentSpec struct {
	Executors map[string]*ExecutorSpec `json:"executors,omitempty" yaml:"executors,omitempty"`
}

// ComponentSpec is a reusable template. Its body is either an executor
// reference (leaf) or a DAG of task specs.
type ComponentSpec struct {
	InputDefinitions  *InterfaceSpec `json:"inputDefinitions,omitempty" yaml:"inputDefinitions,omitempty"`
	OutputDefinitions *InterfaceSpec `json:"outputDefinitions,omitempty" yaml:"outputDefinitions,omitempty"`
	DAG               *DAGSpec       `json:"dag,omitempty" yaml:"dag,omitempty"`
	ExecutorLabel     string         `json:"executorLabel,omitempty" yaml:"executorLabel,omitempty"`
}

// InterfaceSpec declares the parameters and artifacts of one side of a
// component.
type InterfaceSpec struct {
	Parameters map[string]*ParameterSpec `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Artifacts  map[string]*ArtifactSpec  `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
}

// ParameterSpec declares a parameter.
type ParameterSpec struct {
	Type PrimitiveType `json:"type" yaml:"type"`
}

// ArtifactSpec declares an artifact.
type ArtifactSpec struct {
	ArtifactType ArtifactType `json:"artifactType" yaml:"artifactType"`
}

// ArtifactType identifies an artifact schema.
type ArtifactType struct {
	SchemaTitle string `json:"schemaTitle" yaml:"schemaTitle"`
}

// DAGSpec is the body of a non-leaf component.
type DAGSpec struct {
	Tasks   map[string]*TaskSpec `json:"tasks,omitempty" yaml:"tasks,omitempty"`
	Outputs *DAGOutputsSpec      `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// DAGOutputsSpec maps component outputs to the subtasks producing them.
type DAGOutputsSpec struct {
	Parameters map[string]*DAGOutputParameterSpec `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Artifacts  map[string]*DAGOutputArtifactSpec  `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
}

// DAGOutputParameterSpec selects the subtask output backing a component
// output parameter.
type DAGOutputParameterSpec struct {
	ValueFromParameter ParameterSelectorSpec `json:"valueFromParameter" yaml:"valueFromParameter"`
}

// ParameterSelectorSpec points at an output parameter of a subtask.
type ParameterSelectorSpec struct {
	ProducerSubtask    string `json:"producerSubtask" yaml:"producerSubtask"`
	OutputParameterKey string `json:"outputParameterKey" yaml:"outputParameterKey"`
}

// DAGOutputArtifactSpec selects the subtask outputs backing a component
// output artifact.
type DAGOutputArtifactSpec struct {
	ArtifactSelectors []ArtifactSelectorSpec `json:"artifactSelectors" yaml:"artifactSelectors"`
}

// ArtifactSelectorSpec points at an output artifact of a subtask.
type ArtifactSelectorSpec struct {
	ProducerSubtask   string `json:"producerSubtask" yaml:"producerSubtask"`
	OutputArtifactKey string `json:"outputArtifactKey" yaml:"outputArtifactKey"`
}

// TaskSpec is one invocation of a component inside a DAG body.
type TaskSpec struct {
	TaskInfo          TaskInfo           `json:"taskInfo" yaml:"taskInfo"`
	Inputs            *TaskInputsSpec    `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	DependentTasks    []string           `json:"dependentTasks,omitempty" yaml:"dependentTasks,omitempty"`
	ComponentRef      ComponentRef       `json:"componentRef" yaml:"componentRef"`
	TriggerPolicy     *TriggerPolicy     `json:"triggerPolicy,omitempty" yaml:"triggerPolicy,omitempty"`
	ParameterIterator *ParameterIterator `json:"parameterIterator,omitempty" yaml:"parameterIterator,omitempty"`
}

// TaskInfo names a task.
type TaskInfo struct {
	Name string `json:"name" yaml:"name"`
}

// ComponentRef points at an entry of the component table.
type ComponentRef struct {
	Name string `json:"name" yaml:"name"`
}

// TaskInputsSpec wires the inputs of a task.
type TaskInputsSpec struct {
	Parameters map[string]*InputParameterSpec `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Artifacts  map[string]*InputArtifactSpec  `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
}

// InputParameterSpec is exactly one of: a forwarded input of the enclosing
// component, an output of a sibling task, or a constant.
type InputParameterSpec struct {
	ComponentInputParameter     string               `json:"componentInputParameter,omitempty" yaml:"componentInputParameter,omitempty"`
	TaskOutputParameter         *TaskOutputParameter `json:"taskOutputParameter,omitempty" yaml:"taskOutputParameter,omitempty"`
	RuntimeValue                *RuntimeValue        `json:"runtimeValue,omitempty" yaml:"runtimeValue,omitempty"`
	ParameterExpressionSelector string               `json:"parameterExpressionSelector,omitempty" yaml:"parameterExpressionSelector,omitempty"`
}

// TaskOutputParameter references an output parameter of a sibling task.
type TaskOutputParameter struct {
	ProducerTask       string `json:"producerTask" yaml:"producerTask"`
	OutputParameterKey string `json:"outputParameterKey" yaml:"outputParameterKey"`
}

// InputArtifactSpec is either a forwarded input artifact or an output
// artifact of a sibling task.
type InputArtifactSpec struct {
	ComponentInputArtifact string              `json:"componentInputArtifact,omitempty" yaml:"componentInputArtifact,omitempty"`
	TaskOutputArtifact     *TaskOutputArtifact `json:"taskOutputArtifact,omitempty" yaml:"taskOutputArtifact,omitempty"`
}

// TaskOutputArtifact references an output artifact of a sibling task.
type TaskOutputArtifact struct {
	ProducerTask      string `json:"producerTask" yaml:"producerTask"`
	OutputArtifactKey string `json:"outputArtifactKey" yaml:"outputArtifactKey"`
}

// RuntimeValue is a constant known at compile time.
type RuntimeValue struct {
	ConstantValue *Value `json:"constantValue" yaml:"constantValue"`
}

// Value is a typed constant. Exactly one field is set.
type Value struct {
	IntValue    *int64   `json:"intValue,omitempty" yaml:"intValue,omitempty"`
	DoubleValue *float64 `json:"doubleValue,omitempty" yaml:"doubleValue,omitempty"`
	StringValue *string  `json:"stringValue,omitempty" yaml:"stringValue,omitempty"`
}

// TriggerPolicy holds the predicate gating a task.
type TriggerPolicy struct {
	Condition string `json:"condition" yaml:"condition"`
}

// ParameterIterator fans a task out over a list.
type ParameterIterator struct {
	Items     ItemsSpec `json:"items" yaml:"items"`
	ItemInput string    `json:"itemInput" yaml:"itemInput"`
}

// ItemsSpec is either a raw JSON list or the name of an input parameter
// holding one.
type ItemsSpec struct {
	Raw            string `json:"raw,omitempty" yaml:"raw,omitempty"`
	InputParameter string `json:"inputParameter,omitempty" yaml:"inputParameter,omitempty"`
}

// ExecutorSpec is one entry of the executor registry. Exactly one field is
// set.
type ExecutorSpec struct {
	Container *ContainerSpec `json:"container,omitempty" yaml:"container,omitempty"`
	Importer  *ImporterSpec  `json:"importer,omitempty" yaml:"importer,omitempty"`
	CustomJob *CustomJobSpec `json:"customJob,omitempty" yaml:"customJob,omitempty"`
}

// ContainerSpec runs a container image.
type ContainerSpec struct {
	Image   string   `json:"image" yaml:"image"`
	Command []string `json:"command,omitempty" yaml:"command,omitempty"`
	Args    []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// ImporterSpec imports an existing artifact.
type ImporterSpec struct {
	ArtifactURI RuntimeValue `json:"artifactUri" yaml:"artifactUri"`
	TypeSchema  ArtifactType `json:"typeSchema" yaml:"typeSchema"`
	Reimport    bool         `json:"reimport,omitempty" yaml:"reimport,omitempty"`
}

// CustomJobSpec wraps an opaque custom job descriptor.
type CustomJobSpec struct {
	CustomJob *structpb.Struct `json:"-" yaml:"-"`
}
