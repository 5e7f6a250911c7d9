package ir

// PipelineJob pairs a compiled spec with the values it runs with.
type PipelineJob struct {
	DisplayName   string        `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	PipelineSpec  *PipelineSpec `json:"pipelineSpec" yaml:"pipelineSpec"`
	RuntimeConfig RuntimeConfig `json:"runtimeConfig" yaml:"runtimeConfig"`
}

// RuntimeConfig holds pipeline parameter values and the output root.
type RuntimeConfig struct {
	Parameters         map[string]*Value `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	GCSOutputDirectory string            `json:"gcsOutputDirectory,omitempty" yaml:"gcsOutputDirectory,omitempty"`
}
