package hclpipeline

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Block types that introduce a scope.
const (
	blockTask        = "task"
	blockGroup       = "group"
	blockCondition   = "condition"
	blockLoop        = "loop"
	blockRecurse     = "recurse"
	blockGraph       = "graph"
	blockExitHandler = "exit_handler"

	blockPipeline  = "pipeline"
	blockParameter = "parameter"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: blockPipeline, LabelNames: []string{"name"}},
	},
}

var scopeBlocks = []hcl.BlockHeaderSchema{
	{Type: blockTask, LabelNames: []string{"name"}},
	{Type: blockGroup, LabelNames: []string{"name"}},
	{Type: blockCondition, LabelNames: []string{"name"}},
	{Type: blockLoop, LabelNames: []string{"name"}},
	{Type: blockRecurse, LabelNames: []string{"name"}},
	{Type: blockGraph, LabelNames: []string{"name"}},
	{Type: blockExitHandler, LabelNames: []string{"name"}},
}

var pipelineSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "pipeline_root"},
	},
	Blocks: append([]hcl.BlockHeaderSchema{
		{Type: blockParameter, LabelNames: []string{"name"}},
	}, scopeBlocks...),
}

// groupSchema returns the schema of a group block of the given type.
func groupSchema(blockType string) *hcl.BodySchema {
	attrs := []hcl.AttributeSchema{{Name: "depends_on"}}
	switch blockType {
	case blockCondition:
		attrs = append(attrs,
			hcl.AttributeSchema{Name: "left", Required: true},
			hcl.AttributeSchema{Name: "operator", Required: true},
			hcl.AttributeSchema{Name: "right", Required: true},
		)
	case blockLoop:
		attrs = append(attrs,
			hcl.AttributeSchema{Name: "items", Required: true},
			hcl.AttributeSchema{Name: "parallelism"},
		)
	}
	return &hcl.BodySchema{Attributes: attrs, Blocks: scopeBlocks}
}

// parameterBlock declares a pipeline parameter.
type parameterBlock struct {
	Type    string     `hcl:"type,optional"`
	Default *cty.Value `hcl:"default,optional"`
}

// taskBlock is the body of a task block.
type taskBlock struct {
	// Inputs is an object mapping input names to values.
	Inputs      hcl.Expression `hcl:"inputs,optional"`
	DependsOn   []string       `hcl:"depends_on,optional"`
	ExitHandler bool           `hcl:"exit_handler,optional"`
	Outputs     []*outputBlock `hcl:"output,block"`
	Executor    *executorBlock `hcl:"executor,block"`
	Importer    *importerBlock `hcl:"importer,block"`
	// CustomJob is an object rendered verbatim as the task's executor.
	CustomJob hcl.Expression `hcl:"custom_job,optional"`
	Label     string         `hcl:"executor_label,optional"`
}

type outputBlock struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type,optional"`
}

// executorBlock runs a container.
type executorBlock struct {
	Image   string   `hcl:"image"`
	Command []string `hcl:"command,optional"`
	Args    []string `hcl:"args,optional"`
}

type importerBlock struct {
	ArtifactURI string `hcl:"artifact_uri"`
	SchemaTitle string `hcl:"schema_title,optional"`
	Reimport    bool   `hcl:"reimport,optional"`
}

// recurseBlock references an enclosing group.
type recurseBlock struct {
	Target string `hcl:"target"`
	// Inputs is a list of values passed to the target.
	Inputs    hcl.Expression `hcl:"inputs,optional"`
	DependsOn []string       `hcl:"depends_on,optional"`
}
