package testutil

import (
	"github.com/specialistvlad/pipelineir/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// ConditionPipeline is root > condition "flip-check" > (A -> B). The
// condition compares the pipeline parameter "expected" with "heads".
func ConditionPipeline() *model.Pipeline {
	expected := Param("expected", "String")
	return &model.Pipeline{
		Name:   "condition-pipeline",
		Params: []*model.Parameter{{Name: "expected", Type: "String", Value: cty.StringVal("heads")}},
		Root: Root(
			Cond("flip-check", expected, "==", Lit(cty.StringVal("heads")),
				Task("a", Out("out", "String"), Container("alpine")),
				Task("b", In("msg", Output("a", "out", "String")), Container("alpine")),
			),
		),
	}
}

// LoopPipeline is root > loop "for-loop-1" over [1,2,3] > X(item).
func LoopPipeline() *model.Pipeline {
	loop := LoopItems("for-loop-1", Ints(1, 2, 3))
	Body(loop, Task("x", In("value", loop.Loop.Item()), Container("alpine")))
	return &model.Pipeline{Name: "loop-pipeline", Root: Root(loop)}
}
