package compiler

import (
	"github.com/specialistvlad/pipelineir/internal/model"
	tu "github.com/specialistvlad/pipelineir/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

// richPipeline builds:
//
//	root                               (param threshold = 3)
//	├── flip                           (result)
//	├── gen                            (items)
//	├── outer (sequential)
//	│   ├── check (flip.result == "heads")
//	│   │   ├── train                  (threshold) -> model
//	│   │   └── fan-out (over gen.items)
//	│   │       └── work               (item, item.name) -> metrics
//	│   └── again -> outer             (threshold)
//	└── deploy                         (train.model)
func richPipeline() *model.Pipeline {
	threshold := tu.Param("threshold", "Integer")

	fanOut := tu.LoopOver("fan-out", tu.Output("gen", "items", "String"))
	tu.Body(fanOut,
		tu.Task("work",
			tu.In("value", fanOut.Loop.Item()),
			tu.In("name", fanOut.Loop.Field("name")),
			tu.Out("metrics", "Metrics"),
			tu.Container("alpine", "work"),
		),
	)

	outer := tu.Seq("outer",
		tu.Cond("check", tu.Output("flip", "result", "String"), "==", tu.Lit(cty.StringVal("heads")),
			tu.Task("train", tu.In("threshold", threshold), tu.Out("model", "Model"), tu.Container("trainer")),
			fanOut,
		),
	)
	outer.Children = append(outer.Children, tu.Alias("again", outer, threshold))

	return &model.Pipeline{
		Name:   "rich-pipeline",
		Params: []*model.Parameter{{Name: "threshold", Type: "Integer", Value: cty.NumberIntVal(3)}},
		Root: tu.Root(
			tu.Task("flip", tu.Out("result", "String"), tu.Container("alpine", "flip")),
			tu.Task("gen", tu.Out("items", "String"), tu.Container("alpine", "gen")),
			outer,
			tu.Task("deploy", tu.In("model", tu.Output("train", "model", "Model")), tu.Container("deployer")),
		),
	}
}
