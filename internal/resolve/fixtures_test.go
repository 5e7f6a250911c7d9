package resolve

import (
	"github.com/specialistvlad/pipelineir/internal/model"
	tu "github.com/specialistvlad/pipelineir/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

// nestedTree builds:
//
//	root
//	├── producer                  (out)
//	├── outer (sequential)
//	│   ├── cond (condition: producer.out == "go")
//	│   │   ├── consumer          (producer.out, threshold)
//	│   │   └── loop (over [1,2])
//	│   │       └── per-item      (item)
//	│   └── again -> outer        (alias, threshold)
//	└── last                      (after outer)
func nestedTree() *model.Group {
	produced := tu.Output("producer", "out", "String")
	threshold := tu.Param("threshold", "Integer")

	loop := tu.LoopItems("loop", tu.Ints(1, 2))
	tu.Body(loop, tu.Task("per-item", tu.In("item", loop.Loop.Item())))

	outer := tu.Seq("outer",
		tu.Cond("cond", produced, "==", tu.Lit(cty.StringVal("go")),
			tu.Task("consumer", tu.In("value", produced), tu.In("threshold", threshold)),
			loop,
		),
	)
	outer.Children = append(outer.Children, tu.Alias("again", outer, threshold))

	return tu.Root(
		tu.Task("producer", tu.Out("out", "String")),
		outer,
		tu.Task("last", tu.After("outer")),
	)
}
