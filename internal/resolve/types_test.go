package resolve

import (
	"testing"

	"github.com/specialistvlad/pipelineir/internal/model"
	tu "github.com/specialistvlad/pipelineir/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestUnifyTypes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The producer declares the type; consumers reference the output untyped.
	untypedRef := &model.Parameter{Name: "model", Producer: "train"}
	root := tu.Root(
		tu.Task("train", tu.Out("model", "Model")),
		tu.Task("deploy", tu.In("m", untypedRef)),
		tu.Task("report", tu.In("n", &model.Parameter{Name: "count"})),
	)
	params := []*model.Parameter{{Name: "count", Type: "Integer"}}
	ix := BuildIndex(root)

	// --- Act ---
	types := UnifyTypes(params, ix, conditionsOf(root))

	// --- Assert ---
	assert.Equal(t, "Model", types.Of(untypedRef), "later sites inherit the declared type")
	assert.True(t, types.IsArtifact(untypedRef))
	assert.Equal(t, "Integer", types.Of(&model.Parameter{Name: "count"}))
	assert.False(t, types.IsArtifact(&model.Parameter{Name: "count"}))
	assert.Equal(t, "", types.Of(&model.Parameter{Name: "unknown"}), "unknown parameters keep their own declaration")
}

func TestUnifyTypes_FirstDeclarationWins(t *testing.T) {
	t.Parallel()

	root := tu.Root(
		tu.Task("a", tu.In("x", &model.Parameter{Name: "p", Type: "Float"})),
		tu.Task("b", tu.In("x", &model.Parameter{Name: "p", Type: "String"})),
	)

	types := UnifyTypes(nil, BuildIndex(root), nil)

	assert.Equal(t, "Float", types.Of(&model.Parameter{Name: "p", Type: "String"}))
}

func TestUnifyTypes_PipelineParameterDefaults(t *testing.T) {
	t.Parallel()

	root := tu.Root(tu.Task("a", tu.In("x", &model.Parameter{Name: "retries"})))
	params := []*model.Parameter{{Name: "retries", Value: cty.NumberIntVal(3)}}

	types := UnifyTypes(params, BuildIndex(root), nil)

	assert.Equal(t, "Integer", types.Of(&model.Parameter{Name: "retries"}))
}
