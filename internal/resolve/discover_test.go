package resolve

import (
	"testing"

	"github.com/specialistvlad/pipelineir/internal/model"
	tu "github.com/specialistvlad/pipelineir/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// conditionsOf returns only the condition parameters of a tree.
func conditionsOf(root *model.Group) ConditionParams {
	conds, _ := Discover(root)
	return conds
}

func patterns(params []*model.Parameter) []string {
	var out []string
	for _, p := range params {
		out = append(out, p.Pattern())
	}
	return out
}

func TestDiscover_Conditions(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a := tu.Param("a", "Integer")
	b := tu.Output("flip", "result", "String")
	inner := tu.Cond("inner", b, "!=", a,
		tu.Task("deep"),
	)
	outer := tu.Cond("outer", a, ">", tu.Lit(cty.NumberIntVal(1)),
		tu.Task("shallow"),
		inner,
	)
	outer.Children = append(outer.Children, tu.Alias("back", outer))
	root := tu.Root(
		tu.Task("flip", tu.Out("result", "String")),
		outer,
		tu.Task("sibling"),
	)

	// --- Act ---
	conds, _ := Discover(root)

	// --- Assert ---
	assert.Equal(t, []string{a.Pattern()}, patterns(conds.For("shallow")), "literal operands are not propagated")
	assert.Equal(t, []string{a.Pattern(), b.Pattern()}, patterns(conds.For("deep")), "operands accumulate outermost first without duplicates")
	assert.Equal(t, []string{a.Pattern()}, patterns(conds.For("back")), "aliases record the set under their own name")
	assert.Empty(t, conds.For("sibling"), "siblings of a condition get nothing")
	assert.Empty(t, conds.For("flip"))
	_, recordedForGroup := conds["inner"]
	require.False(t, recordedForGroup, "groups themselves are not recorded")
}

func TestDiscover_Loops(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	inner := tu.LoopItems("inner", tu.Ints(1))
	outer := tu.LoopItems("outer", tu.Ints(1, 2))
	tu.Body(outer, tu.Seq("wrap", inner), tu.Alias("again", outer))
	root := tu.Root(outer, tu.Task("t"))

	// --- Act ---
	_, loops := Discover(root)

	// --- Assert ---
	require.Len(t, loops, 2)
	assert.Same(t, outer, loops["outer"])
	assert.Same(t, inner, loops["inner"])

	assert.True(t, loops.Originates("outer", outer.Loop.Item()))
	assert.True(t, loops.Originates("outer", outer.Loop.Field("name")))
	assert.False(t, loops.Originates("outer", inner.Loop.Item()))
	assert.False(t, loops.Originates("wrap", outer.Loop.Item()), "only loops originate values")
}

func TestDiscover_LoopInsideCondition(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	flag := tu.Param("flag", "String")
	loop := tu.LoopItems("each", tu.Ints(1, 2))
	tu.Body(loop, tu.Task("work", tu.In("item", loop.Loop.Item())))
	root := tu.Root(tu.Cond("gate", flag, "==", tu.Lit(cty.StringVal("on")), loop))

	// --- Act ---
	conds, loops := Discover(root)

	// --- Assert ---
	assert.Same(t, loop, loops["each"])
	assert.Equal(t, []string{flag.Pattern()}, patterns(conds.For("work")), "tasks inside a loop keep the enclosing condition")
}
