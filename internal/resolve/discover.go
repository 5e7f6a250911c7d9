package resolve

import (
	"fmt"

	"github.com/specialistvlad/pipelineir/internal/model"
)

// Discover walks the tree once, carrying the operands of the active
// conditions and collecting every loop group. A condition's operands apply
// to everything nested inside it, never to its siblings. Aliases record the
// set under their own name and are not descended into. A group is visited at
// most once.
func Discover(root *model.Group) (ConditionParams, Loops) {
	conds := make(ConditionParams)
	loops := make(Loops)
	visited := make(map[string]bool)

	var walk func(g *model.Group, active []*model.Parameter)
	walk = func(g *model.Group, active []*model.Parameter) {
		if visited[g.Name] {
			return
		}
		visited[g.Name] = true

		switch g.Kind {
		case model.KindCondition:
			if g.Condition != nil {
				active = appendUnique(active, g.Condition.Params()...)
			}
		case model.KindLoop:
			loops[g.Name] = g
		}

		for _, child := range g.Children {
			switch c := child.(type) {
			case *model.Task:
				if len(active) > 0 {
					conds[c.Name] = active
				}
			case *model.Group:
				walk(c, active)
			case *model.Alias:
				if len(active) > 0 {
					conds[c.Name] = active
				}
			default:
				panic(fmt.Sprintf("resolve: unexpected node type %T", child))
			}
		}
	}
	walk(root, nil)

	return conds, loops
}
