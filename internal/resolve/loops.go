package resolve

import "github.com/specialistvlad/pipelineir/internal/model"

// Loops maps loop group names to their groups.
type Loops map[string]*model.Group

// Originates reports whether the named scope is a loop producing p per
// iteration.
func (l Loops) Originates(scope string, p *model.Parameter) bool {
	g, ok := l[scope]
	return ok && g.Loop != nil && g.Loop.Originates(p)
}
