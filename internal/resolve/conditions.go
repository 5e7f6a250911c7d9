package resolve

import "github.com/specialistvlad/pipelineir/internal/model"

// ConditionParams maps task and alias names to the non-literal operands of
// every condition enclosing them, outermost first.
type ConditionParams map[string][]*model.Parameter

// For returns the condition parameters recorded for a scope.
func (c ConditionParams) For(name string) []*model.Parameter {
	return c[name]
}

// appendUnique returns a new slice; the input is never modified, so a
// sibling's view of the active set is unaffected.
func appendUnique(list []*model.Parameter, params ...*model.Parameter) []*model.Parameter {
	out := make([]*model.Parameter, len(list), len(list)+len(params))
	copy(out, list)
	for _, p := range params {
		if !containsPattern(out, p) {
			out = append(out, p)
		}
	}
	return out
}

func containsPattern(list []*model.Parameter, p *model.Parameter) bool {
	for _, q := range list {
		if q.Pattern() == p.Pattern() {
			return true
		}
	}
	return false
}
