package resolve

import (
	"github.com/specialistvlad/pipelineir/internal/ir"
	"github.com/specialistvlad/pipelineir/internal/model"
)

// Types maps parameter patterns to their unified declared type.
type Types map[string]string

// Of returns the unified type of p, falling back to its own declaration.
func (t Types) Of(p *model.Parameter) string {
	if ty := t[p.Pattern()]; ty != "" {
		return ty
	}
	return p.Type
}

// IsArtifact reports whether p resolves to an artifact type.
func (t Types) IsArtifact(p *model.Parameter) bool {
	return !ir.IsParameterType(t.Of(p))
}

// UnifyTypes visits every site referencing a parameter: pipeline parameters
// first (an untyped one takes the type of its default), then each task's
// inputs, outputs and condition parameters in pre-order, then aliases and
// loop sources. The first site declaring a type sets it; later sites
// inherit it.
func UnifyTypes(params []*model.Parameter, ix *Index, conds ConditionParams) Types {
	types := make(Types)
	record := func(p *model.Parameter) {
		if p == nil || p.IsLiteral() {
			return
		}
		if types[p.Pattern()] == "" {
			types[p.Pattern()] = p.Type
		}
	}

	// Pipeline parameters carry their defaults as values, so they are
	// recorded even though they look like literals.
	for _, p := range params {
		if p == nil || types[p.Pattern()] != "" {
			continue
		}
		types[p.Pattern()] = p.Type
		if p.Type == "" && p.IsLiteral() {
			types[p.Pattern()] = ir.InferType(p.Value)
		}
	}
	for _, t := range ix.Tasks() {
		for _, arg := range t.Inputs {
			record(arg.Param)
		}
		for _, out := range t.Outputs {
			record(t.OutputParam(out.Name))
		}
		for _, p := range conds.For(t.Name) {
			record(p)
		}
	}
	for _, a := range ix.Aliases() {
		for _, p := range a.Inputs {
			record(p)
		}
		for _, p := range conds.For(a.Name) {
			record(p)
		}
	}
	for _, g := range ix.Groups() {
		if g.Loop != nil {
			record(g.Loop.Source)
		}
		if g.Condition != nil {
			for _, p := range g.Condition.Params() {
				record(p)
			}
		}
	}

	return types
}
