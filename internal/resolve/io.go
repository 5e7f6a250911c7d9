package resolve

import (
	"fmt"

	"github.com/specialistvlad/pipelineir/internal/model"
	"github.com/specialistvlad/pipelineir/internal/scopepath"
)

// IO holds the resolved inputs and outputs of every scope.
type IO struct {
	Inputs  Bindings
	Outputs Bindings
}

type ioResolver struct {
	ix    *Index
	loops Loops
	io    *IO
}

// ResolveIO computes which parameters cross which scope boundaries.
//
// Every task consumes its arguments and its condition parameters. Loops
// additionally consume their source and condition groups their own
// operands, so both are wired into the body that evaluates them. Aliases
// consume their inputs and condition parameters, except that a condition
// parameter is not forwarded into the alias itself.
func ResolveIO(ix *Index, conds ConditionParams, loops Loops) (*IO, error) {
	r := &ioResolver{
		ix:    ix,
		loops: loops,
		io:    &IO{Inputs: make(Bindings), Outputs: make(Bindings)},
	}

	for _, t := range ix.Tasks() {
		for _, arg := range t.Inputs {
			if err := r.consume(t.Name, arg.Param, t.IsExitHandler); err != nil {
				return nil, fmt.Errorf("task %q input %q: %w", t.Name, arg.Name, err)
			}
		}
		for _, p := range conds.For(t.Name) {
			if err := r.consume(t.Name, p, t.IsExitHandler); err != nil {
				return nil, fmt.Errorf("task %q condition: %w", t.Name, err)
			}
		}
	}

	for _, g := range ix.Groups() {
		if g.Kind == model.KindLoop && g.Loop != nil && g.Loop.Source != nil {
			if err := r.consume(g.Name, g.Loop.Source, false); err != nil {
				return nil, fmt.Errorf("loop %q source: %w", g.Name, err)
			}
		}
		if g.Kind == model.KindCondition && g.Condition != nil {
			for _, p := range g.Condition.Params() {
				if err := r.consume(g.Name, p, false); err != nil {
					return nil, fmt.Errorf("condition %q operand: %w", g.Name, err)
				}
			}
		}
	}

	for _, a := range ix.Aliases() {
		if err := r.consumeAlias(a, conds); err != nil {
			return nil, fmt.Errorf("alias %q: %w", a.Name, err)
		}
	}

	r.wrapLoopSources()

	return r.io, nil
}

func (r *ioResolver) consume(consumer string, p *model.Parameter, exitHandler bool) error {
	if p == nil || p.IsLiteral() {
		return nil
	}

	if p.Producer != "" {
		_, up, down, err := r.ix.UncommonAncestors(p.Producer, consumer)
		if err != nil {
			return err
		}
		if len(up) == 0 || len(down) == 0 {
			return fmt.Errorf("%w: %q consumes %s across an enclosing scope", ErrInvalidReference, consumer, p.FullName())
		}
		r.link(p, up, down, false)
		return nil
	}

	if exitHandler {
		return nil
	}

	path, err := r.ix.Path(consumer)
	if err != nil {
		return err
	}
	for i := len(path) - 1; i >= 0; i-- {
		r.io.Inputs.add(path[i], Binding{Param: p})
		if r.loops.Originates(path[i], p) {
			break
		}
	}
	return nil
}

// link records a producer-to-consumer crossing. The first downstream scope
// receives the value from the first upstream scope; deeper downstream scopes
// receive it from their parent. Each upstream scope exposes it, obtained
// from its child on the path, and the producer itself exposes it as ground
// truth.
func (r *ioResolver) link(p *model.Parameter, up, down scopepath.Path, skipLastDown bool) {
	for i, name := range down {
		switch {
		case i == 0:
			r.io.Inputs.add(name, Binding{Param: p, Source: up[0]})
		case skipLastDown && i == len(down)-1:
			continue
		default:
			r.io.Inputs.add(name, Binding{Param: p})
		}
	}
	for i, name := range up {
		if i == len(up)-1 {
			r.io.Outputs.add(name, Binding{Param: p})
		} else {
			r.io.Outputs.add(name, Binding{Param: p, Source: up[i+1]})
		}
	}
}

func (r *ioResolver) consumeAlias(a *model.Alias, conds ConditionParams) error {
	type site struct {
		param       *model.Parameter
		isCondition bool
	}
	var sites []site
	for _, p := range a.Inputs {
		sites = append(sites, site{param: p})
	}
	for _, p := range conds.For(a.Name) {
		sites = append(sites, site{param: p, isCondition: true})
	}

	for _, s := range sites {
		p := s.param
		if p == nil || p.IsLiteral() {
			continue
		}
		if p.Producer != "" {
			_, up, down, err := r.ix.UncommonAncestors(p.Producer, a.Name)
			if err != nil {
				return err
			}
			if len(up) == 0 || len(down) == 0 {
				return fmt.Errorf("%w: %q consumes %s across an enclosing scope", ErrInvalidReference, a.Name, p.FullName())
			}
			r.link(p, up, down, s.isCondition)
			continue
		}
		if s.isCondition {
			continue
		}
		path, err := r.ix.Path(a.Name)
		if err != nil {
			return err
		}
		for _, name := range path {
			r.io.Inputs.add(name, Binding{Param: p})
		}
	}
	return nil
}

// wrapLoopSources registers a task-produced loop source as an input of the
// loop's parent when that parent is a synthetic graph wrapper.
func (r *ioResolver) wrapLoopSources() {
	for _, g := range r.ix.Groups() {
		if g.Kind != model.KindLoop || g.Loop == nil || g.Loop.Source == nil || g.Loop.Source.Producer == "" {
			continue
		}
		path, _ := r.ix.GroupPath(g.Name)
		parent, ok := r.ix.Group(path.Parent())
		if !ok || parent.Kind != model.KindGraph {
			continue
		}
		src := g.Loop.Source
		r.io.Inputs.add(parent.Name, Binding{Param: src, Source: src.Producer})
	}
}
