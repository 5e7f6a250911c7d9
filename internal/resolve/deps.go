package resolve

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/pipelineir/internal/dag"
	"github.com/specialistvlad/pipelineir/internal/model"
)

// Dependencies maps a scope name to the sorted names of the sibling scopes
// it must run after.
type Dependencies map[string][]string

// For returns the sorted upstream siblings of a scope.
func (d Dependencies) For(scope string) []string {
	return d[scope]
}

type depResolver struct {
	ix *Index
	// bodies holds one graph per parent scope.
	bodies map[string]*dag.Graph
	// owners maps each downstream scope to the parent of its body.
	owners map[string]string
}

// ResolveDependencies derives ordering edges. A scope depends on its
// explicit dependencies and on the producers of everything it consumes.
// Each such relation becomes an edge between the first divergent scopes of
// the two paths, so edges only ever join siblings of one dag body. Bodies
// whose edges form a cycle are rejected.
func ResolveDependencies(ix *Index, conds ConditionParams) (Dependencies, error) {
	r := &depResolver{
		ix:     ix,
		bodies: make(map[string]*dag.Graph),
		owners: make(map[string]string),
	}

	for _, t := range ix.Tasks() {
		upstream := slices.Clone(t.DependsOn)
		for _, arg := range t.Inputs {
			upstream = appendProducer(upstream, arg.Param)
		}
		for _, p := range conds.For(t.Name) {
			upstream = appendProducer(upstream, p)
		}
		if err := r.addAll(upstream, t.Name); err != nil {
			return nil, err
		}
	}

	for _, g := range ix.Groups() {
		upstream := slices.Clone(g.DependsOn)
		if g.Loop != nil {
			upstream = appendProducer(upstream, g.Loop.Source)
		}
		if g.Condition != nil {
			for _, p := range g.Condition.Params() {
				upstream = appendProducer(upstream, p)
			}
		}
		if err := r.addAll(upstream, g.Name); err != nil {
			return nil, err
		}
	}

	for _, a := range ix.Aliases() {
		upstream := slices.Clone(a.DependsOn)
		for _, p := range a.Inputs {
			upstream = appendProducer(upstream, p)
		}
		for _, p := range conds.For(a.Name) {
			upstream = appendProducer(upstream, p)
		}
		if err := r.addAll(upstream, a.Name); err != nil {
			return nil, err
		}
	}

	parents := make([]string, 0, len(r.bodies))
	for parent := range r.bodies {
		parents = append(parents, parent)
	}
	slices.Sort(parents)
	for _, parent := range parents {
		if err := r.bodies[parent].DetectCycles(); err != nil {
			return nil, fmt.Errorf("%w in %q: %w", ErrDependencyCycle, parent, err)
		}
	}

	deps := make(Dependencies, len(r.owners))
	for down, parent := range r.owners {
		ups, err := r.bodies[parent].Dependencies(down)
		if err != nil {
			return nil, err
		}
		deps[down] = ups
	}
	return deps, nil
}

func appendProducer(names []string, p *model.Parameter) []string {
	if p == nil || p.IsLiteral() || p.Producer == "" {
		return names
	}
	return append(names, p.Producer)
}

func (r *depResolver) addAll(upstream []string, downstream string) error {
	for _, up := range upstream {
		if err := r.add(up, downstream); err != nil {
			return err
		}
	}
	return nil
}

func (r *depResolver) add(upstream, downstream string) error {
	common, up, down, err := r.ix.UncommonAncestors(upstream, downstream)
	if err != nil {
		return fmt.Errorf("%q depends on %q: %w", downstream, upstream, err)
	}
	if len(up) == 0 || len(down) == 0 {
		return fmt.Errorf("%w: %q cannot depend on %q, one encloses the other at %s", ErrInvalidReference, downstream, upstream, common)
	}

	from, to := up[0], down[0]
	parent := common.Last()
	r.owners[to] = parent

	body, ok := r.bodies[parent]
	if !ok {
		body = dag.New()
		r.bodies[parent] = body
	}
	body.AddNode(from)
	body.AddNode(to)
	return body.AddEdge(from, to)
}
