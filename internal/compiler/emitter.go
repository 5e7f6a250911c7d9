package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/specialistvlad/pipelineir/internal/ctxlog"
	"github.com/specialistvlad/pipelineir/internal/ir"
	"github.com/specialistvlad/pipelineir/internal/model"
	"github.com/specialistvlad/pipelineir/internal/resolve"
)

// emitter holds the state of one emission pass. Nothing it holds is visible
// outside the pass until emit returns successfully.
type emitter struct {
	logger   *slog.Logger
	pipeline *model.Pipeline
	res      *resolve.Result

	root *componentBuilder
	// groups holds the builder of every emitted group, including the root.
	groups map[string]*componentBuilder
	// components is the component table, first writer wins.
	components map[string]*componentBuilder
	executors  map[string]*ir.ExecutorSpec

	warnings []string
}

func newEmitter(ctx context.Context, p *model.Pipeline, res *resolve.Result) *emitter {
	return &emitter{
		logger:     ctxlog.FromContext(ctx),
		pipeline:   p,
		res:        res,
		root:       &componentBuilder{},
		groups:     make(map[string]*componentBuilder),
		components: make(map[string]*componentBuilder),
		executors:  make(map[string]*ir.ExecutorSpec),
	}
}

// emit visits every group in pre-order so that the builders of all
// ancestors exist by the time a group's metrics are surfaced.
func (e *emitter) emit() (*ir.PipelineSpec, error) {
	for _, g := range e.res.Index.Groups() {
		if err := e.emitGroup(g); err != nil {
			return nil, err
		}
	}

	spec := &ir.PipelineSpec{
		PipelineInfo:  ir.PipelineInfo{Name: e.pipeline.Name},
		SDKVersion:    "pipelineir-" + Version,
		SchemaVersion: ir.SchemaVersion,
		Root:          e.root.build(),
	}
	if len(e.components) > 0 {
		spec.Components = make(map[string]*ir.ComponentSpec, len(e.components))
		for name, b := range e.components {
			spec.Components[name] = b.build()
		}
	}
	if len(e.executors) > 0 {
		spec.DeploymentSpec.Executors = e.executors
	}
	return spec, nil
}

// register adds a component unless one with the same name exists.
func (e *emitter) register(name string, b *componentBuilder) {
	if _, ok := e.components[name]; ok {
		e.logger.Debug("Emit: Component already registered, keeping the first.", "component", name)
		return
	}
	e.components[name] = b
}

func (e *emitter) warn(msg string, args ...any) {
	e.logger.Warn(msg, args...)
	e.warnings = append(e.warnings, msg)
}

func (e *emitter) emitGroup(g *model.Group) error {
	b := e.root
	if g.Kind != model.KindRoot {
		b = &componentBuilder{}
	}
	e.groups[g.Name] = b
	e.logger.Debug("Emit: Emitting group.", "group", g.Name, "kind", g.Kind, "children", len(g.Children))

	if g.Kind == model.KindRoot {
		for _, p := range e.rootInputs() {
			b.declareInput(p.FullName(), e.typeOf(p))
		}
	} else {
		for _, p := range e.scopeInputs(g.Name, g) {
			b.declareInput(ir.InputName(p.FullName()), e.typeOf(p))
		}
		e.exposeOutputs(g, b)
	}

	if g.Kind == model.KindLoop {
		if err := e.emitIterator(g, b); err != nil {
			return err
		}
	}

	for _, child := range g.Children {
		var err error
		switch c := child.(type) {
		case *model.Task:
			err = e.emitTask(g, b, c)
		case *model.Group:
			err = e.emitSubgroup(g, b, c)
		case *model.Alias:
			err = e.emitAlias(g, b, c)
		default:
			err = fmt.Errorf("unexpected node type %T in group %q", child, g.Name)
		}
		if err != nil {
			return err
		}
	}

	for _, child := range g.Children {
		if t, ok := child.(*model.Task); ok {
			e.surfaceMetrics(t)
		}
	}

	if g.Kind != model.KindRoot {
		e.register(ir.ComponentName(g.Name), b)
	}
	return nil
}

// exposeOutputs declares the values a group hands to its siblings and
// points each at the child it is obtained from.
func (e *emitter) exposeOutputs(g *model.Group, b *componentBuilder) {
	for _, binding := range e.res.IO.Outputs.For(g.Name) {
		p := binding.Param
		key := ir.InputName(p.FullName())
		typeName := e.typeOf(p)
		b.declareOutput(key, typeName)
		subtask, outputKey := ir.TaskName(binding.Source), childOutputKey(binding.Source, p)
		if ir.IsParameterType(typeName) {
			b.exposeParameter(key, subtask, outputKey)
		} else {
			b.exposeArtifact(key, subtask, outputKey)
		}
	}
}

func (e *emitter) emitTask(parent *model.Group, body *componentBuilder, t *model.Task) error {
	if t.IsExitHandler && parent.Kind != model.KindRoot {
		return fmt.Errorf("%w: %q is declared in %q", ErrNestedExitHandler, t.Name, parent.Name)
	}
	comp := &componentBuilder{}
	ts := newTaskSpec(ir.TaskName(t.Name), ir.ComponentName(t.Name))
	var extraDeps []string

	for _, arg := range t.Inputs {
		p := arg.Param
		if p == nil {
			continue
		}
		typeName := e.typeOf(p)
		comp.declareInput(arg.Name, typeName)

		if p.IsLiteral() {
			v, err := ir.Constant(p.Value, typeName)
			if err != nil {
				return fmt.Errorf("task %q input %q: %w", t.Name, arg.Name, err)
			}
			setParameter(ts, arg.Name, &ir.InputParameterSpec{RuntimeValue: &ir.RuntimeValue{ConstantValue: v}})
			continue
		}

		w := e.wireFor(parent, t.Name, p)
		w.apply(ts, arg.Name, ir.IsParameterType(typeName))
		if w.fromIterator {
			extraDeps = append(extraDeps, w.producer)
		}
	}

	for _, out := range t.Outputs {
		comp.declareOutput(out.Name, out.Type)
	}
	comp.spec.ExecutorLabel = e.registerExecutor(t)

	ts.DependentTasks = e.dependentTasks(t.Name, extraDeps...)
	e.register(ir.ComponentName(t.Name), comp)
	body.addTask(ts)
	return nil
}

// emitSubgroup adds the invocation of a child group. The child's own
// component is built when the child itself is visited.
func (e *emitter) emitSubgroup(parent *model.Group, body *componentBuilder, g *model.Group) error {
	switch g.Kind {
	case model.KindGraph, model.KindExitHandler:
		return fmt.Errorf("%w: %s group %q", ErrUnsupported, g.Kind, g.Name)
	}

	ts := newTaskSpec(ir.TaskName(g.Name), ir.ComponentName(g.Name))
	extraDeps := e.wireScopeInputs(parent, ts, g.Name, g)

	switch g.Kind {
	case model.KindCondition:
		if g.Condition == nil {
			return fmt.Errorf("condition group %q has no predicate", g.Name)
		}
		cond, err := e.conditionString(g.Condition)
		if err != nil {
			return fmt.Errorf("condition group %q: %w", g.Name, err)
		}
		ts.TriggerPolicy = &ir.TriggerPolicy{Condition: cond}
	case model.KindLoop:
		if g.Loop == nil {
			return fmt.Errorf("loop group %q has no iteration source", g.Name)
		}
		if g.Loop.Parallelism != nil {
			e.warn("Loop parallelism is not supported and is ignored.", "loop", g.Name, "parallelism", *g.Loop.Parallelism)
		}
	}

	ts.DependentTasks = e.dependentTasks(g.Name, extraDeps...)
	body.addTask(ts)
	return nil
}

// emitAlias adds an invocation of an enclosing group. It reuses the
// target's task and component names; the target registers the component.
func (e *emitter) emitAlias(parent *model.Group, body *componentBuilder, a *model.Alias) error {
	if a.Target == nil {
		return fmt.Errorf("alias %q has no target", a.Name)
	}
	ts := newTaskSpec(ir.TaskName(a.Target.Name), ir.ComponentName(a.Target.Name))
	extraDeps := e.wireScopeInputs(parent, ts, a.Name, a.Target)
	ts.DependentTasks = e.dependentTasks(a.Name, extraDeps...)
	body.addTask(ts)
	return nil
}

// wireScopeInputs wires every input the scope needs into its task spec and
// returns the extra dependencies the wiring implies.
func (e *emitter) wireScopeInputs(parent *model.Group, ts *ir.TaskSpec, scope string, target *model.Group) []string {
	var extraDeps []string
	for _, p := range e.scopeInputs(scope, target) {
		w := e.wireFor(parent, scope, p)
		w.apply(ts, ir.InputName(p.FullName()), ir.IsParameterType(e.typeOf(p)))
		if w.fromIterator {
			extraDeps = append(extraDeps, w.producer)
		}
	}
	return extraDeps
}

// scopeInputs returns the distinct parameters a scope receives, sorted by
// full name. Values a loop produces per iteration are supplied inside the
// loop by its iterator, so they are not inputs of the loop itself.
func (e *emitter) scopeInputs(scope string, g *model.Group) []*model.Parameter {
	var params []*model.Parameter
	seen := make(map[string]bool)
	for _, b := range e.res.IO.Inputs.For(scope) {
		p := b.Param
		if seen[p.Pattern()] {
			continue
		}
		if g != nil && g.Kind == model.KindLoop && g.Loop != nil && g.Loop.Originates(p) {
			continue
		}
		seen[p.Pattern()] = true
		params = append(params, p)
	}
	return params
}

// rootInputs returns the declared pipeline parameters followed by any other
// value the root receives, each once.
func (e *emitter) rootInputs() []*model.Parameter {
	params := slices.Clone(e.pipeline.Params)
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		seen[p.Pattern()] = true
	}
	for _, p := range e.scopeInputs(e.res.Index.Root().Name, nil) {
		if !seen[p.Pattern()] {
			seen[p.Pattern()] = true
			params = append(params, p)
		}
	}
	return params
}

// typeOf returns the declared type of p after unification. Literals without
// a parameter type take the type of their value.
func (e *emitter) typeOf(p *model.Parameter) string {
	if p.IsLiteral() {
		if p.Type != "" && ir.IsParameterType(p.Type) {
			return p.Type
		}
		return ir.InferType(p.Value)
	}
	return e.res.Types.Of(p)
}

// dependentTasks returns the sorted task names a scope runs after.
func (e *emitter) dependentTasks(scope string, extra ...string) []string {
	var names []string
	for _, dep := range e.res.Dependencies.For(scope) {
		names = append(names, e.taskName(dep))
	}
	names = append(names, extra...)
	slices.Sort(names)
	return slices.Compact(names)
}

// taskName maps a scope to the task spec invoking it.
func (e *emitter) taskName(scope string) string {
	if a, ok := e.res.Index.Alias(scope); ok && a.Target != nil {
		return ir.TaskName(a.Target.Name)
	}
	return ir.TaskName(scope)
}
