package testutil

import (
	"github.com/specialistvlad/pipelineir/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// TaskOption configures a task built by Task.
type TaskOption func(*model.Task)

// Task builds a leaf scope.
func Task(name string, opts ...TaskOption) *model.Task {
	t := &model.Task{Name: name}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// In binds an input argument.
func In(name string, p *model.Parameter) TaskOption {
	return func(t *model.Task) {
		t.Inputs = append(t.Inputs, model.Argument{Name: name, Param: p})
	}
}

// Out declares an output.
func Out(name, typ string) TaskOption {
	return func(t *model.Task) {
		t.Outputs = append(t.Outputs, model.Output{Name: name, Type: typ})
	}
}

// After adds explicit dependencies.
func After(names ...string) TaskOption {
	return func(t *model.Task) {
		t.DependsOn = append(t.DependsOn, names...)
	}
}

// Container attaches a container executor with the default label.
func Container(image string, args ...string) TaskOption {
	return func(t *model.Task) {
		if t.Executor == nil {
			t.Executor = &model.Executor{}
		}
		t.Executor.Container = &model.Container{Image: image, Args: args}
	}
}

// ExitHandler marks the task as an exit handler.
func ExitHandler() TaskOption {
	return func(t *model.Task) { t.IsExitHandler = true }
}

// Param is a pipeline-level parameter reference.
func Param(name, typ string) *model.Parameter {
	return &model.Parameter{Name: name, Type: typ}
}

// Output is a reference to a task output.
func Output(producer, name, typ string) *model.Parameter {
	return &model.Parameter{Name: name, Type: typ, Producer: producer}
}

// Lit is a literal parameter.
func Lit(v cty.Value) *model.Parameter {
	return model.Literal(v)
}

// Root builds a root group.
func Root(children ...model.Node) *model.Group {
	return &model.Group{Name: "root", Kind: model.KindRoot, Children: children}
}

// Seq builds a sequential group.
func Seq(name string, children ...model.Node) *model.Group {
	return &model.Group{Name: name, Kind: model.KindSequential, Children: children}
}

// Cond builds a condition group.
func Cond(name string, left *model.Parameter, op string, right *model.Parameter, children ...model.Node) *model.Group {
	return &model.Group{
		Name:      name,
		Kind:      model.KindCondition,
		Condition: &model.Condition{Left: left, Operator: op, Right: right},
		Children:  children,
	}
}

// LoopItems builds a loop over a static list. Children are added with
// Body once the item parameter is needed.
func LoopItems(name string, items cty.Value) *model.Group {
	return &model.Group{
		Name: name,
		Kind: model.KindLoop,
		Loop: &model.Loop{Items: items, ItemName: model.LoopItemName(name, nil)},
	}
}

// LoopOver builds a loop over a referenced list.
func LoopOver(name string, source *model.Parameter) *model.Group {
	return &model.Group{
		Name: name,
		Kind: model.KindLoop,
		Loop: &model.Loop{Source: source, ItemName: model.LoopItemName(name, source)},
	}
}

// Body appends children to a group and returns it.
func Body(g *model.Group, children ...model.Node) *model.Group {
	g.Children = append(g.Children, children...)
	return g
}

// Alias builds a recursive reference to target.
func Alias(name string, target *model.Group, inputs ...*model.Parameter) *model.Alias {
	return &model.Alias{Name: name, Target: target, Inputs: inputs}
}

// Ints builds a static list of integers.
func Ints(values ...int64) cty.Value {
	items := make([]cty.Value, len(values))
	for i, v := range values {
		items[i] = cty.NumberIntVal(v)
	}
	return cty.TupleVal(items)
}
