package compiler

import (
	"fmt"

	"github.com/specialistvlad/pipelineir/internal/ir"
	"github.com/specialistvlad/pipelineir/internal/model"
)

// wire is the origin of one input inside a dag body: either an input of the
// enclosing component or an output of a sibling task.
type wire struct {
	componentInput string

	producer  string
	outputKey string
	// selector extracts a field from a structured value.
	selector     string
	fromIterator bool
}

// wireFor locates the value of p for the scope named child, whose task spec
// lives in the body of parent.
func (e *emitter) wireFor(parent *model.Group, child string, p *model.Parameter) wire {
	if parent.Kind == model.KindLoop && parent.Loop != nil && parent.Loop.Originates(p) {
		w := wire{
			producer:     iteratorTaskName(parent),
			outputKey:    ir.InputName(parent.Loop.ItemName),
			fromIterator: true,
		}
		if field, ok := parent.Loop.SubField(p); ok {
			w.selector = fmt.Sprintf(`parseJson(string_value)["%s"]`, field)
		}
		return w
	}

	if b, ok := e.res.IO.Inputs.Set(child).Lookup(p); ok && b.Source != "" {
		return wire{producer: e.taskName(b.Source), outputKey: childOutputKey(b.Source, p)}
	}
	return wire{componentInput: inputKey(parent, p)}
}

func (w wire) apply(ts *ir.TaskSpec, key string, isParameter bool) {
	if isParameter {
		in := &ir.InputParameterSpec{ComponentInputParameter: w.componentInput}
		if w.producer != "" {
			in = &ir.InputParameterSpec{
				TaskOutputParameter:         &ir.TaskOutputParameter{ProducerTask: w.producer, OutputParameterKey: w.outputKey},
				ParameterExpressionSelector: w.selector,
			}
		}
		setParameter(ts, key, in)
		return
	}

	in := &ir.InputArtifactSpec{ComponentInputArtifact: w.componentInput}
	if w.producer != "" {
		in = &ir.InputArtifactSpec{
			TaskOutputArtifact: &ir.TaskOutputArtifact{ProducerTask: w.producer, OutputArtifactKey: w.outputKey},
		}
	}
	setArtifact(ts, key, in)
}

// inputKey is the name under which the component of g declares p. The root
// component declares pipeline parameters by their plain name.
func inputKey(g *model.Group, p *model.Parameter) string {
	if g.Kind == model.KindRoot {
		return p.FullName()
	}
	return ir.InputName(p.FullName())
}

// childOutputKey is the output key under which the sibling scope exposes p:
// the producing task uses the output's own name, groups the forwarded name.
func childOutputKey(source string, p *model.Parameter) string {
	if source == p.Producer {
		return p.Name
	}
	return ir.InputName(p.FullName())
}
