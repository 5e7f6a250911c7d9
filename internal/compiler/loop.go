package compiler

import (
	"fmt"

	"github.com/specialistvlad/pipelineir/internal/ir"
	"github.com/specialistvlad/pipelineir/internal/model"
)

func iteratorTaskName(loop *model.Group) string {
	return ir.TaskName(loop.Name + ir.IteratorSuffix)
}

// emitIterator inserts the iterator of a loop into the loop's own body. The
// iterator fans out over the source and republishes each element as its
// item output; body tasks read the item from there.
func (e *emitter) emitIterator(g *model.Group, body *componentBuilder) error {
	loop := g.Loop
	if loop == nil {
		return fmt.Errorf("loop group %q has no iteration source", g.Name)
	}

	name := g.Name + ir.IteratorSuffix
	itemKey := ir.InputName(loop.ItemName)
	item := loop.Item()

	comp := &componentBuilder{}
	comp.declareInput(itemKey, item.Type)
	comp.declareOutput(itemKey, item.Type)

	ts := newTaskSpec(ir.TaskName(name), ir.ComponentName(name))
	iterator := &ir.ParameterIterator{ItemInput: itemKey}

	if loop.IsStatic() {
		raw, n, err := ir.RawItems(loop.Items)
		if err != nil {
			return fmt.Errorf("loop group %q: %w", g.Name, err)
		}
		iterator.Items.Raw = raw
		e.logger.Debug("Emit: Loop over static items.", "loop", g.Name, "items", n)
	} else {
		sourceKey := ir.InputName(loop.Source.FullName())
		comp.declareInput(sourceKey, e.typeOf(loop.Source))
		setParameter(ts, sourceKey, &ir.InputParameterSpec{ComponentInputParameter: sourceKey})
		iterator.Items.InputParameter = sourceKey
		e.logger.Debug("Emit: Loop over a referenced list.", "loop", g.Name, "source", loop.Source.FullName())
	}

	ts.ParameterIterator = iterator
	e.register(ir.ComponentName(name), comp)
	body.addTask(ts)
	return nil
}
