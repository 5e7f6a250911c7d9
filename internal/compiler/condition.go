package compiler

import (
	"fmt"

	"github.com/specialistvlad/pipelineir/internal/ir"
	"github.com/specialistvlad/pipelineir/internal/model"
)

// conditionString renders a predicate as "<left> <operator> <right>".
// Parameter operands read the condition task's own inputs.
func (e *emitter) conditionString(c *model.Condition) (string, error) {
	left, err := e.operand(c.Left)
	if err != nil {
		return "", err
	}
	right, err := e.operand(c.Right)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", left, c.Operator, right), nil
}

func (e *emitter) operand(p *model.Parameter) (string, error) {
	if p == nil {
		return "", fmt.Errorf("missing operand")
	}
	if p.IsLiteral() {
		return ir.ConditionLiteral(p.Value)
	}
	typeName := e.res.Types.Of(p)
	if e.res.Types.IsArtifact(p) {
		return "", fmt.Errorf("%w: %s has type %s", ErrArtifactOperand, p.FullName(), typeName)
	}
	return fmt.Sprintf("inputs.parameters['%s'].%s", ir.InputName(p.FullName()), ir.ValueField(typeName)), nil
}
