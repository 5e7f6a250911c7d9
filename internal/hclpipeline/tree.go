package hclpipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/specialistvlad/pipelineir/internal/ctxlog"
	"github.com/specialistvlad/pipelineir/internal/model"
	"github.com/specialistvlad/pipelineir/internal/scopepath"
)

// treeBuilder converts the blocks of one pipeline into a scope tree.
type treeBuilder struct {
	logger *slog.Logger
	params map[string]*model.Parameter
	// enclosing groups, innermost last
	stack []*model.Group
	// declared scope names, for uniqueness
	seen map[string]hcl.Range
}

func newTreeBuilder(ctx context.Context) *treeBuilder {
	return &treeBuilder{
		logger: ctxlog.FromContext(ctx),
		params: make(map[string]*model.Parameter),
		seen:   make(map[string]hcl.Range),
	}
}

func (b *treeBuilder) pipeline(block *hcl.Block) (*model.Pipeline, hcl.Diagnostics) {
	p := model.NewPipeline(block.Labels[0])
	b.seen[p.Root.Name] = block.DefRange

	content, diags := block.Body.Content(pipelineSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	if attr, ok := content.Attributes["pipeline_root"]; ok {
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &p.PipelineRoot)...)
	}

	// Parameters are declared before any scope can reference them,
	// regardless of where they appear in the block.
	for _, blk := range content.Blocks {
		if blk.Type != blockParameter {
			continue
		}
		param, paramDiags := b.parameter(blk)
		diags = append(diags, paramDiags...)
		if param != nil {
			p.Params = append(p.Params, param)
		}
	}

	diags = append(diags, b.children(p.Root, content.Blocks)...)
	return p, diags
}

func (b *treeBuilder) parameter(block *hcl.Block) (*model.Parameter, hcl.Diagnostics) {
	name := block.Labels[0]
	if _, dup := b.params[name]; dup {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Duplicate parameter",
			Detail:   fmt.Sprintf("The pipeline parameter %q is declared more than once.", name),
			Subject:  &block.DefRange,
		}}
	}

	var decoded parameterBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &decoded); diags.HasErrors() {
		return nil, diags
	}
	p := &model.Parameter{Name: name, Type: decoded.Type}
	if decoded.Default != nil && !decoded.Default.IsNull() {
		p.Value = *decoded.Default
	}
	b.params[name] = p
	return p, nil
}

// children appends the scopes declared by blocks to g in source order.
func (b *treeBuilder) children(g *model.Group, blocks hcl.Blocks) hcl.Diagnostics {
	var diags hcl.Diagnostics

	b.stack = append(b.stack, g)
	defer func() { b.stack = b.stack[:len(b.stack)-1] }()

	for _, blk := range blocks {
		if blk.Type == blockParameter {
			continue
		}
		name := blk.Labels[0]
		if nameDiags := b.declare(name, blk); nameDiags.HasErrors() {
			diags = append(diags, nameDiags...)
			continue
		}

		var child model.Node
		var childDiags hcl.Diagnostics
		switch blk.Type {
		case blockTask:
			child, childDiags = b.task(blk)
		case blockRecurse:
			child, childDiags = b.recurse(blk)
		default:
			child, childDiags = b.group(blk)
		}
		diags = append(diags, childDiags...)
		if child != nil {
			g.Children = append(g.Children, child)
		}
	}
	return diags
}

func (b *treeBuilder) declare(name string, block *hcl.Block) hcl.Diagnostics {
	if !scopepath.ValidName(name) {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid name",
			Detail:   fmt.Sprintf("%q is not a valid %s name: use letters, digits, '-' and '_'.", name, block.Type),
			Subject:  &block.DefRange,
		}}
	}
	if prev, dup := b.seen[name]; dup {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Duplicate scope name",
			Detail:   fmt.Sprintf("The name %q is already used at %s. Task and group names must be unique within a pipeline.", name, prev),
			Subject:  &block.DefRange,
		}}
	}
	b.seen[name] = block.DefRange
	return nil
}

var groupKinds = map[string]model.GroupKind{
	blockGroup:       model.KindSequential,
	blockCondition:   model.KindCondition,
	blockLoop:        model.KindLoop,
	blockGraph:       model.KindGraph,
	blockExitHandler: model.KindExitHandler,
}

func (b *treeBuilder) group(block *hcl.Block) (*model.Group, hcl.Diagnostics) {
	g := &model.Group{Name: block.Labels[0], Kind: groupKinds[block.Type]}
	b.logger.Debug("Building group.", "group", g.Name, "kind", g.Kind)

	content, diags := block.Body.Content(groupSchema(block.Type))
	if diags.HasErrors() {
		return nil, diags
	}

	deps, depDiags := decodeStrings(content.Attributes["depends_on"])
	diags = append(diags, depDiags...)
	g.DependsOn = deps

	switch g.Kind {
	case model.KindCondition:
		cond, condDiags := b.condition(content.Attributes)
		diags = append(diags, condDiags...)
		g.Condition = cond
	case model.KindLoop:
		loop, loopDiags := b.loop(g.Name, content.Attributes)
		diags = append(diags, loopDiags...)
		g.Loop = loop
	}
	if diags.HasErrors() {
		return nil, diags
	}

	diags = append(diags, b.children(g, content.Blocks)...)
	return g, diags
}

func (b *treeBuilder) condition(attrs hcl.Attributes) (*model.Condition, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	cond := &model.Condition{}

	diags = append(diags, gohcl.DecodeExpression(attrs["operator"].Expr, nil, &cond.Operator)...)
	left, leftDiags := b.value(attrs["left"].Expr)
	diags = append(diags, leftDiags...)
	right, rightDiags := b.value(attrs["right"].Expr)
	diags = append(diags, rightDiags...)

	cond.Left, cond.Right = left, right
	return cond, diags
}

func (b *treeBuilder) loop(name string, attrs hcl.Attributes) (*model.Loop, hcl.Diagnostics) {
	items := attrs["items"]
	src, diags := b.value(items.Expr)
	if diags.HasErrors() {
		return nil, diags
	}

	loop := &model.Loop{}
	if src.IsLiteral() {
		ty := src.Value.Type()
		if !ty.IsListType() && !ty.IsTupleType() {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid loop items",
				Detail:   fmt.Sprintf("Loop items must be a list or a reference, got %s.", ty.FriendlyName()),
				Subject:  items.Expr.Range().Ptr(),
			}}
		}
		loop.Items = src.Value
	} else {
		loop.Source = src
	}
	loop.ItemName = model.LoopItemName(name, loop.Source)

	if attr, ok := attrs["parallelism"]; ok {
		var n int
		diags = append(diags, gohcl.DecodeExpression(attr.Expr, nil, &n)...)
		loop.Parallelism = &n
	}
	return loop, diags
}

func (b *treeBuilder) recurse(block *hcl.Block) (*model.Alias, hcl.Diagnostics) {
	var decoded recurseBlock
	if diags := gohcl.DecodeBody(block.Body, nil, &decoded); diags.HasErrors() {
		return nil, diags
	}

	var target *model.Group
	// The root is excluded: it has no component of its own to invoke.
	for i := len(b.stack) - 1; i >= 1; i-- {
		if b.stack[i].Name == decoded.Target {
			target = b.stack[i]
			break
		}
	}
	if target == nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid recursion target",
			Detail:   fmt.Sprintf("%q is not a group enclosing %q.", decoded.Target, block.Labels[0]),
			Subject:  &block.DefRange,
		}}
	}

	alias := &model.Alias{Name: block.Labels[0], Target: target, DependsOn: decoded.DependsOn}
	var diags hcl.Diagnostics
	if isExprDefined(decoded.Inputs) {
		exprs, listDiags := hcl.ExprList(decoded.Inputs)
		diags = append(diags, listDiags...)
		for _, expr := range exprs {
			p, valueDiags := b.value(expr)
			diags = append(diags, valueDiags...)
			if p != nil {
				alias.Inputs = append(alias.Inputs, p)
			}
		}
	}
	return alias, diags
}

// enclosingLoop returns the innermost enclosing loop group with the given
// name.
func (b *treeBuilder) enclosingLoop(name string) (*model.Group, bool) {
	for i := len(b.stack) - 1; i >= 0; i-- {
		if g := b.stack[i]; g.Name == name && g.Kind == model.KindLoop && g.Loop != nil {
			return g, true
		}
	}
	return nil, false
}
