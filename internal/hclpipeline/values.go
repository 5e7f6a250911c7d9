package hclpipeline

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/pipelineir/internal/model"
	"github.com/zclconf/go-cty/cty"
)

// Reference roots.
const (
	rootParam = "param"
	rootTask  = "task"
	rootLoop  = "loop"
)

// isExprDefined reports whether an optional attribute was written in the
// source. The decoder fills omitted ones with a zero-width placeholder.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	rng := expr.Range()
	return rng.End.Byte > rng.Start.Byte
}

// value converts an expression into a literal or a reference.
func (b *treeBuilder) value(expr hcl.Expression) (*model.Parameter, hcl.Diagnostics) {
	if len(expr.Variables()) == 0 {
		v, diags := expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		if v.IsNull() || !v.IsWhollyKnown() {
			return nil, hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid value",
				Detail:   "A value must be known and not null.",
				Subject:  expr.Range().Ptr(),
			}}
		}
		return model.Literal(v), nil
	}

	traversal, diags := hcl.AbsTraversalForExpr(expr)
	if diags.HasErrors() {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid reference",
			Detail:   "A value must be a literal or a single reference such as param.<name>, task.<name>.<output> or loop.<name>.item.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return b.reference(traversal)
}

func (b *treeBuilder) reference(t hcl.Traversal) (*model.Parameter, hcl.Diagnostics) {
	parts, ok := traversalNames(t)
	invalid := func(detail string) hcl.Diagnostics {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid reference",
			Detail:   fmt.Sprintf("%s: %s", traversalString(t), detail),
			Subject:  t.SourceRange().Ptr(),
		}}
	}
	if !ok {
		return nil, invalid("only attribute access is supported")
	}

	switch parts[0] {
	case rootParam:
		if len(parts) != 2 {
			return nil, invalid("expected param.<name>")
		}
		declared, ok := b.params[parts[1]]
		if !ok {
			return nil, invalid("no such pipeline parameter")
		}
		return &model.Parameter{Name: declared.Name, Type: declared.Type}, nil

	case rootTask:
		if len(parts) != 3 {
			return nil, invalid("expected task.<name>.<output>")
		}
		return &model.Parameter{Name: parts[2], Producer: parts[1]}, nil

	case rootLoop:
		if len(parts) < 3 || len(parts) > 4 || parts[2] != "item" {
			return nil, invalid("expected loop.<name>.item or loop.<name>.item.<field>")
		}
		g, ok := b.enclosingLoop(parts[1])
		if !ok {
			return nil, invalid("not inside that loop")
		}
		if len(parts) == 4 {
			return g.Loop.Field(parts[3]), nil
		}
		return g.Loop.Item(), nil

	default:
		return nil, invalid(fmt.Sprintf("unknown reference root %q", parts[0]))
	}
}

// traversalNames flattens a traversal of attribute steps. String index
// keys count as attributes, so item["field"] equals item.field.
func traversalNames(t hcl.Traversal) ([]string, bool) {
	names := make([]string, 0, len(t))
	for _, step := range t {
		switch s := step.(type) {
		case hcl.TraverseRoot:
			names = append(names, s.Name)
		case hcl.TraverseAttr:
			names = append(names, s.Name)
		case hcl.TraverseIndex:
			if s.Key.Type() != cty.String || s.Key.IsNull() {
				return nil, false
			}
			names = append(names, s.Key.AsString())
		default:
			return nil, false
		}
	}
	return names, true
}

// traversalString renders a traversal as it would appear in source.
func traversalString(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}
