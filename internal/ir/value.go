package ir

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Constant converts a literal into a constant of the given declared type.
func Constant(v cty.Value, typeName string) (*Value, error) {
	if v.IsNull() || !v.IsWhollyKnown() {
		return nil, fmt.Errorf("constant must be a known, non-null value")
	}

	switch ParameterType(typeName) {
	case TypeInt:
		n, err := convert.Convert(v, cty.Number)
		if err != nil {
			return nil, fmt.Errorf("cannot use %s as an integer: %w", v.Type().FriendlyName(), err)
		}
		var i int64
		if err := gocty.FromCtyValue(n, &i); err != nil {
			return nil, fmt.Errorf("cannot use value as an integer: %w", err)
		}
		return &Value{IntValue: &i}, nil
	case TypeDouble:
		n, err := convert.Convert(v, cty.Number)
		if err != nil {
			return nil, fmt.Errorf("cannot use %s as a double: %w", v.Type().FriendlyName(), err)
		}
		var f float64
		if err := gocty.FromCtyValue(n, &f); err != nil {
			return nil, fmt.Errorf("cannot use value as a double: %w", err)
		}
		return &Value{DoubleValue: &f}, nil
	default:
		s, err := LiteralString(v)
		if err != nil {
			return nil, err
		}
		return &Value{StringValue: &s}, nil
	}
}

// StringConstant is a shorthand for a string-typed constant.
func StringConstant(s string) *Value {
	return &Value{StringValue: &s}
}

// LiteralString renders a literal as plain text. Strings are returned
// as-is, numbers in their shortest decimal form, booleans as true/false and
// collections as compact JSON.
func LiteralString(v cty.Value) (string, error) {
	switch {
	case v.Type() == cty.String:
		return v.AsString(), nil
	case v.Type() == cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	case v.Type() == cty.Bool:
		if v.True() {
			return "true", nil
		}
		return "false", nil
	default:
		b, err := ctyjson.Marshal(v, v.Type())
		if err != nil {
			return "", fmt.Errorf("cannot render literal: %w", err)
		}
		return string(b), nil
	}
}

// ConditionLiteral renders a literal operand of a trigger expression.
// Strings are single-quoted; everything else is rendered unquoted.
func ConditionLiteral(v cty.Value) (string, error) {
	if v.Type() == cty.String {
		return "'" + v.AsString() + "'", nil
	}
	return LiteralString(v)
}

// RawItems renders a static loop source as a JSON list. Element order and
// duplicates are preserved.
func RawItems(v cty.Value) (string, int, error) {
	ty := v.Type()
	if !ty.IsListType() && !ty.IsTupleType() {
		return "", 0, fmt.Errorf("loop items must be a list, got %s", ty.FriendlyName())
	}
	b, err := ctyjson.Marshal(v, ty)
	if err != nil {
		return "", 0, fmt.Errorf("cannot render loop items: %w", err)
	}
	return string(b), v.LengthInt(), nil
}

// InferType returns the declared type name matching a literal, used when a
// parameter is declared without a type.
func InferType(v cty.Value) string {
	if v.IsNull() || v.Type() != cty.Number {
		return "String"
	}
	if v.AsBigFloat().IsInt() {
		return "Integer"
	}
	return "Float"
}
