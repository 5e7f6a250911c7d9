// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Parameter, the named value reference that flows between
// scopes.
//
// A parameter is either a literal (Value is set) or a reference. A reference
// with a Producer is an output of that task; a reference without one is a
// pipeline-level value or a value forwarded from an enclosing scope, such as
// a loop's iteration item.
package model

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Parameter is a value consumed or produced by a scope.
type Parameter struct {
	// Name is the parameter name. For task outputs it is the output name.
	Name string
	// Type is the declared type name, e.g. "Integer", "String" or "Dataset".
	// It may be empty; the resolver unifies it across all referencing sites.
	Type string
	// Value holds the literal value. cty.NilVal means "not a literal".
	Value cty.Value
	// Producer is the name of the producing task, empty if none.
	Producer string
}

// Literal creates a literal parameter carrying v.
func Literal(v cty.Value) *Parameter {
	return &Parameter{Value: v}
}

// IsLiteral reports whether the parameter carries an immediate value.
func (p *Parameter) IsLiteral() bool {
	return !p.Value.IsNull()
}

// FullName is the name qualified with its producer, if any.
func (p *Parameter) FullName() string {
	if p.Producer == "" {
		return p.Name
	}
	return p.Producer + "-" + p.Name
}

// Pattern returns the identity of the parameter. Two parameters with equal
// patterns refer to the same value.
func (p *Parameter) Pattern() string {
	return fmt.Sprintf("{{pipelineparam:op=%s;name=%s}}", p.Producer, p.Name)
}

func (p *Parameter) String() string {
	return p.Pattern()
}
