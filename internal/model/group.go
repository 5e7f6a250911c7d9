// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the structural scopes: Group, its kind-specific payloads
// (Condition and Loop) and the recursive Alias.
//
// Why is Alias not a Group kind?
//
// A recursive reference points at a group that is already being compiled
// higher up in the tree. Copying the subtree would recurse forever, and
// descending into it would visit the same scopes twice. Keeping Alias as a
// separate node type makes "do not descend" the default at every traversal.
package model

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// GroupKind identifies the structural role of a Group.
type GroupKind int

const (
	KindRoot GroupKind = iota
	KindSequential
	KindCondition
	KindLoop
	// KindGraph and KindExitHandler are accepted by the model and rejected
	// by the compiler.
	KindGraph
	KindExitHandler
)

func (k GroupKind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindSequential:
		return "sequential"
	case KindCondition:
		return "condition"
	case KindLoop:
		return "loop"
	case KindGraph:
		return "graph"
	case KindExitHandler:
		return "exit_handler"
	default:
		return "unknown"
	}
}

// Group is a structural scope owning its children.
type Group struct {
	Name string
	Kind GroupKind
	// Children in declaration order.
	Children []Node
	// DependsOn lists extra upstream scope names.
	DependsOn []string
	// Condition is set for KindCondition.
	Condition *Condition
	// Loop is set for KindLoop.
	Loop *Loop
}

// Condition is the predicate of a condition group. Operands are either
// literals or references.
type Condition struct {
	Left     *Parameter
	Operator string
	Right    *Parameter
}

// Params returns the non-literal operands.
func (c *Condition) Params() []*Parameter {
	var params []*Parameter
	for _, operand := range []*Parameter{c.Left, c.Right} {
		if operand != nil && !operand.IsLiteral() {
			params = append(params, operand)
		}
	}
	return params
}

// Loop is the payload of a loop group. Exactly one of Items and Source is
// set.
type Loop struct {
	// Items is a static list (a cty list or tuple) embedded verbatim.
	Items cty.Value
	// Source is a reference to a list produced elsewhere.
	Source *Parameter
	// ItemName is the name of the per-iteration parameter.
	ItemName string
	// Parallelism is accepted but has no effect.
	Parallelism *int
}

// LoopItemName returns the conventional name of a loop's item parameter: a
// static loop names it after itself, a loop over a reference after the
// referenced value.
func LoopItemName(loop string, source *Parameter) string {
	if source == nil {
		return "loop-item-param-" + loop
	}
	return source.FullName() + "-loop-item"
}

// IsStatic reports whether the loop iterates a compile-time list.
func (l *Loop) IsStatic() bool {
	return l.Source == nil
}

// Item returns the per-iteration parameter.
func (l *Loop) Item() *Parameter {
	return &Parameter{Name: l.ItemName, Type: "String"}
}

// Field returns the parameter projecting a sub-field of a structured item.
func (l *Loop) Field(field string) *Parameter {
	return &Parameter{Name: l.ItemName + subvarSeparator + field, Type: "String"}
}

// Originates reports whether p is this loop's item or one of its fields.
// The check is textual: any parameter whose name contains the item name
// counts, so item names must not be substrings of unrelated names.
func (l *Loop) Originates(p *Parameter) bool {
	return p.Producer == "" && strings.Contains(p.Name, l.ItemName)
}

// SubField returns the projected field name of p, if p is a field
// projection of this loop's item.
func (l *Loop) SubField(p *Parameter) (string, bool) {
	prefix := l.ItemName + subvarSeparator
	if !strings.HasPrefix(p.Name, prefix) {
		return "", false
	}
	return strings.TrimPrefix(p.Name, prefix), true
}

const subvarSeparator = "-subvar-"

// Alias is a recursive reference to an enclosing group.
type Alias struct {
	Name   string
	Target *Group
	// Inputs are the parameters passed into the referenced group.
	Inputs    []*Parameter
	DependsOn []string
}
