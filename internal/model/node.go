// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Node, the closed union of everything that can appear as a
// child of a Group.
package model

// Node is implemented only by *Task, *Group and *Alias.
type Node interface {
	// NodeName returns the scope name. Names are unique across the tree.
	NodeName() string
	node()
}

func (*Task) node()  {}
func (*Group) node() {}
func (*Alias) node() {}

// NodeName implements Node.
func (t *Task) NodeName() string { return t.Name }

// NodeName implements Node.
func (g *Group) NodeName() string { return g.Name }

// NodeName implements Node.
func (a *Alias) NodeName() string { return a.Name }
