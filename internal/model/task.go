// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Task structure, the leaf unit of work in the scope
// tree, and the executor descriptor it may carry.
//
// Executor descriptors are built by the front-end and passed through the
// compiler untouched. The compiler only decides which of them wins and where
// in the executor registry they land.
package model

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// Task is a leaf scope.
type Task struct {
	Name string
	// Inputs are the task's arguments in declaration order.
	Inputs []Argument
	// Outputs are the values the task produces.
	Outputs []Output
	// DependsOn lists extra upstream scope names (tasks or groups).
	DependsOn []string
	// IsExitHandler marks a task that runs on pipeline exit. Its
	// pipeline-level inputs are not propagated to enclosing scopes.
	IsExitHandler bool
	// Executor is optional. Tasks without one compile to a component with
	// no executor label.
	Executor *Executor
}

// Argument binds one of the task's declared inputs to a parameter.
type Argument struct {
	Name  string
	Param *Parameter
}

// Output is a declared output of a task.
type Output struct {
	Name string
	Type string
}

// OutputParam returns the parameter a consumer uses to refer to the named
// output, or nil if the task has no such output.
func (t *Task) OutputParam(name string) *Parameter {
	for _, out := range t.Outputs {
		if out.Name == name {
			return &Parameter{Name: out.Name, Type: out.Type, Producer: t.Name}
		}
	}
	return nil
}

// Executor describes how a task runs. At most one of Container, Importer
// and CustomJob is expected; when both CustomJob and Container are set the
// custom job wins.
type Executor struct {
	// Label is the executor registry key. Empty means "exec-<task name>".
	Label     string
	Container *Container
	Importer  *Importer
	// CustomJob is an opaque job descriptor rendered as-is.
	CustomJob *structpb.Struct
}

// Container is a container invocation.
type Container struct {
	Image   string
	Command []string
	Args    []string
}

// Importer imports an existing artifact into the pipeline.
type Importer struct {
	ArtifactURI string
	// SchemaTitle is the imported artifact type, e.g. "system.Dataset".
	SchemaTitle string
	Reimport    bool
}
