// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines Pipeline, the root container handed to the compiler.
package model

// Pipeline is a fully constructed scope tree plus its identity.
type Pipeline struct {
	Name string
	// Params are the pipeline-level parameters, with defaults as literal
	// values where declared.
	Params []*Parameter
	// PipelineRoot is the default output location recorded in the job's
	// runtime config.
	PipelineRoot string
	Root         *Group
}

// NewPipeline creates a pipeline with an empty root group.
func NewPipeline(name string) *Pipeline {
	return &Pipeline{
		Name: name,
		Root: &Group{Name: "root", Kind: KindRoot},
	}
}

// Param returns the pipeline parameter with the given name.
func (p *Pipeline) Param(name string) (*Parameter, bool) {
	for _, param := range p.Params {
		if param.Name == name {
			return param, true
		}
	}
	return nil, false
}
