// Package hclpipeline loads pipeline definitions written in HCL into the
// scope tree consumed by the compiler.
//
// A definition holds exactly one pipeline block. Inside it, task blocks
// declare leaf work and group, condition, loop, graph and exit_handler
// blocks nest further scopes; a recurse block references an enclosing
// group. Values are literals or references:
//
//	param.<name>                  a pipeline parameter
//	task.<name>.<output>          an output of another task
//	loop.<name>.item[.<field>]    the item of an enclosing loop
//
// Sibling order in the file is preserved in the tree.
package hclpipeline
