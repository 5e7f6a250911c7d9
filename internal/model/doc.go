// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the Go representation of a pipeline as a tree of
// nested scopes. It is the input of the compiler: a front-end (for example
// the HCL loader) evaluates an author's definition into this tree, and the
// resolve and compiler packages turn it into the pipeline IR.
//
// # Core Concepts
//
// The model is built around a few key structures:
//
//   - Pipeline: The root container. It carries the pipeline identity, its
//     pipeline-level parameters and the root Group.
//
//   - Task: A leaf unit of executable work. It consumes parameters, declares
//     outputs and optionally carries an executor descriptor.
//
//   - Group: A structural scope (root, sequential, condition, loop, or one of
//     the kinds the compiler rejects). Children keep declaration order.
//
//   - Alias: A recursive reference to an already defined Group. It holds the
//     target's identity, never a copy of its subtree.
//
// Node is a closed union over these three types. Every traversal in the
// compiler switches over it exhaustively.
//
// The tree is treated as immutable once built.
package model
