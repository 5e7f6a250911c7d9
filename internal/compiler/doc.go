// Package compiler turns a resolved scope tree into a pipeline spec.
//
// Compilation runs in two phases. The resolve package computes, for every
// scope, which values cross its boundary and which siblings it must run
// after. The emitter then visits every group in pre-order and materializes
// one component per group: its declared inputs and outputs, one task spec
// per child wired from that analysis, a synthetic iterator for loops and a
// trigger predicate for conditions. Leaf tasks contribute their own
// components and executors.
//
// Each component is assembled in a private builder. Builders are merged into
// the pipeline spec only after every group has been emitted, so a failed
// compilation never exposes a partial document.
package compiler
