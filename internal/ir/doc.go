// Package ir defines the pipeline intermediate representation produced by
// the compiler: a component table, a root component and a flat executor
// registry, plus the job wrapper that pairs a spec with its runtime config.
//
// The types mirror the structure of the pipeline spec document. All
// collections are maps keyed by name; both the JSON and the YAML encoders
// emit map keys in sorted order, so encoding a document is deterministic.
//
// The package also owns the naming and typing conventions shared by the
// compiler and its tests: task, component and executor names, the key used
// for parameters forwarded across scope boundaries, and the mapping from
// declared type names to parameter and artifact types.
package ir
