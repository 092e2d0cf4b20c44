// Package builder assembles a core.Graph: a mutable accumulator of
// variables, models, and the param/return/check edges between them, emitted
// once into the packed, immutable form package core and package reduce
// operate on.
//
// Design contract (kept from the graph-topology builder this package
// replaces):
//   - One orchestrator: (*Builder).Build(). Validates every accumulated
//     definition, interns user mappings, reorders edges, and emits a
//     core.Graph.
//   - Safety: never panic on bad host input; return sentinel errors from
//     AddVariable/AddModel/AddParam/AddReturn/AddCheck. The one exception is
//     a non-comparable UserMap argument, which makes Build panic when it
//     interns the mapping. Functional options
//     (construction knobs only, not graph semantics) may still panic on a
//     nil argument, matching the original's option-constructor convention.
//   - Determinism: the same call sequence always emits an identical graph.
package builder
