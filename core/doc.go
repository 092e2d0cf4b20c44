// Package core defines the immutable post-build graph: Variables, Models,
// Edges, Shadows, Mappings and Subsets, plus the index size limits that
// every other fhk package builds on.
//
// A core.Graph is produced once by package builder and never mutated again.
// Unlike a general-purpose mutable graph, it needs no locking: all readers
// share the same backing arrays for the lifetime of the Graph, and every
// cross-reference between a Variable and a Model is a plain signed index
// into one shared index space (NodeIndex), never a pointer.
//
// This file declares the doc comment; types.go declares Variable, Model and
// Graph; edge.go declares Edge and Shadow; mapping.go declares Mapping;
// subset.go declares Subset and RangeTable; limits.go declares the index
// size ceilings a Builder enforces before they would overflow their packed
// field widths.
package core
