// Package compiler turns a blueprint graph into Go source text.
//
// A compilation is a pure function of the graph, the definition registry,
// and an optional sub-graph library. The pipeline runs fixed stages:
// sub-graph expansion, validation, data flow resolution, execution routing,
// and code generation. Every failure is a tagged diag.Diagnostic; findings
// are accumulated rather than returned one at a time, and any finding
// suppresses output text.
//
// Determinism is a contract, not an accident: node insertion order,
// connection declaration order, and first-appearance tie-breaking drive
// every traversal, so an unchanged graph always compiles to byte-identical
// source.
package compiler
