// Package dag provides the dependency graph the compiler uses to order
// node evaluation and to detect cycles before code generation.
//
// Unlike a general-purpose graph, this one is deterministic end to end:
// nodes remember insertion order, topological sorting breaks ties by that
// order, and cycle detection walks edges in the order they were added. The
// same blueprint therefore always produces the same evaluation order and,
// when invalid, the same reported cycle.
package dag
