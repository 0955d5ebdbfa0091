// Package blueprint holds the graph data model the compiler consumes: nodes
// with typed pins, ordered connections, and the sub-graph definitions that
// macro instances reference.
//
// A Graph is caller-owned input. The compiler never mutates one it was
// handed; stages that need to restructure the graph (sub-graph expansion)
// work on a deep Clone. Node insertion order and connection declaration
// order are both preserved, because generated output must be byte-identical
// across repeated compilations of the same graph.
package blueprint
