// Package diag defines the compiler's diagnostic taxonomy.
//
// Every problem the compiler can report about a graph is a Diagnostic
// carrying a stable Code plus the node and pin identifiers an editor needs
// to highlight the offending element. Diagnostics are accumulated into a
// List so a single compilation can surface every problem it found, not just
// the first one.
//
// Faults in the surrounding machinery (unreadable manifest files, malformed
// JSON) are deliberately NOT diagnostics; those are plain wrapped errors,
// because they describe the environment rather than the graph.
package diag
