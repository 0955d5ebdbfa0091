// Package model holds the format-agnostic node definition types the
// registry stores and the compiler reads.
//
// Definitions arrive from two directions: built-in node packs register them
// directly from Go code, and user manifests are translated into them by the
// hcl package. Either way, once the registry is validated the definitions
// are immutable for the lifetime of the process, which is what makes the
// compiler's memoized template cache safe to share across calls.
package model
