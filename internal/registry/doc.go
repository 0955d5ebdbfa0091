// Package registry provides the central "glue" for the node definition
// system.
//
// The Registry stores the node definitions a compilation resolves against:
// builtin packs register theirs in Go at startup, and operator-supplied HCL
// manifests merge in on top. Every definition is keyed by the node type
// string that blueprint graphs reference (e.g. "print_string").
//
// After population the registry is validated to ensure every definition has
// the shape its kind demands, down to the parity between a body template's
// exec_output labels and the declared execution output pins. Catching these
// mismatches at startup prevents a wide class of code generation errors.
package registry
