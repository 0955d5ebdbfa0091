// Package hcl loads node definition manifests.
//
// A manifest is an .hcl file of `node` blocks declaring a node type's kind,
// data pins, exec pins, and (for control-flow and event kinds) its body
// template. The loader discovers files, parses them, and translates the
// decoded blocks into model.Definition values for the registry.
//
// The package also owns the type-expression dialect shared by manifests and
// graph files: `string`, `number`, `bool`, `any`, `list(T)`, `map(T)`,
// `set(T)`, and `object({...})` all translate to cty types.
package hcl
