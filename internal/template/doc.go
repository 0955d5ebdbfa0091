// Package template implements the body-template language used by
// control-flow and event node definitions.
//
// A body is a snippet of target-language source with two placeholder kinds:
//
//   - parameter references: bare identifiers matching a definition input,
//     replaced by the resolved argument expression;
//   - execution slots: exec_output("Label") statements, replaced by the
//     code generated for whatever the graph wires to that exec output pin.
//
// The parser tokenizes the snippet and indexes placeholder positions, so
// substitution is a structural splice on byte spans rather than textual
// find/replace: identifiers inside string literals or selector expressions
// are never touched, nesting is preserved, and injected blocks inherit the
// slot's own indentation. One structural rule keeps splicing unambiguous:
// an exec_output slot must be the only statement on its line.
//
// The grammar is deliberately not tied to the host language: braces,
// parentheses, string literals, and line comments are the only syntax the
// parser understands, which is enough for any C-family target.
package template
