package model

import "fmt"

// Kind classifies how a node participates in execution flow.
type Kind string

const (
	// KindPure has no exec pins. It contributes only to data flow and is
	// evaluated once into a variable ahead of the execution chain that
	// consumes it.
	KindPure Kind = "pure"

	// KindFunction has one implicit exec-in/exec-out pair and performs a
	// side effect. It compiles to a direct call.
	KindFunction Kind = "function"

	// KindControlFlow has one exec input and one or more named exec
	// outputs. Its body template is always inlined at the use site, never
	// emitted as a callable.
	KindControlFlow Kind = "control_flow"

	// KindEvent defines a program entry point. Each event node becomes one
	// generated function.
	KindEvent Kind = "event"
)

// ParseKind converts a manifest kind string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPure, KindFunction, KindControlFlow, KindEvent:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown node kind %q (want pure, function, control_flow, or event)", s)
	}
}

// String implements fmt.Stringer.
func (k Kind) String() string { return string(k) }
