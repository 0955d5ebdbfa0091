package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies a Diagnostic. The set is closed: every failure mode the
// compiler can attribute to a graph maps onto exactly one of these values.
type Code string

const (
	// NodeNotFound reports a node whose type has no registry definition,
	// or a connection endpoint naming a node absent from the graph.
	NodeNotFound Code = "node_not_found"

	// TypeMismatch reports bad wiring on a connection: incompatible pin
	// kinds or data types, an endpoint naming a pin the definition does not
	// declare, or a second writer on a single data input.
	TypeMismatch Code = "type_mismatch"

	// MissingConnection reports a required input with neither an incoming
	// connection nor a constant value.
	MissingConnection Code = "missing_connection"

	// CyclicDependency reports a cycle in the pure-node data dependency
	// graph.
	CyclicDependency Code = "cyclic_dependency"

	// CircularSubgraphReference reports a sub-graph definition that
	// instantiates itself, directly or through a chain of other sub-graphs.
	CircularSubgraphReference Code = "circular_subgraph_reference"

	// InvalidControlFlowStructure reports structural misuse of execution
	// flow: placeholder slots in a side-effect-free body, slot labels that
	// disagree with declared execution outputs, an event node wired into
	// the middle of a chain, or a graph with no entry point at all.
	InvalidControlFlowStructure Code = "invalid_control_flow"
)

// Diagnostic is a single compiler finding. Node and Pin are the graph
// identifiers an editor highlights; either may be empty when the finding is
// not tied to one element. Cycle carries the member node IDs, in cycle
// order, for cycle-class codes.
type Diagnostic struct {
	Code    Code
	Node    string
	Pin     string
	Cycle   []string
	Message string
}

// New builds a Diagnostic for the given code and formatted message.
func New(code Code, format string, args ...any) *Diagnostic {
	return &Diagnostic{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Nodef builds a Diagnostic attributed to a single node.
func Nodef(code Code, node, format string, args ...any) *Diagnostic {
	return &Diagnostic{Code: code, Node: node, Message: fmt.Sprintf(format, args...)}
}

// Pinf builds a Diagnostic attributed to a specific pin on a node.
func Pinf(code Code, node, pin, format string, args ...any) *Diagnostic {
	return &Diagnostic{Code: code, Node: node, Pin: pin, Message: fmt.Sprintf(format, args...)}
}

// Cyclef builds a cycle-class Diagnostic. The members are reported in cycle
// order, starting from the node where the cycle was detected.
func Cyclef(code Code, members []string, format string, args ...any) *Diagnostic {
	return &Diagnostic{Code: code, Cycle: members, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(string(d.Code))
	if d.Node != "" {
		fmt.Fprintf(&b, " [node %q", d.Node)
		if d.Pin != "" {
			fmt.Fprintf(&b, ", pin %q", d.Pin)
		}
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(d.Message)
	return b.String()
}

// List is an ordered collection of diagnostics. A nil or empty List means
// the compilation produced no findings.
type List []*Diagnostic

// Error implements the error interface, rendering one finding per line in
// accumulation order.
func (l List) Error() string {
	if len(l) == 0 {
		return "no diagnostics"
	}
	msgs := make([]string, len(l))
	for i, d := range l {
		msgs[i] = d.Error()
	}
	return fmt.Sprintf("compilation failed with %d diagnostic(s):\n- %s",
		len(l), strings.Join(msgs, "\n- "))
}

// Unwrap exposes the individual diagnostics to errors.Is/errors.As chains.
func (l List) Unwrap() []error {
	errs := make([]error, len(l))
	for i, d := range l {
		errs[i] = d
	}
	return errs
}

// Has reports whether the list contains a diagnostic with the given code.
func (l List) Has(code Code) bool {
	for _, d := range l {
		if d.Code == code {
			return true
		}
	}
	return false
}

// ErrOrNil returns the list as an error, or nil when it is empty. Callers
// must use this instead of returning a List directly, so an empty list never
// becomes a non-nil error interface value.
func (l List) ErrOrNil() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// AsList extracts a List from an error chain. It returns false when the
// error did not originate from the compiler's diagnostic path.
func AsList(err error) (List, bool) {
	var l List
	if errors.As(err, &l) {
		return l, true
	}
	var d *Diagnostic
	if errors.As(err, &d) {
		return List{d}, true
	}
	return nil, false
}

// CodeOf returns the code of the first diagnostic in the error chain, or
// the empty string when the error carries no diagnostic.
func CodeOf(err error) Code {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d.Code
	}
	if l, ok := AsList(err); ok && len(l) > 0 {
		return l[0].Code
	}
	return ""
}
