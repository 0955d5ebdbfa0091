package model

import (
	"sync"

	"github.com/vk/bluewire/internal/template"
	"github.com/zclconf/go-cty/cty"
)

// ImplicitExecPin is the name given to the single exec input every
// non-pure node carries and to the single exec output of a function node.
const ImplicitExecPin = "exec"

// Param is one declared data input of a definition.
type Param struct {
	// Name is the input pin name.
	Name string
	// Type is the value type the pin accepts.
	Type cty.Type
	// Description is optional operator documentation.
	Description string
	// Default, when non-nil, is used when a graph supplies neither a
	// connection nor a property constant for the pin.
	Default *cty.Value
	// Optional marks an input that may be left entirely unresolved.
	Optional bool
}

// Output is one declared data output of a definition. Pure and function
// definitions have at most one, conventionally named "result"; event
// definitions may declare several, which surface as parameters of the
// generated entry function.
type Output struct {
	Name        string
	Type        cty.Type
	Description string
}

// ExecPin is one declared execution pin.
type ExecPin struct {
	Name        string
	Description string
}

// Definition describes one node type: its flow kind, data interface, exec
// pins, and how generated code realizes it. Immutable once registered; the
// compiler only reads it.
type Definition struct {
	// Type is the node type name graphs reference, e.g. "print_string".
	Type string
	// Kind is the flow classification.
	Kind Kind
	// Category groups related definitions in the editor palette.
	Category string
	// Description is operator documentation.
	Description string

	// Target is the qualified Go symbol a generated call invokes, e.g.
	// "std.PrintString". Meaningful for pure and function kinds only.
	Target string

	// Params are the data inputs, in declaration order.
	Params []Param
	// Outputs are the data outputs, in declaration order.
	Outputs []Output

	// ExecInputs and ExecOutputs are the execution pins, in declaration
	// order. Pure definitions have neither; function definitions have the
	// implicit pair; control-flow and event definitions declare theirs.
	ExecInputs  []ExecPin
	ExecOutputs []ExecPin

	// Body is the literal source template for control-flow and event
	// kinds. Its exec_output("Label") slots must match ExecOutputs.
	Body string

	bodyOnce sync.Once
	bodyTmpl *template.Template
	bodyErr  error
}

// Template returns the parsed body template. The parse runs once per
// definition and is cached, so registry validation and every compilation
// that inlines this node type share the same work.
func (d *Definition) Template() (*template.Template, error) {
	d.bodyOnce.Do(func() {
		d.bodyTmpl, d.bodyErr = template.Parse(d.Body)
	})
	return d.bodyTmpl, d.bodyErr
}

// Param finds a declared input by pin name.
func (d *Definition) Param(name string) (Param, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Output finds a declared output by pin name.
func (d *Definition) Output(name string) (Output, bool) {
	for _, o := range d.Outputs {
		if o.Name == name {
			return o, true
		}
	}
	return Output{}, false
}

// Return reports the single data output of a pure or function definition.
func (d *Definition) Return() (Output, bool) {
	if len(d.Outputs) == 0 {
		return Output{}, false
	}
	return d.Outputs[0], true
}

// HasExecOutput reports whether the definition declares the named exec
// output pin.
func (d *Definition) HasExecOutput(name string) bool {
	for _, e := range d.ExecOutputs {
		if e.Name == name {
			return true
		}
	}
	return false
}

// ExecOutputNames returns the declared exec output names in order.
func (d *Definition) ExecOutputNames() []string {
	names := make([]string, len(d.ExecOutputs))
	for i, e := range d.ExecOutputs {
		names[i] = e.Name
	}
	return names
}
