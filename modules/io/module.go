// Package io registers the side-effecting input/output node definitions.
// They are function kind: one implicit exec in/out pair and a direct call
// in generated code.
package io

import (
	"github.com/vk/bluewire/internal/model"
	"github.com/vk/bluewire/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the io definitions.
func (m *Module) Register(r *registry.Registry) {
	printNode := func(typ, target, desc string, param string, t cty.Type) *model.Definition {
		return &model.Definition{
			Type:        typ,
			Kind:        model.KindFunction,
			Category:    "IO",
			Description: desc,
			Target:      target,
			Params:      []model.Param{{Name: param, Type: t}},
			ExecInputs:  []model.ExecPin{{Name: model.ImplicitExecPin}},
			ExecOutputs: []model.ExecPin{{Name: model.ImplicitExecPin}},
		}
	}

	r.MustRegister(printNode("print_string", "std.PrintString", "Prints a string and a newline.", "message", cty.String))
	r.MustRegister(printNode("print_number", "std.PrintNumber", "Prints a number and a newline.", "value", cty.Number))
	r.MustRegister(printNode("print_bool", "std.PrintBool", "Prints a boolean and a newline.", "value", cty.Bool))

	r.MustRegister(&model.Definition{
		Type:        "read_line",
		Kind:        model.KindFunction,
		Category:    "IO",
		Description: "Reads one line from stdin.",
		Target:      "std.ReadLine",
		Outputs:     []model.Output{{Name: "result", Type: cty.String}},
		ExecInputs:  []model.ExecPin{{Name: model.ImplicitExecPin}},
		ExecOutputs: []model.ExecPin{{Name: model.ImplicitExecPin}},
	})
}
