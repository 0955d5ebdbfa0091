// Package math registers the arithmetic node definitions. All of them are
// pure: they carry no exec pins and pre-evaluate into variables ahead of
// the execution chain that consumes them.
package math

import (
	"github.com/vk/bluewire/internal/model"
	"github.com/vk/bluewire/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the math definitions.
func (m *Module) Register(r *registry.Registry) {
	binary := func(typ, target, desc string) *model.Definition {
		return &model.Definition{
			Type:        typ,
			Kind:        model.KindPure,
			Category:    "Math",
			Description: desc,
			Target:      target,
			Params: []model.Param{
				{Name: "a", Type: cty.Number},
				{Name: "b", Type: cty.Number},
			},
			Outputs: []model.Output{{Name: "result", Type: cty.Number}},
		}
	}

	r.MustRegister(binary("add", "std.Add", "Adds two numbers."))
	r.MustRegister(binary("subtract", "std.Subtract", "Subtracts b from a."))
	r.MustRegister(binary("multiply", "std.Multiply", "Multiplies two numbers."))
	r.MustRegister(binary("divide", "std.Divide", "Divides a by b."))
	r.MustRegister(binary("min", "std.Min", "The smaller of two numbers."))
	r.MustRegister(binary("max", "std.Max", "The larger of two numbers."))

	r.MustRegister(&model.Definition{
		Type:        "abs",
		Kind:        model.KindPure,
		Category:    "Math",
		Description: "Absolute value.",
		Target:      "std.Abs",
		Params:      []model.Param{{Name: "value", Type: cty.Number}},
		Outputs:     []model.Output{{Name: "result", Type: cty.Number}},
	})

	r.MustRegister(&model.Definition{
		Type:        "clamp",
		Kind:        model.KindPure,
		Category:    "Math",
		Description: "Limits a value to an inclusive range.",
		Target:      "std.Clamp",
		Params: []model.Param{
			{Name: "value", Type: cty.Number},
			{Name: "min", Type: cty.Number},
			{Name: "max", Type: cty.Number},
		},
		Outputs: []model.Output{{Name: "result", Type: cty.Number}},
	})
}
