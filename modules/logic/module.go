// Package logic registers the boolean and comparison node definitions.
package logic

import (
	"github.com/vk/bluewire/internal/model"
	"github.com/vk/bluewire/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the logic definitions.
func (m *Module) Register(r *registry.Registry) {
	boolBinary := func(typ, target, desc string) *model.Definition {
		return &model.Definition{
			Type:        typ,
			Kind:        model.KindPure,
			Category:    "Logic",
			Description: desc,
			Target:      target,
			Params: []model.Param{
				{Name: "a", Type: cty.Bool},
				{Name: "b", Type: cty.Bool},
			},
			Outputs: []model.Output{{Name: "result", Type: cty.Bool}},
		}
	}
	compare := func(typ, target, desc string) *model.Definition {
		return &model.Definition{
			Type:        typ,
			Kind:        model.KindPure,
			Category:    "Logic",
			Description: desc,
			Target:      target,
			Params: []model.Param{
				{Name: "a", Type: cty.Number},
				{Name: "b", Type: cty.Number},
			},
			Outputs: []model.Output{{Name: "result", Type: cty.Bool}},
		}
	}

	r.MustRegister(boolBinary("and", "std.And", "Logical AND."))
	r.MustRegister(boolBinary("or", "std.Or", "Logical OR."))
	r.MustRegister(boolBinary("xor", "std.Xor", "True when exactly one input is true."))

	r.MustRegister(&model.Definition{
		Type:        "not",
		Kind:        model.KindPure,
		Category:    "Logic",
		Description: "Logical negation.",
		Target:      "std.Not",
		Params:      []model.Param{{Name: "value", Type: cty.Bool}},
		Outputs:     []model.Output{{Name: "result", Type: cty.Bool}},
	})

	r.MustRegister(compare("equals", "std.Equals", "True when a equals b."))
	r.MustRegister(compare("not_equals", "std.NotEquals", "True when a differs from b."))
	r.MustRegister(compare("greater_than", "std.GreaterThan", "True when a > b."))
	r.MustRegister(compare("less_than", "std.LessThan", "True when a < b."))

	r.MustRegister(&model.Definition{
		Type:        "select",
		Kind:        model.KindPure,
		Category:    "Logic",
		Description: "Picks a when the condition holds, otherwise b.",
		Target:      "std.Select",
		Params: []model.Param{
			{Name: "condition", Type: cty.Bool},
			{Name: "a", Type: cty.DynamicPseudoType},
			{Name: "b", Type: cty.DynamicPseudoType},
		},
		Outputs: []model.Output{{Name: "result", Type: cty.DynamicPseudoType}},
	})
}
