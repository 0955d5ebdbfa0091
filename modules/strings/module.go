// Package strings registers the text node definitions.
package strings

import (
	"github.com/vk/bluewire/internal/model"
	"github.com/vk/bluewire/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the string definitions.
func (m *Module) Register(r *registry.Registry) {
	unary := func(typ, target, desc string, out cty.Type) *model.Definition {
		return &model.Definition{
			Type:        typ,
			Kind:        model.KindPure,
			Category:    "String",
			Description: desc,
			Target:      target,
			Params:      []model.Param{{Name: "text", Type: cty.String}},
			Outputs:     []model.Output{{Name: "result", Type: out}},
		}
	}

	r.MustRegister(&model.Definition{
		Type:        "concat",
		Kind:        model.KindPure,
		Category:    "String",
		Description: "Joins two strings.",
		Target:      "std.Concat",
		Params: []model.Param{
			{Name: "a", Type: cty.String},
			{Name: "b", Type: cty.String},
		},
		Outputs: []model.Output{{Name: "result", Type: cty.String}},
	})

	r.MustRegister(unary("length", "std.Length", "Number of bytes in the text.", cty.Number))
	r.MustRegister(unary("uppercase", "std.Uppercase", "Upper-cases the text.", cty.String))
	r.MustRegister(unary("lowercase", "std.Lowercase", "Lower-cases the text.", cty.String))

	r.MustRegister(&model.Definition{
		Type:        "contains",
		Kind:        model.KindPure,
		Category:    "String",
		Description: "True when the text contains the substring.",
		Target:      "std.Contains",
		Params: []model.Param{
			{Name: "text", Type: cty.String},
			{Name: "substring", Type: cty.String},
		},
		Outputs: []model.Output{{Name: "result", Type: cty.Bool}},
	})

	r.MustRegister(&model.Definition{
		Type:        "to_string",
		Kind:        model.KindPure,
		Category:    "String",
		Description: "Renders any value as text.",
		Target:      "std.ToString",
		Params:      []model.Param{{Name: "value", Type: cty.DynamicPseudoType}},
		Outputs:     []model.Output{{Name: "result", Type: cty.String}},
	})
}
