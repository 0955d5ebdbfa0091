// Package flow registers the control-flow node definitions. Their body
// templates are inlined at every use site; none of them exists as a
// callable in generated code.
package flow

import (
	"github.com/vk/bluewire/internal/model"
	"github.com/vk/bluewire/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the control-flow definitions.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(&model.Definition{
		Type:        "branch",
		Kind:        model.KindControlFlow,
		Category:    "Flow",
		Description: "Routes execution to True or False depending on the condition.",
		Params: []model.Param{
			{Name: "condition", Type: cty.Bool},
		},
		ExecInputs: []model.ExecPin{{Name: model.ImplicitExecPin}},
		ExecOutputs: []model.ExecPin{
			{Name: "True", Description: "Taken when the condition holds."},
			{Name: "False", Description: "Taken otherwise."},
		},
		Body: `if condition {
    exec_output("True")
} else {
    exec_output("False")
}`,
	})

	r.MustRegister(&model.Definition{
		Type:        "sequence",
		Kind:        model.KindControlFlow,
		Category:    "Flow",
		Description: "Fires its outputs one after another, every time it runs.",
		ExecInputs:  []model.ExecPin{{Name: model.ImplicitExecPin}},
		ExecOutputs: []model.ExecPin{
			{Name: "Then0"},
			{Name: "Then1"},
			{Name: "Then2"},
			{Name: "Then3"},
		},
		Body: `exec_output("Then0")
exec_output("Then1")
exec_output("Then2")
exec_output("Then3")`,
	})

	r.MustRegister(&model.Definition{
		Type:        "for_loop",
		Kind:        model.KindControlFlow,
		Category:    "Flow",
		Description: "Runs Body count times, then Completed once.",
		Params: []model.Param{
			{Name: "count", Type: cty.Number},
		},
		ExecInputs: []model.ExecPin{{Name: model.ImplicitExecPin}},
		ExecOutputs: []model.ExecPin{
			{Name: "Body", Description: "Runs once per iteration."},
			{Name: "Completed", Description: "Runs after the last iteration."},
		},
		Body: `for i := 0; i < int(count); i++ {
    exec_output("Body")
}
exec_output("Completed")`,
	})

	r.MustRegister(&model.Definition{
		Type:        "while_loop",
		Kind:        model.KindControlFlow,
		Category:    "Flow",
		Description: "Runs Body while the condition expression holds. The condition must eventually become false.",
		Params: []model.Param{
			{Name: "condition", Type: cty.Bool},
		},
		ExecInputs: []model.ExecPin{{Name: model.ImplicitExecPin}},
		ExecOutputs: []model.ExecPin{
			{Name: "Body"},
		},
		Body: `for condition {
    exec_output("Body")
}`,
	})
}
