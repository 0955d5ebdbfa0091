// Package events registers the entry-point node definitions. Every event
// node in a graph becomes one generated function; the conventional "main"
// event becomes func main().
package events

import (
	"github.com/vk/bluewire/internal/model"
	"github.com/vk/bluewire/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the event definitions.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(&model.Definition{
		Type:        "main",
		Kind:        model.KindEvent,
		Category:    "Events",
		Description: "Program entry point. The chain on Body becomes the body of func main().",
		ExecOutputs: []model.ExecPin{{Name: "Body"}},
		Body:        `exec_output("Body")`,
	})

	r.MustRegister(&model.Definition{
		Type:        "on_start",
		Kind:        model.KindEvent,
		Category:    "Events",
		Description: "Startup hook, generated as its own function.",
		ExecOutputs: []model.ExecPin{{Name: "Body"}},
		Body:        `exec_output("Body")`,
	})

	r.MustRegister(&model.Definition{
		Type:        "on_tick",
		Kind:        model.KindEvent,
		Category:    "Events",
		Description: "Periodic hook. The elapsed seconds surface as the generated function's parameter.",
		Outputs: []model.Output{
			{Name: "delta", Type: cty.Number, Description: "Seconds since the previous tick."},
		},
		ExecOutputs: []model.ExecPin{{Name: "Body"}},
		Body:        `exec_output("Body")`,
	})
}
