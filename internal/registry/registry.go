package registry

import (
	"fmt"

	"github.com/vk/bluewire/internal/model"
)

// Module is the interface that all builtin node packs implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds every node definition available to a compilation, keyed by
// node type. Registration order is preserved so listings and generated
// documentation stay stable.
type Registry struct {
	definitions map[string]*model.Definition
	order       []string
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		definitions: make(map[string]*model.Definition),
	}
}

// Install registers every given module's definitions.
func (r *Registry) Install(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}

// Register adds a definition. Registering a second definition for the same
// node type is an error; manifests may add types but never silently shadow
// builtin ones.
func (r *Registry) Register(def *model.Definition) error {
	if def == nil || def.Type == "" {
		return fmt.Errorf("definition has no node type")
	}
	if _, exists := r.definitions[def.Type]; exists {
		return fmt.Errorf("node type %q is already registered", def.Type)
	}
	r.definitions[def.Type] = def
	r.order = append(r.order, def.Type)
	return nil
}

// MustRegister is Register for builtin packs, where a duplicate is a
// programming error.
func (r *Registry) MustRegister(def *model.Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Get looks up a definition by node type.
func (r *Registry) Get(nodeType string) (*model.Definition, bool) {
	def, ok := r.definitions[nodeType]
	return def, ok
}

// All returns every definition in registration order.
func (r *Registry) All() []*model.Definition {
	out := make([]*model.Definition, len(r.order))
	for i, t := range r.order {
		out[i] = r.definitions[t]
	}
	return out
}

// Types returns the registered node type names in registration order.
func (r *Registry) Types() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.definitions)
}
