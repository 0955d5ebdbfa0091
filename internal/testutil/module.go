package testutil

import (
	"github.com/vk/bluewire/internal/model"
	"github.com/vk/bluewire/internal/registry"
)

// SimpleModule is a test helper for easily creating a mock node pack that
// registers ad-hoc definitions.
type SimpleModule struct {
	Defs []*model.Definition
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	for _, def := range m.Defs {
		r.MustRegister(def)
	}
}
