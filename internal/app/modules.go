package app

import (
	"github.com/vk/bluewire/internal/registry"
	"github.com/vk/bluewire/modules/events"
	"github.com/vk/bluewire/modules/flow"
	"github.com/vk/bluewire/modules/io"
	"github.com/vk/bluewire/modules/logic"
	"github.com/vk/bluewire/modules/math"
	"github.com/vk/bluewire/modules/strings"
)

// coreModules is the definitive list of all node packs that are compiled
// into the bluewire binary.
var coreModules = []registry.Module{
	&events.Module{},
	&flow.Module{},
	&io.Module{},
	&logic.Module{},
	&math.Module{},
	&strings.Module{},
}
