package registry

import (
	"context"
	"fmt"

	"github.com/vk/bluewire/internal/ctxlog"
	"github.com/vk/bluewire/internal/hcl"
)

// LoadManifests discovers and parses every .hcl definition manifest under
// the given paths and registers the results. Manifest types must not
// collide with anything already registered.
func (r *Registry) LoadManifests(ctx context.Context, paths ...string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading definitions from manifest paths...", "paths", paths)

	defs, err := hcl.LoadDefinitions(ctx, paths...)
	if err != nil {
		return fmt.Errorf("loading definition manifests: %w", err)
	}

	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return fmt.Errorf("registering manifest definitions: %w", err)
		}
	}

	logger.Info("Registry loaded successfully.", "definitions_loaded", len(defs), "definitions_total", r.Len())
	return nil
}
