package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/bluewire/internal/config"
	"github.com/vk/bluewire/internal/ctxlog"
	"github.com/vk/bluewire/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. Generated source goes to outW; logs go to errW so that a
// compile to stdout stays machine-readable.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	reg    *registry.Registry
	cfg    *config.Config
}

// New is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and a
// validated registry. A manifest that fails to load or a registry that
// fails validation is a startup error, not a diagnostic.
func New(outW, errW io.Writer, cfg *config.Config, modules ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Create and populate the registry with Go node packs.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	reg.Install(modules...)
	logger.Debug("All Go node packs registered.", "count", len(modules))

	// Layer user-authored manifest definitions on top of the built-ins.
	if len(cfg.DefsPaths) > 0 {
		if err := reg.LoadManifests(ctx, cfg.DefsPaths...); err != nil {
			return nil, fmt.Errorf("failed to load node manifests: %w", err)
		}
	}

	// Validate the integrity of the registry.
	if err := reg.ValidateRegistry(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.", "definitions", reg.Len())

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		reg:    reg,
		cfg:    cfg,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.reg
}
