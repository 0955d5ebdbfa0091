package compiler

import (
	"context"
	"time"

	"github.com/vk/bluewire/internal/blueprint"
	"github.com/vk/bluewire/internal/ctxlog"
	"github.com/vk/bluewire/internal/registry"
)

// Compiler runs the full pipeline against one registry. It holds no
// per-compilation state, so a single Compiler may serve concurrent
// compilations.
type Compiler struct {
	reg *registry.Registry
}

// New creates a compiler over the given registry.
func New(reg *registry.Registry) *Compiler {
	return &Compiler{reg: reg}
}

// Compile translates a graph that uses no sub-graph instances. Any
// diagnostic is fatal: the returned source is empty unless the error is nil.
func (c *Compiler) Compile(ctx context.Context, g *blueprint.Graph) (string, error) {
	return c.CompileWithLibrary(ctx, g, nil)
}

// CompileWithLibrary translates a graph, resolving sub-graph instances
// against the given library. Stages run in order: expansion, validation,
// data flow resolution, code generation. The first stage to report
// diagnostics stops the pipeline.
func (c *Compiler) CompileWithLibrary(ctx context.Context, g *blueprint.Graph, lib *blueprint.Library) (string, error) {
	ctx = ctxlog.Ensure(ctx)
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	expanded, diags := expandSubGraphs(g, lib)
	if len(diags) > 0 {
		return "", diags
	}
	logger.Debug("Sub-graph expansion complete.", "nodes", expanded.Len(), "connections", len(expanded.Connections))

	if diags := validateGraph(expanded, c.reg); len(diags) > 0 {
		return "", diags
	}
	logger.Debug("Graph validation passed.")

	flow, diags := resolveDataFlow(expanded, c.reg)
	if len(diags) > 0 {
		return "", diags
	}
	logger.Debug("Data flow resolved.", "pure_nodes", len(flow.pureOrder))

	src, diags := generate(expanded, c.reg, flow, buildRoutingTable(expanded))
	if len(diags) > 0 {
		return "", diags
	}
	logger.Debug("Code generation complete.", "bytes", len(src), "duration", time.Since(start))

	return src, nil
}

// CompileGraph is the package-level convenience wrapper around Compile.
func CompileGraph(ctx context.Context, g *blueprint.Graph, reg *registry.Registry) (string, error) {
	return New(reg).Compile(ctx, g)
}

// CompileGraphWithLibrary is the package-level convenience wrapper around
// CompileWithLibrary.
func CompileGraphWithLibrary(ctx context.Context, g *blueprint.Graph, reg *registry.Registry, lib *blueprint.Library) (string, error) {
	return New(reg).CompileWithLibrary(ctx, g, lib)
}
