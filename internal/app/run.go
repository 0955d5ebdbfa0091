package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vk/bluewire/internal/blueprint"
	"github.com/vk/bluewire/internal/compiler"
	"github.com/vk/bluewire/internal/ctxlog"
)

// Run executes the main application logic: load libraries, resolve the
// graph path, compile, and write generated source. Compile diagnostics come
// back as the returned error; the CLI decides how to surface them.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	lib, err := a.loadLibraries(ctx)
	if err != nil {
		return err
	}

	paths, single, err := resolveGraphPaths(a.cfg.GraphPath)
	if err != nil {
		return err
	}

	comp := compiler.New(a.reg)
	if single {
		err = a.runSingle(ctx, comp, lib, paths[0])
	} else {
		err = a.runBatch(ctx, comp, lib, paths)
	}
	if err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// compileFile loads one graph file and compiles it against the shared
// registry and library.
func (a *App) compileFile(ctx context.Context, comp *compiler.Compiler, lib *blueprint.Library, path string) (string, error) {
	g, err := blueprint.LoadGraph(path)
	if err != nil {
		return "", fmt.Errorf("failed to load graph %s: %w", path, err)
	}
	return comp.CompileWithLibrary(ctx, g, lib)
}

// runSingle compiles one graph file. Output goes to the configured path,
// or to the app's output writer when none is set.
func (a *App) runSingle(ctx context.Context, comp *compiler.Compiler, lib *blueprint.Library, path string) error {
	code, err := a.compileFile(ctx, comp, lib, path)
	if err != nil {
		return err
	}

	if a.cfg.OutputPath == "" {
		_, err := io.WriteString(a.outW, code)
		return err
	}
	if err := writeFileMkdir(a.cfg.OutputPath, code); err != nil {
		return fmt.Errorf("failed to write generated source: %w", err)
	}
	a.logger.Info("Generated source written.", "path", a.cfg.OutputPath, "bytes", len(code))
	return nil
}

// batchResult holds one graph's outcome, indexed by job so that workers
// never contend on a shared collection.
type batchResult struct {
	path string
	code string
	err  error
}

// runBatch compiles a directory of graphs concurrently. Results are written
// and reported in path order, so a batch run is reproducible regardless of
// worker scheduling.
func (a *App) runBatch(ctx context.Context, comp *compiler.Compiler, lib *blueprint.Library, paths []string) error {
	logger := ctxlog.FromContext(ctx)

	jobs := make(chan int, len(paths))
	for i := range paths {
		jobs <- i
	}
	close(jobs)

	results := make([]batchResult, len(paths))
	var wg sync.WaitGroup
	wg.Add(len(paths))

	workers := a.cfg.Workers
	if workers > len(paths) {
		workers = len(paths)
	}
	logger.Debug("Starting worker pool.", "workers", workers, "graphs", len(paths))
	for i := 0; i < workers; i++ {
		go func(workerID int) {
			for idx := range jobs {
				workerLogger := logger.With("workerID", workerID, "graph", paths[idx])
				results[idx].path = paths[idx]

				if ctx.Err() != nil {
					results[idx].err = ctx.Err()
					wg.Done()
					continue
				}

				workerLogger.Debug("Worker picked up graph for compilation.")
				results[idx].code, results[idx].err = a.compileFile(ctx, comp, lib, paths[idx])
				wg.Done()
			}
		}(i)
	}

	wg.Wait()
	logger.Debug("All graphs compiled.")

	var failed []string
	var rootCauseError error
	fail := func(res batchResult, err error) {
		fmt.Fprintf(a.errW, "%s:\n%v\n", res.path, err)
		failed = append(failed, res.path)
		if rootCauseError == nil {
			rootCauseError = err
		}
	}

	for _, res := range results {
		if res.err != nil {
			fail(res, res.err)
			continue
		}
		outPath, err := a.batchOutputPath(res.path)
		if err == nil {
			err = writeFileMkdir(outPath, res.code)
		}
		if err != nil {
			fail(res, err)
			continue
		}
		logger.Info("Generated source written.", "graph", res.path, "path", outPath)
	}

	if rootCauseError != nil {
		return fmt.Errorf("compilation failed for %s: %w", strings.Join(failed, ", "), rootCauseError)
	}
	return nil
}

// batchOutputPath maps a source graph path to its generated-source path.
// With no output directory configured the .go file lands next to its graph;
// otherwise the graph's position relative to the graph root is mirrored
// under the output directory.
func (a *App) batchOutputPath(src string) (string, error) {
	if a.cfg.OutputPath == "" {
		return strings.TrimSuffix(src, ".json") + ".go", nil
	}
	rel, err := filepath.Rel(a.cfg.GraphPath, src)
	if err != nil {
		return "", fmt.Errorf("failed to derive output path for %s: %w", src, err)
	}
	return filepath.Join(a.cfg.OutputPath, strings.TrimSuffix(rel, ".json")+".go"), nil
}

func writeFileMkdir(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}
