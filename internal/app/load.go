package app

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/vk/bluewire/internal/blueprint"
	"github.com/vk/bluewire/internal/ctxlog"
	"github.com/vk/bluewire/internal/fsutil"
)

// loadLibraries reads every configured sub-graph library file and merges
// them into one, in flag order. It returns nil when no libraries are
// configured; the compiler treats a nil library as "nothing to expand".
func (a *App) loadLibraries(ctx context.Context) (*blueprint.Library, error) {
	if len(a.cfg.LibraryPaths) == 0 {
		return nil, nil
	}
	logger := ctxlog.FromContext(ctx)

	merged := blueprint.NewLibrary("merged", "merged")
	for _, path := range a.cfg.LibraryPaths {
		lib, err := blueprint.LoadLibrary(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load sub-graph library %s: %w", path, err)
		}
		if err := merged.Merge(lib); err != nil {
			return nil, fmt.Errorf("failed to merge sub-graph library %s: %w", path, err)
		}
	}

	logger.Debug("Sub-graph libraries loaded.",
		"files", len(a.cfg.LibraryPaths), "subgraphs", len(merged.SubGraphs))
	return merged, nil
}

// resolveGraphPaths expands the configured graph path into the list of
// graph files to compile. A file compiles alone; a directory compiles
// every .json file under it, in sorted order so batch output is stable.
func resolveGraphPaths(path string) (files []string, single bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to access graph path %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, true, nil
	}

	files, err = fsutil.FindFilesByExtension(path, ".json")
	if err != nil {
		return nil, false, fmt.Errorf("failed to scan graph directory %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, false, fmt.Errorf("no .json graph files found under %s", path)
	}
	sort.Strings(files)
	return files, false, nil
}
