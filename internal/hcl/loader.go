package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/bluewire/internal/ctxlog"
	"github.com/vk/bluewire/internal/fsutil"
	"github.com/vk/bluewire/internal/model"
	"github.com/vk/bluewire/internal/schema"
)

// LoadDefinitions discovers every .hcl manifest under the given paths (files
// or directories, deduplicated), parses them, and returns the translated
// definitions in file-then-block order.
func LoadDefinitions(ctx context.Context, paths ...string) ([]*model.Definition, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findManifestFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	var defs []*model.Definition

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
		}

		var root schema.DefinitionConfig
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", file, diags)
		}

		for _, m := range root.Nodes {
			def, err := translateNodeManifest(m)
			if err != nil {
				return nil, fmt.Errorf("manifest %s: %w", file, err)
			}
			defs = append(defs, def)
		}
	}

	logger.Debug("Manifest loading complete.", "definitions", len(defs))
	return defs, nil
}

// ParseDefinitions translates manifest source held in memory. The name is
// used in error messages only. Used by tests and by callers that embed
// manifests.
func ParseDefinitions(src []byte, name string) ([]*model.Definition, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", name, diags)
	}

	var root schema.DefinitionConfig
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", name, diags)
	}

	var defs []*model.Definition
	for _, m := range root.Nodes {
		def, err := translateNodeManifest(m)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", name, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// findManifestFiles walks all given paths and returns a flat, deduplicated
// list of .hcl files. A configured path that does not exist is skipped, not
// an error.
func findManifestFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, err
			}
			for _, p := range found {
				add(p)
			}
		} else if filepath.Ext(path) == ".hcl" {
			add(path)
		}
	}
	return allFiles, nil
}
