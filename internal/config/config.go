package config

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath  string // a single .json graph file, or a directory of them
	OutputPath string // generated-source destination; empty means stdout (file mode) or alongside each graph (directory mode)

	DefsPaths    []string // directories or files holding .hcl node manifests
	LibraryPaths []string // sub-graph library .json files, merged in order

	LogFormat string
	LogLevel  string
	Workers   int
}

// New validates a Config and returns it. Zero-value fields that have a
// sensible default are left for the CLI layer to fill in.
func New(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 1 {
		return nil, errors.New("Workers must be at least 1")
	}

	return &cfg, nil
}
