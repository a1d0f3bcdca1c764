package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config is the root configuration for the findsweep engine.
// It is treated as a read-only options source by every component.
type Config struct {
	Version int
	Project Project
	Search  Search
	Watch   Watch
	Include []string
	Exclude []string
}

type Project struct {
	Root string
	Name string
}

type Search struct {
	Binary        string   // External search binary (default: rg)
	CaseSensitive bool     // Override smart-case with exact case matching
	Multiline     bool     // Allow patterns to span lines by default
	MaxResults    int      // Per-file match cap (0 = unlimited)
	RespectIgnore bool     // Respect .gitignore/.ignore files
	SearchHidden  bool     // Include hidden files in searches
	ExtraFlags    []string // Extra tool flags, validated before each run
	DebounceMs    int      // Quiet period between input changes and a new run
}

type Watch struct {
	Enabled    bool // Re-run the live search when files change
	DebounceMs int  // Debounce time for file change events
}

// DefaultConfigName is the config file findsweep looks for in the project root
const DefaultConfigName = ".findsweep.kdl"

// Default returns the built-in configuration
func Default() *Config {
	root, _ := os.Getwd()
	if root == "" {
		root = "."
	}

	return &Config{
		Version: 1,
		Project: Project{Root: root},
		Search: Search{
			Binary:        "rg",
			CaseSensitive: false,
			Multiline:     false,
			MaxResults:    0,
			RespectIgnore: true,
			SearchHidden:  false,
			DebounceMs:    250,
		},
		Watch: Watch{
			Enabled:    false,
			DebounceMs: 300,
		},
		Include: []string{},
		Exclude: []string{},
	}
}

// Template returns a starter KDL configuration with the defaults spelled
// out, suitable for writing to a new project.
func Template() string {
	return `// findsweep configuration
version 1

project {
    root "."
}

search {
    binary "rg"
    case_sensitive false
    multiline false
    max_results 0
    respect_ignore true
    search_hidden false
    debounce_ms 250
}

watch {
    enabled false
    debounce_ms 300
}

// Globs passed to every search. Whitespace-separated tokens expand to
// one glob each.
include {
    // "*.go"
    // "src/**/*.ts"
}

exclude {
    // "vendor/**"
    // "node_modules/**"
}
`
}

// Load reads configuration from the given path. A missing file is not an
// error: defaults are used. When the KDL file is absent, a sibling
// .findsweep.toml is tried as an alternate format.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigName
	}

	var cfg *Config
	var err error

	if _, statErr := os.Stat(configPath); statErr == nil {
		cfg, err = LoadKDL(configPath)
		if err != nil {
			return nil, err
		}
	} else {
		tomlPath := strings.TrimSuffix(configPath, filepath.Ext(configPath)) + ".toml"
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg, err = LoadTOML(tomlPath)
			if err != nil {
				return nil, err
			}
		}
	}

	if cfg == nil {
		cfg = Default()
	}

	// Resolve the project root relative to the config file location so the
	// same config behaves identically regardless of the invocation directory.
	if !filepath.IsAbs(cfg.Project.Root) {
		base := filepath.Dir(configPath)
		abs, absErr := filepath.Abs(filepath.Join(base, cfg.Project.Root))
		if absErr != nil {
			return nil, fmt.Errorf("failed to resolve project root %q: %w", cfg.Project.Root, absErr)
		}
		cfg.Project.Root = abs
	}
	cfg.Project.Root = filepath.Clean(cfg.Project.Root)

	validator := NewValidator()
	if err := validator.ValidateAndSetDefaults(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
