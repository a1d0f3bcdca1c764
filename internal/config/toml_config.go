package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// tomlConfig mirrors Config with TOML field tags. Kept separate so the
// canonical Config stays free of serialization concerns.
type tomlConfig struct {
	Version int `toml:"version"`
	Project struct {
		Root string `toml:"root"`
		Name string `toml:"name"`
	} `toml:"project"`
	Search struct {
		Binary        *string  `toml:"binary"`
		CaseSensitive *bool    `toml:"case_sensitive"`
		Multiline     *bool    `toml:"multiline"`
		MaxResults    *int     `toml:"max_results"`
		RespectIgnore *bool    `toml:"respect_ignore"`
		SearchHidden  *bool    `toml:"search_hidden"`
		ExtraFlags    []string `toml:"extra_flags"`
		DebounceMs    *int     `toml:"debounce_ms"`
	} `toml:"search"`
	Watch struct {
		Enabled    *bool `toml:"enabled"`
		DebounceMs *int  `toml:"debounce_ms"`
	} `toml:"watch"`
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

// LoadTOML loads configuration from a .findsweep.toml file. Fields absent
// from the file keep their defaults.
func LoadTOML(tomlPath string) (*Config, error) {
	data, err := os.ReadFile(tomlPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", tomlPath, err)
	}

	var raw tomlConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse TOML config: %w", err)
	}

	cfg := Default()
	if raw.Version != 0 {
		cfg.Version = raw.Version
	}
	if raw.Project.Root != "" {
		cfg.Project.Root = raw.Project.Root
	}
	if raw.Project.Name != "" {
		cfg.Project.Name = raw.Project.Name
	}
	if raw.Search.Binary != nil {
		cfg.Search.Binary = *raw.Search.Binary
	}
	if raw.Search.CaseSensitive != nil {
		cfg.Search.CaseSensitive = *raw.Search.CaseSensitive
	}
	if raw.Search.Multiline != nil {
		cfg.Search.Multiline = *raw.Search.Multiline
	}
	if raw.Search.MaxResults != nil {
		cfg.Search.MaxResults = *raw.Search.MaxResults
	}
	if raw.Search.RespectIgnore != nil {
		cfg.Search.RespectIgnore = *raw.Search.RespectIgnore
	}
	if raw.Search.SearchHidden != nil {
		cfg.Search.SearchHidden = *raw.Search.SearchHidden
	}
	if raw.Search.ExtraFlags != nil {
		cfg.Search.ExtraFlags = raw.Search.ExtraFlags
	}
	if raw.Search.DebounceMs != nil {
		cfg.Search.DebounceMs = *raw.Search.DebounceMs
	}
	if raw.Watch.Enabled != nil {
		cfg.Watch.Enabled = *raw.Watch.Enabled
	}
	if raw.Watch.DebounceMs != nil {
		cfg.Watch.DebounceMs = *raw.Watch.DebounceMs
	}
	if raw.Include != nil {
		cfg.Include = raw.Include
	}
	if raw.Exclude != nil {
		cfg.Exclude = raw.Exclude
	}

	return cfg, nil
}
