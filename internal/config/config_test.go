package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "rg", cfg.Search.Binary)
	assert.True(t, cfg.Search.RespectIgnore)
	assert.False(t, cfg.Search.SearchHidden)
	assert.Equal(t, 250, cfg.Search.DebounceMs)
	assert.Equal(t, 300, cfg.Watch.DebounceMs)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".findsweep.kdl"))
	require.NoError(t, err)
	assert.Equal(t, "rg", cfg.Search.Binary)
}

func TestParseKDL(t *testing.T) {
	cfg, err := parseKDL(`
version 1

project {
    root "/srv/code"
    name "myproject"
}

search {
    binary "/usr/local/bin/rg"
    case_sensitive true
    max_results 500
    respect_ignore false
    search_hidden true
    extra_flags "--fixed-strings" "--word-regexp"
    debounce_ms 100
}

watch {
    enabled true
    debounce_ms 50
}

include "*.go" "*.md"

exclude {
    "vendor/**"
    "node_modules/**"
}
`)
	require.NoError(t, err)

	assert.Equal(t, "/srv/code", cfg.Project.Root)
	assert.Equal(t, "myproject", cfg.Project.Name)
	assert.Equal(t, "/usr/local/bin/rg", cfg.Search.Binary)
	assert.True(t, cfg.Search.CaseSensitive)
	assert.Equal(t, 500, cfg.Search.MaxResults)
	assert.False(t, cfg.Search.RespectIgnore)
	assert.True(t, cfg.Search.SearchHidden)
	assert.Equal(t, []string{"--fixed-strings", "--word-regexp"}, cfg.Search.ExtraFlags)
	assert.Equal(t, 100, cfg.Search.DebounceMs)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, 50, cfg.Watch.DebounceMs)
	assert.Equal(t, []string{"*.go", "*.md"}, cfg.Include)
	assert.Equal(t, []string{"vendor/**", "node_modules/**"}, cfg.Exclude)
}

func TestParseKDLUnknownKeysDoNotFail(t *testing.T) {
	cfg, err := parseKDL(`
search {
    binery "rg2"
    max_result 10
}
`)
	require.NoError(t, err)
	// Misspelled keys are warned about and ignored.
	assert.Equal(t, "rg", cfg.Search.Binary)
	assert.Equal(t, 0, cfg.Search.MaxResults)
}

func TestParseKDLInvalidSyntax(t *testing.T) {
	_, err := parseKDL(`search { binary "unterminated`)
	assert.Error(t, err)
}

func TestLoadKDLFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, ".findsweep.kdl", `
search {
    debounce_ms 42
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Search.DebounceMs)
	// Relative root resolves against the config directory.
	assert.Equal(t, dir, cfg.Project.Root)
}

func TestLoadFallsBackToTOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".findsweep.toml", `
version = 1

include = ["*.rs"]
exclude = ["target/**"]

[project]
root = "."
name = "tomlproject"

[search]
binary = "rg"
case_sensitive = true
max_results = 25

[watch]
enabled = true
`)

	cfg, err := Load(filepath.Join(dir, ".findsweep.kdl"))
	require.NoError(t, err)
	assert.Equal(t, "tomlproject", cfg.Project.Name)
	assert.True(t, cfg.Search.CaseSensitive)
	assert.Equal(t, 25, cfg.Search.MaxResults)
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, []string{"*.rs"}, cfg.Include)
	assert.Equal(t, []string{"target/**"}, cfg.Exclude)
}

func TestLoadTOMLAbsentFieldsKeepDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, ".findsweep.toml", `
[search]
max_results = 10
`)

	cfg, err := LoadTOML(path)
	require.NoError(t, err)
	assert.Equal(t, "rg", cfg.Search.Binary)
	assert.Equal(t, 10, cfg.Search.MaxResults)
	assert.True(t, cfg.Search.RespectIgnore)
}

func TestValidatorRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty binary", func(c *Config) { c.Search.Binary = "" }},
		{"negative max results", func(c *Config) { c.Search.MaxResults = -1 }},
		{"negative debounce", func(c *Config) { c.Search.DebounceMs = -5 }},
		{"excessive debounce", func(c *Config) { c.Search.DebounceMs = 60000 }},
		{"empty project root", func(c *Config) { c.Project.Root = "" }},
		{"invalid include glob", func(c *Config) { c.Include = []string{"[unclosed"} }},
		{"invalid exclude glob", func(c *Config) { c.Exclude = []string{"[unclosed"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, NewValidator().ValidateAndSetDefaults(cfg))
		})
	}
}

func TestValidatorSmartDefaults(t *testing.T) {
	cfg := Default()
	cfg.Search.DebounceMs = 150
	cfg.Watch.DebounceMs = 0

	require.NoError(t, NewValidator().ValidateAndSetDefaults(cfg))
	assert.Equal(t, 150, cfg.Watch.DebounceMs)
}

func TestSuggestKey(t *testing.T) {
	assert.Equal(t, "binary", SuggestKey("binery", knownSearchKeys))
	assert.Equal(t, "max_results", SuggestKey("max_result", knownSearchKeys))
	assert.Equal(t, "debounce_ms", SuggestKey("debouce_ms", knownSearchKeys))
	assert.Empty(t, SuggestKey("zzzzz", knownSearchKeys))
}

func TestTemplateParses(t *testing.T) {
	cfg, err := parseKDL(Template())
	require.NoError(t, err)
	assert.Equal(t, "rg", cfg.Search.Binary)
	assert.Equal(t, ".", cfg.Project.Root)
}
