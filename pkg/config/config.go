// Package config loads lumen configuration from TOML, YAML, or JSON files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for lumen.
type Config struct {
	// History window and filters
	History HistoryConfig `koanf:"history"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude"`

	// Structural extraction settings
	Structure StructureConfig `koanf:"structure"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// HistoryConfig controls git history mining.
type HistoryConfig struct {
	Days          int    `koanf:"days"`
	IncludeMerges bool   `koanf:"include_merges"`
	Author        string `koanf:"author"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Dirs      []string `koanf:"dirs"`
	Files     []string `koanf:"files"`
	Gitignore bool     `koanf:"gitignore"`
}

// StructureConfig controls snippet capture.
type StructureConfig struct {
	// Snippet is one of "short" (20 lines), "long" (50), or "none".
	Snippet string `koanf:"snippet"`
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format string `koanf:"format"` // text, json, markdown, toon
	Color  bool   `koanf:"color"`
	Top    int    `koanf:"top"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{
			Days:          30,
			IncludeMerges: false,
		},
		Exclude: ExcludeConfig{
			Dirs: []string{
				".git", "__pycache__", "node_modules", "venv", ".venv",
				"build", "dist", ".tox", ".nox", ".eggs",
				".sass-cache", ".next", ".nuxt", ".output", ".cache",
				"coverage", ".nyc_output", ".mypy_cache", ".pytest_cache",
				".hypothesis", "vendor", "bower_components", ".idea",
				".vscode", "target", ".parcel-cache", ".netlify",
				".vercel", ".turbo", "logs", "temp", "tmp",
			},
			Files: []string{
				"*.min.js", "*.min.css", "*.map", "*.log", "*.lock",
				".gitignore", ".gitattributes", ".editorconfig",
				"*.pem", "*.key", "*.crt", "*.secret",
			},
			Gitignore: true,
		},
		Structure: StructureConfig{
			Snippet: "short",
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
			Top:    20,
		},
	}
}

// Load loads configuration from a file, merging over defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault tries standard locations and falls back to defaults.
func LoadOrDefault() *Config {
	names := []string{
		"lumen.toml", "lumen.yaml", "lumen.yml", "lumen.json",
		".lumen.toml", ".lumen.yaml", ".lumen.yml", ".lumen.json",
	}
	for _, dir := range []string{".", ".lumen"} {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				if cfg, err := Load(path); err == nil {
					return cfg
				}
			}
		}
	}
	return DefaultConfig()
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	sep := string(filepath.Separator)
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, sep+dir+sep) || strings.HasPrefix(path, dir+sep) {
			return true
		}
	}
	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Files {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		if pattern == base {
			return true
		}
	}
	return false
}

// SnippetMaxLines maps the configured snippet format to a window size.
// Zero disables snippet capture.
func (c *Config) SnippetMaxLines() int {
	switch c.Structure.Snippet {
	case "long":
		return 50
	case "none":
		return 0
	default:
		return 20
	}
}
