// Package config provides configuration management for topogen.
//
// Configuration covers everything that is not derived from the input
// document: the experiment name, the container image and volume path
// embedded in mesh configs, Graphviz layout parameters, and the run
// manifest location. Topology-derived values never appear here.
//
// Config file locations (priority order):
//  1. $TOPOGEN_CONFIG
//  2. ./topogen.yaml
//  3. ~/.config/topogen/config.yaml
//  4. /etc/topogen/config.yaml
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the topogen configuration.
type Config struct {
	Version    int            `yaml:"version"`
	Experiment string         `yaml:"experiment,omitempty"`
	Mesh       MeshConfig     `yaml:"mesh"`
	Render     RenderConfig   `yaml:"render"`
	Manifest   ManifestConfig `yaml:"manifest"`
}

// MeshConfig holds the deployment settings embedded in mesh configs.
type MeshConfig struct {
	ImageTag   string `yaml:"image_tag"`
	CleanFirst bool   `yaml:"clean_first"`
	VolumePath string `yaml:"volume_path"`
}

// RenderConfig holds Graphviz layout parameters for the DOT output.
type RenderConfig struct {
	Layout string `yaml:"layout"`
	DPI    int    `yaml:"dpi"`
}

// ManifestConfig controls the generation-run manifest.
type ManifestConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// validLayouts are the Graphviz layout engines the renderer accepts.
var validLayouts = map[string]bool{
	"dot":   true,
	"neato": true,
	"circo": true,
	"fdp":   true,
	"sfdp":  true,
	"twopi": true,
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// DefaultConfig returns sensible defaults for a fresh checkout
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Mesh: MeshConfig{
			ImageTag:   "eclipse/zenoh:1.4.0",
			VolumePath: "./zenoh",
		},
		Render: RenderConfig{
			Layout: "neato",
			DPI:    150,
		},
		Manifest: ManifestConfig{
			Path: "./topogen.db",
		},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	def := DefaultConfig()

	if c.Version == 0 {
		c.Version = def.Version
	}
	if c.Mesh.ImageTag == "" {
		c.Mesh.ImageTag = def.Mesh.ImageTag
	}
	if c.Mesh.VolumePath == "" {
		c.Mesh.VolumePath = def.Mesh.VolumePath
	}
	if !validLayouts[c.Render.Layout] {
		c.Render.Layout = def.Render.Layout
	}
	if c.Render.DPI <= 0 {
		c.Render.DPI = def.Render.DPI
	}
	if c.Manifest.Path == "" {
		c.Manifest.Path = def.Manifest.Path
	}
}
