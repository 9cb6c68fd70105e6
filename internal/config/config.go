package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const DefaultFileName = "akhamoth.yaml"

type Config struct {
	// Sources are compiled in order, relative paths are resolved against the
	// directory of the config file
	Sources []string `yaml:"sources"`
	// Color is one of "auto", "always" or "never"
	Color        string `yaml:"color"`
	DenyWarnings bool   `yaml:"deny_warnings"`
	Verbosity    int    `yaml:"verbosity"`
}

func Default() *Config {
	return &Config{
		Color: "auto",
	}
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("invalid color mode %q", cfg.Color)
	}

	return cfg, nil
}

// Load reads a config file. A missing file is not an error when optional is
// set, the defaults are returned instead.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i, src := range cfg.Sources {
		if !filepath.IsAbs(src) {
			cfg.Sources[i] = filepath.Join(dir, src)
		}
	}

	return cfg, nil
}
