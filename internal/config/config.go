// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package config loads zbc.yaml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level zbc.yaml configuration.
type Config struct {
	// ModulePaths are the directories searched for imported modules, relative to the
	// configuration file. Defaults to the directory containing the configuration file.
	ModulePaths []string `yaml:"modulePaths,omitempty"`

	// Extension is appended to module paths to locate module files. Defaults to ".zb.yaml".
	Extension string `yaml:"extension,omitempty"`

	// Trace enables logging of module loads and inference failures.
	Trace bool `yaml:"trace,omitempty"`

	// Color controls colorization of diagnostics: auto, always or never. Defaults to auto.
	Color string `yaml:"color,omitempty"`

	// Dir is the directory containing the configuration file.
	Dir string `yaml:"-"`
}

// Default returns the configuration used when no configuration file is present.
func Default(dir string) *Config {
	cfg := &Config{Dir: dir}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a zbc.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses zbc.yaml content from bytes.
// The path argument is used for error messages and to resolve relative module paths.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.Dir = filepath.Dir(path)
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for zbc.yaml starting from dir and walking up to parent directories.
// Returns an empty path and a nil error if no configuration file is found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// SearchPaths returns the module search directories, resolved against the configuration directory.
func (c *Config) SearchPaths() []string {
	paths := make([]string, len(c.ModulePaths))
	for i, p := range c.ModulePaths {
		if filepath.IsAbs(p) {
			paths[i] = p
		} else {
			paths[i] = filepath.Join(c.Dir, p)
		}
	}
	return paths
}

func (c *Config) validate(path string) error {
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: color must be one of auto, always, never (got %q)", path, c.Color)
	}
	if c.Extension != "" && !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("%s: extension must start with a dot (got %q)", path, c.Extension)
	}
	for i, p := range c.ModulePaths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%s: modulePaths[%d] is empty", path, i)
		}
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if len(c.ModulePaths) == 0 {
		c.ModulePaths = []string{"."}
	}
}
