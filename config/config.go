package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the name of the per-user configuration file.
const DefaultFile = ".psharp.yml"

// Config holds the interactive settings of the interpreter.
type Config struct {
	Prompt       string `yaml:"prompt"`
	HistoryFile  string `yaml:"history_file"`
	HistoryLimit int    `yaml:"history_limit"`
	Color        bool   `yaml:"color"`
	Verbose      bool   `yaml:"verbose"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	cfg := &Config{
		Prompt:       "psharp> ",
		HistoryLimit: 1000,
		Color:        true,
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		cfg.HistoryFile = filepath.Join(home, ".psharp_history")
	}
	return cfg
}

// DefaultPath returns ~/.psharp.yml, or "" when there is no home directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, DefaultFile)
}

// Load reads the configuration at path over the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML settings from r over the defaults. Unknown keys are
// rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	if strings.TrimSpace(c.Prompt) == "" {
		c.Prompt = Default().Prompt
	}
	c.HistoryFile = expandHome(strings.TrimSpace(c.HistoryFile))
}

func (c *Config) validate() error {
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
}
