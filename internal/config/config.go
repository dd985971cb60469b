// Package config loads run settings for the interpreter from a YAML file.
// Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"corelang/internal/engine"
)

// DefaultFile is looked up in the working directory when no file is named.
const DefaultFile = ".core.yaml"

// ColorMode controls colored diagnostics.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// Apply sets the process-wide color switch. Auto leaves the terminal
// detection done by the color package alone.
func (m ColorMode) Apply() {
	switch m {
	case ColorAlways:
		color.NoColor = false
	case ColorNever:
		color.NoColor = true
	}
}

type Config struct {
	// Path is the file the settings came from, empty for defaults.
	Path string

	Strict        bool
	Buffered      bool
	MaxIterations int
	Color         ColorMode
	Verbosity     int
}

// configFile mirrors the YAML layout. Pointers tell unset keys apart from
// zero values.
type configFile struct {
	Strict        *bool   `yaml:"strict"`
	Buffered      *bool   `yaml:"buffered"`
	MaxIterations *int    `yaml:"max_iterations"`
	Color         *string `yaml:"color"`
	Verbosity     *int    `yaml:"verbosity"`
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "config: %s is invalid:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func Default() *Config {
	return &Config{Color: ColorAuto}
}

// Load reads a config file. Unknown keys are rejected; an empty file
// yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads DefaultFile from dir when it exists, and returns the
// defaults otherwise.
func LoadDefault(dir string) (*Config, error) {
	path := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: stat %s: %w", path, err)
	}
	return Load(path)
}

func Decode(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return raw.toConfig(), nil
}

func (f *configFile) toConfig() *Config {
	cfg := Default()
	if f.Strict != nil {
		cfg.Strict = *f.Strict
	}
	if f.Buffered != nil {
		cfg.Buffered = *f.Buffered
	}
	if f.MaxIterations != nil {
		cfg.MaxIterations = *f.MaxIterations
	}
	if f.Color != nil {
		cfg.Color = ColorMode(strings.ToLower(*f.Color))
	}
	if f.Verbosity != nil {
		cfg.Verbosity = *f.Verbosity
	}
	return cfg
}

func (c *Config) validate() error {
	errs := ValidationError{Path: c.Path}
	if c.MaxIterations < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_iterations must not be negative, got %d", c.MaxIterations))
	}
	if !c.Color.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be auto, always or never, got %q", c.Color))
	}
	if c.Verbosity < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("verbosity must not be negative, got %d", c.Verbosity))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Validate checks the settings after flags have been applied.
func (c *Config) Validate() error {
	return c.validate()
}

// EngineOptions returns the engine settings; the caller supplies Input and
// Output.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Strict:        c.Strict,
		MaxIterations: c.MaxIterations,
	}
}
