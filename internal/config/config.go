// Package config loads .nextcall.yaml files for the JavaScript linter.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mpyw/nextcall/internal/continuation"
	"github.com/mpyw/nextcall/internal/directive/ignore"
)

// FileName is the configuration file searched for by Find.
const FileName = ".nextcall.yaml"

// ErrNotFound is returned by Find when no configuration file exists in the
// start directory or any of its parents.
var ErrNotFound = errors.New("config: " + FileName + " not found")

// Config is the decoded configuration.
type Config struct {
	// Path is the file the configuration was loaded from, empty for defaults.
	Path string `yaml:"-"`

	Continuation string                   `yaml:"continuation"`
	Aggregation  continuation.Aggregation `yaml:"aggregation"`
	Checks       Checks                   `yaml:"checks"`
	Extensions   []string                 `yaml:"extensions"`
	Exclude      []string                 `yaml:"exclude"`
}

// Checks switches individual checks on and off.
type Checks struct {
	Handler bool `yaml:"handler"`
	Factory bool `yaml:"factory"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Continuation: continuation.DefaultName,
		Aggregation:  continuation.AnyStatement,
		Checks:       Checks{Handler: true, Factory: true},
		Extensions:   []string{".js", ".mjs", ".cjs", ".jsx"},
		Exclude:      []string{"node_modules", ".git"},
	}
}

// Load decodes the file at path on top of the defaults. Unknown keys are
// rejected.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg := Default()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", absPath, err)
	}

	return cfg, nil
}

// Find walks up from startDir to locate FileName.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("config: resolve start directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("config: stat %q: %w", candidate, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Discover loads the nearest configuration file above startDir, falling back
// to Default when there is none.
func Discover(startDir string) (*Config, error) {
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	return Load(path)
}

// Validate reports values the linter cannot work with.
func (c *Config) Validate() error {
	if c.Continuation == "" || strings.ContainsAny(c.Continuation, " \t.()") {
		return fmt.Errorf("invalid continuation name %q", c.Continuation)
	}
	if _, err := c.Aggregation.MarshalText(); err != nil {
		return err
	}
	if len(c.Extensions) == 0 {
		return errors.New("extensions must not be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	return nil
}

// Rule builds the continuation rule described by the configuration.
func (c *Config) Rule() *continuation.Rule {
	return &continuation.Rule{
		Config: continuation.Config{
			Name:        c.Continuation,
			Aggregation: c.Aggregation,
		},
		Disabled: map[ignore.CheckerName]bool{
			ignore.Handler: !c.Checks.Handler,
			ignore.Factory: !c.Checks.Factory,
		},
	}
}

// MatchesExtension reports whether path has one of the configured
// extensions.
func (c *Config) MatchesExtension(path string) bool {
	return slices.Contains(c.Extensions, filepath.Ext(path))
}

// Excluded reports whether a directory or file base name is excluded.
func (c *Config) Excluded(name string) bool {
	return slices.Contains(c.Exclude, name)
}

// Fingerprint identifies the settings that affect lint results.
func (c *Config) Fingerprint() string {
	return fmt.Sprintf("continuation=%s;aggregation=%s;handler=%t;factory=%t",
		c.Continuation, c.Aggregation, c.Checks.Handler, c.Checks.Factory)
}
