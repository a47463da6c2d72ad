// Package config loads the optional .ronfmt.toml file that configures the
// ronfmt command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file looked up by Find.
const FileName = ".ronfmt.toml"

// Config holds the settings read from a configuration file. Zero values mean
// "not set" and are replaced by Default.
type Config struct {
	Extensions []string `toml:"extensions"`
	Exclude    []string `toml:"exclude"`
	Jobs       int      `toml:"jobs"`
	MaxDepth   int      `toml:"max_depth"`

	// Path is the file the configuration was read from, if any.
	Path string `toml:"-"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Extensions: []string{".ron"},
		MaxDepth:   1000,
	}
}

// Find walks up from startDir looking for FileName. It reports false when no
// file exists up to the filesystem root.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes the file at path on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Resolve loads the explicit path if one is given, otherwise the nearest
// FileName above startDir, otherwise Default.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate() error {
	if len(c.Extensions) == 0 {
		return errors.New("extensions must not be empty")
	}
	for i, ext := range c.Extensions {
		if ext == "" {
			return errors.New("extensions must not contain empty entries")
		}
		if ext[0] != '.' {
			c.Extensions[i] = "." + ext
		}
	}
	for _, pattern := range c.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	if c.Jobs < 0 {
		return errors.New("jobs must not be negative")
	}
	if c.MaxDepth <= 0 {
		return errors.New("max_depth must be a positive integer")
	}
	return nil
}
