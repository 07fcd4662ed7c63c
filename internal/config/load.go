package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FindConfigFile walks up from the given directory to find gw2yaml.toml.
// Returns the absolute path to the settings file, or an empty string if not
// found. Stops at the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root.
			return "", nil
		}
		dir = parent
	}
}

// LoadFromFile parses the TOML file at the given path, merged on top of the
// defaults, and returns the settings and TOML metadata. The metadata can be
// used to detect unknown keys via MetaData.Undecoded().
func LoadFromFile(path string) (*Config, toml.MetaData, error) {
	cfg := NewDefaults()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, md, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, md, nil
}

// Load resolves the settings for a run. An explicit path is loaded directly;
// otherwise the file is searched upward from the working directory, and the
// built-in defaults are returned when no file exists.
func Load(explicitPath string) (*Config, *toml.MetaData, error) {
	path := explicitPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, nil, fmt.Errorf("resolving working directory: %w", err)
		}
		path, err = FindConfigFile(wd)
		if err != nil {
			return nil, nil, err
		}
	}
	if path == "" {
		return NewDefaults(), nil, nil
	}
	cfg, md, err := LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	return cfg, &md, nil
}
