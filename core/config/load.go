package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load loads the configuration from the directory. A blank path returns the
// built-in defaults.
func Load(path string) (*Configuration, error) {
	if path == "" {
		return defaultConfig(), nil
	}

	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	return LoadFs(afero.NewBasePathFs(afero.NewOsFs(), path))
}

// LoadFs loads the configuration from the root of the filesystem.
func LoadFs(configFs afero.Fs) (*Configuration, error) {
	configContents, err := afero.ReadFile(configFs, ConfigurationName)
	if err != nil {
		return nil, err
	}
	var out Configuration
	if err := yaml.UnmarshalStrict(configContents, &out); err != nil {
		return nil, fmt.Errorf("couldn't parse %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}
	out.configFs = configFs
	return &out, nil
}

// Initialize writes the default configuration into dir if one doesn't
// already exist, then loads it.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	if err := afero.NewOsFs().MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	return InitializeFs(afero.NewBasePathFs(afero.NewOsFs(), dir), logger)
}

// InitializeFs is Initialize over an arbitrary filesystem.
func InitializeFs(configFs afero.Fs, logger *log.Logger) (*Configuration, error) {
	_, err := configFs.Stat(ConfigurationName)
	switch {
	case err == nil:
		logger.Printf("%s already exists, skipping\n", ConfigurationName)
	case errors.Is(err, fs.ErrNotExist):
		logger.Printf("Writing %s\n", ConfigurationName)
		if err := afero.WriteFile(configFs, ConfigurationName, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return LoadFs(configFs)
}
