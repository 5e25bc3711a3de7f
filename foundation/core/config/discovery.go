// File: discovery.go
// Title: Configuration File Discovery
// Description: Finds the configuration file of an application by trying a
//              list of directories, base names and extensions in order. An
//              environment variable naming an explicit file takes precedence.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-20
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation of file discovery
// - 2025-11-20 v0.1.0: Explicit file variable, optional discovery

package config

import (
	"os"
	"path/filepath"
	"strings"

	argoterrors "github.com/msto63/argot/foundation/core/errors"
	argotlog "github.com/msto63/argot/foundation/core/log"
)

// DiscoveryOptions defines where to look for a configuration file
type DiscoveryOptions struct {
	Paths      []string // Directories to search, in order
	Filenames  []string // Base filenames without extension
	Extensions []string // Extensions to try (.toml, .yaml, .yml)
	FileEnv    string   // Variable naming an explicit file, checked first
	EnvPrefix  string   // Environment variable prefix for overrides
	Required   bool     // Whether finding a file is required
	Logger     *argotlog.Logger
}

// DefaultDiscoveryOptions returns the usual search for an application
// called name: ./configs, the working directory and the user config
// directory, with NAME_CONFIG naming an explicit file.
func DefaultDiscoveryOptions(name string) DiscoveryOptions {
	paths := []string{"./configs", "."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, name))
	}
	upper := strings.ToUpper(name)
	return DiscoveryOptions{
		Paths:      paths,
		Filenames:  []string{name},
		Extensions: []string{".toml", ".yaml", ".yml"},
		FileEnv:    upper + "_CONFIG",
		EnvPrefix:  upper,
	}
}

// ListPossibleConfigFiles returns every candidate path in search order
func ListPossibleConfigFiles(options DiscoveryOptions) []string {
	paths := make([]string, 0, len(options.Paths)*len(options.Filenames)*len(options.Extensions))
	for _, path := range options.Paths {
		for _, filename := range options.Filenames {
			for _, ext := range options.Extensions {
				paths = append(paths, filepath.Join(path, filename+ext))
			}
		}
	}
	return paths
}

// FindConfigFile returns the configuration file without loading it. A
// file named by FileEnv is returned as is, even if it does not exist, so
// that loading it reports the problem.
func FindConfigFile(options DiscoveryOptions) (string, error) {
	if options.FileEnv != "" {
		if path := os.Getenv(options.FileEnv); path != "" {
			return os.ExpandEnv(path), nil
		}
	}

	candidates := ListPossibleConfigFiles(options)
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", argoterrors.New("configuration file not found").
		WithCode(argoterrors.CodeNotFound).
		WithOperation("config.FindConfigFile").
		WithDetail("searchPaths", candidates)
}

// Discover finds and loads the configuration file. When none exists and
// the file is not required, an empty configuration that still honors
// environment overrides is returned.
func Discover(options DiscoveryOptions) (*Config, error) {
	path, err := FindConfigFile(options)
	if err != nil {
		if options.Required {
			return nil, err
		}
		return Empty(options.EnvPrefix), nil
	}

	cfg, err := LoadWithOptions(path, LoadOptions{
		EnvPrefix: options.EnvPrefix,
		Logger:    options.Logger,
	})
	if err != nil {
		return nil, argoterrors.Wrap(err, "found config file "+path+" but failed to load it").
			WithOperation("config.Discover").
			WithDetail("configPath", path)
	}
	return cfg, nil
}
