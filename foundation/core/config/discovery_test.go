// File: discovery_test.go
// Title: Configuration Discovery Tests
// Description: Tests for candidate ordering, the explicit file variable and
//              optional discovery.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-20
// Modified: 2025-11-20
//
// Change History:
// - 2025-11-20 v0.1.0: Initial implementation

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	argoterrors "github.com/msto63/argot/foundation/core/errors"
)

func discoveryIn(dirs ...string) DiscoveryOptions {
	return DiscoveryOptions{
		Paths:      dirs,
		Filenames:  []string{"argot"},
		Extensions: []string{".toml", ".yaml"},
		FileEnv:    "ARGOTTEST_CONFIG",
		EnvPrefix:  "ARGOTTEST",
	}
}

func TestListPossibleConfigFiles(t *testing.T) {
	got := ListPossibleConfigFiles(discoveryIn("a", "b"))
	assert.Equal(t, []string{
		filepath.Join("a", "argot.toml"),
		filepath.Join("a", "argot.yaml"),
		filepath.Join("b", "argot.toml"),
		filepath.Join("b", "argot.yaml"),
	}, got)
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("ARGOTTEST_CONFIG", "")
	first, second := t.TempDir(), t.TempDir()
	yamlPath := writeFileIn(t, second, "argot.yaml", sampleYAML)

	tests := []struct {
		name    string
		setup   func(t *testing.T)
		want    string
		missing bool
	}{
		{"later directory", func(*testing.T) {}, yamlPath, false},
		{"earlier directory wins", func(t *testing.T) {
			writeFileIn(t, first, "argot.toml", sampleTOML)
		}, filepath.Join(first, "argot.toml"), false},
		{"explicit file wins", func(t *testing.T) {
			t.Setenv("ARGOTTEST_CONFIG", "/nowhere/custom.toml")
		}, "/nowhere/custom.toml", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup(t)
			got, err := FindConfigFile(discoveryIn(first, second))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := FindConfigFile(discoveryIn(t.TempDir()))
	assert.True(t, argoterrors.HasCode(err, argoterrors.CodeNotFound))
}

func TestDiscover(t *testing.T) {
	t.Setenv("ARGOTTEST_CONFIG", "")
	t.Setenv("ARGOTTEST_SERVER_BURST", "9")
	dir := t.TempDir()

	opts := discoveryIn(dir)
	cfg, err := Discover(opts)
	require.NoError(t, err)
	assert.Empty(t, cfg.FilePath())
	assert.Equal(t, 9, cfg.GetInt("server.burst"))

	opts.Required = true
	_, err = Discover(opts)
	assert.True(t, argoterrors.HasCode(err, argoterrors.CodeNotFound))

	writeFileIn(t, dir, "argot.toml", sampleTOML)
	cfg, err = Discover(opts)
	require.NoError(t, err)
	assert.Equal(t, "!", cfg.GetString("lexer.prefix"))
	assert.Equal(t, 9, cfg.GetInt("server.burst"))

	writeFileIn(t, dir, "argot.toml", "this is = = not toml")
	_, err = Discover(opts)
	assert.True(t, argoterrors.HasCode(err, argoterrors.CodeConfig))
}

func writeFileIn(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
