// File: config_test.go
// Title: Configuration Tests
// Description: Tests for TOML/YAML loading, lookups, environment overrides
//              and hot reloading.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-06
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation
// - 2025-11-06 v0.1.0: Added watch tests

package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	argoterrors "github.com/msto63/argot/foundation/core/errors"
)

const sampleTOML = `
[lexer]
prefix = "!"

[[lexer.quotes]]
open = '"'
close = '"'

[[lexer.quotes]]
open = "“"
close = "”"

[server]
addr = ":8089"
rate = 2.5
burst = 4
timeout = "15s"
history = true
prefixes = ["--", "-"]
`

const sampleYAML = `
lexer:
  prefix: "?"
  quotes:
    - open: "'"
      close: "'"
server:
  burst: 8
  timeout: 3
  prefixes: ["/"]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOML(t *testing.T) {
	cfg, err := Load(writeFile(t, "argot.toml", sampleTOML))
	require.NoError(t, err)

	assert.Equal(t, FormatTOML, cfg.Format())
	assert.Equal(t, "!", cfg.GetString("lexer.prefix"))
	assert.Equal(t, ":8089", cfg.GetString("server.addr"))
	assert.Equal(t, 4, cfg.GetInt("server.burst"))
	assert.InDelta(t, 2.5, cfg.GetFloat("server.rate"), 1e-9)
	assert.Equal(t, 15*time.Second, cfg.GetDuration("server.timeout"))
	assert.True(t, cfg.GetBool("server.history"))
	assert.Equal(t, []string{"--", "-"}, cfg.GetStringSlice("server.prefixes"))

	quotes := cfg.GetMapSlice("lexer.quotes")
	require.Len(t, quotes, 2)
	assert.Equal(t, "“", quotes[1]["open"])
	assert.Equal(t, "”", quotes[1]["close"])
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "argot.yaml", sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, FormatYAML, cfg.Format())
	assert.Equal(t, "?", cfg.GetString("lexer.prefix"))
	assert.Equal(t, 8, cfg.GetInt("server.burst"))
	assert.Equal(t, 3*time.Second, cfg.GetDuration("server.timeout"))
	assert.Equal(t, []string{"/"}, cfg.GetStringSlice("server.prefixes"))

	quotes := cfg.GetMapSlice("lexer.quotes")
	require.Len(t, quotes, 1)
	assert.Equal(t, "'", quotes[0]["open"])
}

func TestDefaultsAndMissingKeys(t *testing.T) {
	cfg, err := LoadFromString(`[log]
level = "debug"`, FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.GetString("log.level"))
	assert.Equal(t, "json", cfg.GetString("log.format", "json"))
	assert.Equal(t, 7, cfg.GetInt("log.missing", 7))
	assert.False(t, cfg.Has("log.format"))
	assert.Nil(t, cfg.GetMapSlice("log.level"))

	cfg.Set("history.path", "/tmp/h.db")
	assert.Equal(t, "/tmp/h.db", cfg.GetString("history.path"))
	assert.True(t, cfg.Has("history"))
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("ARGOTTEST_LEXER_PREFIX", "$")
	t.Setenv("ARGOTTEST_SERVER_BURST", "12")
	t.Setenv("ARGOTTEST_SERVER_PREFIXES", "++, +")

	cfg, err := LoadWithOptions(writeFile(t, "argot.toml", sampleTOML), LoadOptions{EnvPrefix: "argottest"})
	require.NoError(t, err)

	assert.Equal(t, "$", cfg.GetString("lexer.prefix"))
	assert.Equal(t, 12, cfg.GetInt("server.burst"))
	assert.Equal(t, []string{"++", "+"}, cfg.GetStringSlice("server.prefixes"))

	empty := Empty("argottest")
	assert.True(t, empty.Has("lexer.prefix"))
	assert.Equal(t, "$", empty.GetString("lexer.prefix"))
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.True(t, argoterrors.HasCode(err, argoterrors.CodeInvalidInput))

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, argoterrors.HasCode(err, argoterrors.CodeNotFound))

	_, err = Load(writeFile(t, "bad.toml", "this is = = not toml"))
	assert.True(t, argoterrors.HasCode(err, argoterrors.CodeConfig))
}

func TestWatchReloads(t *testing.T) {
	path := writeFile(t, "argot.toml", sampleTOML)
	cfg, err := Load(path)
	require.NoError(t, err)

	changed := make(chan string, 16)
	cfg.OnChange(func(old, updated *Config) {
		changed <- old.GetString("lexer.prefix") + "->" + updated.GetString("lexer.prefix")
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, cfg.Watch(ctx))

	require.NoError(t, os.WriteFile(path, []byte("[lexer]\nprefix = \"#\"\n"), 0o644))

	// A truncating write may surface as an intermediate empty reload.
	deadline := time.After(5 * time.Second)
	for done := false; !done; {
		select {
		case got := <-changed:
			done = strings.HasSuffix(got, "->#")
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
	assert.Equal(t, "#", cfg.GetString("lexer.prefix"))
}

func TestWatchRequiresFile(t *testing.T) {
	err := Empty("").Watch(context.Background())
	assert.True(t, argoterrors.HasCode(err, argoterrors.CodeInvalidInput))
}
