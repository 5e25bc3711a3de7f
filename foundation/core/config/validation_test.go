// File: validation_test.go
// Title: Configuration Validation Tests
// Description: Tests for validation rules, environment overrides in
//              validation and struct binding.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-20
// Modified: 2025-11-20
//
// Change History:
// - 2025-11-20 v0.1.0: Initial implementation

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	argoterrors "github.com/msto63/argot/foundation/core/errors"
)

func TestValidateRules(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML, FormatTOML)
	require.NoError(t, err)

	tests := []struct {
		name  string
		key   string
		rule  ValidationRule
		valid bool
	}{
		{"string", "server.addr", ValidationRule{Type: "string"}, true},
		{"int in range", "server.burst", ValidationRule{Type: "int", Min: 1, Max: 10}, true},
		{"int below minimum", "server.burst", ValidationRule{Type: "int", Min: 5}, false},
		{"int above maximum", "server.burst", ValidationRule{Type: "int", Max: 3}, false},
		{"float", "server.rate", ValidationRule{Type: "float", Min: 0.0}, true},
		{"float is not int", "server.rate", ValidationRule{Type: "int"}, false},
		{"duration", "server.timeout", ValidationRule{Type: "duration", Min: time.Second}, true},
		{"duration too short", "server.timeout", ValidationRule{Type: "duration", Min: time.Minute}, false},
		{"string is not duration", "server.addr", ValidationRule{Type: "duration"}, false},
		{"bool", "server.history", ValidationRule{Type: "bool"}, true},
		{"slice length", "server.prefixes", ValidationRule{Type: "[]string", Min: 1, Max: 2}, true},
		{"slice too long", "server.prefixes", ValidationRule{Type: "[]string", Max: 1}, false},
		{"pattern", "lexer.prefix", ValidationRule{Type: "string", Pattern: `^\S*$`}, true},
		{"pattern mismatch", "server.addr", ValidationRule{Pattern: `^\d+$`}, false},
		{"optional missing", "server.missing", ValidationRule{Type: "int"}, true},
		{"required missing", "server.missing", ValidationRule{Required: true}, false},
		{"unknown type", "server.addr", ValidationRule{Type: "uuid"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cfg.Validate(ValidationRules{tt.key: tt.rule})
			assert.Equal(t, tt.valid, result.Valid, "errors: %v", result.Errors)
			if tt.valid {
				assert.NoError(t, result.Err())
				return
			}
			require.Len(t, result.Errors, 1)
			assert.Equal(t, tt.key, result.Errors[0].Key)
		})
	}
}

func TestValidateErrOrderAndDetail(t *testing.T) {
	cfg, err := LoadFromString(sampleTOML, FormatTOML)
	require.NoError(t, err)

	result := cfg.Validate(ValidationRules{
		"server.rate":  {Type: "int"},
		"server.burst": {Type: "int", Min: 10},
		"lexer.prefix": {Type: "string"},
	})
	require.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "server.burst", result.Errors[0].Key)
	assert.Equal(t, "server.rate", result.Errors[1].Key)

	err = result.Err()
	assert.True(t, argoterrors.HasCode(err, argoterrors.CodeConfig))
	var coded *argoterrors.Error
	require.ErrorAs(t, err, &coded)
	key, ok := coded.Detail("key")
	require.True(t, ok)
	assert.Equal(t, "server.burst", key)
	assert.Contains(t, err.Error(), "less than minimum 10")
}

func TestValidateSeesEnvironmentOverrides(t *testing.T) {
	t.Setenv("ARGOTTEST_SERVER_BURST", "many")
	t.Setenv("ARGOTTEST_SERVER_TIMEOUT", "2m")

	cfg, err := LoadWithOptions(writeFile(t, "argot.toml", sampleTOML), LoadOptions{EnvPrefix: "argottest"})
	require.NoError(t, err)

	result := cfg.Validate(ValidationRules{
		"server.burst":   {Type: "int"},
		"server.timeout": {Type: "duration", Max: time.Minute},
	})
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "server.burst", result.Errors[0].Key)
	assert.Equal(t, "server.timeout", result.Errors[1].Key)
}

type bindTarget struct {
	Lexer struct {
		Prefix string `config:"prefix"`
	} `config:"lexer"`
	Server struct {
		Addr     string        `config:"addr"`
		Rate     float64       `config:"rate"`
		Burst    int           `config:"burst"`
		Timeout  time.Duration `config:"timeout"`
		History  bool
		Prefixes []string `config:"prefixes"`
		Missing  string   `config:"missing"`
		Ignored  string   `config:"-"`
	} `config:"server"`
}

func TestBindToStruct(t *testing.T) {
	t.Setenv("ARGOTTEST_SERVER_BURST", "6")
	cfg, err := LoadWithOptions(writeFile(t, "argot.toml", sampleTOML), LoadOptions{EnvPrefix: "argottest"})
	require.NoError(t, err)

	var target bindTarget
	target.Server.Missing = "kept"
	target.Server.Ignored = "kept"
	require.NoError(t, cfg.BindToStruct("", &target))

	assert.Equal(t, "!", target.Lexer.Prefix)
	assert.Equal(t, ":8089", target.Server.Addr)
	assert.InDelta(t, 2.5, target.Server.Rate, 1e-9)
	assert.Equal(t, 6, target.Server.Burst)
	assert.Equal(t, 15*time.Second, target.Server.Timeout)
	assert.True(t, target.Server.History)
	assert.Equal(t, []string{"--", "-"}, target.Server.Prefixes)
	assert.Equal(t, "kept", target.Server.Missing)
	assert.Equal(t, "kept", target.Server.Ignored)

	var server struct {
		Burst int `config:"burst"`
	}
	require.NoError(t, cfg.BindToStruct("server", &server))
	assert.Equal(t, 6, server.Burst)

	err = cfg.BindToStruct("server", server)
	assert.True(t, argoterrors.HasCode(err, argoterrors.CodeInvalidInput))
}
