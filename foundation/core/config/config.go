// File: config.go
// Title: Configuration Loading and Access
// Description: Implements the Config type: loading TOML and YAML content,
//              dot-path lookup and environment variable overrides.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-04
// Modified: 2025-11-04
//
// Change History:
// - 2025-11-04 v0.1.0: Initial implementation

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	argoterrors "github.com/msto63/argot/foundation/core/errors"
	argotlog "github.com/msto63/argot/foundation/core/log"
)

// Format represents the configuration file format
type Format int

const (
	// FormatAuto detects the format from the file extension
	FormatAuto Format = iota

	// FormatTOML represents TOML format
	FormatTOML

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// Config is a loaded configuration with thread-safe access
type Config struct {
	mu        sync.RWMutex
	data      map[string]interface{}
	filePath  string
	format    Format
	envPrefix string
	handlers  []ChangeHandler
	logger    *argotlog.Logger
}

// ChangeHandler is called after the configuration file has been reloaded
type ChangeHandler func(oldConfig, newConfig *Config)

// LoadOptions defines options for loading configuration
type LoadOptions struct {
	Format    Format
	EnvPrefix string
	Defaults  map[string]interface{}
	Logger    *argotlog.Logger
}

// Load loads configuration from a file, detecting the format
func Load(filePath string) (*Config, error) {
	return LoadWithOptions(filePath, LoadOptions{})
}

// LoadWithOptions loads configuration from a file with custom options
func LoadWithOptions(filePath string, options LoadOptions) (*Config, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, argoterrors.New("config file path cannot be empty").
			WithCode(argoterrors.CodeInvalidInput).
			WithOperation("config.LoadWithOptions")
	}

	format := options.Format
	if format == FormatAuto {
		format = detectFormat(filePath)
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		code := argoterrors.CodeConfig
		if os.IsNotExist(err) {
			code = argoterrors.CodeNotFound
		}
		return nil, argoterrors.Wrap(err, "failed to read config file").
			WithCode(code).
			WithOperation("config.LoadWithOptions").
			WithDetail("filePath", filePath)
	}

	data, err := parseContent(content, format)
	if err != nil {
		return nil, argoterrors.Wrap(err, "failed to parse config file").
			WithDetail("filePath", filePath)
	}

	logger := options.Logger
	if logger == nil {
		logger = argotlog.GetDefault()
	}

	return &Config{
		data:      mergeDefaults(data, options.Defaults),
		filePath:  filePath,
		format:    format,
		envPrefix: options.EnvPrefix,
		logger:    logger.WithField("component", "config"),
	}, nil
}

// LoadFromString loads configuration from a string with the given format.
// FormatAuto is treated as TOML.
func LoadFromString(content string, format Format) (*Config, error) {
	if format == FormatAuto {
		format = FormatTOML
	}
	data, err := parseContent([]byte(content), format)
	if err != nil {
		return nil, err
	}
	return &Config{
		data:   data,
		format: format,
		logger: argotlog.GetDefault().WithField("component", "config"),
	}, nil
}

// Empty returns a configuration with no values. Getters fall back to
// environment variables and defaults.
func Empty(envPrefix string) *Config {
	return &Config{
		data:      make(map[string]interface{}),
		format:    FormatTOML,
		envPrefix: envPrefix,
		logger:    argotlog.GetDefault().WithField("component", "config"),
	}
}

// WithEnvPrefix sets the environment variable prefix and returns c
func (c *Config) WithEnvPrefix(prefix string) *Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.envPrefix = prefix
	return c
}

func detectFormat(filePath string) Format {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func parseContent(content []byte, format Format) (map[string]interface{}, error) {
	data := make(map[string]interface{})

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, &data); err != nil {
			return nil, argoterrors.Wrap(err, "TOML parse error").
				WithCode(argoterrors.CodeConfig).
				WithOperation("config.parseContent")
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &data); err != nil {
			return nil, argoterrors.Wrap(err, "YAML parse error").
				WithCode(argoterrors.CodeConfig).
				WithOperation("config.parseContent")
		}
		if data == nil {
			data = make(map[string]interface{})
		}
	default:
		return nil, argoterrors.New(fmt.Sprintf("unsupported format: %s", format)).
			WithCode(argoterrors.CodeConfig).
			WithOperation("config.parseContent")
	}

	return data, nil
}

func mergeDefaults(data, defaults map[string]interface{}) map[string]interface{} {
	if len(defaults) == 0 {
		return data
	}
	result := make(map[string]interface{}, len(data)+len(defaults))
	for k, v := range defaults {
		result[k] = v
	}
	for k, v := range data {
		result[k] = v
	}
	return result
}

// GetString returns a string value with optional default
func (c *Config) GetString(key string, defaultValue ...string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if env, ok := c.lookupEnv(key); ok {
		return env
	}
	switch v := c.getValue(key).(type) {
	case nil:
		return first(defaultValue, "")
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// GetInt returns an integer value with optional default
func (c *Config) GetInt(key string, defaultValue ...int) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if env, ok := c.lookupEnv(key); ok {
		if n, err := strconv.Atoi(env); err == nil {
			return n
		}
	}
	switch v := c.getValue(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return first(defaultValue, 0)
}

// GetFloat returns a float value with optional default
func (c *Config) GetFloat(key string, defaultValue ...float64) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if env, ok := c.lookupEnv(key); ok {
		if f, err := strconv.ParseFloat(env, 64); err == nil {
			return f
		}
	}
	switch v := c.getValue(key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return first(defaultValue, 0)
}

// GetBool returns a boolean value with optional default
func (c *Config) GetBool(key string, defaultValue ...bool) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if env, ok := c.lookupEnv(key); ok {
		if b, err := strconv.ParseBool(env); err == nil {
			return b
		}
	}
	switch v := c.getValue(key).(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return first(defaultValue, false)
}

// GetDuration returns a duration value with optional default. Strings are
// parsed with time.ParseDuration and bare numbers are taken as seconds.
func (c *Config) GetDuration(key string, defaultValue ...time.Duration) time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if env, ok := c.lookupEnv(key); ok {
		if d, err := time.ParseDuration(env); err == nil {
			return d
		}
	}
	switch v := c.getValue(key).(type) {
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	case int:
		return time.Duration(v) * time.Second
	case int64:
		return time.Duration(v) * time.Second
	case float64:
		return time.Duration(v * float64(time.Second))
	}
	return first(defaultValue, 0)
}

// GetStringSlice returns a string slice with optional default. An
// environment override is split on commas.
func (c *Config) GetStringSlice(key string, defaultValue ...[]string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if env, ok := c.lookupEnv(key); ok {
		parts := strings.Split(env, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	switch v := c.getValue(key).(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = fmt.Sprintf("%v", item)
		}
		return out
	case string:
		return []string{v}
	}
	return first(defaultValue, nil)
}

// GetMapSlice returns a list of tables, such as TOML [[arrays.of.tables]]
// or a YAML sequence of mappings. Entries that are not tables are skipped.
func (c *Config) GetMapSlice(key string) []map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch v := c.getValue(key).(type) {
	case []map[string]interface{}:
		out := make([]map[string]interface{}, len(v))
		for i := range v {
			out[i] = deepCopyMap(v[i])
		}
		return out
	case []interface{}:
		var out []map[string]interface{}
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				out = append(out, deepCopyMap(m))
			}
		}
		return out
	}
	return nil
}

// Has reports whether key is present in the file or the environment
func (c *Config) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, ok := c.lookupEnv(key); ok {
		return true
	}
	return c.getValue(key) != nil
}

// Set sets a value at runtime, creating intermediate tables
func (c *Config) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := strings.Split(key, ".")
	current := c.data
	for i, k := range keys {
		if i == len(keys)-1 {
			current[k] = value
			return
		}
		next, ok := current[k].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			current[k] = next
		}
		current = next
	}
}

// GetAll returns a deep copy of the configuration data
func (c *Config) GetAll() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deepCopyMap(c.data)
}

// FilePath returns the path of the loaded configuration file
func (c *Config) FilePath() string {
	return c.filePath
}

// Format returns the configuration format
func (c *Config) Format() Format {
	return c.format
}

// OnChange registers a handler called after every successful reload
func (c *Config) OnChange(handler ChangeHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, handler)
}

func (c *Config) getValue(key string) interface{} {
	current := c.data
	keys := strings.Split(key, ".")
	for i, k := range keys {
		if i == len(keys)-1 {
			return current[k]
		}
		next, ok := current[k].(map[string]interface{})
		if !ok {
			return nil
		}
		current = next
	}
	return nil
}

// lookupEnv maps lexer.prefix to PREFIX_LEXER_PREFIX. Empty variables count
// as unset.
func (c *Config) lookupEnv(key string) (string, bool) {
	if c.envPrefix == "" {
		return "", false
	}
	envKey := strings.ToUpper(c.envPrefix) + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	value := os.Getenv(envKey)
	return value, value != ""
}

func deepCopyMap(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		switch val := v.(type) {
		case map[string]interface{}:
			dst[k] = deepCopyMap(val)
		case []interface{}:
			dst[k] = append([]interface{}(nil), val...)
		default:
			dst[k] = v
		}
	}
	return dst
}

func first[T any](values []T, fallback T) T {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}
