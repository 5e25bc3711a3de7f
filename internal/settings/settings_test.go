package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/argot/foundation/argot/lexer"
	"github.com/msto63/argot/foundation/core/config"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
	argotlog "github.com/msto63/argot/foundation/core/log"
)

const sampleTOML = `
[lexer]
prefix = "!"

[[lexer.quotes]]
open = '"'
close = '"'

[[lexer.quotes]]
open = "«"
close = "»"

[strategy]
kind = "prefixed"
prefixes = ["/"]
separators = [":"]

[log]
level = "debug"
format = "json"

[history]
enabled = true
path = "/tmp/argot-history.db"

[server]
addr = "127.0.0.1:9000"
max_input_length = 512
rate_per_second = 1.5
burst = 3
read_timeout = "30s"

[retry]
max_attempts = 5
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fromString(t *testing.T, content string) (*Settings, error) {
	t.Helper()
	cfg, err := config.LoadFromString(content, config.FormatTOML)
	require.NoError(t, err)
	return FromConfig(cfg)
}

func TestDefaultIsValid(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, []lexer.QuotePair{lexer.DoubleQuotes}, s.QuotePairs())
}

func TestFromConfigBindsEveryKey(t *testing.T) {
	s, err := fromString(t, sampleTOML)
	require.NoError(t, err)

	assert.Equal(t, "!", s.Lexer.Prefix)
	assert.Equal(t, []Quote{{Open: `"`, Close: `"`}, {Open: "«", Close: "»"}}, s.Lexer.Quotes)
	assert.Equal(t, StrategySettings{Kind: KindPrefixed, Prefixes: []string{"/"}, Separators: []string{":"}}, s.Strategy)
	assert.Equal(t, LogSettings{Level: "debug", Format: "json"}, s.Log)
	assert.Equal(t, HistorySettings{Enabled: true, Path: "/tmp/argot-history.db"}, s.History)
	assert.Equal(t, ServerSettings{
		Addr:           "127.0.0.1:9000",
		MaxInputLength: 512,
		RatePerSecond:  1.5,
		Burst:          3,
		ReadTimeout:    30 * time.Second,
	}, s.Server)
	assert.Equal(t, 5, s.Retry.MaxAttempts)
}

func TestFromConfigKeepsDefaults(t *testing.T) {
	s, err := fromString(t, "[log]\nlevel = \"warn\"\n")
	require.NoError(t, err)

	want := Default()
	want.Log.Level = "warn"
	assert.Equal(t, want, s)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("ARGOT_LEXER_PREFIX", "$")
	t.Setenv("ARGOT_SERVER_BURST", "20")
	t.Setenv("ARGOT_STRATEGY_KIND", "LONG")

	s, _, err := Load("", argotlog.Discard())
	require.NoError(t, err)

	assert.Equal(t, "$", s.Lexer.Prefix)
	assert.Equal(t, 20, s.Server.Burst)
	assert.Equal(t, KindLong, s.Strategy.Kind)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		key     string
	}{
		{"unknown strategy", "[strategy]\nkind = \"slashes\"", "strategy.kind"},
		{"prefixed without prefixes", "[strategy]\nkind = \"prefixed\"\nprefixes = [\"\"]", "strategy.prefixes"},
		{"bad log level", "[log]\nlevel = \"loud\"", "log.level"},
		{"bad log format", "[log]\nformat = \"xml\"", "log.format"},
		{"prefix with space", "[lexer]\nprefix = \"! \"", "lexer.prefix"},
		{"empty quote", "[[lexer.quotes]]\nopen = \"<\"\nclose = \"\"", "lexer.quotes"},
		{"history without path", "[history]\nenabled = true\npath = \" \"", "history.path"},
		{"zero input length", "[server]\nmax_input_length = 0", "server.max_input_length"},
		{"negative rate", "[server]\nrate_per_second = -1.0", "server.rate_per_second"},
		{"rate without burst", "[server]\nburst = 0", "server.burst"},
		{"no attempts", "[retry]\nmax_attempts = 0", "retry.max_attempts"},
		{"burst is not a number", "[server]\nburst = \"many\"", "server.burst"},
		{"timeout below a millisecond", "[server]\nread_timeout = \"10us\"", "server.read_timeout"},
		{"enabled is not a bool", "[history]\nenabled = \"sometimes\"", "history.enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromString(t, tt.content)
			require.Error(t, err)
			assert.True(t, argoterrors.HasCode(err, argoterrors.CodeConfig), "got %v", err)

			var coded *argoterrors.Error
			require.ErrorAs(t, err, &coded)
			key, ok := coded.Detail("key")
			require.True(t, ok)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestValidateSeesEnvironment(t *testing.T) {
	t.Setenv("ARGOT_SERVER_READ_TIMEOUT", "soon")

	_, _, err := Load("", argotlog.Discard())
	require.Error(t, err)

	var coded *argoterrors.Error
	require.ErrorAs(t, err, &coded)
	key, _ := coded.Detail("key")
	assert.Equal(t, "server.read_timeout", key)
}

func TestRateLimitOffAllowsZeroBurst(t *testing.T) {
	s, err := fromString(t, "[server]\nrate_per_second = 0.0\nburst = 0")
	require.NoError(t, err)
	assert.Zero(t, s.Server.RatePerSecond)
}

func TestStrategyBuilder(t *testing.T) {
	tests := []struct {
		kind     string
		flag     string
		wantFlag string
		isFlag   bool
	}{
		{KindNone, "--v", "", false},
		{KindLong, "--verbose", "verbose", true},
		{KindLong, "-v", "", false},
		{KindLongShort, "-v", "v", true},
		{KindPrefixed, "/v", "v", true},
	}

	for _, tt := range tests {
		t.Run(tt.kind+" "+tt.flag, func(t *testing.T) {
			s := Default()
			s.Strategy.Kind = tt.kind
			s.Strategy.Prefixes = []string{"/"}
			s.Strategy.Separators = []string{":"}
			require.NoError(t, s.Validate())

			name, ok := s.BuildStrategy().MatchFlag(tt.flag)
			assert.Equal(t, tt.isFlag, ok)
			assert.Equal(t, tt.wantFlag, name)
		})
	}

	s := Default()
	s.Strategy = StrategySettings{Kind: KindPrefixed, Prefixes: []string{"/"}, Separators: []string{":"}}
	name, value, ok := s.BuildStrategy().MatchCompactOption("/name:ada")
	require.True(t, ok)
	assert.Equal(t, "name", name)
	assert.Equal(t, "ada", value)
}

func TestLoadFileAndErrors(t *testing.T) {
	s, cfg, err := Load(writeFile(t, "argot.toml", sampleTOML), argotlog.Discard())
	require.NoError(t, err)
	assert.Equal(t, "!", s.Lexer.Prefix)
	assert.NotEmpty(t, cfg.FilePath())

	_, _, err = Load(filepath.Join(t.TempDir(), "missing.toml"), argotlog.Discard())
	assert.True(t, argoterrors.HasCode(err, argoterrors.CodeNotFound))

	_, _, err = Load(writeFile(t, "bad.toml", "[strategy]\nkind = \"odd\"\n"), argotlog.Discard())
	assert.True(t, argoterrors.HasCode(err, argoterrors.CodeConfig))
}

func TestLocate(t *testing.T) {
	t.Setenv("ARGOT_CONFIG", "")
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	assert.Empty(t, Locate())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "argot.yaml"), []byte("log:\n  level: warn\n"), 0o644))
	assert.Equal(t, "argot.yaml", Locate())

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "argot.toml"), []byte(sampleTOML), 0o644))
	assert.Equal(t, filepath.Join("configs", "argot.toml"), Locate())

	path := writeFile(t, "custom.toml", sampleTOML)
	t.Setenv("ARGOT_CONFIG", path)
	assert.Equal(t, path, Locate())
}

func TestWatchAppliesReloads(t *testing.T) {
	path := writeFile(t, "argot.toml", sampleTOML)
	_, cfg, err := Load(path, argotlog.Discard())
	require.NoError(t, err)

	applied := make(chan *Settings, 16)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, Watch(ctx, cfg, argotlog.Discard(), func(s *Settings) { applied <- s }))

	require.NoError(t, os.WriteFile(path, []byte("[lexer]\nprefix = \"#\"\n"), 0o644))

	// A truncating write may surface as an intermediate reload.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-applied:
			if s.Lexer.Prefix == "#" {
				assert.Equal(t, KindLongShort, s.Strategy.Kind)
				return
			}
		case <-deadline:
			t.Fatal("no reload applied")
		}
	}
}
