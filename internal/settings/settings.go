package settings

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/msto63/argot/foundation/argot/lexer"
	"github.com/msto63/argot/foundation/argot/strategy"
	"github.com/msto63/argot/foundation/core/config"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
	argotlog "github.com/msto63/argot/foundation/core/log"
)

// EnvPrefix is the prefix of environment overrides, e.g. ARGOT_LEXER_PREFIX
const EnvPrefix = "ARGOT"

// Strategy kinds accepted in strategy.kind
const (
	KindNone      = "none"
	KindLong      = "long"
	KindLongShort = "longshort"
	KindPrefixed  = "prefixed"
)

// Settings holds the complete application configuration
type Settings struct {
	Lexer    LexerSettings    `yaml:"lexer" config:"lexer"`
	Strategy StrategySettings `yaml:"strategy" config:"strategy"`
	Log      LogSettings      `yaml:"log" config:"log"`
	History  HistorySettings  `yaml:"history" config:"history"`
	Server   ServerSettings   `yaml:"server" config:"server"`
	Retry    RetrySettings    `yaml:"retry" config:"retry"`
}

// LexerSettings configures command detection and quoting. Quotes are a
// list of tables and are read separately.
type LexerSettings struct {
	Prefix string  `yaml:"prefix" config:"prefix"`
	Quotes []Quote `yaml:"quotes" config:"-"`
}

// Quote is one open/close delimiter pair
type Quote struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// StrategySettings selects the default flag/option strategy
type StrategySettings struct {
	Kind       string   `yaml:"kind" config:"kind"`
	Prefixes   []string `yaml:"prefixes" config:"prefixes"`
	Separators []string `yaml:"separators" config:"separators"`
}

// LogSettings configures the logger
type LogSettings struct {
	Level  string `yaml:"level" config:"level"`
	Format string `yaml:"format" config:"format"`
}

// HistorySettings configures the sqlite history store
type HistorySettings struct {
	Enabled bool   `yaml:"enabled" config:"enabled"`
	Path    string `yaml:"path" config:"path"`
}

// ServerSettings configures the websocket gateway
type ServerSettings struct {
	Addr           string        `yaml:"addr" config:"addr"`
	MaxInputLength int           `yaml:"max_input_length" config:"max_input_length"`
	RatePerSecond  float64       `yaml:"rate_per_second" config:"rate_per_second"`
	Burst          int           `yaml:"burst" config:"burst"`
	ReadTimeout    time.Duration `yaml:"read_timeout" config:"read_timeout"`
}

// RetrySettings bounds interactive re-prompting
type RetrySettings struct {
	MaxAttempts int `yaml:"max_attempts" config:"max_attempts"`
}

// rules are checked against the file and the environment before binding,
// so a value of the wrong type is an error instead of a silent default
var rules = config.ValidationRules{
	"lexer.prefix":            {Type: "string", Pattern: `^\S*$`},
	"strategy.kind":           {Type: "string"},
	"strategy.prefixes":       {Type: "[]string"},
	"strategy.separators":     {Type: "[]string"},
	"log.level":               {Type: "string"},
	"log.format":              {Type: "string"},
	"history.enabled":         {Type: "bool"},
	"history.path":            {Type: "string"},
	"server.addr":             {Type: "string"},
	"server.max_input_length": {Type: "int", Min: 1},
	"server.rate_per_second":  {Type: "float", Min: 0.0},
	"server.burst":            {Type: "int", Min: 0},
	"server.read_timeout":     {Type: "duration", Min: time.Millisecond},
	"retry.max_attempts":      {Type: "int", Min: 1},
}

// Default returns the settings used when no file is present
func Default() *Settings {
	return &Settings{
		Lexer: LexerSettings{
			Prefix: "",
			Quotes: []Quote{{Open: `"`, Close: `"`}},
		},
		Strategy: StrategySettings{
			Kind:       KindLongShort,
			Prefixes:   []string{"--", "-"},
			Separators: []string{"="},
		},
		Log: LogSettings{
			Level:  "info",
			Format: "console",
		},
		History: HistorySettings{
			Enabled: false,
			Path:    "./data/history.db",
		},
		Server: ServerSettings{
			Addr:           ":8089",
			MaxInputLength: 4096,
			RatePerSecond:  5,
			Burst:          10,
			ReadTimeout:    120 * time.Second,
		},
		Retry: RetrySettings{
			MaxAttempts: 3,
		},
	}
}

// Locate returns the configuration file to use: $ARGOT_CONFIG, then
// argot.toml, argot.yaml or argot.yml in ./configs, the working directory
// and the user config directory. It returns "" when none exists.
func Locate() string {
	path, err := config.FindConfigFile(config.DefaultDiscoveryOptions("argot"))
	if err != nil {
		return ""
	}
	return path
}

// Load reads the file at path, or only the environment when path is
// empty, and binds it into Settings. The returned Config can be watched.
func Load(path string, logger *argotlog.Logger) (*Settings, *config.Config, error) {
	var cfg *config.Config
	if path == "" {
		cfg = config.Empty(EnvPrefix)
	} else {
		var err error
		cfg, err = config.LoadWithOptions(os.ExpandEnv(path), config.LoadOptions{
			EnvPrefix: EnvPrefix,
			Logger:    logger,
		})
		if err != nil {
			return nil, nil, err
		}
	}

	s, err := FromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return s, cfg, nil
}

// FromConfig binds cfg into Settings, filling gaps with Default and
// validating the result.
func FromConfig(cfg *config.Config) (*Settings, error) {
	if err := cfg.Validate(rules).Err(); err != nil {
		return nil, err
	}

	s := Default()
	if err := cfg.BindToStruct("", s); err != nil {
		return nil, err
	}
	if cfg.Has("lexer.quotes") {
		quotes, err := quotesFrom(cfg.GetMapSlice("lexer.quotes"))
		if err != nil {
			return nil, err
		}
		s.Lexer.Quotes = quotes
	}
	s.Strategy.Kind = strings.ToLower(s.Strategy.Kind)
	s.History.Path = os.ExpandEnv(s.History.Path)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func quotesFrom(tables []map[string]interface{}) ([]Quote, error) {
	quotes := make([]Quote, 0, len(tables))
	for i, t := range tables {
		open, _ := t["open"].(string)
		closing, _ := t["close"].(string)
		if open == "" || closing == "" {
			return nil, invalid("lexer.quotes", fmt.Sprintf("entry %d needs non-empty open and close", i))
		}
		quotes = append(quotes, Quote{Open: open, Close: closing})
	}
	return quotes, nil
}

// Validate checks what the per-key rules cannot: values that must parse and
// keys that depend on each other. Types and bounds are checked by rules
// before binding.
func (s *Settings) Validate() error {
	for i, q := range s.Lexer.Quotes {
		if q.Open == "" || q.Close == "" {
			return invalid("lexer.quotes", fmt.Sprintf("entry %d needs non-empty open and close", i))
		}
	}

	switch s.Strategy.Kind {
	case KindNone, KindLong, KindLongShort:
	case KindPrefixed:
		if len(nonEmpty(s.Strategy.Prefixes)) == 0 {
			return invalid("strategy.prefixes", "prefixed strategy needs at least one prefix")
		}
	default:
		return invalid("strategy.kind", fmt.Sprintf("unknown kind %q", s.Strategy.Kind))
	}

	if _, err := argotlog.ParseLevel(s.Log.Level); err != nil {
		return invalid("log.level", err.Error())
	}
	if _, err := argotlog.ParseFormat(s.Log.Format); err != nil {
		return invalid("log.format", err.Error())
	}

	if s.History.Enabled && strings.TrimSpace(s.History.Path) == "" {
		return invalid("history.path", "required when history is enabled")
	}

	if s.Server.RatePerSecond > 0 && s.Server.Burst < 1 {
		return invalid("server.burst", "must be at least 1 when rate limiting is on")
	}
	return nil
}

// BuildStrategy builds the configured default strategy
func (s *Settings) BuildStrategy() strategy.Strategy {
	switch s.Strategy.Kind {
	case KindLong:
		return strategy.Long()
	case KindLongShort:
		return strategy.LongShort()
	case KindPrefixed:
		return strategy.Prefixed(nonEmpty(s.Strategy.Prefixes), nonEmpty(s.Strategy.Separators))
	default:
		return strategy.None()
	}
}

// QuotePairs returns the lexer quote pairs
func (s *Settings) QuotePairs() []lexer.QuotePair {
	pairs := make([]lexer.QuotePair, len(s.Lexer.Quotes))
	for i, q := range s.Lexer.Quotes {
		pairs[i] = lexer.QuotePair{Open: q.Open, Close: q.Close}
	}
	return pairs
}

// Logger builds a logger for the configured level and format
func (s *Settings) Logger() *argotlog.Logger {
	level, _ := argotlog.ParseLevel(s.Log.Level)
	format, _ := argotlog.ParseFormat(s.Log.Format)
	return argotlog.NewWithConfig(argotlog.Config{
		Level:  level,
		Format: format,
		Name:   "argot",
	})
}

// Watch reloads settings whenever the file behind cfg changes. apply is
// called with each valid reload; invalid files are logged and skipped.
func Watch(ctx context.Context, cfg *config.Config, logger *argotlog.Logger, apply func(*Settings)) error {
	if logger == nil {
		logger = argotlog.GetDefault()
	}
	logger = logger.WithField("component", "settings")

	cfg.OnChange(func(_, next *config.Config) {
		s, err := FromConfig(next)
		if err != nil {
			logger.WarnWithErr("Ignoring invalid configuration", err, argotlog.Fields{"file": next.FilePath()})
			return
		}
		logger.Info("Configuration reloaded", argotlog.Fields{"file": next.FilePath()})
		apply(s)
	})
	return cfg.Watch(ctx)
}

func invalid(key, reason string) error {
	return argoterrors.NewErrorBuilder("settings").
		Operation("Validate").
		Code(argoterrors.CodeConfig).
		Messagef("invalid setting %s: %s", key, reason).
		Detail("key", key).
		Build()
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
