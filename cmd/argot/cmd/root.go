package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/argot/foundation/argot"
	"github.com/msto63/argot/foundation/core/config"
	argotlog "github.com/msto63/argot/foundation/core/log"
	"github.com/msto63/argot/internal/commands"
	"github.com/msto63/argot/internal/history"
	"github.com/msto63/argot/internal/settings"
	"github.com/msto63/argot/internal/tui"
)

var (
	cfgFile string
	verbose bool

	appSettings *settings.Settings
	appConfig   *config.Config
	logger      *argotlog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "argot",
	Short: "argot - command-string argument toolkit",
	Long: `argot splits chat-style command lines into tokens, classifies flags and
options, and runs commands that can ask follow-up questions.

Commands:
  lex      - show the tokens of a string
  parse    - show the flags, options and arguments of a string
  exec     - run one command line
  repl     - interactive command shell
  serve    - websocket gateway with metrics
  history  - inspect recorded command lines`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $ARGOT_CONFIG or ./configs/argot.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func loadSettings(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = settings.Locate()
	}

	s, cfg, err := settings.Load(path, argotlog.Discard())
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if verbose {
		s.Log.Level = "debug"
	}
	appSettings, appConfig = s, cfg
	logger = s.Logger()
	argotlog.SetDefault(logger)

	logger.Debug("Settings loaded", argotlog.Fields{"file": path})
	return nil
}

// newEngine builds an engine with the built-in commands from the settings
func newEngine() (*argot.Engine, error) {
	e := argot.New(argot.Options{
		Logger:              logger,
		EnableAbbreviations: true,
		Prefix:              appSettings.Lexer.Prefix,
		Quotes:              appSettings.QuotePairs(),
		DefaultStrategy:     appSettings.BuildStrategy(),
		MaxInputLength:      appSettings.Server.MaxInputLength,
		MaxAttempts:         appSettings.Retry.MaxAttempts,
	})
	if err := commands.Register(e); err != nil {
		return nil, err
	}
	return e, nil
}

// openHistory opens the history store, or returns nil when history is off
// and force is false
func openHistory(force bool) (history.Store, error) {
	if !appSettings.History.Enabled && !force {
		return nil, nil
	}
	store, err := history.NewSQLiteStore(history.SQLiteConfig{Path: appSettings.History.Path})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func printError(err error) {
	fmt.Fprintln(os.Stderr, tui.RenderError(err.Error()))
}
