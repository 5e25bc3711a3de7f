package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	argotlog "github.com/msto63/argot/foundation/core/log"
	"github.com/msto63/argot/internal/server"
	"github.com/msto63/argot/internal/settings"
	"github.com/msto63/argot/pkg/core/version"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the websocket gateway",
	Long: `Start the websocket gateway. Clients send command lines as JSON messages
and answer follow-up questions with reply messages.

Endpoints:
  /ws       - websocket gateway
  /metrics  - prometheus metrics
  /healthz  - health report

Examples:
  argot serve
  argot serve --addr :9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := newEngine()
	if err != nil {
		return err
	}
	store, err := openHistory(false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	addr := appSettings.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := server.New(server.Config{
		Addr:    addr,
		Version: version.Gateway,
	}, server.GatewayOptions{
		Engine:        engine,
		History:       store,
		Logger:        logger,
		RatePerSecond: appSettings.Server.RatePerSecond,
		Burst:         appSettings.Server.Burst,
		ReadTimeout:   appSettings.Server.ReadTimeout,
	})

	if appConfig.FilePath() != "" {
		current := appSettings
		err := settings.Watch(ctx, appConfig, logger, func(next *settings.Settings) {
			if next.Server != current.Server || next.Lexer.Prefix != current.Lexer.Prefix {
				logger.Warn("Changed settings take effect after a restart", argotlog.Fields{
					"addr":   next.Server.Addr,
					"prefix": next.Lexer.Prefix,
				})
			}
			current = next
		})
		if err != nil {
			logger.WarnWithErr("Config watching disabled", err)
		}
	}

	return srv.Run(ctx)
}
