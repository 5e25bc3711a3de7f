package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/msto63/argot/internal/repl"
)

var (
	replNoHistory bool
	replPlain     bool
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive command shell",
	Long: `Start an interactive shell. Each line is run as a command; commands that
need more input ask for it on the next line. Type 'exit' or press Ctrl+D to
leave.

The shell runs full screen. Use --plain for a line editor that keeps the
output in the terminal scrollback; it is also used when stdin is not a
terminal.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	replCmd.Flags().BoolVar(&replNoHistory, "no-history", false, "do not keep line history between sessions (plain mode)")
	replCmd.Flags().BoolVar(&replPlain, "plain", false, "use the line editor instead of the full screen shell")
}

func runREPL(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
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

	opts := repl.Options{
		Engine:  engine,
		Output:  os.Stdout,
		History: store,
		Logger:  logger,
	}
	if !replPlain && isatty.IsTerminal(os.Stdin.Fd()) {
		return repl.New(opts).RunShell(ctx)
	}

	historyFile := ""
	if !replNoHistory {
		historyFile = repl.DefaultHistoryFile()
	}
	term := repl.NewTerminal(historyFile)
	defer term.Close()

	opts.Input = term
	logger.Debug("Plain REPL started")
	return repl.New(opts).Run(ctx)
}
