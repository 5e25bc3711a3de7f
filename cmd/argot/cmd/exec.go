package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/msto63/argot/foundation/argot"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
	argotlog "github.com/msto63/argot/foundation/core/log"
	"github.com/msto63/argot/internal/history"
	"github.com/msto63/argot/internal/tui"
)

var execNoPrompt bool

var execCmd = &cobra.Command{
	Use:   "exec <command line>",
	Short: "Run one command line",
	Long: `Run one command line through the built-in commands and print the reply.
Follow-up questions are read from stdin unless --no-prompt is set.

Examples:
  argot exec '!echo --repeat=2 hello'
  argot exec '!sum'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().BoolVar(&execNoPrompt, "no-prompt", false, "fail instead of asking follow-up questions")
}

func runExec(cmd *cobra.Command, args []string) error {
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

	var prompter argot.Prompter
	if !execNoPrompt {
		prompter = newStdinPrompter(os.Stdin, cmd.ErrOrStderr())
	}

	input := strings.Join(args, " ")
	res, err := engine.Execute(ctx, input, prompter)
	if store != nil {
		entry := history.NewEntry(history.SourceCLI, uuid.NewString(), input, res, err)
		if recErr := store.Record(context.WithoutCancel(ctx), entry); recErr != nil {
			logger.WarnWithErr("Failed to record history", recErr)
		}
	}
	if err != nil {
		if !argoterrors.CodeOf(err).IsUserError() {
			logger.ErrorWithErr("Command failed", err, argotlog.Fields{"input": input})
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.Message)
	return nil
}

// stdinPrompter asks questions on w and reads answers line by line from r
type stdinPrompter struct {
	scanner *bufio.Scanner
	w       io.Writer
}

func newStdinPrompter(r io.Reader, w io.Writer) *stdinPrompter {
	return &stdinPrompter{scanner: bufio.NewScanner(r), w: w}
}

func (p *stdinPrompter) Prompt(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintln(p.w, tui.RenderQuestion(question))
	fmt.Fprint(p.w, tui.RenderPrompt("> "))

	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", argoterrors.New("no answer on stdin").WithCode(argoterrors.CodeCanceled)
	}
	return p.scanner.Text(), nil
}
