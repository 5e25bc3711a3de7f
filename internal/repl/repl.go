package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/peterh/liner"

	"github.com/msto63/argot/foundation/argot"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
	argotlog "github.com/msto63/argot/foundation/core/log"
	"github.com/msto63/argot/internal/history"
	"github.com/msto63/argot/internal/tui"
)

// LineReader reads one line of input after showing prompt. liner.State and
// Terminal satisfy it.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// Options configures a REPL
type Options struct {
	Engine *argot.Engine
	Input  LineReader
	Output io.Writer

	// History records every line when set
	History history.Store

	Logger *argotlog.Logger

	// Prompt defaults to "argot> "
	Prompt string
}

// REPL reads command lines, executes them and prints the replies. A
// command that asks for more input reads it from the same line reader.
type REPL struct {
	engine    *argot.Engine
	in        LineReader
	out       io.Writer
	store     history.Store
	logger    *argotlog.Logger
	prompt    string
	sessionID string
}

// New creates a REPL with a fresh session ID
func New(opts Options) *REPL {
	if opts.Logger == nil {
		opts.Logger = argotlog.GetDefault()
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}
	if opts.Prompt == "" {
		opts.Prompt = "argot> "
	}
	sessionID := uuid.NewString()

	return &REPL{
		engine:    opts.Engine,
		in:        opts.Input,
		out:       opts.Output,
		store:     opts.History,
		logger:    opts.Logger.WithField("component", "argot-repl").WithSessionID(sessionID),
		prompt:    opts.Prompt,
		sessionID: sessionID,
	}
}

// SessionID identifies this REPL in logs and history
func (r *REPL) SessionID() string {
	return r.sessionID
}

// Prompt implements argot.Prompter on the REPL's line reader
func (r *REPL) Prompt(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	answer, err := r.in.Prompt(tui.RenderQuestion(question) + " ")
	if err != nil {
		if isEndOfInput(err) {
			return "", argoterrors.Wrap(err, "prompt aborted").WithCode(argoterrors.CodeCanceled)
		}
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// Run reads lines from the line reader until end of input, "exit" or "quit", or until ctx is
// done. End of input is not an error.
func (r *REPL) Run(ctx context.Context) error {
	r.logger.Info("REPL started")
	defer r.logger.Info("REPL stopped")

	if hello := r.greeting(); hello != "" {
		r.println(hello)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := r.in.Prompt(tui.RenderPrompt(r.prompt))
		if err != nil {
			if isEndOfInput(err) {
				return nil
			}
			return argoterrors.Wrap(err, "failed to read input").WithCode(argoterrors.CodeInternal)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			return nil
		}

		r.Handle(ctx, input)
	}
}

// Handle executes one line, prints the reply and records it
func (r *REPL) Handle(ctx context.Context, input string) {
	res, err := r.engine.Execute(ctx, input, r)
	r.record(ctx, input, res, err)
	if text := r.outcome(input, res, err); text != "" {
		r.println(text)
	}
}

// outcome renders the reply or error of one command line
func (r *REPL) outcome(input string, res *argot.Result, err error) string {
	if err != nil {
		if argoterrors.HasCode(err, argoterrors.CodeNotCommand) {
			return tui.RenderHelp(fmt.Sprintf("Not a command. Commands start with %q.", r.engine.Prefix()))
		}
		if !argoterrors.CodeOf(err).IsUserError() {
			r.logger.ErrorWithErr("Command failed", err, argotlog.Fields{"input": input})
		}
		return tui.RenderError(err.Error())
	}
	if res.Message == "" {
		return ""
	}
	return tui.RenderReply(res.Message)
}

func (r *REPL) greeting() string {
	prefix := r.engine.Prefix()
	if prefix == "" {
		return ""
	}
	return tui.RenderHelp(fmt.Sprintf("Commands start with %q. Try %shelp.", prefix, prefix))
}

func (r *REPL) record(ctx context.Context, input string, res *argot.Result, err error) {
	if r.store == nil {
		return
	}
	entry := history.NewEntry(history.SourceREPL, r.sessionID, input, res, err)
	if recErr := r.store.Record(context.WithoutCancel(ctx), entry); recErr != nil {
		r.logger.WarnWithErr("Failed to record history", recErr)
	}
}

func (r *REPL) println(s string) {
	fmt.Fprintln(r.out, s)
}

func isEndOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted)
}
