// File: argot.go
// Title: Command Engine
// Description: Engine that lexes, resolves, parses and dispatches commands
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-09
// Modified: 2025-11-09
//
// Change History:
// - 2025-11-09 v0.1.0: Initial implementation

package argot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/msto63/argot/foundation/argot/args"
	"github.com/msto63/argot/foundation/argot/lexer"
	"github.com/msto63/argot/foundation/argot/output"
	"github.com/msto63/argot/foundation/argot/parser"
	"github.com/msto63/argot/foundation/argot/registry"
	"github.com/msto63/argot/foundation/argot/strategy"
	"github.com/msto63/argot/foundation/argot/token"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
	argotlog "github.com/msto63/argot/foundation/core/log"
)

const (
	module = "argot"

	// DefaultMaxInputLength bounds the accepted input in bytes
	DefaultMaxInputLength = 4096

	// DefaultMaxAttempts bounds the prompts of Ask when no limit is given
	DefaultMaxAttempts = 3

	maxSuggestions = 3
)

// Options configures an Engine
type Options struct {
	// Logger for engine operations (optional, defaults to the default logger)
	Logger *argotlog.Logger

	// Registry holds the commands (optional, a new one is created)
	Registry *Registry

	// EnableAbbreviations applies to a registry created by New
	EnableAbbreviations bool

	// Prefix marks a command, e.g. "!". Empty treats the first word as
	// the command name.
	Prefix string

	// Quotes are the quote pairs of the lexer (default: double quotes)
	Quotes []lexer.QuotePair

	// DefaultStrategy is used by definitions without a strategy
	// (default: strategy.LongShort)
	DefaultStrategy strategy.Strategy

	// MaxInputLength limits the input length (default: 4096)
	MaxInputLength int

	// MaxAttempts is the default prompt budget of Ask (default: 3)
	MaxAttempts int
}

// Engine is safe for concurrent use as long as its registry is only
// changed through the registry's own methods
type Engine struct {
	registry *Registry
	logger   *argotlog.Logger
	options  Options
}

// Result is the outcome of Execute
type Result struct {
	// InvocationID identifies the invocation in logs and history
	InvocationID string

	// Command is the canonical name of the executed command
	Command string

	// Message is the handler's reply
	Message string

	// Output is the parse result the handler received
	Output output.Output

	// ExecutionTime is the time from parsing to the handler's return
	ExecutionTime time.Duration
}

// New creates an engine with the given options
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = argotlog.GetDefault()
	}
	if opts.Quotes == nil {
		opts.Quotes = []lexer.QuotePair{lexer.DoubleQuotes}
	}
	if opts.DefaultStrategy == nil {
		opts.DefaultStrategy = strategy.LongShort()
	}
	if opts.MaxInputLength <= 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}

	logger := opts.Logger.WithField("component", "argot-engine")
	if opts.Registry == nil {
		opts.Registry = NewRegistry(registry.Options{
			Logger:              opts.Logger,
			EnableAbbreviations: opts.EnableAbbreviations,
		})
	}

	logger.Debug("Engine initialized", argotlog.Fields{
		"prefix":         opts.Prefix,
		"quotePairs":     len(opts.Quotes),
		"maxInputLength": opts.MaxInputLength,
		"commands":       opts.Registry.Len(),
	})

	return &Engine{
		registry: opts.Registry,
		logger:   logger,
		options:  opts,
	}
}

// Registry returns the command table
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Prefix returns the command prefix
func (e *Engine) Prefix() string {
	return e.options.Prefix
}

// Register adds a command definition
func (e *Engine) Register(def *Definition) error {
	if def == nil || def.Handler == nil {
		return argoterrors.InvalidInput(module, "register", "definition", def)
	}
	return e.registry.Register(def.Name, def, def.Aliases...)
}

func (e *Engine) matchPrefix() token.MatchPrefix {
	if e.options.Prefix == "" {
		return func(string) (int, bool) { return 0, true }
	}
	return token.Prefix(e.options.Prefix)
}

// Parse resolves the command of input and parses its arguments without
// running the handler. The returned invocation has no prompter.
func (e *Engine) Parse(input string) (*Invocation, error) {
	if len(input) > e.options.MaxInputLength {
		return nil, argoterrors.NewErrorBuilder(module).
			Operation("parse").
			Code(argoterrors.CodeInputTooLong).
			Messagef("input exceeds maximum length: %d > %d", len(input), e.options.MaxInputLength).
			Detail("length", len(input)).
			Detail("max", e.options.MaxInputLength).
			Build()
	}

	lx := lexer.New(input).SetQuotes(e.options.Quotes...)
	command, rest, ok := lx.LexCommand(e.matchPrefix())
	if !ok || command.Value == "" {
		return nil, argoterrors.NewErrorBuilder(module).
			Operation("parse").
			Code(argoterrors.CodeNotCommand).
			Message("input is not a command").
			Detail("prefix", e.options.Prefix).
			Build()
	}

	def, ok := e.registry.Lookup(command.Value)
	if !ok {
		suggestions := e.registry.Suggest(command.Value, maxSuggestions)
		message := fmt.Sprintf("unknown command: %s", command.Value)
		if len(suggestions) > 0 {
			message += fmt.Sprintf(" (did you mean %s?)", strings.Join(suggestions, ", "))
		}
		return nil, argoterrors.NewErrorBuilder(module).
			Operation("parse").
			Code(argoterrors.CodeUnknownCommand).
			Message(message).
			Detail("command", command.Value).
			Detail("suggestions", suggestions).
			Build()
	}

	st := def.Strategy
	if st == nil {
		st = e.options.DefaultStrategy
	}
	tokens := rest()
	out := parser.Parse(tokens, st)

	return &Invocation{
		ID:         uuid.NewString(),
		Input:      input,
		Command:    command,
		Tokens:     tokens,
		Definition: def,
		Output:     out,
		Args:       args.New(out),
		Logger:     e.logger,
		attempts:   e.options.MaxAttempts,
	}, nil
}

// Execute parses input and runs the matched handler. prompt may be nil
// for non-interactive callers; Ask then fails immediately.
func (e *Engine) Execute(ctx context.Context, input string, prompt Prompter) (*Result, error) {
	timer := e.logger.StartTimer("argot_command_execution")
	start := time.Now()

	inv, err := e.Parse(input)
	if err != nil {
		timer.Stop()
		e.logger.Debug("Command rejected", argotlog.Fields{
			"input": input,
			"code":  argoterrors.CodeOf(err).String(),
		})
		return nil, err
	}
	inv.Prompt = prompt
	inv.Logger = e.logger.WithCorrelationID(inv.ID).WithField("command", inv.Definition.Name)
	timer.WithField("command", inv.Definition.Name)

	if err := ctx.Err(); err != nil {
		timer.StopWithError(err)
		return nil, argoterrors.Wrap(err, "command canceled").WithCode(argoterrors.CodeCanceled)
	}

	message, err := inv.Definition.Handler(ctx, inv)
	if err != nil {
		timer.StopWithError(err)
		inv.Logger.WarnWithErr("Command failed", err)
		if argoterrors.CodeOf(err) == argoterrors.CodeUnknown {
			err = argoterrors.NewErrorBuilder(module).
				Operation("execute").
				Code(argoterrors.CodeInternal).
				Messagef("command %s failed", inv.Definition.Name).
				Cause(err).
				Build()
		}
		return nil, err
	}
	timer.Stop()

	result := &Result{
		InvocationID:  inv.ID,
		Command:       inv.Definition.Name,
		Message:       message,
		Output:        inv.Output,
		ExecutionTime: time.Since(start),
	}

	inv.Logger.Info("Command executed", argotlog.Fields{
		"ordered":  len(inv.Output.Ordered),
		"flags":    len(inv.Output.Flags),
		"options":  len(inv.Output.Options),
		"duration": result.ExecutionTime,
	})
	return result, nil
}
