// Package argot turns command lines into dispatched command invocations.
//
// Package: argot
// Title: argot Command Engine
// Description: The engine ties the argot packages together. A line of text
//              is lexed until its command name, the name is resolved in a
//              registry, the rest of the line is parsed with the strategy
//              of the matched command and the handler receives an
//              Invocation holding the parse result and an argument cursor.
//              Handlers that need more input ask for it through the
//              injected Prompter with a bounded number of attempts.
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-09
// Modified: 2025-11-10
//
// Change History:
// - 2025-11-09 v0.1.0: Initial implementation
// - 2025-11-10 v0.1.0: Interactive prompting through Ask
//
// Pipeline:
//
//	"!echo --upper=   hello  world"
//	      |
//	      v  lexer.LexCommand(token.Prefix("!"))
//	command "echo", rest lexed lazily
//	      |
//	      v  registry lookup (names, aliases, abbreviations)
//	*Definition{Strategy, Handler}
//	      |
//	      v  parser.Parse(rest, Strategy)
//	output.Output{Ordered, Flags, Options}
//	      |
//	      v  args.New(output)
//	Handler(ctx, *Invocation)
//
// Errors:
//
// Parse and Execute return *errors.Error values from foundation/core/errors.
// Input longer than Options.MaxInputLength has CodeInputTooLong, a line that
// does not start with the prefix has CodeNotCommand and an unknown command
// has CodeUnknownCommand with the detail "suggestions" listing close names.
// Ask fails with CodeRetryExhausted once every attempt was rejected.
//
// Usage:
//
//	engine := argot.New(argot.Options{Prefix: "!"})
//	engine.Register(&argot.Definition{
//	    Name:    "greet",
//	    Handler: func(ctx context.Context, inv *argot.Invocation) (string, error) {
//	        return "hello " + inv.Args.Single().OrElse("world"), nil
//	    },
//	})
//	res, err := engine.Execute(ctx, "!greet bob", nil)
package argot
