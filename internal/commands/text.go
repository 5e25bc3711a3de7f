package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/msto63/argot/foundation/argot"
	"github.com/msto63/argot/foundation/argot/args"
	"github.com/msto63/argot/foundation/argot/maybe"
	"github.com/msto63/argot/foundation/argot/strategy"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
)

const maxRepeat = 20

// Echo repeats its arguments
func Echo() *argot.Definition {
	return &argot.Definition{
		Name:    "echo",
		Aliases: []string{"say"},
		Summary: "Repeat the arguments",
		Usage:   "echo [--upper] [--repeat=N] [--sep=S] words...",
		Handler: func(_ context.Context, inv *argot.Invocation) (string, error) {
			repeat := 1
			if raw, ok := inv.Args.Option("repeat", "r").Get(); ok {
				n, err := strconv.Atoi(raw)
				if err != nil || n < 1 || n > maxRepeat {
					return "", argoterrors.InvalidInput(module, "echo", "repeat", raw)
				}
				repeat = n
			}

			line := strings.Join(values(inv), inv.Args.Option("sep", "s").OrElse(" "))
			if inv.Args.Flag("upper", "u") {
				line = strings.ToUpper(line)
			}

			lines := make([]string, repeat)
			for i := range lines {
				lines[i] = line
			}
			return strings.Join(lines, "\n"), nil
		},
	}
}

// Sum adds the numeric arguments. Without any it asks for them when the
// caller can prompt. Only "--" marks a flag, so negative numbers stay
// arguments.
func Sum() *argot.Definition {
	return &argot.Definition{
		Name:     "sum",
		Aliases:  []string{"add"},
		Summary:  "Add numbers",
		Usage:    "sum numbers...",
		Strategy: strategy.Long(),
		Handler: func(ctx context.Context, inv *argot.Invocation) (string, error) {
			numbers := args.FilterMap(inv.Args, parseNumber, args.Unlimited)
			ignored := values(inv)

			if len(numbers) == 0 {
				if inv.Prompt == nil {
					return "", argoterrors.InvalidInput(module, "sum", "numbers", "none given")
				}
				var err error
				numbers, err = argot.Ask(ctx, inv, "Which numbers should I add?", parseNumbers, 0)
				if err != nil {
					return "", err
				}
			}

			total := 0.0
			for _, n := range numbers {
				total += n
			}
			reply := formatNumber(total)
			if len(ignored) > 0 {
				reply += fmt.Sprintf(" (ignored: %s)", strings.Join(ignored, ", "))
			}
			return reply, nil
		},
	}
}

func parseNumber(s string) maybe.Option[float64] {
	f, err := strconv.ParseFloat(s, 64)
	return maybe.Of(f, err == nil)
}

func parseNumbers(answer string) ([]float64, error) {
	fields := strings.FieldsFunc(answer, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no numbers given")
	}
	numbers := make([]float64, len(fields))
	for i, field := range fields {
		n, ok := parseNumber(field).Get()
		if !ok {
			return nil, fmt.Errorf("%q is not a number", field)
		}
		numbers[i] = n
	}
	return numbers, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Pick returns one of its arguments: the first, or the last with --last.
// Values given with --from= are used when there are no arguments.
func Pick() *argot.Definition {
	return &argot.Definition{
		Name:    "pick",
		Summary: "Pick one argument",
		Usage:   "pick [--last] [--from=value]... values...",
		Handler: func(_ context.Context, inv *argot.Invocation) (string, error) {
			last := inv.Args.Flag("last", "l")

			next := inv.Args.Single
			if last {
				next = inv.Args.SingleFromEnd
			}
			if v, ok := next().Get(); ok {
				return v, nil
			}

			pool := inv.Args.Options("from", "f").OrElse(nil)
			pool = nonEmpty(pool)
			if len(pool) == 0 {
				return "", argoterrors.InvalidInput(module, "pick", "values", "nothing to pick from")
			}
			if last {
				return pool[len(pool)-1], nil
			}
			return pool[0], nil
		},
	}
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Inspect shows how the arguments were parsed
func Inspect() *argot.Definition {
	return &argot.Definition{
		Name:    "inspect",
		Summary: "Show the parse result as JSON",
		Usage:   "inspect [--compact] anything...",
		Handler: func(_ context.Context, inv *argot.Invocation) (string, error) {
			var data []byte
			var err error
			if inv.Args.Flag("compact") {
				data, err = json.Marshal(inv.Output)
			} else {
				data, err = json.MarshalIndent(inv.Output, "", "  ")
			}
			if err != nil {
				return "", argoterrors.OperationFailed(module, "inspect", err)
			}
			return string(data), nil
		},
	}
}
