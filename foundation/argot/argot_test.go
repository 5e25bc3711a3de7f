// File: argot_test.go
// Title: Command Engine Tests
// Description: Tests for command resolution, parsing, dispatch, error codes
//              and interactive prompting
// Author: msto63
// Version: v0.1.0
// Created: 2025-11-09
// Modified: 2025-11-10
//
// Change History:
// - 2025-11-09 v0.1.0: Initial implementation
// - 2025-11-10 v0.1.0: Ask tests

package argot

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/argot/foundation/argot/args"
	"github.com/msto63/argot/foundation/argot/maybe"
	"github.com/msto63/argot/foundation/argot/strategy"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
	argotlog "github.com/msto63/argot/foundation/core/log"
)

func newEngine(t *testing.T, prefix string) *Engine {
	t.Helper()
	e := New(Options{Logger: argotlog.Discard(), Prefix: prefix, EnableAbbreviations: true})

	require.NoError(t, e.Register(&Definition{
		Name:    "echo",
		Aliases: []string{"say"},
		Summary: "Repeat the arguments",
		Handler: func(_ context.Context, inv *Invocation) (string, error) {
			words := inv.Args.Many(args.Unlimited)
			parts := make([]string, len(words))
			for i, w := range words {
				parts[i] = w.Value
			}
			out := strings.Join(parts, " ")
			if inv.Args.Flag("upper", "u") {
				out = strings.ToUpper(out)
			}
			return out, nil
		},
	}))
	require.NoError(t, e.Register(&Definition{
		Name:     "tag",
		Strategy: strategy.Exact(nil, strategy.Pairing{strategy.Pair("name", "name:")}),
		Handler: func(_ context.Context, inv *Invocation) (string, error) {
			return inv.Args.Option("name").OrElse("?"), nil
		},
	}))
	require.NoError(t, e.Register(&Definition{
		Name: "fail",
		Handler: func(context.Context, *Invocation) (string, error) {
			return "", errors.New("broken")
		},
	}))
	return e
}

func TestParse(t *testing.T) {
	e := newEngine(t, "!")

	inv, err := e.Parse(`!echo --upper   "hello there"  world`)
	require.NoError(t, err)
	assert.Equal(t, "echo", inv.Definition.Name)
	assert.Equal(t, "echo", inv.Command.Value)
	assert.True(t, inv.Output.HasFlag("upper"))
	require.Len(t, inv.Output.Ordered, 2)
	assert.Equal(t, "hello there", inv.Output.Ordered[0].Value)
	assert.Equal(t, `--upper   "hello there"  world`, inv.Rest())
	assert.NotEmpty(t, inv.ID)

	inv, err = e.Parse("! say hi")
	require.NoError(t, err)
	assert.Equal(t, "echo", inv.Definition.Name)
	assert.Equal(t, "say", inv.Command.Value)

	inv, err = e.Parse("!ta name: x")
	require.NoError(t, err)
	assert.Equal(t, "tag", inv.Definition.Name)
	assert.Equal(t, []string{"x"}, inv.Output.Options["name"])
}

func TestParseErrors(t *testing.T) {
	e := newEngine(t, "!")

	tests := []struct {
		name  string
		input string
		code  argoterrors.Code
	}{
		{"no prefix", "echo hi", argoterrors.CodeNotCommand},
		{"empty", "", argoterrors.CodeNotCommand},
		{"prefix only", "!", argoterrors.CodeNotCommand},
		{"unknown", "!ehco hi", argoterrors.CodeUnknownCommand},
		{"too long", "!echo " + strings.Repeat("a", DefaultMaxInputLength), argoterrors.CodeInputTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Parse(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.code, argoterrors.CodeOf(err))
		})
	}

	_, err := e.Parse("!ehco")
	var aerr *argoterrors.Error
	require.True(t, errors.As(err, &aerr))
	suggestions, ok := aerr.Detail("suggestions")
	require.True(t, ok)
	assert.Contains(t, suggestions, "echo")
	assert.Contains(t, err.Error(), "did you mean echo")
}

func TestNoPrefix(t *testing.T) {
	e := newEngine(t, "")
	inv, err := e.Parse("  echo a b")
	require.NoError(t, err)
	assert.Len(t, inv.Output.Ordered, 2)
}

func TestExecute(t *testing.T) {
	e := newEngine(t, "!")
	ctx := context.Background()

	res, err := e.Execute(ctx, "!echo -u hello world", nil)
	require.NoError(t, err)
	assert.Equal(t, "HELLO WORLD", res.Message)
	assert.Equal(t, "echo", res.Command)
	assert.NotEmpty(t, res.InvocationID)

	_, err = e.Execute(ctx, "!fail", nil)
	require.Error(t, err)
	assert.Equal(t, argoterrors.CodeInternal, argoterrors.CodeOf(err))
	assert.Contains(t, err.Error(), "broken")

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = e.Execute(canceled, "!echo x", nil)
	assert.Equal(t, argoterrors.CodeCanceled, argoterrors.CodeOf(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegisterRejectsMissingHandler(t *testing.T) {
	e := newEngine(t, "!")
	err := e.Register(&Definition{Name: "noop"})
	assert.True(t, argoterrors.HasCode(err, argoterrors.CodeInvalidInput))
	assert.True(t, argoterrors.HasCode(e.Register(nil), argoterrors.CodeInvalidInput))
}

// scripted answers prompts from a fixed list
type scripted struct {
	answers   []string
	questions []string
}

func (s *scripted) Prompt(_ context.Context, question string) (string, error) {
	s.questions = append(s.questions, question)
	if len(s.answers) == 0 {
		return "", errors.New("no more answers")
	}
	a := s.answers[0]
	s.answers = s.answers[1:]
	return a, nil
}

func TestAsk(t *testing.T) {
	e := newEngine(t, "!")
	ctx := context.Background()

	tests := []struct {
		name      string
		answers   []string
		attempts  int
		want      int
		code      argoterrors.Code
		questions int
	}{
		{name: "first answer", answers: []string{"4"}, attempts: 3, want: 4, questions: 1},
		{name: "retries", answers: []string{"hello", "world", "100"}, attempts: 3, want: 100, questions: 3},
		{name: "exhausted", answers: []string{"a", "b", "c", "1"}, attempts: 3, code: argoterrors.CodeRetryExhausted, questions: 3},
		{name: "default budget", answers: []string{"a", "b", "c", "1"}, code: argoterrors.CodeRetryExhausted, questions: DefaultMaxAttempts},
		{name: "prompter fails", answers: []string{"x"}, attempts: 5, code: argoterrors.CodeUnknown, questions: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := e.Parse("!echo")
			require.NoError(t, err)
			p := &scripted{answers: tt.answers}
			inv.Prompt = p

			got, err := Ask(ctx, inv, "How many?", strconv.Atoi, tt.attempts)
			assert.Len(t, p.questions, tt.questions)
			if tt.code != "" {
				require.Error(t, err)
				assert.Equal(t, tt.code, argoterrors.CodeOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAskQuestionCarriesLastError(t *testing.T) {
	e := newEngine(t, "!")
	inv, err := e.Parse("!echo")
	require.NoError(t, err)
	p := &scripted{answers: []string{"x", "2"}}
	inv.Prompt = p

	_, err = Ask(context.Background(), inv, "Number?", strconv.Atoi, 2)
	require.NoError(t, err)
	require.Len(t, p.questions, 2)
	assert.Equal(t, "Number?", p.questions[0])
	assert.True(t, strings.HasSuffix(p.questions[1], ". Number?"))
	assert.Contains(t, p.questions[1], "invalid syntax")
}

func TestAskWithoutPrompter(t *testing.T) {
	e := newEngine(t, "!")
	inv, err := e.Parse("!echo")
	require.NoError(t, err)
	_, err = Ask(context.Background(), inv, "?", strconv.Atoi, 1)
	assert.Equal(t, argoterrors.CodeInvalidInput, argoterrors.CodeOf(err))
}

func TestAskInsideHandler(t *testing.T) {
	e := newEngine(t, "!")
	require.NoError(t, e.Register(&Definition{
		Name: "double",
		Handler: func(ctx context.Context, inv *Invocation) (string, error) {
			n, ok := args.SingleMap(inv.Args, parseInt, false).Get()
			if !ok {
				var err error
				n, err = Ask(ctx, inv, "Which number?", strconv.Atoi, 0)
				if err != nil {
					return "", err
				}
			}
			return strconv.Itoa(2 * n), nil
		},
	}))

	res, err := e.Execute(context.Background(), "!double 21", nil)
	require.NoError(t, err)
	assert.Equal(t, "42", res.Message)

	p := &scripted{answers: []string{"five", "5"}}
	res, err = e.Execute(context.Background(), "!double", p)
	require.NoError(t, err)
	assert.Equal(t, "10", res.Message)
}

func parseInt(s string) maybe.Option[int] {
	n, err := strconv.Atoi(s)
	return maybe.Of(n, err == nil)
}
