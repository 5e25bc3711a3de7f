package repl

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/argot/foundation/argot"
	argotlog "github.com/msto63/argot/foundation/core/log"
	"github.com/msto63/argot/internal/commands"
	"github.com/msto63/argot/internal/history"
)

// script feeds lines to the REPL and records the prompts it saw
type script struct {
	lines   []string
	prompts []string
}

func (s *script) Prompt(prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func newREPL(t *testing.T, lines ...string) (*REPL, *script, *bytes.Buffer) {
	t.Helper()
	e := argot.New(argot.Options{Logger: argotlog.Discard(), Prefix: "!"})
	require.NoError(t, commands.Register(e))

	in := &script{lines: lines}
	var out bytes.Buffer
	r := New(Options{
		Engine: e,
		Input:  in,
		Output: &out,
		Logger: argotlog.Discard(),
	})
	return r, in, &out
}

func TestRunExecutesLines(t *testing.T) {
	r, in, out := newREPL(t, "!echo hello", "", "  !sum 1 2  ", "exit", "!echo never")

	require.NoError(t, r.Run(context.Background()))

	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "3")
	assert.NotContains(t, out.String(), "never")
	assert.Equal(t, []string{"!echo never"}, in.lines)
}

func TestRunStopsAtEndOfInput(t *testing.T) {
	r, _, out := newREPL(t, "!echo last")
	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), "last")
}

func TestRunReportsErrors(t *testing.T) {
	r, _, out := newREPL(t, "hello", "!ecoh hi")
	require.NoError(t, r.Run(context.Background()))

	assert.Contains(t, out.String(), "Not a command")
	assert.Contains(t, out.String(), "unknown command: ecoh")
	assert.Contains(t, out.String(), "did you mean echo")
}

func TestCommandPromptsThroughREPL(t *testing.T) {
	r, in, out := newREPL(t, "!sum", "two", "2 5")
	require.NoError(t, r.Run(context.Background()))

	assert.Contains(t, out.String(), "7")
	require.Len(t, in.prompts, 4)
	assert.Contains(t, in.prompts[1], "Which numbers should I add?")
	assert.Contains(t, in.prompts[2], `"two" is not a number`)
}

func TestPromptAbortedByEndOfInput(t *testing.T) {
	r, _, out := newREPL(t, "!sum")
	require.NoError(t, r.Run(context.Background()))
	assert.Contains(t, out.String(), "prompt aborted")
}

func TestRunCanceled(t *testing.T) {
	r, _, _ := newREPL(t, "!echo a")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, r.Run(ctx), context.Canceled)
}

func TestHistoryRecording(t *testing.T) {
	store, err := history.NewSQLiteStore(history.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	e := argot.New(argot.Options{Logger: argotlog.Discard(), Prefix: "!"})
	require.NoError(t, commands.Register(e))
	r := New(Options{
		Engine:  e,
		Input:   &script{lines: []string{"!echo --upper hi", "!nope"}},
		History: store,
		Logger:  argotlog.Discard(),
	})
	require.NoError(t, r.Run(context.Background()))

	entries, err := store.Query(context.Background(), history.Filter{SessionID: r.SessionID()})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// newest first
	assert.Equal(t, "!nope", entries[0].Input)
	assert.Equal(t, "UNKNOWN_COMMAND", entries[0].ErrorCode)
	assert.Equal(t, "echo", entries[1].Command)
	assert.Equal(t, "HI", entries[1].Reply)
	assert.True(t, entries[1].Output.HasFlag("upper"))
	assert.Equal(t, history.SourceREPL, entries[1].Source)
}
