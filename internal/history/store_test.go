package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msto63/argot/foundation/argot/output"
	"github.com/msto63/argot/foundation/argot/token"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleOutput() output.Output {
	return output.Merge(
		output.OfOrdered(token.Token{Value: "hello there", Raw: `"hello there"`, Trailing: " "}),
		output.OfFlag("upper"),
		output.OfOption("sep", "-", "+"),
		output.OfOption("empty"),
	)
}

func TestRecordAndGet(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	entry := &Entry{
		Source:    SourceREPL,
		SessionID: "s1",
		Input:     `!echo --upper "hello there"`,
		Command:   "echo",
		Output:    sampleOutput(),
		Reply:     "HELLO THERE",
	}
	require.NoError(t, store.Record(ctx, entry))
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())

	got, err := store.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Input, got.Input)
	assert.Equal(t, SourceREPL, got.Source)
	assert.Equal(t, "HELLO THERE", got.Reply)
	assert.True(t, output.Equal(entry.Output, got.Output))
	assert.Equal(t, []string{}, got.Output.Options["empty"])
	assert.WithinDuration(t, entry.Timestamp, got.Timestamp, time.Second)

	_, err = store.Get(ctx, "missing")
	assert.True(t, argoterrors.HasCode(err, argoterrors.CodeNotFound))

	assert.True(t, argoterrors.HasCode(store.Record(ctx, nil), argoterrors.CodeInvalidInput))
}

func TestQuery(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	base := time.Date(2025, 11, 1, 12, 0, 0, 0, time.UTC)

	entries := []*Entry{
		{Timestamp: base, Source: SourceCLI, Input: "!sum 1 2", Command: "sum", Reply: "3"},
		{Timestamp: base.Add(time.Minute), Source: SourceREPL, SessionID: "a", Input: "!echo x", Command: "echo", Reply: "x"},
		{Timestamp: base.Add(2 * time.Minute), Source: SourceWebSocket, SessionID: "b", Input: "!nope", ErrorCode: "UNKNOWN_COMMAND"},
		{Timestamp: base.Add(3 * time.Minute), Source: SourceREPL, SessionID: "a", Input: "!echo y", Command: "echo", Reply: "y"},
	}
	for _, e := range entries {
		require.NoError(t, store.Record(ctx, e))
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all newest first", Filter{}, []string{"!echo y", "!nope", "!echo x", "!sum 1 2"}},
		{"by command", Filter{Command: "echo"}, []string{"!echo y", "!echo x"}},
		{"by session", Filter{SessionID: "b"}, []string{"!nope"}},
		{"by source", Filter{Source: SourceCLI}, []string{"!sum 1 2"}},
		{"since", Filter{Since: base.Add(90 * time.Second)}, []string{"!echo y", "!nope"}},
		{"limit", Filter{Limit: 1}, []string{"!echo y"}},
		{"offset", Filter{Offset: 3}, []string{"!sum 1 2"}},
		{"limit and offset", Filter{Limit: 2, Offset: 1}, []string{"!nope", "!echo x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Query(ctx, tt.filter)
			require.NoError(t, err)
			inputs := make([]string, len(got))
			for i, e := range got {
				inputs[i] = e.Input
			}
			assert.Equal(t, tt.want, inputs)
		})
	}

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestPrune(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, &Entry{Timestamp: time.Now().Add(-48 * time.Hour), Source: SourceCLI, Input: "old"}))
	require.NoError(t, store.Record(ctx, &Entry{Source: SourceCLI, Input: "new"}))

	n, err := store.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	left, err := store.Query(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "new", left[0].Input)
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(SQLiteConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, store.Record(ctx, &Entry{Source: SourceCLI, Input: "!echo kept", Output: sampleOutput()}))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(SQLiteConfig{Path: path})
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Query(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Output.HasFlag("upper"))
}
