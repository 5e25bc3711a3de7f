package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/msto63/argot/foundation/argot/output"
	argoterrors "github.com/msto63/argot/foundation/core/errors"
)

const module = "history"

// Source names where a command line came from
type Source string

const (
	SourceCLI       Source = "cli"
	SourceREPL      Source = "repl"
	SourceWebSocket Source = "websocket"
)

// Entry is one executed or rejected command line
type Entry struct {
	ID        string        `json:"id" yaml:"id"`
	Timestamp time.Time     `json:"timestamp" yaml:"timestamp"`
	Source    Source        `json:"source" yaml:"source"`
	SessionID string        `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Input     string        `json:"input" yaml:"input"`
	Command   string        `json:"command,omitempty" yaml:"command,omitempty"`
	Output    output.Output `json:"output" yaml:"-"`
	Reply     string        `json:"reply,omitempty" yaml:"reply,omitempty"`
	ErrorCode string        `json:"error_code,omitempty" yaml:"error_code,omitempty"`
}

// Filter selects entries in Query
type Filter struct {
	Command   string
	SessionID string
	Source    Source
	Since     time.Time
	Limit     int
	Offset    int
}

// Store persists command history
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Count(ctx context.Context) (int, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	// Path of the database file; ":memory:" keeps the history in memory
	Path string
}

// DefaultConfig returns default configuration
func DefaultConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/history.db",
	}
}

// SQLiteStore implements Store using SQLite. Parse outputs are stored as
// canonical CBOR.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens or creates the history database
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	inMemory := cfg.Path == "" || cfg.Path == ":memory:"
	dsn := ":memory:"
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, storageError("open", "failed to create directory", err)
		}
		dsn = cfg.Path + "?_journal_mode=WAL&_synchronous=NORMAL"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, storageError("open", "failed to open database", err)
	}
	if inMemory {
		// every connection to :memory: opens its own database
		db.SetMaxOpenConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, storageError("open", "failed to initialize schema", err)
	}
	return store, nil
}

func storageError(operation, message string, cause error) error {
	return argoterrors.NewErrorBuilder(module).
		Operation(operation).
		Code(argoterrors.CodeStorage).
		Message(message).
		Cause(cause).
		Build()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		source TEXT NOT NULL,
		session_id TEXT,
		input TEXT NOT NULL,
		command TEXT,
		output BLOB,
		reply TEXT,
		error_code TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_history_command ON history(command);
	CREATE INDEX IF NOT EXISTS idx_history_session ON history(session_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores entry, filling in a missing ID and timestamp
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return argoterrors.InvalidInput(module, "record", "entry", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = entry.Timestamp.UTC()

	payload, err := output.EncodeCBOR(entry.Output)
	if err != nil {
		return storageError("record", "failed to encode output", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO history (id, timestamp, source, session_id, input, command, output, reply, error_code)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp, string(entry.Source), entry.SessionID, entry.Input,
		entry.Command, payload, entry.Reply, entry.ErrorCode)
	if err != nil {
		return storageError("record", "failed to insert history entry", err)
	}
	return nil
}

const selectColumns = `SELECT id, timestamp, source, session_id, input, command, output, reply, error_code FROM history`

// Get returns the entry with the given ID
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE id = ?`, id)
	if err != nil {
		return nil, storageError("get", "failed to query history", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, argoterrors.NotFound(module, "get", "history entry", id)
	}
	return entries[0], nil
}

// Query returns entries matching filter, newest first
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := selectColumns + ` WHERE 1=1`
	var args []interface{}

	if filter.Command != "" {
		query += " AND command = ?"
		args = append(args, filter.Command)
	}
	if filter.SessionID != "" {
		query += " AND session_id = ?"
		args = append(args, filter.SessionID)
	}
	if filter.Source != "" {
		query += " AND source = ?"
		args = append(args, string(filter.Source))
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	} else if filter.Offset > 0 {
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("query", "failed to query history", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]*Entry, error) {
	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var source string
		var sessionID, command, reply, errorCode sql.NullString
		var payload []byte

		if err := rows.Scan(&entry.ID, &entry.Timestamp, &source, &sessionID, &entry.Input,
			&command, &payload, &reply, &errorCode); err != nil {
			return nil, storageError("scan", "failed to scan history entry", err)
		}

		entry.Source = Source(source)
		entry.SessionID = sessionID.String
		entry.Command = command.String
		entry.Reply = reply.String
		entry.ErrorCode = errorCode.String

		if len(payload) > 0 {
			out, err := output.DecodeCBOR(payload)
			if err != nil {
				return nil, storageError("scan", "failed to decode output", err)
			}
			entry.Output = out
		} else {
			entry.Output = output.Empty()
		}

		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("scan", "failed to read history", err)
	}
	return entries, nil
}

// Count returns the number of stored entries
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, storageError("count", "failed to count history", err)
	}
	return n, nil
}

// Prune deletes entries older than olderThan and returns how many
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)
	result, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, storageError("prune", "failed to prune history", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
