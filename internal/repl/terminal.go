package repl

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// Terminal provides line editing and input history on a real terminal
type Terminal struct {
	line        *liner.State
	historyFile string
}

// NewTerminal opens the terminal. historyFile may be empty to keep the
// history in memory only.
func NewTerminal(historyFile string) *Terminal {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	t := &Terminal{
		line:        line,
		historyFile: historyFile,
	}
	t.loadHistory()
	return t
}

// DefaultHistoryFile is the line history under the user's config directory
func DefaultHistoryFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "argot", "repl_history")
}

func (t *Terminal) loadHistory() {
	if t.historyFile == "" {
		return
	}
	if f, err := os.Open(t.historyFile); err == nil {
		t.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads one line. Non-empty lines are added to the history.
func (t *Terminal) Prompt(prompt string) (string, error) {
	input, err := t.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		t.line.AppendHistory(input)
	}
	return input, nil
}

func (t *Terminal) saveHistory() {
	if t.historyFile == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(t.historyFile), 0o700); err != nil {
		return
	}
	f, err := os.OpenFile(t.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	t.line.WriteHistory(f)
}

// Close saves the history and restores the terminal
func (t *Terminal) Close() error {
	t.saveHistory()
	return t.line.Close()
}
