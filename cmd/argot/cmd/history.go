package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/argot/internal/history"
	"github.com/msto63/argot/internal/tui"
)

var (
	historyLimit   int
	historyCommand string
	historySession string
	historySource  string
	historyFormat  string
	historyMaxAge  time.Duration
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded command lines",
	Long: `Inspect the command lines recorded by exec, repl and serve when history
is enabled in the config file.

Examples:
  argot history list --limit 20
  argot history list --command sum --format json
  argot history show 1b4e28ba-2fa1-11d2-883f-0016d3cca427
  argot history prune --older-than 720h`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent entries, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one entry with its parse",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old entries",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyPruneCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 50, "maximum number of entries")
	historyListCmd.Flags().StringVar(&historyCommand, "command", "", "only entries for this command")
	historyListCmd.Flags().StringVar(&historySession, "session", "", "only entries of this session")
	historyListCmd.Flags().StringVar(&historySource, "source", "", "only entries from cli, repl or websocket")
	historyListCmd.Flags().StringVarP(&historyFormat, "format", "f", "text", "output format: text, json, yaml")
	historyShowCmd.Flags().StringVarP(&historyFormat, "format", "f", "text", "output format: text, json, yaml")
	historyPruneCmd.Flags().DurationVar(&historyMaxAge, "older-than", 30*24*time.Hour, "delete entries older than this")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	if err := checkFormat(historyFormat); err != nil {
		return err
	}
	store, err := openHistory(true)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Query(cmd.Context(), history.Filter{
		Command:   historyCommand,
		SessionID: historySession,
		Source:    history.Source(historySource),
		Limit:     historyLimit,
	})
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []*history.Entry{}
	}

	w := cmd.OutOrStdout()
	switch historyFormat {
	case "json":
		return writeJSON(w, entries)
	case "yaml":
		return writeYAML(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history entries")
		return nil
	}
	return writeEntryTable(w, entries)
}

func writeEntryTable(w io.Writer, entries []*history.Entry) error {
	fmt.Fprintf(w, "%-19s  %-9s  %-10s  %-16s  %s\n", "TIME", "SOURCE", "COMMAND", "RESULT", "INPUT")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, e := range entries {
		result := "ok"
		if e.ErrorCode != "" {
			result = e.ErrorCode
		}
		fmt.Fprintf(w, "%-19s  %-9s  %-10s  %-16s  %s\n",
			e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Source, e.Command, result, e.Input)
	}
	fmt.Fprintln(w)
	_, err := fmt.Fprintf(w, "Total: %d entries\n", len(entries))
	return err
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if err := checkFormat(historyFormat); err != nil {
		return err
	}
	store, err := openHistory(true)
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch historyFormat {
	case "json":
		return writeJSON(w, entry)
	case "yaml":
		return writeYAML(w, newEntryDoc(entry))
	}

	fmt.Fprintln(w, tui.RenderTitle("Entry "+entry.ID))
	fmt.Fprintf(w, "Time:    %s\n", entry.Timestamp.Local().Format(time.RFC3339))
	fmt.Fprintf(w, "Source:  %s\n", entry.Source)
	if entry.SessionID != "" {
		fmt.Fprintf(w, "Session: %s\n", entry.SessionID)
	}
	fmt.Fprintf(w, "Input:   %s\n", entry.Input)
	if entry.ErrorCode != "" {
		fmt.Fprintln(w, tui.RenderError(fmt.Sprintf("%s (%s)", entry.Reply, entry.ErrorCode)))
		return nil
	}
	fmt.Fprintln(w, tui.RenderReply(entry.Reply))
	fmt.Fprintln(w, tui.RenderOutput(entry.Output))
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, err := openHistory(true)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Prune(cmd.Context(), historyMaxAge)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d entries older than %s\n", n, historyMaxAge)
	return nil
}

// entryDoc is the YAML form of a history entry including its parse
type entryDoc struct {
	ID        string    `yaml:"id"`
	Timestamp time.Time `yaml:"timestamp"`
	Source    string    `yaml:"source"`
	SessionID string    `yaml:"session_id,omitempty"`
	Input     string    `yaml:"input"`
	Command   string    `yaml:"command,omitempty"`
	Reply     string    `yaml:"reply,omitempty"`
	ErrorCode string    `yaml:"error_code,omitempty"`
	Output    outputDoc `yaml:"output"`
}

func newEntryDoc(e *history.Entry) entryDoc {
	return entryDoc{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		Source:    string(e.Source),
		SessionID: e.SessionID,
		Input:     e.Input,
		Command:   e.Command,
		Reply:     e.Reply,
		ErrorCode: e.ErrorCode,
		Output:    newOutputDoc(e.Output),
	}
}
