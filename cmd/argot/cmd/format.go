package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/msto63/argot/foundation/argot/output"
	"github.com/msto63/argot/foundation/argot/token"
	"github.com/msto63/argot/internal/tui"
)

// outputDoc is the YAML form of a parse result
type outputDoc struct {
	Ordered []token.Token       `yaml:"ordered"`
	Flags   []string            `yaml:"flags"`
	Options map[string][]string `yaml:"options"`
}

func newOutputDoc(out output.Output) outputDoc {
	doc := outputDoc{
		Ordered: out.Ordered,
		Flags:   out.FlagNames(),
		Options: make(map[string][]string, len(out.Options)),
	}
	for name, values := range out.Options {
		doc.Options[name] = append([]string{}, values...)
	}
	return doc
}

func checkFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unknown format %q (text, json, yaml)", format)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeOutput(w io.Writer, format string, out output.Output) error {
	switch format {
	case "json":
		return writeJSON(w, out)
	case "yaml":
		return writeYAML(w, newOutputDoc(out))
	default:
		_, err := fmt.Fprintln(w, tui.RenderOutput(out))
		return err
	}
}

func writeTokens(w io.Writer, format string, tokens []token.Token) error {
	if tokens == nil {
		tokens = []token.Token{}
	}
	switch format {
	case "json":
		return writeJSON(w, tokens)
	case "yaml":
		return writeYAML(w, tokens)
	default:
		_, err := fmt.Fprintln(w, tui.RenderTokens(tokens))
		return err
	}
}

// readInput returns the arguments joined by a space, or stdin without its
// final newline when there are none
func readInput(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
