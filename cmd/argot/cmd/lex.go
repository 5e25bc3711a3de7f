package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/argot/foundation/argot/lexer"
	"github.com/msto63/argot/foundation/argot/token"
)

var (
	lexFormat  string
	lexCommand bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [input]",
	Short: "Split a string into tokens",
	Long: `Split a string into tokens using the configured quote pairs. Each
token keeps its raw text and the whitespace after it, so the input can be
rebuilt exactly. Without arguments the input is read from stdin.

Examples:
  argot lex 'hello "big world"'
  argot lex --command '!echo a b'`,
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexFormat, "format", "f", "text", "output format: text, json, yaml")
	lexCmd.Flags().BoolVar(&lexCommand, "command", false, "split off the command name using the configured prefix")
}

func runLex(cmd *cobra.Command, args []string) error {
	if err := checkFormat(lexFormat); err != nil {
		return err
	}
	input, err := readInput(args)
	if err != nil {
		return err
	}

	lx := lexer.New(input).SetQuotes(appSettings.QuotePairs()...)
	if !lexCommand {
		return writeTokens(cmd.OutOrStdout(), lexFormat, lx.Lex())
	}

	match := func(string) (int, bool) { return 0, true }
	if prefix := appSettings.Lexer.Prefix; prefix != "" {
		match = token.Prefix(prefix)
	}
	command, rest, ok := lx.LexCommand(match)
	if !ok {
		return writeTokens(cmd.OutOrStdout(), lexFormat, nil)
	}
	return writeTokens(cmd.OutOrStdout(), lexFormat, append([]token.Token{command}, rest()...))
}
