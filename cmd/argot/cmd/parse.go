package cmd

import (
	"github.com/spf13/cobra"

	"github.com/msto63/argot/foundation/argot/lexer"
	"github.com/msto63/argot/foundation/argot/parser"
)

var (
	parseFormat   string
	parseStrategy string
)

var parseCmd = &cobra.Command{
	Use:   "parse [input]",
	Short: "Classify the tokens of a string into arguments, flags and options",
	Long: `Lex a string and parse it with the configured strategy (or --strategy).
Without arguments the input is read from stdin.

Strategies:
  none       - every token is an argument
  long       - --flag, --option=value
  longshort  - --flag, -f, --option=value, -o=value
  prefixed   - prefixes and separators from the config file

Examples:
  argot parse 'foo bar --baz= quux'
  argot parse --format json -- '-v --name=ada tail'`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseFormat, "format", "f", "text", "output format: text, json, yaml")
	parseCmd.Flags().StringVarP(&parseStrategy, "strategy", "s", "", "strategy kind (default from config)")
}

func runParse(cmd *cobra.Command, args []string) error {
	if err := checkFormat(parseFormat); err != nil {
		return err
	}
	input, err := readInput(args)
	if err != nil {
		return err
	}

	s := *appSettings
	if parseStrategy != "" {
		s.Strategy.Kind = parseStrategy
		if err := s.Validate(); err != nil {
			return err
		}
	}

	tokens := lexer.New(input).SetQuotes(s.QuotePairs()...).Lex()
	out := parser.Parse(tokens, s.BuildStrategy())
	return writeOutput(cmd.OutOrStdout(), parseFormat, out)
}
