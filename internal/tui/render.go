package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/argot/foundation/argot/output"
	"github.com/msto63/argot/foundation/argot/token"
)

// RenderTokens lists tokens with their value, raw text and trailing
// whitespace, one per line
func RenderTokens(tokens []token.Token) string {
	if len(tokens) == 0 {
		return RenderHelp("(no tokens)")
	}
	width := 0
	for _, t := range tokens {
		width = max(width, len(strconv.Quote(t.Value)))
	}

	lines := make([]string, len(tokens))
	for i, t := range tokens {
		lines[i] = fmt.Sprintf("%3d  %s  %s %s",
			i,
			ValueStyle.Render(fmt.Sprintf("%-*s", width, strconv.Quote(t.Value))),
			RawStyle.Render("raw="+strconv.Quote(t.Raw)),
			RawStyle.Render("trailing="+strconv.Quote(t.Trailing)))
	}
	return strings.Join(lines, "\n")
}

// RenderOutput shows a parse result as three sections inside a box
func RenderOutput(out output.Output) string {
	sections := []string{
		SectionStyle.Render("Ordered"),
		indent(orderedLines(out)),
		SectionStyle.Render("Flags"),
		indent(flagLines(out)),
		SectionStyle.Render("Options"),
		indent(optionLines(out)),
	}
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func orderedLines(out output.Output) []string {
	lines := make([]string, len(out.Ordered))
	for i, t := range out.Ordered {
		line := fmt.Sprintf("%d  %s", i, ValueStyle.Render(t.Value))
		if t.Raw != t.Value {
			line += "  " + RawStyle.Render(t.Raw)
		}
		lines[i] = line
	}
	return lines
}

func flagLines(out output.Output) []string {
	names := out.FlagNames()
	lines := make([]string, len(names))
	for i, name := range names {
		lines[i] = ValueStyle.Render(name)
	}
	return lines
}

func optionLines(out output.Output) []string {
	names := out.OptionNames()
	lines := make([]string, len(names))
	for i, name := range names {
		values := out.Options[name]
		quoted := make([]string, len(values))
		for j, v := range values {
			quoted[j] = strconv.Quote(v)
		}
		rendered := RawStyle.Render("(no value)")
		if len(quoted) > 0 {
			rendered = ValueStyle.Render(strings.Join(quoted, ", "))
		}
		lines[i] = name + " = " + rendered
	}
	return lines
}

func indent(lines []string) string {
	if len(lines) == 0 {
		return "  " + RenderHelp("none")
	}
	return "  " + strings.Join(lines, "\n  ")
}
