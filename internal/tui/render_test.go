package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/msto63/argot/foundation/argot/lexer"
	"github.com/msto63/argot/foundation/argot/parser"
	"github.com/msto63/argot/foundation/argot/strategy"
)

func TestRenderTokens(t *testing.T) {
	got := RenderTokens(lexer.New(`a "b c"  d`).Lex())

	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], `"b c"`)
	assert.Contains(t, lines[1], `raw="\"b c\""`)
	assert.Contains(t, lines[1], `trailing="  "`)
	assert.Contains(t, RenderTokens(nil), "no tokens")
}

func TestRenderOutput(t *testing.T) {
	tokens := lexer.New(`foo "bar baz" --verbose --name= ada --empty=`).Lex()
	got := RenderOutput(parser.Parse(tokens, strategy.LongShort()))

	for _, want := range []string{"Ordered", "Flags", "Options", "foo", "bar baz", "verbose", `name = "ada"`, "empty = (no value)"} {
		assert.Contains(t, got, want)
	}
}

func TestRenderOutputEmpty(t *testing.T) {
	got := RenderOutput(parser.Parse(nil, strategy.None()))
	assert.Equal(t, 3, strings.Count(got, "none"))
}

func TestRenderError(t *testing.T) {
	assert.Contains(t, RenderError("boom"), "Error: boom")
}
