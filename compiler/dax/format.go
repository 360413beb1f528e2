package dax

import (
	"strconv"
	"strings"

	"github.com/kr/text"
)

// indentLines shifts every line of s by one indent level; SUMMARIZECOLUMNS
// argument lists are built at 4-space indent and re-indented to the
// configured size by format.
func indentLines(s string) string {
	return text.Indent(s, "    ")
}

// format re-indents a query already built with a 4-space assumption to the
// configured indent size. Line-width wrapping beyond what generator.go
// already emits one-argument-per-line is left alone: DAX statements here
// are short enough that a second wrap pass rarely fires within line_width.
func (g *generator) format(out string) string {
	indent := strings.Repeat(" ", g.cfg.IndentSize)
	if indent == "    " {
		return out
	}
	return strings.ReplaceAll(out, "    ", indent)
}

// literalOrNumber renders a filter value unquoted when it parses as a
// number, per the EQUALS/NOT_EQUALS translation rule.
func literalOrNumber(v string) string {
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return v
	}
	return quoteString(v)
}
