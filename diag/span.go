// Package diag holds the diagnostic taxonomy and source-position machinery
// shared by every compiler stage: the parser, the lowerer, the linter, and
// both emitters all report through a diag.Bag rather than returning errors
// directly.
package diag

import "sort"

// Span is a half-open byte-offset range into the original query text.
// A zero Span with End equal to Start denotes a synthetic node with no
// source location (e.g. one introduced by a linter pass).
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) IsValid() bool { return s.End >= s.Start && s.Start >= 0 }

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() {
		return s
	}
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{start, end}
}

// Position is a resolved line/column location, 1-based, computed lazily
// from a Span via a SourceMap.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) IsValid() bool { return p.Line > 0 }

// SourceMap resolves byte offsets in one source text into line/column
// positions, and extracts the source line containing a given offset for
// diagnostic context snippets.
type SourceMap struct {
	text  string
	lines []int // byte offset of the start of each line
}

// NewSourceMap indexes text's line boundaries once so Position and Line
// lookups afterwards are O(log n).
func NewSourceMap(text string) *SourceMap {
	lines := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, i+1)
		}
	}
	return &SourceMap{text: text, lines: lines}
}

func (m *SourceMap) Position(offset int) Position {
	if offset < 0 || m == nil {
		return Position{}
	}
	if offset > len(m.text) {
		offset = len(m.text)
	}
	i := sort.Search(len(m.lines), func(i int) bool { return m.lines[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	return Position{
		Offset: offset,
		Line:   i + 1,
		Column: offset - m.lines[i] + 1,
	}
}

// Line returns the source line (without its trailing newline) containing
// offset.
func (m *SourceMap) Line(offset int) string {
	if m == nil || offset < 0 {
		return ""
	}
	i := sort.Search(len(m.lines), func(i int) bool { return m.lines[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	start := m.lines[i]
	end := len(m.text)
	if i+1 < len(m.lines) {
		end = m.lines[i+1]
	}
	line := m.text[start:end]
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

// Snippet returns up to width characters of source text centered on span,
// used for the "context snippet" every diagnostic carries.
func (m *SourceMap) Snippet(span Span, width int) string {
	if m == nil {
		return ""
	}
	line := m.Line(span.Start)
	col := m.Position(span.Start).Column - 1
	if len(line) <= width {
		return line
	}
	half := width / 2
	start := col - half
	if start < 0 {
		start = 0
	}
	end := start + width
	if end > len(line) {
		end = len(line)
		start = end - width
		if start < 0 {
			start = 0
		}
	}
	return line[start:end]
}
