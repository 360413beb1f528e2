package parser

import (
	"time"

	"github.com/mdxtodax/unmdx/compiler/ast"
	"github.com/mdxtodax/unmdx/diag"
)

// Options mirrors the subset of config.ParserConfig this package needs,
// kept local so parser has no dependency on the config package (config
// depends on parser, not the reverse).
type Options struct {
	MaxParseErrors int           // 0 means unlimited
	FailFast       bool          // parser.strict_mode-adjacent: abort pipeline on first error
	MaxInputChars  int           // 0 means unlimited
	Timeout        time.Duration // 0 means unlimited
}

// Result is everything Parse produces from one MDX source text.
type Result struct {
	Query *ast.Query
	Hints map[string]string
	Bag   *diag.Bag
}

// Parse tokenizes and parses src, returning a possibly-partial AST plus
// every diagnostic collected along the way. Parse never panics on
// malformed input; it always returns a Result, even for a Query with
// nested parse_error diagnostics.
func Parse(src string, opts Options) *Result {
	bag := diag.NewBag(opts.FailFast, opts.MaxParseErrors)
	if opts.MaxInputChars > 0 && len(src) > opts.MaxInputChars {
		bag.Add(diag.Diagnostic{
			Severity:   diag.Error,
			Kind:       diag.ResourceError,
			Message:    "input exceeds parser.max_input_chars",
			Suggestion: diag.Suggest("resource_error:input_too_large"),
		})
		return &Result{Bag: bag}
	}
	var deadline time.Time
	if opts.Timeout > 0 {
		deadline = time.Now().Add(opts.Timeout)
	}
	lex := NewLexer(src, bag)
	toks := lex.Tokenize()
	p := newParser(src, toks, bag, deadline)
	q := p.parseTopLevel()
	return &Result{Query: q, Hints: lex.Hints(), Bag: bag}
}
