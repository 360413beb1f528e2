package parser_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdxtodax/unmdx/compiler/parser"
	"github.com/mdxtodax/unmdx/diag"
)

func TestParse_WellFormedQueryHasNoDiagnostics(t *testing.T) {
	res := parser.Parse(`SELECT {[Measures].[Sales Amount]} ON 0 FROM [Adventure Works]`, parser.Options{})
	require.NotNil(t, res.Query)
	assert.Empty(t, res.Bag.Diagnostics())
}

func TestParse_MissingFromReportsParseError(t *testing.T) {
	res := parser.Parse(`SELECT {[Measures].[Sales Amount]} ON 0`, parser.Options{})
	require.NotEmpty(t, res.Bag.Diagnostics())
	found := false
	for _, d := range res.Bag.Diagnostics() {
		if d.Kind == diag.ParseError && d.Suggestion == diag.Suggest("parse_error:missing_from") {
			found = true
		}
	}
	assert.True(t, found, "%v", res.Bag.Diagnostics())
}

func TestParse_MalformedInputNeverInfiniteLoops(t *testing.T) {
	// Deliberately garbled: braces and keywords in an order the grammar
	// doesn't expect, forcing the parser's recovery path repeatedly.
	src := `SELECT }}} ON 0, {{{ ON WHERE FROM FROM [[[`
	done := make(chan struct{})
	go func() {
		parser.Parse(src, parser.Options{})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("parser did not terminate on malformed input")
	}
}

func TestParse_RecoversAndCollectsMultipleDiagnostics(t *testing.T) {
	// Two bad tokens follow well-formed axes: "BOGUS" after the first axis
	// and "XYZ" after the second, neither a comma nor FROM. Each should
	// force a recovery skip, and the second skip runs clean to EOF without
	// finding FROM, so a missing_from error also fires.
	src := `SELECT {[Measures].[Sales Amount]} ON 0 BOGUS, {[Product].[Category].Members} ON 1 XYZ [Adventure Works]`
	res := parser.Parse(src, parser.Options{})

	diags := res.Bag.Diagnostics()
	require.Greater(t, len(diags), 1, "%v", diags)

	var sawRecovery, sawMissingFrom bool
	for _, d := range diags {
		if d.Suggestion == diag.Suggest("parse_error:recovery") {
			sawRecovery = true
			assert.NotEqual(t, d.Span.Start, d.Span.End, "recovery span should cover at least one skipped token")
		}
		if d.Suggestion == diag.Suggest("parse_error:missing_from") {
			sawMissingFrom = true
		}
	}
	assert.True(t, sawRecovery, "expected a recovery diagnostic, got %v", diags)
	assert.True(t, sawMissingFrom, "expected recovery to run out of input before finding FROM, got %v", diags)
}

func TestParse_InputTooLargeStopsBeforeLexing(t *testing.T) {
	res := parser.Parse("SELECT ...", parser.Options{MaxInputChars: 5})
	assert.Nil(t, res.Query)
	require.Len(t, res.Bag.Diagnostics(), 1)
	assert.Equal(t, diag.ResourceError, res.Bag.Diagnostics()[0].Kind)
}
