package semantic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdxtodax/unmdx/compiler/parser"
	"github.com/mdxtodax/unmdx/compiler/semantic"
	"github.com/mdxtodax/unmdx/diag"
)

func lowerSource(t *testing.T, src string, cfg semantic.Config) []diag.Diagnostic {
	t.Helper()
	res := parser.Parse(src, parser.Options{})
	require.NotNil(t, res.Query)
	bag := diag.NewBag(false, 0)
	semantic.Lower(res.Query, res.Hints, cfg, bag)
	return bag.Diagnostics()
}

func TestCheckFunctionName_TypoSuggestsClosestKnownName(t *testing.T) {
	src := `WITH MEMBER [Measures].[X] AS SUMM([Measures].[Sales Amount])
SELECT {[Measures].[X]} ON 0 FROM [Adventure Works]`
	diags := lowerSource(t, src, semantic.Config{})
	var found bool
	for _, d := range diags {
		if d.Kind == diag.UnsupportedConstruct {
			found = true
			assert.Contains(t, d.Suggestion, "SUM")
		}
	}
	assert.True(t, found, "%v", diags)
}

func TestCheckFunctionName_AllowUnknownFunctionsSuppressesWarning(t *testing.T) {
	src := `WITH MEMBER [Measures].[X] AS ZZZNOTREAL([Measures].[Sales Amount])
SELECT {[Measures].[X]} ON 0 FROM [Adventure Works]`
	diags := lowerSource(t, src, semantic.Config{AllowUnknownFunctions: true})
	for _, d := range diags {
		assert.NotEqual(t, diag.UnsupportedConstruct, d.Kind)
	}
}

func TestCheckFunctionName_NoCloseMatchUsesCatalogueFallback(t *testing.T) {
	src := `WITH MEMBER [Measures].[X] AS ZZZNOTREAL([Measures].[Sales Amount])
SELECT {[Measures].[X]} ON 0 FROM [Adventure Works]`
	diags := lowerSource(t, src, semantic.Config{})
	var found bool
	for _, d := range diags {
		if d.Kind == diag.UnsupportedConstruct {
			found = true
			assert.Equal(t, diag.Suggest("unsupported_construct:unknown_function"), d.Suggestion)
		}
	}
	assert.True(t, found, "%v", diags)
}
