package unmdx_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdxtodax/unmdx"
	"github.com/mdxtodax/unmdx/cache"
	"github.com/mdxtodax/unmdx/config"
	"github.com/mdxtodax/unmdx/diag"
)

// normalizeWS collapses all runs of whitespace to a single space, so DAX
// text can be compared "ignoring whitespace differences" the way the
// seed scenarios are documented.
func normalizeWS(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func hasWarning(diags []diag.Diagnostic, kind string) bool {
	for _, d := range diags {
		if string(d.Kind) == kind {
			return true
		}
	}
	return false
}

// S1: simple measure.
func TestMDXToDAX_S1_SimpleMeasure(t *testing.T) {
	src := `SELECT {[Measures].[Sales Amount]} ON 0 FROM [Adventure Works]`
	res := unmdx.MDXToDAX(src, config.Default(), nil)
	require.False(t, unmdx.HasErrors(res.Diagnostics), "%v", res.Diagnostics)
	got := normalizeWS(res.Dax)
	assert.Contains(t, got, "EVALUATE")
	assert.Contains(t, got, "{ [Sales Amount] }")
}

// S2: measure with dimension, messy spacing.
func TestMDXToDAX_S2_MeasureWithDimension(t *testing.T) {
	src := "SELECT{[Measures].[Sales Amount]}ON COLUMNS,\n     {[Product].[Category].Members}    ON    ROWS\nFROM    [Adventure Works]"
	res := unmdx.MDXToDAX(src, config.Default(), nil)
	require.False(t, unmdx.HasErrors(res.Diagnostics), "%v", res.Diagnostics)
	got := normalizeWS(res.Dax)
	assert.Contains(t, got, "EVALUATE")
	assert.Contains(t, got, "SUMMARIZECOLUMNS(")
	assert.Contains(t, got, "Product[Category]")
	assert.Contains(t, got, `"Sales Amount", [Sales Amount]`)
}

// S3: redundant hierarchy levels collapse to the deepest level, plus a
// normalization_warning, plus a CALCULATETABLE slicer wrapping.
func TestMDXToDAX_S3_RedundantHierarchyLevels(t *testing.T) {
	src := `SELECT {[Measures].[Sales Amount]} ON 0,
{[Geography].[Country].Members,
 [Geography].[State].Members,
 [Geography].[City].Members,
 [Geography].[PostalCode].Members} ON 1
FROM [Adventure Works]
WHERE ([Date].[Calendar Year].&[2023])`
	res := unmdx.MDXToDAX(src, config.Default(), nil)
	require.False(t, unmdx.HasErrors(res.Diagnostics), "%v", res.Diagnostics)
	assert.True(t, hasWarning(res.Diagnostics, "normalization_warning:redundant_hierarchy_levels"), "%v", res.Diagnostics)
	got := normalizeWS(res.Dax)
	assert.Contains(t, got, "Geography[PostalCode]")
	assert.NotContains(t, got, "Geography[Country]")
	assert.NotContains(t, got, "Geography[State]")
	assert.NotContains(t, got, "Geography[City]")
	assert.Contains(t, got, "CALCULATETABLE(")
	assert.Contains(t, got, "'Date'[Calendar Year] = 2023")
}

// S4: specific member selection lowers to an IN-list filter.
func TestMDXToDAX_S4_SpecificMembers(t *testing.T) {
	src := `SELECT {[Measures].[Sales Amount]} ON 0,
{[Product].[Category].[Bikes], [Product].[Category].[Accessories]} ON 1
FROM [Adventure Works]`
	res := unmdx.MDXToDAX(src, config.Default(), nil)
	require.False(t, unmdx.HasErrors(res.Diagnostics), "%v", res.Diagnostics)
	got := normalizeWS(res.Dax)
	assert.Contains(t, got, "CALCULATETABLE(")
	assert.Contains(t, got, "SUMMARIZECOLUMNS(")
	assert.Contains(t, got, "Product[Category]")
	assert.Contains(t, got, `Product[Category] IN { "Bikes", "Accessories" }`)
}

// S5: calculated measure lowers division to DIVIDE for safety, and the
// DEFINE MEASURE block precedes the EVALUATE.
func TestMDXToDAX_S5_CalculatedMeasureDivision(t *testing.T) {
	src := `WITH MEMBER [Measures].[Average Price] AS
  [Measures].[Sales Amount] / [Measures].[Order Quantity]
SELECT {[Measures].[Sales Amount],[Measures].[Order Quantity],[Measures].[Average Price]} ON 0
FROM [Adventure Works]`
	res := unmdx.MDXToDAX(src, config.Default(), nil)
	require.False(t, unmdx.HasErrors(res.Diagnostics), "%v", res.Diagnostics)
	got := normalizeWS(res.Dax)
	assert.Contains(t, got, "DEFINE MEASURE")
	assert.Contains(t, got, "[Average Price] = DIVIDE([Sales Amount], [Order Quantity])")
	defineIdx := strings.Index(got, "DEFINE MEASURE")
	evalIdx := strings.Index(got, "EVALUATE")
	require.NotEqual(t, -1, defineIdx)
	require.NotEqual(t, -1, evalIdx)
	assert.Less(t, defineIdx, evalIdx)
	assert.Contains(t, got, "{ [Sales Amount], [Order Quantity], [Average Price] }")
}

// S6: doubly-nested NON EMPTY braces still lower correctly, wrap the
// result in a non-blank FILTER, and warn about the excessive nesting.
func TestMDXToDAX_S6_NonEmptyFilter(t *testing.T) {
	src := `SELECT NON EMPTY {{[Measures].[Sales Amount]}} ON 0, NON EMPTY {{{[Product].[Category].Members}}} ON 1 FROM [Adventure Works]`
	res := unmdx.MDXToDAX(src, config.Default(), nil)
	require.False(t, unmdx.HasErrors(res.Diagnostics), "%v", res.Diagnostics)
	assert.True(t, hasWarning(res.Diagnostics, "normalization_warning:excessive_nesting"), "%v", res.Diagnostics)
	got := normalizeWS(res.Dax)
	assert.Contains(t, got, "FILTER(")
	assert.Contains(t, got, "[Sales Amount] <> BLANK()")
}

// Boundary: an empty WHERE clause produces no filters and no warning.
func TestParseMDX_EmptyWhereProducesNoFilters(t *testing.T) {
	src := `SELECT {[Measures].[Sales Amount]} ON 0 FROM [Adventure Works] WHERE ()`
	q, diags := unmdx.ParseMDX(src, config.Default())
	require.NotNil(t, q)
	assert.Empty(t, q.Filters)
	assert.False(t, hasWarning(diags, "normalization_warning"))
}

// Boundary: input over the configured max size fails with
// resource_error:input_too_large and nothing else.
func TestParseMDX_InputTooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.Parser.MaxInputChars = 10
	q, diags := unmdx.ParseMDX(strings.Repeat("A", 100), cfg)
	assert.Nil(t, q)
	require.Len(t, diags, 1)
	assert.Equal(t, "resource_error", string(diags[0].Kind))
}

// Global.Debug populates a parse-tree dump that round-trips cleanly
// through compiler/ast's Unpacker.
func TestParseMDX_DebugDumpRoundTrips(t *testing.T) {
	src := `SELECT {[Measures].[Sales Amount]} ON 0 FROM [Adventure Works]`
	cfg := config.Default()
	cfg.Global.Debug = true
	q, diags := unmdx.ParseMDX(src, cfg)
	require.NotNil(t, q)
	assert.False(t, unmdx.HasErrors(diags), "%v", diags)
	assert.Equal(t, "ok", q.Metadata.Debug["parse_tree_roundtrip"])
	assert.NotEmpty(t, q.Metadata.Debug["parse_tree"])
}

// MDXToDAX populates a distinct RequestID per call, and a cache hit still
// returns the same DAX text.
func TestMDXToDAX_CacheRoundTrip(t *testing.T) {
	src := `SELECT {[Measures].[Sales Amount]} ON 0 FROM [Adventure Works]`
	cfg := config.Default()
	cfg.Global.EnableCaching = true

	c, err := cache.New(0)
	require.NoError(t, err)

	first := unmdx.MDXToDAX(src, cfg, c)
	assert.NotEmpty(t, first.RequestID)
	assert.Equal(t, 1, c.Len())

	second := unmdx.MDXToDAX(src, cfg, c)
	assert.NotEqual(t, first.RequestID, second.RequestID)
	assert.Equal(t, first.Dax, second.Dax)
}
