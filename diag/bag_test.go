package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdxtodax/unmdx/diag"
)

func TestBag_FailFastReturnsErrorOnFirstError(t *testing.T) {
	b := diag.NewBag(true, 0)
	assert.Nil(t, b.Add(diag.Diagnostic{Severity: diag.Warning, Kind: diag.NormalizationWarning, Message: "fine"}))
	err := b.Add(diag.Diagnostic{Severity: diag.Error, Kind: diag.ParseError, Message: "boom"})
	require.Error(t, err)
	assert.True(t, b.HasErrors())
	assert.Equal(t, 1, b.ErrorCount())
}

func TestBag_MaxErrorsTripsResourceError(t *testing.T) {
	b := diag.NewBag(false, 2)
	assert.NoError(t, b.Add(diag.Diagnostic{Severity: diag.Error, Kind: diag.ParseError, Message: "e1"}))
	err := b.Add(diag.Diagnostic{Severity: diag.Error, Kind: diag.ParseError, Message: "e2"})
	require.Error(t, err)
	var d diag.Diagnostic
	require.ErrorAs(t, err, &d)
	assert.Equal(t, diag.ResourceError, d.Kind)
}

func TestBag_ExtendPreservesOrderAndCounts(t *testing.T) {
	main := diag.NewBag(false, 0)
	main.Warnf(diag.NormalizationWarning, diag.Span{}, "first")

	scratch := diag.NewBag(false, 0)
	scratch.Errorf(diag.SemanticError, diag.Span{}, "second")

	main.Extend(scratch)
	diags := main.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, "first", diags[0].Message)
	assert.Equal(t, "second", diags[1].Message)
	assert.Equal(t, 1, main.ErrorCount())
}

func TestBag_ErrAggregatesOnlyErrors(t *testing.T) {
	b := diag.NewBag(false, 0)
	b.Warnf(diag.NormalizationWarning, diag.Span{}, "just a warning")
	assert.NoError(t, b.Err())

	b.Errorf(diag.EmitterError, diag.Span{}, "no equivalent")
	require.Error(t, b.Err())
	assert.Contains(t, b.Err().Error(), "no equivalent")
}

func TestSuggest_UnknownKeyReturnsEmpty(t *testing.T) {
	assert.Empty(t, diag.Suggest("not_a_real_key"))
	assert.NotEmpty(t, diag.Suggest("parse_error:missing_from"))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "no diagnostics", diag.Summary(nil))
	diags := []diag.Diagnostic{
		{Severity: diag.Error},
		{Severity: diag.Error},
		{Severity: diag.Warning},
	}
	assert.Equal(t, "2 errors, 1 warning", diag.Summary(diags))
}
