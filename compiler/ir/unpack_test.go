package ir_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/compiler/parser"
	"github.com/mdxtodax/unmdx/compiler/semantic"
	"github.com/mdxtodax/unmdx/diag"
)

func TestUnpacker_RoundTripsIR(t *testing.T) {
	res := parser.Parse(`SELECT {[Measures].[Sales Amount]} ON 0, {[Product].[Category].Members} ON 1 FROM [Adventure Works]`, parser.Options{})
	require.NotNil(t, res.Query)
	bag := diag.NewBag(false, 0)
	q := semantic.Lower(res.Query, res.Hints, semantic.Config{}, bag)

	raw, err := json.Marshal(q)
	require.NoError(t, err)

	decoded, err := ir.Unpacker.Unpack("kind", raw)
	require.NoError(t, err)

	got, ok := decoded.(*ir.Query)
	require.True(t, ok, "expected *ir.Query, got %T", decoded)
	assert.Equal(t, "Query", got.Kind)
	assert.Len(t, got.Measures, len(q.Measures))
	assert.Len(t, got.Dimensions, len(q.Dimensions))
}

