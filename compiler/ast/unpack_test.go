package ast_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdxtodax/unmdx/compiler/ast"
	"github.com/mdxtodax/unmdx/compiler/parser"
)

func TestUnpacker_RoundTripsParseTree(t *testing.T) {
	res := parser.Parse(`SELECT {[Measures].[Sales Amount]} ON 0, {[Product].[Category].Members} ON 1 FROM [Adventure Works] WHERE ([Date].[Calendar Year].&[2023])`, parser.Options{})
	require.NotNil(t, res.Query)

	raw, err := json.Marshal(res.Query)
	require.NoError(t, err)

	decoded, err := ast.Unpacker.Unpack("kind", raw)
	require.NoError(t, err)

	q, ok := decoded.(*ast.Query)
	require.True(t, ok, "expected *ast.Query, got %T", decoded)
	assert.Equal(t, "Query", q.Kind)
	require.NotNil(t, q.Select)
	assert.Len(t, q.Select.Axes, 2)
	assert.Equal(t, res.Query.Select.Axes[0].AxisName, q.Select.Axes[0].AxisName)
	require.NotNil(t, q.Select.Where)
}

func TestUnpacker_UnknownDiscriminantErrors(t *testing.T) {
	_, err := ast.Unpacker.Unpack("kind", []byte(`{"kind":"NotARealNode"}`))
	assert.Error(t, err)
}
