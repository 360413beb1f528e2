package optimizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/compiler/optimizer"
	"github.com/mdxtodax/unmdx/compiler/parser"
	"github.com/mdxtodax/unmdx/compiler/semantic"
	"github.com/mdxtodax/unmdx/diag"
)

func lowerFixture(t *testing.T, src string) ir.Query {
	t.Helper()
	res := parser.Parse(src, parser.Options{})
	require.NotNil(t, res.Query)
	bag := diag.NewBag(false, 0)
	q := semantic.Lower(res.Query, res.Hints, semantic.Config{}, bag)
	return *q
}

func TestOptimize_HierarchyCollapseIsIdempotent(t *testing.T) {
	src := `SELECT {[Measures].[Sales Amount]} ON 0,
{[Geography].[Country].Members,
 [Geography].[State].Members,
 [Geography].[City].Members} ON 1
FROM [Adventure Works]`
	q := lowerFixture(t, src)

	cfg := optimizer.Config{Level: optimizer.LevelModerate, MaxCrossJoinDepth: 8}
	once := optimizer.Optimize(q, cfg, diag.NewBag(false, 0))
	twice := optimizer.Optimize(once, cfg, diag.NewBag(false, 0))

	require.Len(t, once.Dimensions, 1)
	require.Len(t, twice.Dimensions, 1)
	assert.Equal(t, "City", once.Dimensions[0].Level.Level)
	assert.Equal(t, once.Dimensions[0].Level.Level, twice.Dimensions[0].Level.Level)
}

func TestOptimize_LevelNoneSkipsCleanCalculations(t *testing.T) {
	src := `WITH MEMBER [Measures].[Average Price] AS
  [Measures].[Sales Amount] / [Measures].[Order Quantity]
SELECT {[Measures].[Sales Amount],[Measures].[Order Quantity],[Measures].[Average Price]} ON 0
FROM [Adventure Works]`
	q := lowerFixture(t, src)

	out := optimizer.Optimize(q, optimizer.Config{Level: optimizer.LevelNone}, diag.NewBag(false, 0))

	require.Len(t, out.Calculations, 1)
	bo, ok := out.Calculations[0].Expression.(*ir.BinaryOp)
	require.True(t, ok, "expected the raw division to survive untouched at level none, got %T", out.Calculations[0].Expression)
	assert.Equal(t, "/", bo.Op)
}

func TestOptimize_ModerateRewritesDivisionToDIVIDE(t *testing.T) {
	src := `WITH MEMBER [Measures].[Average Price] AS
  [Measures].[Sales Amount] / [Measures].[Order Quantity]
SELECT {[Measures].[Sales Amount],[Measures].[Order Quantity],[Measures].[Average Price]} ON 0
FROM [Adventure Works]`
	q := lowerFixture(t, src)

	out := optimizer.Optimize(q, optimizer.Config{Level: optimizer.LevelModerate}, diag.NewBag(false, 0))

	require.Len(t, out.Calculations, 1)
	fc, ok := out.Calculations[0].Expression.(*ir.FunctionCall)
	require.True(t, ok, "expected DIVIDE rewrite, got %T", out.Calculations[0].Expression)
	assert.Equal(t, "DIVIDE", fc.Name)
}
