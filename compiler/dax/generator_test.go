package dax_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdxtodax/unmdx/compiler/dax"
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

func normalizeWS(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestGenerate_MeasureOnly(t *testing.T) {
	q := ir.Query{
		Cube:     ir.CubeReference{Name: "Adventure Works"},
		Measures: []ir.Measure{{Name: "Sales Amount"}},
	}
	bag := diag.NewBag(false, 0)
	got := normalizeWS(dax.Generate(q, dax.DefaultConfig(), bag))
	assert.Equal(t, "EVALUATE { [Sales Amount] }", got)
	assert.Empty(t, bag.Diagnostics())
}

func TestGenerate_NoSelectionFallsBackToRowZero(t *testing.T) {
	q := ir.Query{Cube: ir.CubeReference{Name: "Adventure Works"}}
	bag := diag.NewBag(false, 0)
	got := normalizeWS(dax.Generate(q, dax.DefaultConfig(), bag))
	assert.Equal(t, `EVALUATE ROW("Value", 0)`, got)
}

func TestGenerate_ReservedTableNameIsQuoted(t *testing.T) {
	q := ir.Query{
		Cube: ir.CubeReference{Name: "Model"},
		Dimensions: []ir.Dimension{{
			Hierarchy: ir.HierarchyReference{Table: "Date", Hierarchy: "Calendar"},
			Level:     ir.LevelReference{Level: "Calendar Year"},
			Members:   ir.AllMembers{},
		}},
		Measures: []ir.Measure{{Name: "Sales Amount"}},
	}
	bag := diag.NewBag(false, 0)
	got := normalizeWS(dax.Generate(q, dax.DefaultConfig(), bag))
	assert.Contains(t, got, "'Date'[Calendar Year]")
}

func TestGenerate_AxisSpecificMembersFilterWithoutWhere(t *testing.T) {
	q := ir.Query{
		Cube:     ir.CubeReference{Name: "Adventure Works"},
		Measures: []ir.Measure{{Name: "Sales Amount"}},
		Dimensions: []ir.Dimension{{
			Hierarchy: ir.HierarchyReference{Table: "Product", Hierarchy: "Product"},
			Level:     ir.LevelReference{Level: "Category"},
			Members:   ir.SpecificMembers{Kind: "SpecificMembers", Names: []string{"Bikes", "Accessories"}},
		}},
	}
	bag := diag.NewBag(false, 0)
	got := normalizeWS(dax.Generate(q, dax.DefaultConfig(), bag))
	assert.Contains(t, got, "CALCULATETABLE(")
	assert.Contains(t, got, `Product[Category] IN { "Bikes", "Accessories" }`)
	assert.Empty(t, bag.Diagnostics())
}

func TestGenerate_AxisChildrenMembersApproximatedWithWarning(t *testing.T) {
	q := ir.Query{
		Cube:     ir.CubeReference{Name: "Adventure Works"},
		Measures: []ir.Measure{{Name: "Sales Amount"}},
		Dimensions: []ir.Dimension{{
			Hierarchy: ir.HierarchyReference{Table: "Geography", Hierarchy: "Geography"},
			Level:     ir.LevelReference{Level: "State"},
			Members:   ir.ChildrenMembers{Kind: "ChildrenMembers", Parent: "United States"},
		}},
	}
	bag := diag.NewBag(false, 0)
	got := normalizeWS(dax.Generate(q, dax.DefaultConfig(), bag))
	assert.Contains(t, got, `Geography[State] = "United States"`)
	require.Len(t, bag.Diagnostics(), 1)
	assert.Equal(t, diag.Warning, bag.Diagnostics()[0].Severity)
	assert.False(t, bag.HasErrors())
}

func TestGenerate_AxisRangeMembersApproximatedAsEndpoints(t *testing.T) {
	q := ir.Query{
		Cube:     ir.CubeReference{Name: "Adventure Works"},
		Measures: []ir.Measure{{Name: "Sales Amount"}},
		Dimensions: []ir.Dimension{{
			Hierarchy: ir.HierarchyReference{Table: "Date", Hierarchy: "Calendar"},
			Level:     ir.LevelReference{Level: "Month"},
			Members:   ir.RangeMembers{Kind: "RangeMembers", From: "January", To: "June"},
		}},
	}
	bag := diag.NewBag(false, 0)
	got := normalizeWS(dax.Generate(q, dax.DefaultConfig(), bag))
	assert.Contains(t, got, `'Date'[Month] IN { "January", "June" }`)
	require.Len(t, bag.Diagnostics(), 1)
}

func TestGenerate_EmitterErrorOnUnsupportedLogicalOp(t *testing.T) {
	q := ir.Query{
		Cube: ir.CubeReference{Name: "Adventure Works"},
		Measures: []ir.Measure{{
			Name:        "Weird",
			Aggregation: ir.AggCustom,
			Expression: &ir.LogicalOp{
				Kind:     "LogicalOp",
				Op:       "XOR",
				Operands: []ir.Expression{&ir.Constant{Kind: "Constant", Value: true}},
			},
		}},
	}
	bag := diag.NewBag(false, 0)
	got := dax.Generate(q, dax.DefaultConfig(), bag)
	assert.Contains(t, got, "BLANK()")
	assert.True(t, bag.HasErrors())
}
