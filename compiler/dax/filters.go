package dax

import (
	"strconv"
	"strings"

	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// axisMemberFilter synthesizes the DimensionFilter a non-ALL axis
// selection implies, since nothing upstream of the emitter turns
// Dimension.Members into a Filter for a selection made directly on an
// axis (as opposed to WHERE) — see compiler/semantic/where.go for the
// WHERE-side equivalent this mirrors. It returns nil for AllMembers,
// which SUMMARIZECOLUMNS already renders unrestricted.
func (g *generator) axisMemberFilter(d ir.Dimension) *ir.DimensionFilter {
	ref := ir.DimensionRef{Table: d.Hierarchy.Table, Hierarchy: d.Hierarchy.Hierarchy, Level: d.Level.Level}
	switch s := d.Members.(type) {
	case ir.AllMembers:
		return nil
	case ir.SpecificMembers:
		return &ir.DimensionFilter{Kind: "DimensionFilter", Dimension: ref, Operator: ir.OpIn, Values: s.Names}
	case ir.ChildrenMembers:
		g.approximatedSelection(ref, "children of "+s.Parent)
		return &ir.DimensionFilter{Kind: "DimensionFilter", Dimension: ref, Operator: ir.OpEquals, Values: []string{s.Parent}}
	case ir.DescendantsMembers:
		g.approximatedSelection(ref, "descendants of "+s.Ancestor)
		return &ir.DimensionFilter{Kind: "DimensionFilter", Dimension: ref, Operator: ir.OpEquals, Values: []string{s.Ancestor}}
	case ir.RangeMembers:
		g.approximatedSelection(ref, "range "+s.From+":"+s.To)
		return &ir.DimensionFilter{Kind: "DimensionFilter", Dimension: ref, Operator: ir.OpIn, Values: []string{s.From, s.To}}
	default:
		return nil
	}
}

// approximatedSelection records that ref's axis selection has no exact
// DAX filter shape, so what got emitted narrows to a stand-in (the
// parent, ancestor, or range endpoints) rather than the true member set.
func (g *generator) approximatedSelection(ref ir.DimensionRef, desc string) {
	g.bag.Add(diag.Diagnostic{
		Severity:   diag.Warning,
		Kind:       diag.EmitterError,
		Message:    ref.Table + "[" + ref.Level + "] selection (" + desc + ") has no exact DAX filter; approximated",
		Suggestion: diag.Suggest("emitter_error:approximated_selection"),
	})
}

// dimensionFilterExpr renders one DimensionFilter per the §4.5 translation
// table.
func (g *generator) dimensionFilterExpr(f *ir.DimensionFilter) string {
	col := quoteIdent(f.Dimension.Table) + "[" + f.Dimension.Level + "]"
	switch f.Operator {
	case ir.OpIn:
		return col + " IN { " + joinValues(f.Values) + " }"
	case ir.OpEquals:
		if len(f.Values) == 0 {
			return col + " <> " + col
		}
		return col + " = " + literalOrNumber(f.Values[0])
	case ir.OpNotEquals:
		if len(f.Values) == 0 {
			return col + " = " + col
		}
		return col + " <> " + literalOrNumber(f.Values[0])
	case ir.OpContains:
		if len(f.Values) == 0 {
			return col + " <> " + col
		}
		return "SEARCH(" + quoteString(f.Values[0]) + ", " + col + ", 1, 0) > 0"
	default:
		return col + " = " + col
	}
}

func joinValues(values []string) string {
	rendered := make([]string, len(values))
	for i, v := range values {
		rendered[i] = literalOrNumber(v)
	}
	return strings.Join(rendered, ", ")
}

var measureOpText = map[ir.MeasureOperator]string{
	ir.OpGT: ">", ir.OpLT: "<", ir.OpGTE: ">=", ir.OpLTE: "<=", ir.OpEQ: "=", ir.OpNEQ: "<>",
}

func (g *generator) measureFilterExpr(f *ir.MeasureFilter) string {
	op, ok := measureOpText[f.Operator]
	if !ok {
		op = "="
	}
	return "[" + f.MeasureName + "] " + op + " " + strconv.FormatFloat(f.Value, 'g', -1, 64)
}
