package semantic

import (
	"strings"

	"github.com/mdxtodax/unmdx/compiler/ast"
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// lowerWhere translates the slicer axis into out.Filters. A tuple slicer
// becomes one DimensionFilter per coordinate; a bare logical/comparison
// slicer distributes top-level AND into a filter sequence. An explicit
// empty WHERE() (both Tuple and Logical nil) adds nothing.
func (l *lowerer) lowerWhere(w *ast.WhereClause, out *ir.Query) {
	for _, m := range w.Tuple {
		info := l.classifyMember(m)
		if info.isMeasure {
			continue
		}
		values := selectionValues(info.selection)
		if len(values) == 0 {
			continue
		}
		out.Filters = append(out.Filters, &ir.DimensionFilter{
			Kind:      "DimensionFilter",
			Dimension: ir.DimensionRef{Table: info.hierarchy, Hierarchy: info.hierarchy, Level: info.level},
			Operator:  ir.OpEquals,
			Values:    values,
		})
	}
	if w.Logical != nil {
		l.lowerWhereLogical(w.Logical, out)
	}
}

func selectionValues(sel ir.MemberSelection) []string {
	switch s := sel.(type) {
	case ir.SpecificMembers:
		return s.Names
	case ir.ChildrenMembers:
		return []string{s.Parent}
	}
	return nil
}

// lowerWhereLogical distributes a bare AND into independent filters. OR,
// XOR, and NOT cannot be represented as a sequence of independently
// intersected filters, so they are reported and skipped rather than
// silently narrowing the result to something the query didn't ask for.
func (l *lowerer) lowerWhereLogical(e ast.Expr, out *ir.Query) {
	switch v := e.(type) {
	case *ast.LogicalExpr:
		if strings.EqualFold(v.Op, "AND") {
			for _, operand := range v.Operands {
				l.lowerWhereLogical(operand, out)
			}
			return
		}
		l.bag.Warnf(diag.UnsupportedConstruct, v.Span(),
			"WHERE %s cannot be expressed as independent filters; clause dropped", v.Op)
	case *ast.ComparisonExpr:
		l.lowerComparisonFilter(v, out)
	case *ast.MemberExpr:
		info := l.classifyMember(v)
		if info.isMeasure {
			l.bag.Warnf(diag.UnsupportedConstruct, v.Span(), "bare measure reference in WHERE has no filter equivalent")
			return
		}
		values := selectionValues(info.selection)
		if len(values) == 0 {
			return
		}
		out.Filters = append(out.Filters, &ir.DimensionFilter{
			Kind:      "DimensionFilter",
			Dimension: ir.DimensionRef{Table: info.hierarchy, Hierarchy: info.hierarchy, Level: info.level},
			Operator:  ir.OpEquals,
			Values:    values,
		})
	default:
		l.bag.Warnf(diag.UnsupportedConstruct, e.Span(), "WHERE expression form not translated to a filter")
	}
}

var measureCompareOps = map[string]ir.MeasureOperator{
	"=": ir.OpEQ, "<>": ir.OpNEQ, "<": ir.OpLT, ">": ir.OpGT, "<=": ir.OpLTE, ">=": ir.OpGTE,
}

var flippedOp = map[string]ir.MeasureOperator{
	"=": ir.OpEQ, "<>": ir.OpNEQ, "<": ir.OpGT, ">": ir.OpLT, "<=": ir.OpGTE, ">=": ir.OpLTE,
}

// lowerComparisonFilter recognizes "[Measures].[X] op literal" (or the
// mirrored literal-first form) as a MeasureFilter; anything else has no IR
// filter shape.
func (l *lowerer) lowerComparisonFilter(c *ast.ComparisonExpr, out *ir.Query) {
	if name, ok := measureName(c.Left); ok {
		if lit, ok := numericValue(c.Right); ok {
			out.Filters = append(out.Filters, &ir.MeasureFilter{Kind: "MeasureFilter", MeasureName: name, Operator: measureCompareOps[c.Op], Value: lit})
			return
		}
	}
	if name, ok := measureName(c.Right); ok {
		if lit, ok := numericValue(c.Left); ok {
			out.Filters = append(out.Filters, &ir.MeasureFilter{Kind: "MeasureFilter", MeasureName: name, Operator: flippedOp[c.Op], Value: lit})
			return
		}
	}
	l.bag.Warnf(diag.UnsupportedConstruct, c.Span(), "comparison filter form not translated")
}

func measureName(e ast.Expr) (string, bool) {
	m, ok := e.(*ast.MemberExpr)
	if !ok || !isMeasuresPath(m.Parts) {
		return "", false
	}
	return lastPart(m.Parts), true
}

func numericValue(e ast.Expr) (float64, bool) {
	n, ok := e.(*ast.NumberLit)
	if !ok {
		return 0, false
	}
	return n.Value, true
}
