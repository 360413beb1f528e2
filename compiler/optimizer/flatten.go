package optimizer

import (
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// passFlattenSets is defense in depth against nested logical expressions
// the lowerer should already have flattened: AND-of-AND and OR-of-OR
// collapse into one flat Operands list.
func passFlattenSets(q ir.Query, bag *diag.Bag, cfg Config) ir.Query {
	for i := range q.Measures {
		if q.Measures[i].Expression != nil {
			q.Measures[i].Expression = flattenExpr(q.Measures[i].Expression)
		}
	}
	for i := range q.Calculations {
		if q.Calculations[i].Expression != nil {
			q.Calculations[i].Expression = flattenExpr(q.Calculations[i].Expression)
		}
	}
	return q
}

func flattenExpr(e ir.Expression) ir.Expression {
	switch v := e.(type) {
	case *ir.LogicalOp:
		var flat []ir.Expression
		for _, operand := range v.Operands {
			child := flattenExpr(operand)
			if nested, ok := child.(*ir.LogicalOp); ok && nested.Op == v.Op {
				flat = append(flat, nested.Operands...)
				continue
			}
			flat = append(flat, child)
		}
		return &ir.LogicalOp{Kind: v.Kind, Op: v.Op, Operands: flat}
	case *ir.BinaryOp:
		return &ir.BinaryOp{Kind: v.Kind, Op: v.Op, Left: flattenExpr(v.Left), Right: flattenExpr(v.Right)}
	case *ir.Comparison:
		return &ir.Comparison{Kind: v.Kind, Op: v.Op, Left: flattenExpr(v.Left), Right: flattenExpr(v.Right)}
	case *ir.FunctionCall:
		args := make([]ir.Expression, len(v.Args))
		for i, a := range v.Args {
			args[i] = flattenExpr(a)
		}
		return &ir.FunctionCall{Kind: v.Kind, Name: v.Name, Args: args}
	case *ir.Conditional:
		return &ir.Conditional{Kind: v.Kind, Cond: flattenExpr(v.Cond), Then: flattenExpr(v.Then), Else: flattenExpr(v.Else)}
	default:
		return e
	}
}
