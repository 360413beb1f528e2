package optimizer

import (
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// passCleanCalculations rewrites "/" to the DIVIDE safe-division marker,
// folds constant-only arithmetic subtrees, and drops double negation.
func passCleanCalculations(q ir.Query, bag *diag.Bag, cfg Config) ir.Query {
	for i := range q.Measures {
		if q.Measures[i].Expression != nil {
			q.Measures[i].Expression = cleanExpr(q.Measures[i].Expression)
		}
	}
	for i := range q.Calculations {
		if q.Calculations[i].Expression != nil {
			q.Calculations[i].Expression = cleanExpr(q.Calculations[i].Expression)
		}
	}
	return q
}

func cleanExpr(e ir.Expression) ir.Expression {
	switch v := e.(type) {
	case *ir.BinaryOp:
		left := cleanExpr(v.Left)
		right := cleanExpr(v.Right)
		if v.Op == "/" {
			return &ir.FunctionCall{Kind: "FunctionCall", Name: "DIVIDE", Args: []ir.Expression{left, right}}
		}
		if lc, lok := left.(*ir.Constant); lok {
			if rc, rok := right.(*ir.Constant); rok {
				if folded, ok := foldNumeric(v.Op, lc.Value, rc.Value); ok {
					return &ir.Constant{Kind: "Constant", Value: folded}
				}
			}
		}
		return &ir.BinaryOp{Kind: v.Kind, Op: v.Op, Left: left, Right: right}
	case *ir.Comparison:
		return &ir.Comparison{Kind: v.Kind, Op: v.Op, Left: cleanExpr(v.Left), Right: cleanExpr(v.Right)}
	case *ir.LogicalOp:
		if v.Op == "NOT" && len(v.Operands) == 1 {
			if inner, ok := cleanExpr(v.Operands[0]).(*ir.LogicalOp); ok && inner.Op == "NOT" && len(inner.Operands) == 1 {
				return inner.Operands[0]
			}
		}
		ops := make([]ir.Expression, len(v.Operands))
		for i, o := range v.Operands {
			ops[i] = cleanExpr(o)
		}
		return &ir.LogicalOp{Kind: v.Kind, Op: v.Op, Operands: ops}
	case *ir.FunctionCall:
		args := make([]ir.Expression, len(v.Args))
		for i, a := range v.Args {
			args[i] = cleanExpr(a)
		}
		return &ir.FunctionCall{Kind: v.Kind, Name: v.Name, Args: args}
	case *ir.Conditional:
		return &ir.Conditional{Kind: v.Kind, Cond: cleanExpr(v.Cond), Then: cleanExpr(v.Then), Else: cleanExpr(v.Else)}
	default:
		return e
	}
}

func foldNumeric(op string, a, b interface{}) (float64, bool) {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if !aok || !bok {
		return 0, false
	}
	switch op {
	case "+":
		return af + bf, true
	case "-":
		return af - bf, true
	case "*":
		return af * bf, true
	default:
		return 0, false
	}
}
