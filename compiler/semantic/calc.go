package semantic

import (
	"strings"

	"github.com/mdxtodax/unmdx/compiler/ast"
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// lowerMemberDecl lowers one WITH MEMBER definition. The target dimension
// path (everything but the trailing name) carries no meaning in DAX, where
// a measure is dimensionless, so only the name and expression survive.
func (l *lowerer) lowerMemberDecl(md *ast.MemberDecl) ir.Calculation {
	return ir.Calculation{
		Name:         lastPart(md.Path),
		Kind:         ir.CalcMeasure,
		Expression:   l.lowerValueExpr(md.Value),
		FormatString: md.Format,
	}
}

// lowerValueExpr converts one ast.Expr into its ir.Expression equivalent.
// It never fails outright; constructs with no direct IR shape degrade to
// an approximation plus an unsupported_construct diagnostic.
func (l *lowerer) lowerValueExpr(e ast.Expr) ir.Expression {
	switch v := e.(type) {
	case *ast.NumberLit:
		return &ir.Constant{Kind: "Constant", Value: v.Value}
	case *ast.StringLit:
		return &ir.Constant{Kind: "Constant", Value: v.Value}
	case *ast.BoolLit:
		return &ir.Constant{Kind: "Constant", Value: v.Value}
	case *ast.MemberExpr:
		info := l.classifyMember(v)
		if info.isMeasure {
			return &ir.MeasureReference{Kind: "MeasureReference", Name: info.measureName}
		}
		name := ""
		if sm, ok := info.selection.(ir.SpecificMembers); ok && len(sm.Names) > 0 {
			name = sm.Names[0]
		}
		return &ir.MemberReference{Kind: "MemberReference", Hierarchy: info.hierarchy, Level: info.level, Name: name}
	case *ast.BinaryExpr:
		return &ir.BinaryOp{Kind: "BinaryOp", Op: v.Op, Left: l.lowerValueExpr(v.Left), Right: l.lowerValueExpr(v.Right)}
	case *ast.UnaryExpr:
		return &ir.BinaryOp{Kind: "BinaryOp", Op: "-", Left: &ir.Constant{Kind: "Constant", Value: 0.0}, Right: l.lowerValueExpr(v.Operand)}
	case *ast.FunctionCallExpr:
		name := strings.ToUpper(v.Name)
		l.checkFunctionName(name, v.Span())
		args := make([]ir.Expression, len(v.Args))
		for i, a := range v.Args {
			args[i] = l.lowerValueExpr(a)
		}
		return &ir.FunctionCall{Kind: "FunctionCall", Name: name, Args: args}
	case *ast.CaseExpr:
		return l.lowerCase(v)
	case *ast.IIFExpr:
		return &ir.Conditional{Kind: "Conditional", Cond: l.lowerValueExpr(v.Cond), Then: l.lowerValueExpr(v.Then), Else: l.lowerValueExpr(v.Else)}
	case *ast.ParenExpr:
		return l.lowerValueExpr(v.Inner)
	case *ast.LogicalExpr:
		ops := make([]ir.Expression, len(v.Operands))
		for i, o := range v.Operands {
			ops[i] = l.lowerValueExpr(o)
		}
		return &ir.LogicalOp{Kind: "LogicalOp", Op: v.Op, Operands: ops}
	case *ast.ComparisonExpr:
		return &ir.Comparison{Kind: "Comparison", Op: v.Op, Left: l.lowerValueExpr(v.Left), Right: l.lowerValueExpr(v.Right)}
	case *ast.IsExpr:
		return &ir.FunctionCall{Kind: "FunctionCall", Name: "IS_" + strings.ToUpper(v.Check), Args: []ir.Expression{l.lowerValueExpr(v.Operand)}}
	case *ast.BetweenExpr:
		return &ir.LogicalOp{Kind: "LogicalOp", Op: "AND", Operands: []ir.Expression{
			&ir.Comparison{Kind: "Comparison", Op: ">=", Left: l.lowerValueExpr(v.Operand), Right: l.lowerValueExpr(v.Low)},
			&ir.Comparison{Kind: "Comparison", Op: "<=", Left: l.lowerValueExpr(v.Operand), Right: l.lowerValueExpr(v.High)},
		}}
	case *ast.InExpr:
		return l.lowerIn(v)
	default:
		l.bag.Warnf(diag.UnsupportedConstruct, e.Span(), "expression form has no direct DAX equivalent")
		return &ir.Constant{Kind: "Constant"}
	}
}

// lowerCase folds a CASE's WHEN/THEN branches into nested Conditionals,
// right-associatively so the final ELSE sits at the bottom.
func (l *lowerer) lowerCase(c *ast.CaseExpr) ir.Expression {
	var result ir.Expression
	if c.Else != nil {
		result = l.lowerValueExpr(c.Else)
	} else {
		result = &ir.Constant{Kind: "Constant"}
	}
	for i := len(c.Whens) - 1; i >= 0; i-- {
		w := c.Whens[i]
		var cond ir.Expression
		if c.Operand != nil {
			cond = &ir.Comparison{Kind: "Comparison", Op: "=", Left: l.lowerValueExpr(c.Operand), Right: l.lowerValueExpr(w.Cond)}
		} else {
			cond = l.lowerValueExpr(w.Cond)
		}
		result = &ir.Conditional{Kind: "Conditional", Cond: cond, Then: l.lowerValueExpr(w.Result), Else: result}
	}
	return result
}

// lowerIn expands "operand IN { a, b, c }" into an OR of equality
// comparisons; DAX has no native set-membership operator.
func (l *lowerer) lowerIn(in *ast.InExpr) ir.Expression {
	items := l.flattenItems(in.Set, 0, in.Span())
	var comps []ir.Expression
	for _, it := range items {
		if it.Member == nil {
			continue
		}
		comps = append(comps, &ir.Comparison{
			Kind: "Comparison", Op: "=",
			Left: l.lowerValueExpr(in.Operand), Right: l.lowerValueExpr(it.Member),
		})
	}
	switch len(comps) {
	case 0:
		return &ir.Constant{Kind: "Constant", Value: false}
	case 1:
		return comps[0]
	default:
		return &ir.LogicalOp{Kind: "LogicalOp", Op: "OR", Operands: comps}
	}
}
