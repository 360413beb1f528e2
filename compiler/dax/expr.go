package dax

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// expr renders one Expression as DAX. It never returns an error; a
// construct with no DAX counterpart is reported to the bag and rendered as
// BLANK() so the surrounding query stays syntactically well-formed.
func (g *generator) expr(e ir.Expression) string {
	switch v := e.(type) {
	case nil:
		return "BLANK()"
	case *ir.Constant:
		return g.constant(v)
	case *ir.MeasureReference:
		return "[" + v.Name + "]"
	case *ir.MemberReference:
		return quoteIdent(v.Hierarchy) + "[" + v.Level + "]"
	case *ir.BinaryOp:
		if v.Op == "/" {
			return "DIVIDE(" + g.expr(v.Left) + ", " + g.expr(v.Right) + ")"
		}
		if v.Op == "&" {
			return g.expr(v.Left) + " & " + g.expr(v.Right)
		}
		return g.expr(v.Left) + " " + v.Op + " " + g.expr(v.Right)
	case *ir.Comparison:
		return g.expr(v.Left) + " " + v.Op + " " + g.expr(v.Right)
	case *ir.LogicalOp:
		return g.logical(v)
	case *ir.FunctionCall:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = g.expr(a)
		}
		return v.Name + "(" + strings.Join(args, ", ") + ")"
	case *ir.Conditional:
		return "IF(" + g.expr(v.Cond) + ", " + g.expr(v.Then) + ", " + g.expr(v.Else) + ")"
	default:
		g.bag.Add(diag.Diagnostic{
			Severity: diag.Error, Kind: diag.EmitterError,
			Message:    fmt.Sprintf("expression of type %T has no DAX equivalent", e),
			Suggestion: diag.Suggest("emitter_error:no_dax_equivalent"),
		})
		return "BLANK()"
	}
}

func (g *generator) constant(c *ir.Constant) string {
	switch v := c.Value.(type) {
	case nil:
		return "BLANK()"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		if v {
			return "TRUE()"
		}
		return "FALSE()"
	case string:
		return quoteString(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (g *generator) logical(v *ir.LogicalOp) string {
	switch v.Op {
	case "NOT":
		if len(v.Operands) == 1 {
			return "NOT(" + g.expr(v.Operands[0]) + ")"
		}
	case "AND", "OR":
		if len(v.Operands) == 0 {
			break
		}
		acc := g.expr(v.Operands[0])
		for _, o := range v.Operands[1:] {
			acc = v.Op + "(" + acc + ", " + g.expr(o) + ")"
		}
		return acc
	}
	g.bag.Add(diag.Diagnostic{
		Severity: diag.Error, Kind: diag.EmitterError,
		Message:    "logical operator " + v.Op + " has no direct DAX equivalent",
		Suggestion: diag.Suggest("emitter_error:no_dax_equivalent"),
	})
	return "BLANK()"
}
