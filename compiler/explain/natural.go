package explain

import (
	"strings"

	"github.com/mdxtodax/unmdx/compiler/ir"
)

// naturalExplain renders q as short English prose, the format a
// non-technical stakeholder reviewing a converted report would read.
func naturalExplain(q ir.Query, cfg Config) string {
	var sentences []string

	sentences = append(sentences, calcSentence(q))

	if len(q.Dimensions) > 0 {
		var parts []string
		for _, d := range q.Dimensions {
			parts = append(parts, dimensionLabel(d)+selectionSuffix(d.Members))
		}
		sentences = append(sentences, "It is grouped by "+strings.Join(parts, ", ")+".")
	}

	if parts := filterSentences(q); len(parts) > 0 {
		sentences = append(sentences, "It is filtered to "+strings.Join(parts, "; ")+".")
	}

	if cfg.Detail != DetailMinimal {
		for _, c := range q.Calculations {
			sentences = append(sentences, "The calculated measure \""+c.Name+"\" is defined as "+naturalExpr(c.Expression)+".")
		}
	}

	if len(q.OrderBy) > 0 {
		var parts []string
		for _, o := range q.OrderBy {
			dir := "ascending"
			if o.Direction == "DESC" {
				dir = "descending"
			}
			parts = append(parts, naturalExpr(o.Target)+" ("+dir+")")
		}
		sentences = append(sentences, "Results are ordered by "+strings.Join(parts, ", ")+".")
	}

	if q.Limit != nil {
		which := "top"
		if q.Limit.Direction == ir.Bottom {
			which = "bottom"
		}
		sentences = append(sentences, "Only the "+which+" "+itoa(q.Limit.Count)+" rows are kept.")
	}

	if cfg.Detail == DetailDetailed {
		if len(q.Metadata.Warnings) > 0 {
			var w []string
			for _, d := range q.Metadata.Warnings {
				w = append(w, d.Message)
			}
			sentences = append(sentences, "Conversion notes: "+strings.Join(w, "; ")+".")
		}
		for k, v := range q.Metadata.Hints {
			sentences = append(sentences, "Hint "+k+" = "+v+" was recorded but has no effect on the DAX output.")
		}
	}

	return strings.Join(sentences, " ")
}

func calcSentence(q ir.Query) string {
	if len(q.Measures) == 0 {
		return "This query returns a single unlabeled value."
	}
	var parts []string
	for _, m := range q.Measures {
		parts = append(parts, measureAggText(m)+" as \""+m.DisplayName()+"\"")
	}
	return "This query calculates " + strings.Join(parts, " and ") + "."
}

func filterSentences(q ir.Query) []string {
	var parts []string
	for _, f := range q.Filters {
		switch v := f.(type) {
		case *ir.DimensionFilter:
			parts = append(parts, naturalDimensionFilter(v))
		case *ir.MeasureFilter:
			parts = append(parts, v.MeasureName+" "+naturalMeasureOp(v.Operator)+" "+formatFloat(v.Value))
		case *ir.NonEmptyFilter:
			measure := v.MeasureName
			if measure == "" {
				measure = "any projected measure"
			}
			parts = append(parts, "rows where "+measure+" is not empty")
		}
	}
	return parts
}

func naturalDimensionFilter(f *ir.DimensionFilter) string {
	col := f.Dimension.Table + "." + f.Dimension.Level
	switch f.Operator {
	case ir.OpIn:
		return col + " in {" + strings.Join(f.Values, ", ") + "}"
	case ir.OpNotEquals:
		if len(f.Values) == 0 {
			return col + " is not blank"
		}
		return col + " is not " + f.Values[0]
	case ir.OpContains:
		if len(f.Values) == 0 {
			return col + " is not blank"
		}
		return col + " contains \"" + f.Values[0] + "\""
	default:
		if len(f.Values) == 0 {
			return col + " is not blank"
		}
		return col + " is " + f.Values[0]
	}
}

func naturalMeasureOp(op ir.MeasureOperator) string {
	switch op {
	case ir.OpGT:
		return "is greater than"
	case ir.OpLT:
		return "is less than"
	case ir.OpGTE:
		return "is at least"
	case ir.OpLTE:
		return "is at most"
	case ir.OpNEQ:
		return "is not equal to"
	default:
		return "equals"
	}
}

// naturalExpr renders an Expression as an English fragment, reusing the
// same tagged-union switch shape as compiler/dax's expr() and
// compiler/explain's sqlExpr, each producing text for its own audience.
func naturalExpr(e ir.Expression) string {
	switch v := e.(type) {
	case nil:
		return "blank"
	case *ir.Constant:
		return toString(v.Value)
	case *ir.MeasureReference:
		return v.Name
	case *ir.MemberReference:
		return v.Hierarchy + " " + v.Name
	case *ir.BinaryOp:
		return naturalExpr(v.Left) + " " + binaryOpWord(v.Op) + " " + naturalExpr(v.Right)
	case *ir.Comparison:
		return naturalExpr(v.Left) + " " + v.Op + " " + naturalExpr(v.Right)
	case *ir.LogicalOp:
		if v.Op == "NOT" && len(v.Operands) == 1 {
			return "not (" + naturalExpr(v.Operands[0]) + ")"
		}
		parts := make([]string, len(v.Operands))
		for i, o := range v.Operands {
			parts[i] = naturalExpr(o)
		}
		return strings.Join(parts, " "+strings.ToLower(v.Op)+" ")
	case *ir.FunctionCall:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = naturalExpr(a)
		}
		return v.Name + "(" + strings.Join(args, ", ") + ")"
	case *ir.Conditional:
		return "if " + naturalExpr(v.Cond) + " then " + naturalExpr(v.Then) + " else " + naturalExpr(v.Else)
	default:
		return "?"
	}
}

func binaryOpWord(op string) string {
	switch op {
	case "+":
		return "plus"
	case "-":
		return "minus"
	case "*":
		return "times"
	case "/":
		return "divided by"
	default:
		return op
	}
}
