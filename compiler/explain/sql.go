package explain

import (
	"strings"

	"github.com/mdxtodax/unmdx/compiler/ir"
)

// sqlExplain reconstructs the query as a SQL-flavored SELECT, the closest
// analogue a BI analyst reading MDX day-to-day will recognize: dimension
// levels become GROUP BY columns, measures become aggregate projections,
// DimensionFilter/MeasureFilter split across WHERE/HAVING the way a real
// warehouse query would.
func sqlExplain(q ir.Query, cfg Config) string {
	var b strings.Builder

	b.WriteString("SELECT\n")
	var cols []string
	for _, d := range q.Dimensions {
		cols = append(cols, "    "+dimensionLabel(d)+selectionSuffix(d.Members))
	}
	for _, m := range q.Measures {
		cols = append(cols, "    "+measureAggText(m)+" AS "+m.DisplayName())
	}
	if cfg.Detail == DetailDetailed {
		for _, c := range q.Calculations {
			cols = append(cols, "    "+sqlExpr(c.Expression)+" AS "+c.Name)
		}
	}
	if len(cols) == 0 {
		cols = []string{"    1"}
	}
	b.WriteString(strings.Join(cols, ",\n"))

	b.WriteString("\nFROM ")
	table := q.Cube.Name
	if table == "" {
		table = "Model"
	}
	b.WriteString(table)

	var whereParts, havingParts []string
	for _, f := range q.Filters {
		switch v := f.(type) {
		case *ir.DimensionFilter:
			whereParts = append(whereParts, sqlDimensionFilter(v))
		case *ir.MeasureFilter:
			havingParts = append(havingParts, sqlMeasureFilter(v))
		case *ir.NonEmptyFilter:
			measure := v.MeasureName
			if measure == "" && len(q.Measures) > 0 {
				measure = q.Measures[0].DisplayName()
			}
			if measure != "" {
				havingParts = append(havingParts, measure+" IS NOT NULL")
			}
		}
	}
	if len(whereParts) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(whereParts, "\n  AND "))
	}

	if len(q.Dimensions) > 0 {
		b.WriteString("\nGROUP BY ")
		var groupCols []string
		for _, d := range q.Dimensions {
			groupCols = append(groupCols, dimensionLabel(d))
		}
		b.WriteString(strings.Join(groupCols, ", "))
	}

	if len(havingParts) > 0 {
		b.WriteString("\nHAVING ")
		b.WriteString(strings.Join(havingParts, "\n   AND "))
	}

	if len(q.OrderBy) > 0 {
		b.WriteString("\nORDER BY ")
		var parts []string
		for _, o := range q.OrderBy {
			dir := o.Direction
			if dir == "" {
				dir = "ASC"
			}
			parts = append(parts, sqlExpr(o.Target)+" "+dir)
		}
		b.WriteString(strings.Join(parts, ", "))
	}

	if q.Limit != nil {
		b.WriteString("\nLIMIT ")
		b.WriteString(itoa(q.Limit.Count))
	}

	if cfg.Detail == DetailDetailed && len(q.Metadata.Warnings) > 0 {
		b.WriteString("\n-- warnings:")
		for _, w := range q.Metadata.Warnings {
			b.WriteString("\n--   " + w.Message)
		}
	}

	return b.String()
}

func sqlDimensionFilter(f *ir.DimensionFilter) string {
	col := f.Dimension.Table + "." + f.Dimension.Level
	switch f.Operator {
	case ir.OpIn:
		return col + " IN (" + sqlValues(f.Values) + ")"
	case ir.OpNotEquals:
		if len(f.Values) == 0 {
			return col + " IS NOT NULL"
		}
		return col + " <> '" + f.Values[0] + "'"
	case ir.OpContains:
		if len(f.Values) == 0 {
			return col + " IS NOT NULL"
		}
		return col + " LIKE '%" + f.Values[0] + "%'"
	default:
		if len(f.Values) == 0 {
			return col + " IS NOT NULL"
		}
		return col + " = '" + f.Values[0] + "'"
	}
}

func sqlValues(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}

var sqlMeasureOp = map[ir.MeasureOperator]string{
	ir.OpGT: ">", ir.OpLT: "<", ir.OpGTE: ">=", ir.OpLTE: "<=", ir.OpEQ: "=", ir.OpNEQ: "<>",
}

func sqlMeasureFilter(f *ir.MeasureFilter) string {
	op, ok := sqlMeasureOp[f.Operator]
	if !ok {
		op = "="
	}
	return f.MeasureName + " " + op + " " + formatFloat(f.Value)
}

// sqlExpr renders an Expression as SQL-flavored infix text; it shares the
// same tagged-union shape the DAX emitter switches over but produces
// generic infix rather than DAX function calls.
func sqlExpr(e ir.Expression) string {
	switch v := e.(type) {
	case nil:
		return "NULL"
	case *ir.Constant:
		return sqlConstant(v)
	case *ir.MeasureReference:
		return v.Name
	case *ir.MemberReference:
		return v.Hierarchy + "." + v.Name
	case *ir.BinaryOp:
		return "(" + sqlExpr(v.Left) + " " + v.Op + " " + sqlExpr(v.Right) + ")"
	case *ir.Comparison:
		return sqlExpr(v.Left) + " " + v.Op + " " + sqlExpr(v.Right)
	case *ir.LogicalOp:
		return sqlLogical(v)
	case *ir.FunctionCall:
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = sqlExpr(a)
		}
		return v.Name + "(" + strings.Join(args, ", ") + ")"
	case *ir.Conditional:
		return "CASE WHEN " + sqlExpr(v.Cond) + " THEN " + sqlExpr(v.Then) + " ELSE " + sqlExpr(v.Else) + " END"
	default:
		return "?"
	}
}

func sqlLogical(v *ir.LogicalOp) string {
	if v.Op == "NOT" && len(v.Operands) == 1 {
		return "NOT (" + sqlExpr(v.Operands[0]) + ")"
	}
	parts := make([]string, len(v.Operands))
	for i, o := range v.Operands {
		parts[i] = sqlExpr(o)
	}
	return "(" + strings.Join(parts, " "+v.Op+" ") + ")"
}

func sqlConstant(c *ir.Constant) string {
	switch val := c.Value.(type) {
	case string:
		return "'" + val + "'"
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	default:
		return toString(val)
	}
}
