package optimizer

import (
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// inlineCalculations implements the aggressive optimization level's extra
// rule: a Calculation referenced exactly once, anywhere in the query, is
// substituted into its single referring expression and dropped from
// Calculations. Calculations referenced zero or 2+ times are left alone.
func inlineCalculations(q ir.Query, bag *diag.Bag) ir.Query {
	counts := map[string]int{}
	count := func(e ir.Expression) {
		for _, name := range ir.MeasureReferences(e) {
			counts[name]++
		}
	}
	for _, c := range q.Calculations {
		count(c.Expression)
	}
	for _, m := range q.Measures {
		if m.Expression != nil {
			count(m.Expression)
		}
	}
	for _, f := range q.Filters {
		if mf, ok := f.(*ir.MeasureFilter); ok {
			counts[mf.MeasureName] += 2 // never inline into a filter reference; force retention
		}
	}
	for _, o := range q.OrderBy {
		count(o.Target)
	}

	byName := map[string]ir.Calculation{}
	for _, c := range q.Calculations {
		byName[c.Name] = c
	}

	var kept []ir.Calculation
	for _, c := range q.Calculations {
		if counts[c.Name] != 1 {
			kept = append(kept, c)
			continue
		}
		bag.Infof(diag.NormalizationWarning, diag.Span{}, "inlined single-use calculation %s", c.Name)
	}

	inlineOne := func(e ir.Expression) ir.Expression {
		for {
			replaced := false
			e = substitute(e, func(name string) (ir.Expression, bool) {
				if counts[name] != 1 {
					return nil, false
				}
				c, ok := byName[name]
				if !ok {
					return nil, false
				}
				replaced = true
				return c.Expression, true
			})
			if !replaced {
				return e
			}
		}
	}

	for i, c := range kept {
		kept[i].Expression = inlineOne(c.Expression)
	}
	for i, m := range q.Measures {
		if m.Expression != nil {
			q.Measures[i].Expression = inlineOne(m.Expression)
		}
	}
	q.Calculations = kept
	return q
}

// substitute rebuilds e, replacing every MeasureReference for which resolve
// returns ok with its replacement expression.
func substitute(e ir.Expression, resolve func(name string) (ir.Expression, bool)) ir.Expression {
	switch v := e.(type) {
	case *ir.MeasureReference:
		if repl, ok := resolve(v.Name); ok {
			return repl
		}
		return v
	case *ir.BinaryOp:
		return &ir.BinaryOp{Kind: v.Kind, Op: v.Op, Left: substitute(v.Left, resolve), Right: substitute(v.Right, resolve)}
	case *ir.Comparison:
		return &ir.Comparison{Kind: v.Kind, Op: v.Op, Left: substitute(v.Left, resolve), Right: substitute(v.Right, resolve)}
	case *ir.LogicalOp:
		ops := make([]ir.Expression, len(v.Operands))
		for i, o := range v.Operands {
			ops[i] = substitute(o, resolve)
		}
		return &ir.LogicalOp{Kind: v.Kind, Op: v.Op, Operands: ops}
	case *ir.FunctionCall:
		args := make([]ir.Expression, len(v.Args))
		for i, a := range v.Args {
			args[i] = substitute(a, resolve)
		}
		return &ir.FunctionCall{Kind: v.Kind, Name: v.Name, Args: args}
	case *ir.Conditional:
		return &ir.Conditional{Kind: v.Kind, Cond: substitute(v.Cond, resolve), Then: substitute(v.Then, resolve), Else: substitute(v.Else, resolve)}
	default:
		return e
	}
}
