package ir

import (
	"github.com/mdxtodax/unmdx/diag"
)

// Validate checks the invariants from the data model against q, adding a
// semantic_error diagnostic to bag for each violation and returning
// whether q is well-formed; it also records that result in q.Valid.
// Validation failures are never exceptions: callers keep running
// best-effort with whatever is well-formed, per the lowerer/linter
// contract.
func Validate(q *Query, bag *diag.Bag) bool {
	ok := true
	ok = checkUniqueCalcNames(q, bag) && ok
	ok = checkAcyclicCalculations(q, bag) && ok
	ok = checkNonEmptySpecific(q, bag) && ok
	ok = checkMeasureReferences(q, bag) && ok
	q.Valid = ok
	return ok
}

func checkUniqueCalcNames(q *Query, bag *diag.Bag) bool {
	seen := map[string]bool{}
	ok := true
	for _, c := range q.Calculations {
		if seen[c.Name] {
			bag.Add(diag.Diagnostic{
				Severity:   diag.Error,
				Kind:       diag.SemanticError,
				Message:    "duplicate calculation name " + c.Name,
				Suggestion: diag.Suggest("semantic_error:duplicate_calculation"),
			})
			ok = false
			continue
		}
		seen[c.Name] = true
	}
	return ok
}

// checkAcyclicCalculations builds a dependency graph over calculation
// names via MeasureReference edges and DFS-detects cycles.
func checkAcyclicCalculations(q *Query, bag *diag.Bag) bool {
	byName := map[string]Calculation{}
	for _, c := range q.Calculations {
		byName[c.Name] = c
	}
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := map[string]int{}
	var path []string
	var cyclic bool

	var visit func(name string) bool
	visit = func(name string) bool {
		if color[name] == black {
			return true
		}
		if color[name] == gray {
			cyclic = true
			return false
		}
		calc, isCalc := byName[name]
		if !isCalc {
			return true
		}
		color[name] = gray
		path = append(path, name)
		for _, ref := range MeasureReferences(calc.Expression) {
			if _, isCalc := byName[ref]; isCalc {
				if !visit(ref) {
					return false
				}
			}
		}
		path = path[:len(path)-1]
		color[name] = black
		return true
	}

	for _, c := range q.Calculations {
		if color[c.Name] == white {
			if !visit(c.Name) {
				cyclic = true
				break
			}
		}
	}
	if cyclic {
		trace := ""
		for i, n := range path {
			if i > 0 {
				trace += " -> "
			}
			trace += n
		}
		bag.Add(diag.Diagnostic{
			Severity:   diag.Error,
			Kind:       diag.SemanticError,
			Message:    "circular calculation dependency",
			Suggestion: trace,
		})
		return false
	}
	return true
}

func checkNonEmptySpecific(q *Query, bag *diag.Bag) bool {
	ok := true
	for _, d := range q.Dimensions {
		if sm, isSpecific := d.Members.(SpecificMembers); isSpecific && len(sm.Names) == 0 {
			bag.Add(diag.Diagnostic{
				Severity:   diag.Error,
				Kind:       diag.SemanticError,
				Message:    "SPECIFIC member selection on " + d.Hierarchy.Hierarchy + " has no members",
				Span:       d.Span,
				Suggestion: diag.Suggest("semantic_error:empty_specific"),
			})
			ok = false
		}
	}
	return ok
}

// checkMeasureReferences confirms every MeasureReference inside a
// calculation, measure, or order-by expression resolves to a base measure
// or another calculation. Filters are not checked.
func checkMeasureReferences(q *Query, bag *diag.Bag) bool {
	known := map[string]bool{}
	for _, m := range q.Measures {
		known[m.Name] = true
	}
	for _, c := range q.Calculations {
		known[c.Name] = true
	}
	ok := true
	check := func(e Expression) {
		for _, name := range MeasureReferences(e) {
			if !known[name] {
				bag.Add(diag.Diagnostic{
					Severity:   diag.Error,
					Kind:       diag.SemanticError,
					Message:    "undefined measure reference " + name,
					Suggestion: diag.Suggest("semantic_error:undefined_reference"),
				})
				ok = false
			}
		}
	}
	for _, c := range q.Calculations {
		check(c.Expression)
	}
	for _, m := range q.Measures {
		check(m.Expression)
	}
	for _, o := range q.OrderBy {
		check(o.Target)
	}
	return ok
}
