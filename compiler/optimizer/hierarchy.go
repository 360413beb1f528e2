package optimizer

import (
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// passHierarchyCollapse reruns the lowerer's same-hierarchy collapse rule
// at the IR level: it is needed here too because Dimensions arriving from
// separate CrossJoin operands never passed through the lowerer's
// per-axis-group merge together.
func passHierarchyCollapse(q ir.Query, bag *diag.Bag, cfg Config) ir.Query {
	var kept []ir.Dimension
	for _, d := range q.Dimensions {
		idx := -1
		for i, k := range kept {
			if k.Hierarchy == d.Hierarchy {
				idx = i
				break
			}
		}
		if idx < 0 {
			kept = append(kept, d)
			continue
		}
		if kept[idx].Level == d.Level {
			kept[idx] = mergeSameLevel(kept[idx], d)
			continue
		}
		bag.Add(diag.Diagnostic{
			Severity: diag.Warning, Kind: diag.NormalizationWarning,
			Message:    "redundant_hierarchy_levels: " + d.Hierarchy.Hierarchy + " appears at multiple levels; keeping the deepest",
			Span:       d.Span,
			Suggestion: diag.Suggest("normalization_warning:redundant_hierarchy_levels"),
		})
		kept[idx] = d
	}
	q.Dimensions = kept
	return q
}

func mergeSameLevel(a, b ir.Dimension) ir.Dimension {
	sa, aok := a.Members.(ir.SpecificMembers)
	sb, bok := b.Members.(ir.SpecificMembers)
	if !aok || !bok {
		return a
	}
	seen := map[string]bool{}
	var names []string
	all := append(append([]string(nil), sa.Names...), sb.Names...)
	for _, n := range all {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	a.Members = ir.SpecificMembers{Kind: "SpecificMembers", Names: names}
	return a
}
