package optimizer

import (
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// passDeduplicateMembers removes repeated names within a SPECIFIC
// selection, preserving first occurrence.
func passDeduplicateMembers(q ir.Query, bag *diag.Bag, cfg Config) ir.Query {
	for i, d := range q.Dimensions {
		sm, ok := d.Members.(ir.SpecificMembers)
		if !ok || len(sm.Names) < 2 {
			continue
		}
		seen := map[string]bool{}
		var names []string
		dropped := false
		for _, n := range sm.Names {
			if seen[n] {
				dropped = true
				continue
			}
			seen[n] = true
			names = append(names, n)
		}
		if dropped {
			bag.Warnf(diag.NormalizationWarning, d.Span, "duplicate members in SPECIFIC selection on %s removed", d.Hierarchy.Hierarchy)
		}
		q.Dimensions[i].Members = ir.SpecificMembers{Kind: "SpecificMembers", Names: names}
	}
	return q
}
