package optimizer

import (
	"reflect"

	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// passCrossJoinOptimization removes an exact duplicate Dimension (same
// hierarchy, level, and member selection), keeping the first occurrence.
// Unlike passHierarchyCollapse, this only fires on an identical selection,
// not merely the same hierarchy at a different level.
func passCrossJoinOptimization(q ir.Query, bag *diag.Bag, cfg Config) ir.Query {
	var kept []ir.Dimension
	for _, d := range q.Dimensions {
		duplicate := false
		for _, k := range kept {
			if k.Hierarchy == d.Hierarchy && k.Level == d.Level && reflect.DeepEqual(k.Members, d.Members) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		kept = append(kept, d)
	}
	if len(kept) < len(q.Dimensions) {
		bag.Infof(diag.NormalizationWarning, diag.Span{}, "crossjoin_optimization: removed %d duplicate dimension(s)", len(q.Dimensions)-len(kept))
	}
	q.Dimensions = kept
	return q
}
