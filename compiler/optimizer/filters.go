package optimizer

import (
	"fmt"
	"strings"

	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// passRemoveEmptyFilters drops a NonEmptyFilter when the query projects no
// measures (there is nothing for "not empty" to mean), and merges filters
// that are exact duplicates.
func passRemoveEmptyFilters(q ir.Query, bag *diag.Bag, cfg Config) ir.Query {
	var kept []ir.Filter
	seen := map[string]bool{}
	for _, f := range q.Filters {
		if nef, ok := f.(*ir.NonEmptyFilter); ok && len(q.Measures) == 0 {
			bag.Warnf(diag.NormalizationWarning, diag.Span{}, "dropping NON EMPTY: query projects no measures")
			_ = nef
			continue
		}
		key := filterKey(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, f)
	}
	q.Filters = kept
	return q
}

func filterKey(f ir.Filter) string {
	switch v := f.(type) {
	case *ir.DimensionFilter:
		return fmt.Sprintf("dim:%s.%s.%s:%s:%s", v.Dimension.Table, v.Dimension.Hierarchy, v.Dimension.Level, v.Operator, strings.Join(v.Values, ","))
	case *ir.MeasureFilter:
		return fmt.Sprintf("measure:%s:%s:%v", v.MeasureName, v.Operator, v.Value)
	case *ir.NonEmptyFilter:
		return "nonempty:" + v.MeasureName
	default:
		return fmt.Sprintf("%v", f)
	}
}
