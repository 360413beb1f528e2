package semantic

import (
	"strings"

	"github.com/mdxtodax/unmdx/compiler/ast"
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// flatItem is the lowerer's own flattened element shape. ast.SetItem is a
// sealed interface (its setItem marker method is unexported to package
// ast), so a DESCENDANTS() call flattened alongside ordinary members needs
// a package-local wrapper rather than an ast.SetItem implementation.
type flatItem struct {
	Member      *ast.MemberExpr
	Range       *ast.MemberRange
	Tuple       *ast.Tuple
	Descendants *ast.SetFunction
}

// lowerAxis flattens one ON COLUMNS/ROWS/... clause and folds its members
// into out.Measures and out.Dimensions. A measures-only axis becomes a
// projection; a mixed axis is split with a normalization warning, per the
// axis-assignment rule.
func (l *lowerer) lowerAxis(axis *ast.AxisSpec, out *ir.Query) {
	groups := l.expandGroups(axis.Set)
	var sawMeasure, sawDimension bool

	for _, group := range groups {
		items := l.flattenItems(group, 0, axis.Span())
		var infos []memberInfo
		for _, it := range items {
			if it.Tuple != nil {
				before := len(out.Dimensions)
				l.lowerTupleGroup(it.Tuple.Members, out)
				sawDimension = sawDimension || len(out.Dimensions) > before
				continue
			}
			infos = append(infos, l.resolveMember(it))
		}
		if len(infos) == 0 {
			continue
		}
		if infos[0].isMeasure {
			for _, in := range infos {
				out.Measures = append(out.Measures, ir.Measure{Name: in.measureName, Span: in.span})
			}
			sawMeasure = true
			continue
		}
		out.Dimensions = append(out.Dimensions, l.mergeHierarchyGroup(infos))
		sawDimension = true
	}

	if sawMeasure && sawDimension {
		l.bag.Warnf(diag.NormalizationWarning, axis.Span(),
			"mixed_axis: axis %s mixes measures and dimension members; splitting", axis.AxisName)
	}
	if axis.NonEmpty {
		l.addNonEmptyFilter(out)
	}
}

// lowerTupleGroup handles a tuple appearing directly on an axis: each
// position becomes its own dimension entry.
func (l *lowerer) lowerTupleGroup(members []*ast.MemberExpr, out *ir.Query) {
	for _, m := range members {
		in := l.classifyMember(m)
		if in.isMeasure {
			out.Measures = append(out.Measures, ir.Measure{Name: in.measureName, Span: in.span})
			continue
		}
		out.Dimensions = append(out.Dimensions, dimensionFrom(in))
	}
}

// expandGroups splits a set expression into the ordered list of its
// CROSSJOIN/"*" operands. CROSSJOIN(a, b) becomes two independent groups
// rather than a materialized cartesian product of members, matching the
// crossjoin-to-dimensions rule: each operand contributes its own Dimension
// entries in left-to-right order.
func (l *lowerer) expandGroups(se ast.SetExpr) []ast.SetExpr {
	switch s := se.(type) {
	case *ast.SetFunction:
		if strings.EqualFold(s.Name, "CROSSJOIN") && len(s.Args) >= 2 {
			var out []ast.SetExpr
			for _, a := range s.Args {
				if sub, ok := a.(ast.SetExpr); ok {
					out = append(out, l.expandGroups(sub)...)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
		return []ast.SetExpr{s}
	case *ast.SetOpExpr:
		if s.Op == "*" {
			return append(l.expandGroups(s.Left), l.expandGroups(s.Right)...)
		}
		return []ast.SetExpr{s}
	case *ast.ParenSet:
		return l.expandGroups(s.Inner)
	default:
		return []ast.SetExpr{se}
	}
}

// flattenItems recursively unwraps nested set literals into one flat item
// list, warning once per axis past a nesting depth of three and dropping
// immediately-repeated identical members.
func (l *lowerer) flattenItems(se ast.SetExpr, depth int, axisSpan diag.Span) []flatItem {
	switch s := se.(type) {
	case *ast.SetLiteral:
		depth++
		if depth > 3 && !l.nested[axisSpan] {
			l.nested[axisSpan] = true
			l.bag.Warnf(diag.NormalizationWarning+":excessive_nesting", axisSpan, "excessive_nesting: set literal nested past depth 3")
		}
		if len(s.Items) == 1 {
			if nested, ok := s.Items[0].(*ast.SetLiteral); ok {
				return l.flattenItems(nested, depth, axisSpan)
			}
		}
		var out []flatItem
		prevKey := ""
		for _, it := range s.Items {
			switch v := it.(type) {
			case *ast.SetLiteral:
				out = append(out, l.flattenItems(v, depth, axisSpan)...)
				prevKey = ""
			case *ast.MemberExpr:
				key := itemKey(v)
				if key != "" && key == prevKey {
					continue
				}
				prevKey = key
				out = append(out, flatItem{Member: v})
			case *ast.MemberRange:
				prevKey = ""
				out = append(out, flatItem{Range: v})
			case *ast.Tuple:
				prevKey = ""
				out = append(out, flatItem{Tuple: v})
			}
		}
		return out
	case *ast.ParenSet:
		return l.flattenItems(s.Inner, depth, axisSpan)
	case *ast.SetFunction:
		if strings.EqualFold(s.Name, "DESCENDANTS") {
			return []flatItem{{Descendants: s}}
		}
		l.bag.Add(diag.Diagnostic{
			Severity: diag.Info, Kind: diag.UnsupportedConstruct,
			Message:    s.Name + " is not a recognized set function; treated as an opaque member set",
			Span:       s.Span(),
			Suggestion: diag.Suggest("unsupported_construct:time_intelligence"),
		})
		return nil
	case *ast.MemberExpr:
		return []flatItem{{Member: s}}
	default:
		return nil
	}
}

// resolveMember classifies a non-tuple flatItem into a memberInfo.
func (l *lowerer) resolveMember(it flatItem) memberInfo {
	switch {
	case it.Member != nil:
		return l.classifyMember(it.Member)
	case it.Range != nil:
		return l.classifyRange(it.Range)
	case it.Descendants != nil:
		return l.classifyDescendants(it.Descendants)
	}
	return memberInfo{}
}

func dimensionFrom(in memberInfo) ir.Dimension {
	return ir.Dimension{
		Hierarchy: ir.HierarchyReference{Table: in.hierarchy, Hierarchy: in.hierarchy},
		Level:     ir.LevelReference{Level: in.level},
		Members:   in.selection,
		Span:      in.span,
	}
}

// mergeHierarchyGroup folds every member-selection sharing one axis
// position's hierarchy into a single Dimension. Same-level SpecificMembers
// entries accumulate their name lists; different-level entries on the same
// hierarchy trigger a redundant_hierarchy_levels warning and keep only the
// last (deepest, by MDX convention innermost-listed) selection.
func (l *lowerer) mergeHierarchyGroup(infos []memberInfo) ir.Dimension {
	if len(infos) == 1 {
		return dimensionFrom(infos[0])
	}
	sameLevel := true
	for _, in := range infos[1:] {
		if in.level != infos[0].level {
			sameLevel = false
			break
		}
	}
	span := infos[0].span
	for _, in := range infos[1:] {
		span = span.Cover(in.span)
	}
	if sameLevel {
		if _, ok := infos[0].selection.(ir.SpecificMembers); ok {
			var names []string
			seen := map[string]bool{}
			for _, in := range infos {
				if sm, ok := in.selection.(ir.SpecificMembers); ok {
					for _, n := range sm.Names {
						if !seen[n] {
							seen[n] = true
							names = append(names, n)
						}
					}
				}
			}
			infos[0].selection = ir.SpecificMembers{Kind: "SpecificMembers", Names: names}
		}
		infos[0].span = span
		return dimensionFrom(infos[0])
	}
	l.bag.Warnf(diag.NormalizationWarning+":redundant_hierarchy_levels", span,
		"redundant_hierarchy_levels: multiple %s levels on one axis; keeping %s",
		infos[0].hierarchy, infos[len(infos)-1].level)
	deepest := infos[len(infos)-1]
	deepest.span = span
	return dimensionFrom(deepest)
}
