package semantic

import (
	"strings"

	"github.com/mdxtodax/unmdx/compiler/ast"
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// memberInfo is the lowerer's intermediate result for one MemberExpr or
// DESCENDANTS() call, before it is folded into a Measure or a Dimension.
type memberInfo struct {
	isMeasure   bool
	measureName string
	hierarchy   string
	level       string
	selection   ir.MemberSelection
	span        diag.Span
}

// classifyMember decodes a single dotted member path into either a
// measure reference or a dimension member selection, following the
// Suffix/Key encoding compiler/parser attaches to MemberExpr.
func (l *lowerer) classifyMember(m *ast.MemberExpr) memberInfo {
	if isMeasuresPath(m.Parts) {
		return memberInfo{isMeasure: true, measureName: lastPart(m.Parts), span: m.Span()}
	}
	hierarchy := ""
	if len(m.Parts) > 0 {
		hierarchy = m.Parts[0]
	}
	switch {
	case strings.EqualFold(m.Suffix, "Members"):
		return memberInfo{
			hierarchy: hierarchy, level: lastPart(m.Parts), span: m.Span(),
			selection: ir.AllMembers{Kind: "AllMembers"},
		}
	case strings.EqualFold(m.Suffix, "Children"):
		parent := lastPart(m.Parts)
		return memberInfo{
			hierarchy: hierarchy, level: parent, span: m.Span(),
			selection: ir.ChildrenMembers{Kind: "ChildrenMembers", Parent: parent},
		}
	case m.Suffix != "":
		l.bag.Add(diag.Diagnostic{
			Severity: diag.Info, Kind: diag.UnsupportedConstruct,
			Message:    m.Suffix + " navigation on " + hierarchy + " is approximated as a single named member",
			Span:       m.Span(),
			Suggestion: diag.Suggest("unsupported_construct:navigation"),
		})
		name := lastPart(m.Parts) + "." + m.Suffix
		return memberInfo{
			hierarchy: hierarchy, level: lastPart(m.Parts), span: m.Span(),
			selection: ir.SpecificMembers{Kind: "SpecificMembers", Names: []string{name}},
		}
	case m.Key != "":
		return memberInfo{
			hierarchy: hierarchy, level: lastPart(m.Parts), span: m.Span(),
			selection: ir.SpecificMembers{Kind: "SpecificMembers", Names: []string{m.Key}},
		}
	case len(m.Parts) >= 2:
		level := m.Parts[len(m.Parts)-2]
		name := m.Parts[len(m.Parts)-1]
		return memberInfo{
			hierarchy: hierarchy, level: level, span: m.Span(),
			selection: ir.SpecificMembers{Kind: "SpecificMembers", Names: []string{name}},
		}
	default:
		return memberInfo{
			hierarchy: hierarchy, level: hierarchy, span: m.Span(),
			selection: ir.AllMembers{Kind: "AllMembers"},
		}
	}
}

// classifyDescendants decodes DESCENDANTS(member[, level[, flag]]).
func (l *lowerer) classifyDescendants(fn *ast.SetFunction) memberInfo {
	info := memberInfo{span: fn.Span(), selection: ir.DescendantsMembers{Kind: "DescendantsMembers", Flag: ir.SelfAndAfter}}
	if len(fn.Args) == 0 {
		l.bag.Errorf(diag.SemanticError, fn.Span(), "DESCENDANTS requires at least one argument")
		return info
	}
	anchor, ok := fn.Args[0].(*ast.MemberExpr)
	if !ok {
		l.bag.Errorf(diag.SemanticError, fn.Span(), "DESCENDANTS's first argument must be a member")
		return info
	}
	info.hierarchy = ""
	if len(anchor.Parts) > 0 {
		info.hierarchy = anchor.Parts[0]
	}
	ancestor := lastPart(anchor.Parts)
	leafLevel := ""
	flag := ir.SelfAndAfter
	if len(fn.Args) >= 2 {
		if lvl, ok := fn.Args[1].(*ast.MemberExpr); ok && len(lvl.Parts) > 0 {
			leafLevel = lastPart(lvl.Parts)
		}
	}
	if len(fn.Args) >= 3 {
		if fl, ok := fn.Args[2].(*ast.MemberExpr); ok && len(fl.Parts) > 0 {
			flag = descendantsFlag(fl.Parts[0])
		}
	}
	info.level = leafLevel
	if info.level == "" {
		info.level = ancestor
	}
	info.selection = ir.DescendantsMembers{Kind: "DescendantsMembers", Ancestor: ancestor, LeafLevel: leafLevel, Flag: flag}
	return info
}

func descendantsFlag(word string) ir.DescendantsFlag {
	switch strings.ToUpper(word) {
	case "LEAVES":
		return ir.Leaves
	case "SELF_AND_BEFORE", "BEFORE":
		return ir.SelfAndBefore
	default:
		return ir.SelfAndAfter
	}
}

// classifyRange decodes an "a : b" member range.
func (l *lowerer) classifyRange(r *ast.MemberRange) memberInfo {
	from := l.classifyMember(r.From)
	to := lastPart(r.To.Parts)
	if r.To.Key != "" {
		to = r.To.Key
	}
	fromName := ""
	if sm, ok := from.selection.(ir.SpecificMembers); ok && len(sm.Names) > 0 {
		fromName = sm.Names[0]
	}
	return memberInfo{
		hierarchy: from.hierarchy, level: from.level, span: r.Span(),
		selection: ir.RangeMembers{Kind: "RangeMembers", From: fromName, To: to},
	}
}

// itemKey gives a string identity to a SetItem for the lowerer's
// consecutive-duplicate dedupe pass; non-member items key empty (never
// deduped against a neighbor).
func itemKey(it ast.SetItem) string {
	m, ok := it.(*ast.MemberExpr)
	if !ok {
		return ""
	}
	return strings.Join(m.Parts, ".") + "|" + m.Suffix + "|" + m.Key
}
