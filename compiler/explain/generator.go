// Package explain renders an IR Query as a human-readable explanation in
// one of four formats, independent of (and usually run alongside) the DAX
// emitter — mirroring the teacher's own describe.go, which produces a
// second, prose-oriented view of the same query plan the executor runs.
package explain

import (
	"bytes"

	"github.com/yuin/goldmark"

	"github.com/mdxtodax/unmdx/compiler/dax"
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

type Format string

const (
	FormatSQL      Format = "sql"
	FormatNatural  Format = "natural"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

type Detail string

const (
	DetailMinimal  Detail = "minimal"
	DetailStandard Detail = "standard"
	DetailDetailed Detail = "detailed"
)

// Config mirrors config.ExplanationConfig.
type Config struct {
	Format              Format
	Detail              Detail
	IncludeDAXComparison bool
	DaxConfig           dax.Config
	// RenderHTML only applies when Format is FormatMarkdown; the report
	// is run through RenderHTML before it is returned.
	RenderHTML bool
}

// Generate renders q per cfg. An unrecognized format falls back to
// natural-language prose with an unsupported_construct diagnostic rather
// than failing outright.
func Generate(q ir.Query, cfg Config, bag *diag.Bag) string {
	switch cfg.Format {
	case FormatSQL:
		return sqlExplain(q, cfg)
	case FormatJSON:
		return jsonExplain(q, cfg, bag)
	case FormatMarkdown:
		md := markdownExplain(q, cfg, bag)
		if !cfg.RenderHTML {
			return md
		}
		html, err := RenderHTML(md)
		if err != nil {
			bag.Warnf(diag.UnsupportedConstruct, diag.Span{}, "markdown-to-html rendering failed: %v", err)
			return md
		}
		return html
	case FormatNatural, "":
		return naturalExplain(q, cfg)
	default:
		bag.Warnf(diag.UnsupportedConstruct, diag.Span{}, "unrecognized explanation format %q; using natural", cfg.Format)
		return naturalExplain(q, cfg)
	}
}

// RenderHTML converts a Markdown explanation report into an HTML
// fragment, for callers embedding it in a larger report page rather
// than printing it to a terminal.
func RenderHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func measureAggText(m ir.Measure) string {
	agg := string(m.Aggregation)
	if agg == "" {
		agg = string(ir.AggSum)
	}
	return agg + "(" + m.Name + ")"
}

func dimensionLabel(d ir.Dimension) string {
	label := d.Hierarchy.Hierarchy
	if d.Level.Level != "" && d.Level.Level != d.Hierarchy.Hierarchy {
		label += "." + d.Level.Level
	}
	return label
}

func selectionSuffix(sel ir.MemberSelection) string {
	switch s := sel.(type) {
	case ir.AllMembers:
		return ""
	case ir.SpecificMembers:
		return " IN (" + joinComma(s.Names) + ")"
	case ir.ChildrenMembers:
		return " children of " + s.Parent
	case ir.DescendantsMembers:
		return " descendants of " + s.Ancestor
	case ir.RangeMembers:
		return " from " + s.From + " to " + s.To
	}
	return ""
}

func joinComma(items []string) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += it
	}
	return out
}
