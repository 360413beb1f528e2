package explain

import (
	"strings"

	"github.com/mdxtodax/unmdx/compiler/dax"
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// markdownExplain produces a sectioned report suitable for pasting into a
// migration ticket: a summary line, a measures/dimensions/filters table,
// optionally the generated DAX and conversion metadata.
func markdownExplain(q ir.Query, cfg Config, bag *diag.Bag) string {
	var b strings.Builder

	b.WriteString("# Query Explanation\n\n")
	b.WriteString(calcSentence(q) + "\n\n")

	if len(q.Measures) > 0 {
		b.WriteString("## Measures\n\n")
		b.WriteString("| Name | Aggregation | Alias |\n|---|---|---|\n")
		for _, m := range q.Measures {
			b.WriteString("| " + m.Name + " | " + string(m.Aggregation) + " | " + m.Alias + " |\n")
		}
		b.WriteString("\n")
	}

	if len(q.Dimensions) > 0 {
		b.WriteString("## Dimensions\n\n")
		b.WriteString("| Hierarchy | Level | Selection |\n|---|---|---|\n")
		for _, d := range q.Dimensions {
			b.WriteString("| " + d.Hierarchy.Hierarchy + " | " + d.Level.Level + " | " + selectionKind(d.Members) + " |\n")
		}
		b.WriteString("\n")
	}

	if len(q.Filters) > 0 {
		b.WriteString("## Filters\n\n")
		for _, f := range filterSentences(q) {
			b.WriteString("- " + f + "\n")
		}
		b.WriteString("\n")
	}

	if cfg.Detail != DetailMinimal && len(q.Calculations) > 0 {
		b.WriteString("## Calculated Measures\n\n")
		for _, c := range q.Calculations {
			b.WriteString("- **" + c.Name + "** = `" + sqlExpr(c.Expression) + "`\n")
		}
		b.WriteString("\n")
	}

	if cfg.IncludeDAXComparison {
		daxCfg := cfg.DaxConfig
		if daxCfg == (dax.Config{}) {
			daxCfg = dax.DefaultConfig()
		}
		b.WriteString("## Generated DAX\n\n```dax\n")
		b.WriteString(dax.Generate(q, daxCfg, bag))
		b.WriteString("```\n\n")
	}

	if cfg.Detail == DetailDetailed {
		b.WriteString("## Conversion Notes\n\n")
		if len(q.Metadata.Warnings) == 0 && len(q.Metadata.Errors) == 0 {
			b.WriteString("No warnings or errors were recorded during conversion.\n")
		}
		for _, d := range q.Metadata.Errors {
			b.WriteString("- ERROR: " + d.Message + "\n")
		}
		for _, d := range q.Metadata.Warnings {
			b.WriteString("- WARNING: " + d.Message + "\n")
		}
		if len(q.Metadata.Hints) > 0 {
			b.WriteString("\n### Hints\n\n")
			for k, v := range q.Metadata.Hints {
				b.WriteString("- `" + k + "` = `" + v + "`\n")
			}
		}
	}

	return b.String()
}

func selectionKind(sel ir.MemberSelection) string {
	switch sel.(type) {
	case ir.AllMembers:
		return "ALL"
	case ir.SpecificMembers:
		return "SPECIFIC"
	case ir.ChildrenMembers:
		return "CHILDREN"
	case ir.DescendantsMembers:
		return "DESCENDANTS"
	case ir.RangeMembers:
		return "RANGE"
	default:
		return "?"
	}
}
