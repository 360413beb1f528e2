// Package dax renders a (typically linted) IR Query into DAX text, the
// emitter half of the pipeline mirrored against the teacher's own
// generator-plus-helpers package layout: one file owning table/statement
// selection, satellite files for expressions, identifiers, and filters.
package dax

import (
	"strings"

	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// Config mirrors config.DaxConfig.
type Config struct {
	FormatOutput        bool
	IndentSize          int
	LineWidth           int
	UseSummarizeColumns bool
	EscapeReservedWords bool
}

// DefaultConfig matches the documented defaults: pretty-printed, 4-space
// indent, 100-column soft wrap, SUMMARIZECOLUMNS preferred.
func DefaultConfig() Config {
	return Config{FormatOutput: true, IndentSize: 4, LineWidth: 100, UseSummarizeColumns: true, EscapeReservedWords: true}
}

// Generate renders q as a DAX query string. A construct with no DAX
// counterpart records an emitter_error and is rendered as BLANK() in
// place; emission does not stop there, so the returned string is the whole
// query with that substitution rather than a prefix.
func Generate(q ir.Query, cfg Config, bag *diag.Bag) string {
	g := &generator{cfg: cfg, bag: bag}
	return g.generate(q)
}

type generator struct {
	cfg Config
	bag *diag.Bag
}

func (g *generator) generate(q ir.Query) string {
	var b strings.Builder

	table := g.factTable(q.Cube)

	for _, c := range q.Calculations {
		b.WriteString("DEFINE MEASURE ")
		b.WriteString(table)
		b.WriteString("[")
		b.WriteString(c.Name)
		b.WriteString("] = ")
		b.WriteString(g.expr(c.Expression))
		b.WriteString("\n")
	}

	switch {
	case len(q.Dimensions) > 0:
		b.WriteString("EVALUATE\n")
		b.WriteString(g.tableExpression(q, table))
	case len(q.Measures) > 0:
		b.WriteString("EVALUATE ")
		b.WriteString(g.measureRow(q.Measures))
	default:
		b.WriteString("EVALUATE ROW(\"Value\", 0)")
	}

	if len(q.OrderBy) > 0 {
		b.WriteString("\nORDER BY ")
		parts := make([]string, len(q.OrderBy))
		for i, o := range q.OrderBy {
			dir := o.Direction
			if dir == "" {
				dir = "ASC"
			}
			parts[i] = g.expr(o.Target) + " " + dir
		}
		b.WriteString(strings.Join(parts, ", "))
	}

	out := b.String()
	if g.cfg.FormatOutput {
		out = g.format(out)
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

func (g *generator) factTable(cube ir.CubeReference) string {
	name := cube.Name
	if name == "" {
		name = "Model"
	}
	return quoteIdent(name)
}

func (g *generator) measureRow(measures []ir.Measure) string {
	names := make([]string, len(measures))
	for i, m := range measures {
		names[i] = g.measureExpr(m)
	}
	return "{ " + strings.Join(names, ", ") + " }"
}

// tableExpression picks SUMMARIZECOLUMNS, optionally wrapped in
// CALCULATETABLE for dimension-equality filters or FILTER for
// NonEmptyFilter, per the §4.5 selection rules.
func (g *generator) tableExpression(q ir.Query, table string) string {
	summarize := g.summarizeColumns(q, table)

	filters := append([]ir.Filter(nil), q.Filters...)
	for _, d := range q.Dimensions {
		if af := g.axisMemberFilter(d); af != nil {
			filters = append(filters, af)
		}
	}

	var tableFilters []string
	var nonEmpty *ir.NonEmptyFilter
	for _, f := range filters {
		switch v := f.(type) {
		case *ir.DimensionFilter:
			if needsCalculateTableWrap(v, q.Dimensions) {
				tableFilters = append(tableFilters, g.dimensionFilterExpr(v))
			}
		case *ir.MeasureFilter:
			tableFilters = append(tableFilters, g.measureFilterExpr(v))
		case *ir.NonEmptyFilter:
			nonEmpty = v
		}
	}

	expr := summarize
	if len(tableFilters) > 0 {
		expr = "CALCULATETABLE(\n" + summarize + ",\n" + strings.Join(tableFilters, ",\n") + "\n)"
	}
	if nonEmpty != nil {
		measure := nonEmpty.MeasureName
		if measure == "" && len(q.Measures) > 0 {
			measure = q.Measures[0].DisplayName()
		}
		if measure != "" {
			expr = "FILTER(\n" + expr + ",\n[" + measure + "] <> BLANK()\n)"
		}
	}
	return expr
}

// needsCalculateTableWrap reports whether a DimensionFilter's dimension is
// NOT already projected with an ALL selection inside SUMMARIZECOLUMNS
// (which can carry its own equality/IN filter args) — anything else
// (specific-member selections, or a hierarchy absent from the axes) needs
// CALCULATETABLE.
func needsCalculateTableWrap(f *ir.DimensionFilter, dims []ir.Dimension) bool {
	for _, d := range dims {
		if d.Hierarchy.Table == f.Dimension.Table && d.Hierarchy.Hierarchy == f.Dimension.Hierarchy {
			if _, allMembers := d.Members.(ir.AllMembers); allMembers {
				return false
			}
		}
	}
	return true
}

func (g *generator) summarizeColumns(q ir.Query, table string) string {
	var args []string
	for _, d := range q.Dimensions {
		args = append(args, g.dimensionColumn(d))
	}
	for _, f := range q.Filters {
		if df, ok := f.(*ir.DimensionFilter); ok && !needsCalculateTableWrap(df, q.Dimensions) {
			args = append(args, g.dimensionFilterExpr(df))
		}
	}
	for _, m := range q.Measures {
		args = append(args, quoteString(m.DisplayName())+", "+g.measureExpr(m))
	}
	return "SUMMARIZECOLUMNS(\n" + indentLines(strings.Join(args, ",\n")) + "\n)"
}

func (g *generator) measureExpr(m ir.Measure) string {
	if m.Expression != nil {
		return g.expr(m.Expression)
	}
	return "[" + m.Name + "]"
}

func (g *generator) dimensionColumn(d ir.Dimension) string {
	return quoteIdent(d.Hierarchy.Table) + "[" + d.Level.Level + "]"
}

