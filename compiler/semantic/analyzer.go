// Package semantic lowers an MDX parse tree (compiler/ast) into the
// normalized IR (compiler/ir), the way the teacher's own semantic
// package walks an AST into a DAG: a single analyzer struct threads a
// diagnostics accumulator and per-invocation scope through a set of
// sem*-style dispatch methods, one per node shape.
package semantic

import (
	"strings"

	"github.com/mdxtodax/unmdx/compiler/ast"
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// Config mirrors config.ParserConfig's semantics-affecting fields.
type Config struct {
	StrictMode             bool
	AllowUnknownFunctions  bool
}

type lowerer struct {
	bag       *diag.Bag
	cfg       Config
	hints     map[string]string
	calcNames map[string]bool
	setAlias  map[string]ast.SetExpr
	nested    map[diag.Span]bool // axes that already reported excessive_nesting
}

// Lower walks q once and produces its IR, extracting hints into the
// result's metadata and recording every diagnostic on bag. It never
// panics on malformed input; a Query with unresolved pieces is still
// returned so downstream stages can run best-effort.
func Lower(q *ast.Query, hints map[string]string, cfg Config, bag *diag.Bag) *ir.Query {
	l := &lowerer{
		bag:       bag,
		cfg:       cfg,
		hints:     hints,
		calcNames: map[string]bool{},
		setAlias:  map[string]ast.SetExpr{},
		nested:    map[diag.Span]bool{},
	}
	return l.lowerQuery(q)
}

func (l *lowerer) lowerQuery(q *ast.Query) *ir.Query {
	out := &ir.Query{Kind: "Query"}
	if q == nil {
		return out
	}
	out.Span = q.Span()

	for _, w := range q.With {
		if md, ok := w.(*ast.MemberDecl); ok {
			l.calcNames[lastPart(md.Path)] = true
		}
	}
	for _, w := range q.With {
		switch item := w.(type) {
		case *ast.MemberDecl:
			out.Calculations = append(out.Calculations, l.lowerMemberDecl(item))
		case *ast.SetDecl:
			l.setAlias[item.Alias] = item.Set
		}
	}

	if q.Select != nil {
		l.lowerSelect(q.Select, out)
	}

	out.Metadata.Hints = l.hints
	out.Metadata.Span = out.Span
	ir.Validate(out, l.bag)
	for _, d := range l.bag.Diagnostics() {
		switch d.Severity {
		case diag.Error:
			out.Metadata.Errors = append(out.Metadata.Errors, d)
		case diag.Warning:
			out.Metadata.Warnings = append(out.Metadata.Warnings, d)
		}
	}
	return out
}

func (l *lowerer) lowerSelect(sel *ast.SelectStmt, out *ir.Query) {
	out.Cube = l.lowerCubeSpec(sel.Cube)
	for _, axis := range sel.Axes {
		l.lowerAxis(axis, out)
	}
	if sel.Where != nil {
		l.lowerWhere(sel.Where, out)
	}
}

func (l *lowerer) lowerCubeSpec(cs ast.CubeSpec) ir.CubeReference {
	switch c := cs.(type) {
	case *ast.CubeName:
		return ir.CubeReference{Database: c.Database, Name: c.Name}
	case *ast.SubSelectCube:
		l.bag.Add(diag.Diagnostic{
			Severity: diag.Warning, Kind: diag.UnsupportedConstruct,
			Message: "sub-select cube sources are not modeled; using the inner query's cube",
			Span:    c.Span(), Suggestion: diag.Suggest("unsupported_construct:subselect_cube"),
		})
		if c.Select != nil {
			return l.lowerCubeSpec(c.Select.Cube)
		}
	}
	return ir.CubeReference{}
}

func lastPart(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

func isMeasuresPath(parts []string) bool {
	return len(parts) > 0 && strings.EqualFold(parts[0], "Measures")
}

// addNonEmptyFilter records that at least one axis carried NON EMPTY,
// deduplicating across axes: a second NON EMPTY axis is a no-op against an
// already-present filter.
func (l *lowerer) addNonEmptyFilter(out *ir.Query) {
	for _, f := range out.Filters {
		if _, ok := f.(*ir.NonEmptyFilter); ok {
			return
		}
	}
	out.Filters = append(out.Filters, &ir.NonEmptyFilter{Kind: "NonEmptyFilter"})
}
