// Package ir holds the normalized semantic tree the lowerer builds from
// the parse tree, the linter rewrites pass by pass, and the emitters
// consume read-only. Every variant of an interface here carries a Kind
// discriminant plus an unpack:"" tag, following the teacher's ast.go
// pattern, so the tree can round-trip through pkg/unpack for --debug
// dumps and the json explanation format.
package ir

import "github.com/mdxtodax/unmdx/diag"

// Query is the IR root. It is built once by the lowerer; each linter pass
// returns a fresh Query rather than mutating one in place.
type Query struct {
	Kind         string `json:"kind" unpack:""`
	Cube         CubeReference
	Measures     []Measure
	Dimensions   []Dimension
	Filters      []Filter
	Calculations []Calculation
	OrderBy      []OrderBy
	Limit        *Limit
	Metadata     QueryMetadata
	Span         diag.Span
	// Valid is false once the validator has recorded a semantic_error
	// against this Query; downstream stages still run best-effort.
	Valid bool
}

// Clone returns a shallow copy of q with fresh top-level slices, so a
// linter pass can mutate the copy's slices without aliasing the input.
func (q Query) Clone() Query {
	c := q
	c.Measures = append([]Measure(nil), q.Measures...)
	c.Dimensions = append([]Dimension(nil), q.Dimensions...)
	c.Filters = append([]Filter(nil), q.Filters...)
	c.Calculations = append([]Calculation(nil), q.Calculations...)
	c.OrderBy = append([]OrderBy(nil), q.OrderBy...)
	return c
}

type CubeReference struct {
	Database string `json:"database,omitempty"`
	Name     string `json:"name"`
}

type Aggregation string

const (
	AggSum           Aggregation = "SUM"
	AggAvg           Aggregation = "AVG"
	AggCount         Aggregation = "COUNT"
	AggDistinctCount Aggregation = "DISTINCT_COUNT"
	AggMin           Aggregation = "MIN"
	AggMax           Aggregation = "MAX"
	AggCustom        Aggregation = "CUSTOM"
)

// Measure is a base measure projected by the query. For AggCustom,
// Expression must be non-nil and reference only other measures, members,
// and constants.
type Measure struct {
	Name         string
	Aggregation  Aggregation
	Expression   Expression `json:"expression,omitempty"`
	Alias        string     `json:"alias,omitempty"`
	FormatString string     `json:"format_string,omitempty"`
	Span         diag.Span
}

func (m Measure) DisplayName() string {
	if m.Alias != "" {
		return m.Alias
	}
	return m.Name
}

type HierarchyReference struct {
	Table     string
	Hierarchy string
}

type LevelReference struct {
	Level string
}

// Dimension is one grouping axis in the output.
type Dimension struct {
	Hierarchy HierarchyReference
	Level     LevelReference
	Members   MemberSelection
	Span      diag.Span
}

// SameHierarchy reports whether d and other group the same
// table+hierarchy, ignoring level and member selection — used by the
// hierarchy-collapse rule.
func (d Dimension) SameHierarchy(other Dimension) bool {
	return d.Hierarchy == other.Hierarchy
}

type OrderBy struct {
	Target    Expression
	Direction string // "ASC" or "DESC"
}

type LimitDirection string

const (
	Top    LimitDirection = "TOP"
	Bottom LimitDirection = "BOTTOM"
)

type Limit struct {
	Count     int
	Direction LimitDirection
}

// QueryMetadata carries advisory information alongside the semantic
// content: recognized hints, accumulated diagnostics split by severity
// for convenient CLI reporting, and the query's originating source span.
type QueryMetadata struct {
	Hints    map[string]string   `json:"hints,omitempty"`
	Warnings []diag.Diagnostic   `json:"warnings,omitempty"`
	Errors   []diag.Diagnostic   `json:"errors,omitempty"`
	Span     diag.Span           `json:"span"`
	Debug    map[string]string   `json:"debug,omitempty"`
}
