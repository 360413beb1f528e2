package explain

import (
	"encoding/json"

	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

// jsonExplain renders q as a structured document meant for machine
// consumption (a downstream diffing tool, a UI panel) rather than a
// person — plain encoding/json is the right tool here, not a config
// format like yaml.v3: this is a serialization boundary, not a
// human-authored document.
type jsonDoc struct {
	Cube         string             `json:"cube"`
	Measures     []jsonMeasure      `json:"measures"`
	Dimensions   []jsonDimension    `json:"dimensions"`
	Filters      []jsonFilter       `json:"filters,omitempty"`
	Calculations []jsonCalculation  `json:"calculations,omitempty"`
	OrderBy      []jsonOrderBy      `json:"order_by,omitempty"`
	Limit        *jsonLimit         `json:"limit,omitempty"`
	Metadata     *jsonMetadata      `json:"metadata,omitempty"`
}

type jsonMeasure struct {
	Name        string `json:"name"`
	Aggregation string `json:"aggregation"`
	Alias       string `json:"alias,omitempty"`
	Expression  string `json:"expression,omitempty"`
}

type jsonDimension struct {
	Hierarchy string   `json:"hierarchy"`
	Level     string   `json:"level"`
	Selection string   `json:"selection"`
	Members   []string `json:"members,omitempty"`
}

type jsonFilter struct {
	Type      string   `json:"type"`
	Target    string   `json:"target"`
	Operator  string   `json:"operator"`
	Values    []string `json:"values,omitempty"`
}

type jsonCalculation struct {
	Name       string `json:"name"`
	Expression string `json:"expression"`
}

type jsonOrderBy struct {
	Target    string `json:"target"`
	Direction string `json:"direction"`
}

type jsonLimit struct {
	Count     int    `json:"count"`
	Direction string `json:"direction"`
}

type jsonMetadata struct {
	Hints    map[string]string `json:"hints,omitempty"`
	Warnings []string          `json:"warnings,omitempty"`
	Errors   []string          `json:"errors,omitempty"`
}

func jsonExplain(q ir.Query, cfg Config, bag *diag.Bag) string {
	doc := jsonDoc{Cube: q.Cube.Name}

	for _, m := range q.Measures {
		jm := jsonMeasure{Name: m.Name, Aggregation: string(m.Aggregation), Alias: m.Alias}
		if m.Expression != nil {
			jm.Expression = sqlExpr(m.Expression)
		}
		doc.Measures = append(doc.Measures, jm)
	}

	for _, d := range q.Dimensions {
		jd := jsonDimension{Hierarchy: d.Hierarchy.Hierarchy, Level: d.Level.Level}
		switch s := d.Members.(type) {
		case ir.AllMembers:
			jd.Selection = "ALL"
		case ir.SpecificMembers:
			jd.Selection = "SPECIFIC"
			jd.Members = s.Names
		case ir.ChildrenMembers:
			jd.Selection = "CHILDREN"
			jd.Members = []string{s.Parent}
		case ir.DescendantsMembers:
			jd.Selection = "DESCENDANTS"
			jd.Members = []string{s.Ancestor}
		case ir.RangeMembers:
			jd.Selection = "RANGE"
			jd.Members = []string{s.From, s.To}
		}
		doc.Dimensions = append(doc.Dimensions, jd)
	}

	for _, f := range q.Filters {
		switch v := f.(type) {
		case *ir.DimensionFilter:
			doc.Filters = append(doc.Filters, jsonFilter{
				Type: "dimension", Target: v.Dimension.Table + "." + v.Dimension.Level,
				Operator: string(v.Operator), Values: v.Values,
			})
		case *ir.MeasureFilter:
			doc.Filters = append(doc.Filters, jsonFilter{
				Type: "measure", Target: v.MeasureName,
				Operator: string(v.Operator), Values: []string{formatFloat(v.Value)},
			})
		case *ir.NonEmptyFilter:
			doc.Filters = append(doc.Filters, jsonFilter{Type: "non_empty", Target: v.MeasureName})
		}
	}

	if cfg.Detail != DetailMinimal {
		for _, c := range q.Calculations {
			doc.Calculations = append(doc.Calculations, jsonCalculation{Name: c.Name, Expression: sqlExpr(c.Expression)})
		}
	}

	for _, o := range q.OrderBy {
		dir := o.Direction
		if dir == "" {
			dir = "ASC"
		}
		doc.OrderBy = append(doc.OrderBy, jsonOrderBy{Target: sqlExpr(o.Target), Direction: dir})
	}

	if q.Limit != nil {
		doc.Limit = &jsonLimit{Count: q.Limit.Count, Direction: string(q.Limit.Direction)}
	}

	if cfg.Detail == DetailDetailed {
		meta := &jsonMetadata{Hints: q.Metadata.Hints}
		for _, d := range q.Metadata.Warnings {
			meta.Warnings = append(meta.Warnings, d.Message)
		}
		for _, d := range q.Metadata.Errors {
			meta.Errors = append(meta.Errors, d.Message)
		}
		doc.Metadata = meta
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		bag.Warnf(diag.EmitterError, diag.Span{}, "failed to marshal explanation: %v", err)
		return "{}"
	}
	return string(out)
}
