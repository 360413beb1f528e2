package explain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdxtodax/unmdx/compiler/explain"
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

func sampleQuery() ir.Query {
	return ir.Query{
		Cube:     ir.CubeReference{Name: "Adventure Works"},
		Measures: []ir.Measure{{Name: "Sales Amount", Aggregation: ir.AggSum}},
		Dimensions: []ir.Dimension{{
			Hierarchy: ir.HierarchyReference{Table: "Product", Hierarchy: "Category"},
			Level:     ir.LevelReference{Level: "Category"},
			Members:   ir.AllMembers{},
		}},
	}
}

func TestGenerate_SQLFormat(t *testing.T) {
	bag := diag.NewBag(false, 0)
	out := explain.Generate(sampleQuery(), explain.Config{Format: explain.FormatSQL}, bag)
	assert.Contains(t, out, "SELECT")
	assert.Contains(t, out, "SUM(Sales Amount)")
	assert.Contains(t, out, "GROUP BY")
	assert.Empty(t, bag.Diagnostics())
}

func TestGenerate_NaturalFormat(t *testing.T) {
	bag := diag.NewBag(false, 0)
	out := explain.Generate(sampleQuery(), explain.Config{Format: explain.FormatNatural}, bag)
	assert.Contains(t, out, "Sales Amount")
	assert.Contains(t, out, "Category")
}

func TestGenerate_JSONFormat(t *testing.T) {
	bag := diag.NewBag(false, 0)
	out := explain.Generate(sampleQuery(), explain.Config{Format: explain.FormatJSON, Detail: explain.DetailStandard}, bag)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Adventure Works", doc["cube"])
}

func TestGenerate_MarkdownFormat(t *testing.T) {
	bag := diag.NewBag(false, 0)
	out := explain.Generate(sampleQuery(), explain.Config{Format: explain.FormatMarkdown, Detail: explain.DetailStandard}, bag)
	assert.Contains(t, out, "#")
	assert.Contains(t, out, "Sales Amount")
}

func TestGenerate_UnknownFormatFallsBackToNaturalWithWarning(t *testing.T) {
	bag := diag.NewBag(false, 0)
	out := explain.Generate(sampleQuery(), explain.Config{Format: explain.Format("xml")}, bag)
	assert.Contains(t, out, "Sales Amount")
	require.Len(t, bag.Diagnostics(), 1)
	assert.Equal(t, diag.UnsupportedConstruct, bag.Diagnostics()[0].Kind)
}

func TestRenderHTML_WrapsMarkdownInHTMLTags(t *testing.T) {
	html, err := explain.RenderHTML("# Heading\n\nSome *text*.")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Heading</h1>")
	assert.Contains(t, html, "<em>text</em>")
}

func TestGenerate_MarkdownWithRenderHTML(t *testing.T) {
	bag := diag.NewBag(false, 0)
	out := explain.Generate(sampleQuery(), explain.Config{Format: explain.FormatMarkdown, RenderHTML: true}, bag)
	assert.Contains(t, out, "<")
	assert.NotContains(t, out, "##")
}
