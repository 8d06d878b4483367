package graph

import (
	"strings"
	"testing"

	"chartspec/internal/ir"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSpec() ir.Spec {
	return ir.Spec{
		Data: []ir.Data{
			{Name: "table"},
			{Name: "filteredTable", Source: "table"},
			{Name: "bar0_stacks", Source: "filteredTable"},
		},
		Scales: []ir.Scale{
			{Name: "xBand", Type: "band", Domain: &ir.Domain{Data: "filteredTable", Fields: []string{"category"}}},
			{Name: "yLinear", Type: "linear", Domain: &ir.Domain{Data: "filteredTable", Fields: []string{"value1"}}},
		},
		Signals: []ir.Signal{
			{Name: "highlightedItem", On: []ir.Handler{{Events: "@bar0:mouseover", Update: "datum.rscMarkId"}}},
		},
		Marks: []ir.Mark{{
			Name: "bar0",
			Type: "rect",
			From: &ir.From{Data: "filteredTable"},
			Encode: &ir.Encode{Enter: ir.EncodeEntry{
				"x": {{Scale: "xBand", Field: "category"}},
				"y": {{Signal: "scale('yLinear', datum.value1)"}},
			}},
		}},
		Axes: []ir.Axis{{Scale: "xBand", Orient: "bottom"}},
	}
}

func TestFromSpec(t *testing.T) {
	g := FromSpec(sampleSpec())
	require.Empty(t, g.Unresolved)

	t.Run("Mark dependencies", func(t *testing.T) {
		deps := g.GetDependencies("mark:bar0")
		var got []string
		for _, d := range deps {
			got = append(got, d.ID)
		}
		assert.ElementsMatch(t, []string{"data:filteredTable", "scale:xBand", "scale:yLinear"}, got)
	})

	t.Run("Dependent lookup", func(t *testing.T) {
		dependents := g.GetDependents("scale:xBand")
		assert.Len(t, dependents, 2, "mark and axis")
	})

	t.Run("Event resolution", func(t *testing.T) {
		deps := g.GetDependencies("signal:highlightedItem")
		require.Len(t, deps, 1)
		assert.Equal(t, "bar0", deps[0].Name)
	})

	counts := g.KindCounts()
	assert.Equal(t, 3, counts[KindData])
	assert.Equal(t, 1, counts[KindAxis])
}

func TestDanglingReferences(t *testing.T) {
	spec := sampleSpec()
	spec.Data = append(spec.Data, ir.Data{Name: "orphan", Source: "nowhere"})
	spec.Marks[0].Encode.Enter["fill"] = ir.Production{{Scale: "color", Field: "series"}}
	// derived before its source
	spec.Data = append([]ir.Data{{Name: "early", Source: "bar0_stacks"}}, spec.Data...)

	g := FromSpec(spec)
	assert.Len(t, g.Unresolved, 3)
	counts := g.UnresolvedReasonCounts()
	assert.Equal(t, 2, counts[ReasonNoCandidate])
	assert.Equal(t, 1, counts[ReasonOutOfOrder])
}

func TestFacetNamesAreData(t *testing.T) {
	spec := sampleSpec()
	spec.Marks = []ir.Mark{{
		Name: "line0_group",
		Type: "group",
		From: &ir.From{Facet: &ir.Facet{Name: "line0_facet", Data: "filteredTable", Groupby: []string{"series"}}},
		Marks: []ir.Mark{{
			Name: "line0",
			Type: "line",
			From: &ir.From{Data: "line0_facet"},
		}},
	}}
	spec.Signals = nil
	g := FromSpec(spec)
	assert.Empty(t, g.Unresolved)
	assert.Len(t, g.GetDependencies("mark:line0_group"), 2, "facet source and child")
}

func TestMermaid(t *testing.T) {
	out := Mermaid(FromSpec(sampleSpec()), true)
	assert.True(t, strings.HasPrefix(out, "```mermaid\ngraph LR\n"))
	assert.Contains(t, out, "subgraph data")
	assert.Contains(t, out, `data_filteredTable[("filteredTable")]`)
	assert.Contains(t, out, "mark_bar0 -->|encode| scale_xBand")
	assert.True(t, strings.HasSuffix(out, "```\n"))
}

func TestExpressionReferencesWithArguments(t *testing.T) {
	spec := sampleSpec()
	spec.Marks[0].Encode.Enter["size"] = ir.Production{{Signal: "scale('symbolSize', datum.weight)"}}
	spec.Marks[0].Encode.Enter["width"] = ir.Production{{Signal: "bandwidth('xBand')"}}

	g := FromSpec(spec)
	require.Len(t, g.Unresolved, 1)
	assert.Equal(t, "scale:symbolSize", g.Unresolved[0].Target)
	assert.Equal(t, RelationExpression, g.Unresolved[0].Kind)
}

func TestMarkAsDataSource(t *testing.T) {
	spec := sampleSpec()
	spec.Marks = append(spec.Marks, ir.Mark{
		Name: "bar0_annotationGroup",
		Type: "group",
		Marks: []ir.Mark{
			{Name: "bar0_annotationText", Type: "text", From: &ir.From{Data: "filteredTable"}},
			{Name: "bar0_annotationBackground", Type: "rect", From: &ir.From{Data: "bar0_annotationText"}},
		},
	})

	g := FromSpec(spec)
	assert.Empty(t, g.Unresolved)
	deps := g.GetDependencies("mark:bar0_annotationBackground")
	require.Len(t, deps, 1)
	assert.Equal(t, KindMark, deps[0].Kind)

	// an undeclared source is still dangling
	spec.Marks[1].Marks[1].From.Data = "bar0_missing"
	g = FromSpec(spec)
	require.Len(t, g.Unresolved, 1)
	assert.Equal(t, "data:bar0_missing", g.Unresolved[0].Target)
}
