package legend

import (
	"testing"

	"chartspec/internal/dataset"
	"chartspec/internal/facet"
	"chartspec/internal/ir"
	"chartspec/internal/options"
	"chartspec/internal/scale"
	"chartspec/internal/theme"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colorScales(field string) []ir.Scale {
	return scale.AddFieldToFacetScale(nil, facet.TypeColor, facet.Field(field))
}

func TestLegendData(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartspec.legend")
	defer teardown()

	o := options.LegendOptions{}.WithDefaults(0)
	scales := colorScales("series")
	data := AddData(dataset.Initialize(nil, ""), o, scales, options.ChartOptions{})

	require.Len(t, data, 3)
	assert.Equal(t, ir.Data{
		Name:   "legend0Aggregate",
		Source: "table",
		Transform: []ir.Transform{
			ir.AggregateTransform{Type: "aggregate", Groupby: []string{"series"}},
			ir.Formula("datum.series", "legend0Entries"),
		},
	}, data[2])
	// not toggleable and nothing hidden: filteredTable is untouched
	assert.Len(t, data[1].Transform, 0)
	assert.NoError(t, dataset.CheckClosure(data))
}

func TestLegendWithoutFacetsAddsNothing(t *testing.T) {
	o := options.LegendOptions{}.WithDefaults(0)
	data := dataset.Initialize(nil, "")
	assert.Equal(t, data, AddData(data, o, nil, options.ChartOptions{}))
	assert.Empty(t, AddScales(nil, o))
	assert.Empty(t, Legends(o, nil, theme.Light))
}

func TestToggleableLegendFiltersHiddenSeriesOnce(t *testing.T) {
	o := options.LegendOptions{IsToggleable: true, HiddenEntries: []string{"a"}}.WithDefaults(0)
	scales := colorScales("series")

	data := AddData(dataset.Initialize(nil, ""), o, scales, options.ChartOptions{})
	data = AddData(data, o, scales, options.ChartOptions{})

	filtered, ok := dataset.Find(data, "filteredTable")
	require.True(t, ok)
	require.Len(t, filtered.Transform, 1)
	assert.Equal(t, ir.Filter("indexof(hiddenSeries, datum.series) === -1"), filtered.Transform[0])

	agg, _ := dataset.Find(data, "legend0Aggregate")
	require.Len(t, agg.Transform, 3)
	assert.Equal(t, ir.Filter(`indexof(["a"], datum.legend0Entries) === -1`), agg.Transform[2])
}

func TestChartHiddenSeriesFilterWithoutToggle(t *testing.T) {
	o := options.LegendOptions{}.WithDefaults(0)
	data := AddData(dataset.Initialize(nil, ""), o, colorScales("series"),
		options.ChartOptions{HiddenSeries: []string{"Windows"}})
	filtered, _ := dataset.Find(data, "filteredTable")
	assert.Len(t, filtered.Transform, 1)
}

func TestLegendEntriesScale(t *testing.T) {
	o := options.LegendOptions{}.WithDefaults(0)
	scales := AddScales(colorScales("series"), o)
	s, ok := scale.Find(scales, "legend0Entries")
	require.True(t, ok)
	assert.Equal(t, "ordinal", s.Type)
	assert.Equal(t, &ir.Domain{Data: "legend0Aggregate", Field: "legend0Entries"}, s.Domain)
}

func TestLegendHighlightSignals(t *testing.T) {
	assert.Empty(t, AddSignals(nil, options.LegendOptions{}.WithDefaults(0)))

	signals := AddSignals(nil, options.LegendOptions{Highlight: true}.WithDefaults(0))
	require.Len(t, signals, 1)
	assert.Equal(t, "highlightedSeries", signals[0].Name)
	assert.Equal(t, []ir.Handler{
		{Events: "@legend0_legendEntry:mouseover", Update: "datum.value"},
		{Events: "@legend0_legendEntry:mouseout", Update: "null"},
	}, signals[0].On)
}

func TestEntriesLegend(t *testing.T) {
	o := options.LegendOptions{Highlight: true, Title: "OS", Position: "right"}.WithDefaults(0)
	legends := Legends(o, colorScales("series"), theme.Light)
	require.Len(t, legends, 1)

	l := legends[0]
	assert.Equal(t, "legend0Entries", l.Fill)
	assert.Equal(t, "right", l.Orient)
	assert.Equal(t, "vertical", l.Direction)
	assert.Equal(t, "OS", l.Title)
	assert.Equal(t, 180, l.LabelLimit)
	assert.Equal(t, "rounded-square", l.SymbolType)

	entries := l.Encode["entries"]
	assert.Equal(t, "legend0_legendEntry", entries.Name)
	assert.Equal(t, ir.Bool(true), entries.Interactive)

	symbols := l.Encode["symbols"].Update
	assert.Equal(t, ir.Production{{Signal: "scale('color', data('legend0Aggregate')[datum.index].series)"}}, symbols["fill"])
	opacity := symbols["fillOpacity"]
	require.Len(t, opacity, 3)
	assert.Equal(t, "indexof(hiddenSeries, datum.value) !== -1", opacity[0].Test)
	assert.Equal(t, "isValid(highlightedSeries) && highlightedSeries !== datum.value", opacity[1].Test)
	assert.Equal(t, ir.ValueRef{Value: 1}, opacity[2])
}

func TestLegendLineTypeOverride(t *testing.T) {
	o := options.LegendOptions{LineType: facet.Field("kind")}.WithDefaults(0)
	ordinal, _ := Facets(o, colorScales("series"))
	assert.Equal(t, []facet.Facet{
		{Type: facet.TypeColor, Field: "series"},
		{Type: facet.TypeLineType, Field: "kind"},
	}, ordinal)

	l := Legends(o, colorScales("series"), theme.Light)[0]
	assert.Equal(t, "stroke", l.SymbolType)
	assert.Equal(t, ir.Production{{Signal: "scale('lineType', data('legend0Aggregate')[datum.index].kind)"}},
		l.Encode["symbols"].Update["strokeDash"])
	assert.Nil(t, l.Encode["entries"].Interactive)
}

func TestContinuousLegends(t *testing.T) {
	scales := scale.AddFieldToFacetScale(nil, facet.TypeSymbolSize, facet.Field("weight"))
	scales = scale.AddFieldToFacetScale(scales, facet.TypeLinearColor, facet.Field("temp"))

	legends := Legends(options.LegendOptions{}.WithDefaults(0), scales, theme.Light)
	require.Len(t, legends, 2)
	assert.Equal(t, "symbolSize", legends[0].Size)
	assert.Equal(t, "gradient", legends[1].Type)
	assert.Equal(t, "linearColor", legends[1].Fill)
	assert.Equal(t, "horizontal", legends[1].Direction)
}
