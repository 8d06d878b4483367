package line

import (
	"testing"

	"chartspec/internal/dataset"
	"chartspec/internal/ir"
	"chartspec/internal/names"
	"chartspec/internal/options"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultLine(o options.LineOptions) options.LineOptions {
	return o.WithDefaults(0, options.ChartOptions{})
}

func TestDefaultLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartspec.line")
	defer teardown()

	o := defaultLine(options.LineOptions{})

	// 1. data: the dimension is bucketed on table
	data := AddData(dataset.Initialize(nil, names.MarkID), o)
	require.Len(t, data, 2)
	assert.Equal(t, []ir.Transform{
		ir.Identifier("rscMarkId"),
		ir.Formula(`toDate(datum["datetime"])`, "datetime"),
		ir.TimeUnit("datetime", []string{"year", "month", "date"}, []string{"datetime", "datetime1"}),
	}, data[0].Transform)

	// 2. scales
	scales := AddScales(nil, o)
	require.Len(t, scales, 3)
	assert.Equal(t, "color", scales[0].Name)
	assert.Equal(t, ir.Scale{
		Name: "xTime", Type: "time", Range: "width",
		Domain: &ir.Domain{Data: "filteredTable", Fields: []string{"datetime"}},
	}, scales[1])
	assert.Equal(t, "yLinear", scales[2].Name)

	// 3. no interactions, no signals
	assert.Empty(t, AddSignals(nil, o))

	// 4. marks
	marks := AddMarks(nil, o)
	require.Len(t, marks, 1)
	group := marks[0]
	assert.Equal(t, "line0_group", group.Name)
	assert.Equal(t, &ir.Facet{Name: "line0_facet", Data: "filteredTable", Groupby: []string{"series"}}, group.From.Facet)
	line := group.Marks[0]
	assert.Equal(t, "line", line.Type)
	assert.Equal(t, "line0_facet", line.From.Data)
	assert.Equal(t, ir.Production{{Scale: "color", Field: "series"}}, line.Encode.Enter["stroke"])
	assert.Equal(t, ir.Production{{Value: []float64{}}}, line.Encode.Enter["strokeDash"])
	assert.Equal(t, ir.Production{{Value: 2.0}}, line.Encode.Enter["strokeWidth"])
	assert.Equal(t, ir.Production{{Scale: "xTime", Field: "datetime"}}, line.Encode.Update["x"])
}

func TestTimeTransformIsAddedOnce(t *testing.T) {
	first := defaultLine(options.LineOptions{})
	second := options.LineOptions{Color: first.Color}.WithDefaults(1, options.ChartOptions{})

	data := AddData(dataset.Initialize(nil, ""), first)
	data = AddData(data, second)
	assert.Len(t, data[0].Transform, 3)
}

func TestInteractiveLine(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartspec.line")
	defer teardown()

	o := defaultLine(options.LineOptions{
		Tooltips: []options.TooltipOptions{{ExcludeDataKeys: []string{"excludeFromTooltip"}}},
		Popovers: []options.PopoverOptions{{}},
	})

	data := AddData(dataset.Initialize(nil, ""), o)
	assert.GreaterOrEqual(t, ir.DataIndex(data, "line0_highlightedData"), 0)
	assert.GreaterOrEqual(t, ir.DataIndex(data, "line0_selectedData"), 0)
	assert.NoError(t, dataset.CheckClosure(data))

	signals := AddSignals(nil, o)
	hi := signals[ir.SignalIndex(signals, "highlightedItem")]
	assert.Equal(t, []ir.Handler{
		{Events: "@line0_hoverArea:mouseover", Update: "(datum.excludeFromTooltip) ? null : datum.rscMarkId"},
		{Events: "@line0_hoverArea:mouseout", Update: "null"},
	}, hi.On)
	sel := signals[ir.SignalIndex(signals, "selectedSeries")]
	assert.Equal(t, []ir.Handler{{Events: "@line0_hoverArea:click", Update: "datum.series"}}, sel.On)

	marks := AddMarks(nil, o)
	var got []string
	for _, m := range marks {
		got = append(got, m.Name)
	}
	assert.Equal(t, []string{"line0_group", "line0_hoverRule", "line0_point", "line0_hoverArea", "line0_pointSelect"}, got)

	area := marks[ir.MarkIndex(marks, "line0_hoverArea")]
	assert.Nil(t, area.Interactive)
	assert.Equal(t, ir.Production{{Signal: "datum"}}, area.Encode.Enter["tooltip"])
	assert.Equal(t, ir.Production{{Value: "pointer"}}, area.Encode.Update["cursor"])
}

func TestLineSeriesHighlight(t *testing.T) {
	chart := options.ChartOptions{HighlightedSeries: "a"}
	o := options.LineOptions{}.WithDefaults(0, chart)
	line := AddMarks(nil, o)[0].Marks[0]
	opacity := line.Encode.Update["strokeOpacity"]
	require.Len(t, opacity, 2)
	assert.Equal(t, "isValid(highlightedSeries) && highlightedSeries !== datum.series", opacity[0].Test)
	assert.Equal(t, 0.2, opacity[0].Value)
}

func TestPointScaleAndStaticPoints(t *testing.T) {
	pad := 0.3
	o := defaultLine(options.LineOptions{ScaleType: options.ScalePoint, Padding: &pad, StaticPoint: "isKey"})

	data := AddData(dataset.Initialize(nil, ""), o)
	assert.Len(t, data[0].Transform, 1, "point dimensions are not bucketed")
	assert.Equal(t, []ir.Transform{ir.Filter("datum.isKey === true")}, data[ir.DataIndex(data, "line0_staticPointData")].Transform)

	scales := AddScales(nil, o)
	xp := scales[ir.ScaleIndex(scales, "xPoint")]
	assert.Equal(t, 0.3, *xp.Padding)

	marks := AddMarks(nil, o)
	assert.Equal(t, "line0_staticPoints", marks[1].Name)
}

func TestTrendlinesAreCompiled(t *testing.T) {
	o := defaultLine(options.LineOptions{Trendlines: []options.TrendlineOptions{{Method: "average"}}})
	data := AddData(dataset.Initialize(nil, ""), o)
	assert.GreaterOrEqual(t, ir.DataIndex(data, "line0Trendline0_data"), 0)

	marks := AddMarks(nil, o)
	assert.Equal(t, "line0Trendline0_group", marks[len(marks)-1].Name)
	trend := marks[len(marks)-1].Marks[0]
	assert.Equal(t, ir.Production{{Scale: "xTime", Field: "datetime"}}, trend.Encode.Enter["x"])
}
