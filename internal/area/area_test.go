package area

import (
	"testing"

	"chartspec/internal/dataset"
	"chartspec/internal/ir"
	"chartspec/internal/options"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackedArea(t *testing.T) {
	o := options.AreaOptions{}.WithDefaults(0, options.ChartOptions{})
	require.True(t, o.IsStacked())

	data := AddData(dataset.Initialize(nil, ""), o)
	assert.Equal(t, []ir.Transform{
		ir.StackTransform{Type: "stack", Groupby: []string{"datetime"}, Field: "value", As: []string{"value0", "value1"}},
		ir.Formula("datum.datetime", "rscStackId"),
	}, data[1].Transform)

	scales := AddScales(nil, o)
	y := scales[ir.ScaleIndex(scales, "yLinear")]
	assert.Equal(t, []string{"value1"}, y.Domain.Fields)

	marks := AddMarks(nil, o)
	require.Len(t, marks, 1)
	area := marks[0].Marks[0]
	assert.Equal(t, "area0", area.Name)
	assert.Equal(t, ir.Production{{Scale: "yLinear", Field: "value0"}}, area.Encode.Enter["y"])
	assert.Equal(t, ir.Production{{Scale: "yLinear", Field: "value1"}}, area.Encode.Enter["y2"])
	assert.Equal(t, ir.Production{{Value: 0.8}}, area.Encode.Update["fillOpacity"])
	assert.Equal(t, ir.Bool(false), area.Interactive)
}

func TestRangeArea(t *testing.T) {
	o := options.AreaOptions{MetricStart: "low", MetricEnd: "high", ScaleType: options.ScaleLinear, Dimension: "x"}.
		WithDefaults(0, options.ChartOptions{})
	require.False(t, o.IsStacked())

	data := AddData(dataset.Initialize(nil, ""), o)
	assert.Empty(t, data[1].Transform)
	assert.Len(t, data[0].Transform, 1, "linear dimensions are not bucketed")

	scales := AddScales(nil, o)
	assert.Equal(t, []string{"low", "high"}, scales[ir.ScaleIndex(scales, "yLinear")].Domain.Fields)
	assert.GreaterOrEqual(t, ir.ScaleIndex(scales, "xLinear"), 0)
}

func TestAreaInteractions(t *testing.T) {
	o := options.AreaOptions{
		Tooltips: []options.TooltipOptions{{}},
		Popovers: []options.PopoverOptions{{}},
	}.WithDefaults(0, options.ChartOptions{})

	signals := AddSignals(nil, o)
	require.Len(t, signals, 2)
	assert.Equal(t, "highlightedSeries", signals[0].Name)
	assert.Equal(t, "@area0:mouseover", signals[0].On[0].Events)
	assert.Equal(t, []ir.Handler{{Events: "@area0:click", Update: "datum.series"}}, signals[1].On)

	area := AddMarks(nil, o)[0].Marks[0]
	assert.Nil(t, area.Interactive)
	assert.Len(t, area.Encode.Update["fillOpacity"], 2)
	assert.Len(t, area.Encode.Update["stroke"], 2)
	assert.Equal(t, ir.Production{{Value: "pointer"}}, area.Encode.Update["cursor"])
}
