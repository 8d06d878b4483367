package axis

import (
	"testing"

	"chartspec/internal/ir"
	"chartspec/internal/options"
	"chartspec/internal/scale"
	"chartspec/internal/theme"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barScales() []ir.Scale {
	scales := scale.AddBandScale(nil, "x", "category", 0.4, nil)
	scales = scale.AddTrellisScale(scales, "x", "region", 0.2)
	return scale.AddMetricScale(scales, "y", "", "value1")
}

func TestScaleForPrefersBand(t *testing.T) {
	scales := scale.AddContinuousDimensionScale(barScales(), "x", scale.Time, "datetime", nil)

	s, ok := ScaleFor(options.AxisOptions{Position: "bottom"}, scales)
	require.True(t, ok)
	assert.Equal(t, "xBand", s.Name)

	s, ok = ScaleFor(options.AxisOptions{Position: "left"}, scales)
	require.True(t, ok)
	assert.Equal(t, "yLinear", s.Name)

	_, ok = ScaleFor(options.AxisOptions{Position: "left"}, nil)
	assert.False(t, ok)
}

func TestAxes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartspec.axis")
	defer teardown()

	axes := Axes([]options.AxisOptions{
		{Position: "bottom", BaseLine: true},
		{Position: "left", Grid: true, LabelFormat: "shortNumber", Title: "Users"},
		{Position: "top"},
	}, barScales(), theme.Light)

	// trellis scale is never an axis: top binds to xBand as well
	require.Len(t, axes, 3)
	assert.Equal(t, "xBand", axes[0].Scale)
	assert.Equal(t, ir.Bool(true), axes[0].Domain)
	assert.Equal(t, ir.Bool(false), axes[0].Ticks)
	assert.Empty(t, axes[0].Format)

	left := axes[1]
	assert.Equal(t, "yLinear", left.Scale)
	assert.Equal(t, ".3~s", left.Format)
	assert.True(t, left.Grid)
	assert.Equal(t, "Users", left.Title)
	assert.Contains(t, left.Encode, "grid")

	assert.Equal(t, "top", axes[2].Orient)
}

func TestTimeAxisFormat(t *testing.T) {
	scales := scale.AddContinuousDimensionScale(nil, "x", scale.Time, "datetime", nil)
	axes := Axes([]options.AxisOptions{{}}, scales, theme.Light)
	require.Len(t, axes, 1)
	assert.Equal(t, "xTime", axes[0].Scale)
	assert.Equal(t, "bottom", axes[0].Orient)
	assert.Equal(t, "time", axes[0].FormatType)
	assert.Equal(t, "%b %d", axes[0].Format)
}

func TestDualMetricAxisAddsRightAxis(t *testing.T) {
	scales := scale.AddBandScale(nil, "x", "category", 0.4, nil)
	scales = scale.AddDualMetricScales(scales, "y", "bar0", "value")

	axes := Axes([]options.AxisOptions{
		{Position: "bottom"},
		{Position: "left", Grid: true, Title: "Revenue"},
	}, scales, theme.Light)

	require.Len(t, axes, 3)
	assert.Equal(t, "yLinearPrimary", axes[1].Scale)
	right := axes[2]
	assert.Equal(t, "yLinearSecondary", right.Scale)
	assert.Equal(t, "right", right.Orient)
	assert.False(t, right.Grid)
	assert.Equal(t, "Revenue", right.Title)

	// a declared right axis is not doubled
	declared := Axes([]options.AxisOptions{{Position: "left"}, {Position: "right"}}, scales, theme.Light)
	require.Len(t, declared, 2)
	assert.Equal(t, "yLinearSecondary", declared[1].Scale)
}
