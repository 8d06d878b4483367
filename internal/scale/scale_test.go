package scale

import (
	"testing"

	"chartspec/internal/facet"
	"chartspec/internal/ir"
	"chartspec/internal/names"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartspec.scale")
	defer teardown()

	scales, i := GetOrCreate(nil, "yLinear", Linear)
	require.Equal(t, 0, i)
	assert.Equal(t, ir.Scale{
		Name:   "yLinear",
		Type:   Linear,
		Range:  "height",
		Nice:   true,
		Zero:   ir.Bool(true),
		Domain: &ir.Domain{Data: names.FilteredTable, Fields: []string{}},
	}, scales[0])

	again, j := GetOrCreate(scales, "yLinear", Linear)
	assert.Equal(t, 0, j)
	assert.Len(t, again, 1)

	// same name, other type: a distinct scale
	other, k := GetOrCreate(scales, "yLinear", Band)
	assert.Equal(t, 1, k)
	assert.Len(t, other, 2)
	assert.Len(t, scales, 1, "input list must not grow")
}

func TestAddDomainFieldsIsMonotonic(t *testing.T) {
	s := Default(names.ColorScale, Ordinal)
	for _, f := range []string{"a", "b", "a", "c"} {
		before := append([]string{}, s.Domain.Fields...)
		s = AddDomainFields(s, f)
		assert.Equal(t, before, s.Domain.Fields[:len(before)])
	}
	assert.Equal(t, []string{"a", "b", "a", "c"}, s.Domain.Fields)
}

func TestAddBandScalePadding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartspec.scale")
	defer teardown()

	scales := AddBandScale(nil, "x", "category", 0.4, nil)
	require.Len(t, scales, 1)
	assert.Equal(t, "xBand", scales[0].Name)
	assert.Equal(t, []string{"category"}, scales[0].Domain.Fields)
	assert.Equal(t, 0.4, *scales[0].PaddingInner)
	assert.InDelta(t, 0.2, *scales[0].PaddingOuter, 1e-12)

	outer := 0.1
	assert.Equal(t, 0.1, PaddingOuter(0.4, &outer))
	assert.Equal(t, 0.0, PaddingOuter(0, nil))
}

func TestFacetScales(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartspec.scale")
	defer teardown()

	a := facet.Assignments{
		Color:    facet.Dual("series", "subSeries"),
		LineType: facet.Value("solid"),
		Opacity:  facet.Field("group"),
	}
	scales := AddFacetScales(nil, a)
	scales = AddSecondaryScales(scales, a)

	got := []string{}
	for _, s := range scales {
		got = append(got, s.Name)
	}
	assert.Equal(t, []string{"color", "opacity", "secondaryColor"}, got)

	color, _ := Find(scales, "color")
	assert.Equal(t, []string{"series"}, color.Domain.Fields)
	assert.Equal(t, ir.SignalRef{Signal: "colors"}, color.Range)

	secondary, _ := Find(scales, "secondaryColor")
	assert.Equal(t, []string{"subSeries"}, secondary.Domain.Fields)
	assert.Equal(t, "table", secondary.Domain.Data)

	opacity, _ := Find(scales, "opacity")
	assert.Nil(t, opacity.Range, "single-field facets keep their palette")
}

func TestDualMetricScales(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartspec.scale")
	defer teardown()

	scales := AddDualMetricScales(nil, "y", "bar0", "value")
	require.Len(t, scales, 2)
	assert.Equal(t, "yLinearPrimary", scales[0].Name)
	assert.Equal(t, "bar0_primaryMetric", scales[0].Domain.Data)
	assert.Equal(t, "yLinearSecondary", scales[1].Name)
	assert.Equal(t, "bar0_secondaryMetric", scales[1].Domain.Data)
	assert.Equal(t, []string{"value"}, scales[1].Domain.Fields)
}

func TestRemoveUnused(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartspec.scale")
	defer teardown()

	scales := []ir.Scale{
		Default(names.ColorScale, Ordinal),
		AddDomainFields(Default("yLinear", Linear), "value1"),
		Default(names.LineTypeScale, Ordinal),
		{Name: "legend0Entries", Type: Ordinal, Domain: &ir.Domain{Data: "legend0Aggregate", Field: "legend0Entries"}},
	}
	kept := RemoveUnused(scales)
	require.Len(t, kept, 2)
	assert.Equal(t, "yLinear", kept[0].Name)
	assert.Equal(t, "legend0Entries", kept[1].Name)
}

func TestRepeatInTrellis(t *testing.T) {
	scales := AddBandScale(nil, "x", "category", 0.4, nil)
	s, ok := Repeat(scales, "xBand", "x")
	require.True(t, ok)
	assert.Equal(t, []any{0, ir.SignalRef{Signal: "bandwidth('xTrellisBand')"}}, s.Range)
	assert.Equal(t, "width", scales[0].Range)

	_, ok = Repeat(scales, "yLinear", "x")
	assert.False(t, ok)
}

func TestForOrientation(t *testing.T) {
	v := ForOrientation(true)
	assert.Equal(t, "y2", v.MetricEnd())
	assert.Equal(t, "xBand", v.BandScale)
	h := ForOrientation(false)
	assert.Equal(t, "xLinear", h.MetricScale)
	assert.Equal(t, "height", h.DimensionSize)
}
