package builder

import (
	"errors"
	"testing"

	"chartspec/internal/ir"
	"chartspec/internal/options"
	"chartspec/internal/theme"
	"chartspec/internal/validate"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type BuilderSuite struct {
	suite.Suite
	teardown func()
}

func (s *BuilderSuite) SetupTest() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "chartspec.builder")
}

func (s *BuilderSuite) TearDownTest() {
	s.teardown()
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}

func dataNames(data []ir.Data) []string {
	out := make([]string, len(data))
	for i, d := range data {
		out[i] = d.Name
	}
	return out
}

func scaleNames(scales []ir.Scale) []string {
	out := make([]string, len(scales))
	for i, s := range scales {
		out[i] = s.Name
	}
	return out
}

func markNames(marks []ir.Mark) []string {
	out := make([]string, len(marks))
	for i, m := range marks {
		out[i] = m.Name
	}
	return out
}

func (s *BuilderSuite) TestDefaultBar() {
	r := Build(options.ChartOptions{Marks: options.MarkList{options.BarOptions{}}})
	spec := r.Spec

	s.Empty(r.Skipped)
	s.Equal([]string{"table", "filteredTable", "bar0_stacks"}, dataNames(spec.Data))
	// unpopulated facet scales are pruned
	s.Equal([]string{"color", "yLinear", "xBand"}, scaleNames(spec.Scales))
	s.Equal(theme.ResolveColors(theme.Categorical12, theme.Light), spec.Scales[0].Range)
	s.Equal([]string{"bar0_background", "bar0"}, markNames(spec.Marks))
	s.GreaterOrEqual(ir.SignalIndex(spec.Signals, "paddingInner"), 0)
	s.Equal(SchemaURL, spec.Schema)
	s.Equal(map[string]any{"locale": "en-US"}, spec.Usermeta)
	s.Nil(spec.Title)
	s.Empty(validate.References(spec))
}

func (s *BuilderSuite) TestUnknownMarkIsSkipped() {
	r := Build(options.ChartOptions{Marks: options.MarkList{
		options.UnknownMark{Type: "sankey"},
		options.BarOptions{},
	}})
	s.Require().Len(r.Skipped, 1)
	s.True(errors.Is(r.Skipped[0], options.ErrUnknownMarkType))
	s.Contains(r.Skipped[0].Error(), "sankey")
	s.Equal([]string{"bar0_background", "bar0"}, markNames(r.Spec.Marks))
}

func (s *BuilderSuite) TestMarksOfTheSameTypeAreIndexedByType() {
	r := Build(options.ChartOptions{Marks: options.MarkList{
		options.BarOptions{},
		options.ScatterOptions{},
		options.BarOptions{Type: options.BarDodged},
	}})
	s.GreaterOrEqual(ir.MarkIndex(r.Spec.Marks, "scatter0"), 0)
	s.GreaterOrEqual(ir.MarkIndex(r.Spec.Marks, "bar1_group"), 0)
}

func (s *BuilderSuite) TestCombo() {
	r := Build(options.ChartOptions{Marks: options.MarkList{
		options.ComboOptions{Name: "combo0", Marks: options.MarkList{
			options.BarOptions{Dimension: "datetime"},
			options.LineOptions{},
			options.DonutOptions{},
		}},
	}})
	s.Require().Len(r.Skipped, 1)
	s.Contains(r.Skipped[0].Error(), "donut")
	s.GreaterOrEqual(ir.MarkIndex(r.Spec.Marks, "bar0"), 0)
	s.GreaterOrEqual(ir.MarkIndex(r.Spec.Marks, "line0_group"), 0)
	s.Equal(-1, ir.MarkIndex(r.Spec.Marks, "donut0"))
}

func (s *BuilderSuite) TestSharedFilteredTableKeepsMarkOrder() {
	marks := options.MarkList{
		options.BarOptions{},
		options.BarOptions{Type: options.BarDodged},
	}
	stack := ir.StackTransform{Type: "stack", Groupby: []string{"category"}, Field: "value", As: []string{"value0", "value1"}}
	r := Build(options.ChartOptions{Marks: marks})
	s.Equal([]ir.Transform{
		stack,
		ir.Formula("datum.category", "rscStackId"),
		ir.Formula("datum.series", "bar1_dodgeGroup"),
	}, r.Spec.Data[1].Transform)

	// the legend filter goes in front of every mark transform
	r = Build(options.ChartOptions{Marks: append(marks, options.LegendOptions{IsToggleable: true})})
	s.Equal([]ir.Transform{
		ir.Filter("indexof(hiddenSeries, datum.series) === -1"),
		stack,
		ir.Formula("datum.category", "rscStackId"),
		ir.Formula("datum.series", "bar1_dodgeGroup"),
	}, r.Spec.Data[1].Transform)
}

func (s *BuilderSuite) TestStrictBarWithAnnotations() {
	chart := options.ChartOptions{Strict: true, Marks: options.MarkList{
		options.BarOptions{Annotations: []options.AnnotationOptions{{TextKey: "label"}}},
	}}
	var r Result
	s.NotPanics(func() { r = Build(chart) })
	s.GreaterOrEqual(ir.MarkIndex(r.Spec.Marks, "bar0_annotationGroup"), 0)
}

func (s *BuilderSuite) TestStrictDualAxisBar() {
	chart := options.ChartOptions{Strict: true, Marks: options.MarkList{
		options.BarOptions{
			Type:           options.BarDodged,
			DualMetricAxis: true,
			Annotations:    []options.AnnotationOptions{{TextKey: "label"}},
			Popovers:       []options.PopoverOptions{{HighlightBy: options.HighlightBy{Mode: options.HighlightDimension}}},
		},
	}}
	s.NotPanics(func() { Build(chart) })
}

func (s *BuilderSuite) TestStrictRejectsDanglingExpressionScale() {
	spec := Build(options.ChartOptions{Marks: options.MarkList{options.BarOptions{}}}).Spec
	i := ir.MarkIndex(spec.Marks, "bar0")
	s.Require().GreaterOrEqual(i, 0)
	spec.Marks[i].Encode.Enter["size"] = ir.Production{{Signal: "scale('symbolSize', datum.weight)"}}
	s.Panics(func() { validate.Must(spec) })
}

const chartYAML = `
name: os-usage
title: Users by OS
locale: de-DE
strict: true
data:
  - {category: A, series: Windows, value: 3}
  - {category: A, series: Mac, value: 2}
  - {category: B, series: Windows, value: 4}
marks:
  - markType: bar
    chartTooltips:
      - excludeDataKeys: [annotation]
  - markType: legend
    highlight: true
    isToggleable: true
  - markType: axis
    position: bottom
  - markType: axis
    position: left
    grid: true
    labelFormat: shortNumber
`

func (s *BuilderSuite) TestBuildFromYAML() {
	chart, err := options.Decode([]byte(chartYAML))
	s.Require().NoError(err)

	var r Result
	s.NotPanics(func() { r = Build(chart) })
	spec := r.Spec

	s.Equal(&ir.Title{Text: "Users by OS"}, spec.Title)
	s.Equal("de-DE", spec.Usermeta["locale"])
	s.Equal("os-usage", spec.Usermeta["chart"])
	s.Len(spec.Data[0].Values, 3)

	// legend pass: aggregate, entries scale, hidden series filter first
	s.Contains(dataNames(spec.Data), "legend0Aggregate")
	s.Contains(scaleNames(spec.Scales), "legend0Entries")
	s.Equal(ir.Filter("indexof(hiddenSeries, datum.series) === -1"), spec.Data[1].Transform[0])
	s.Require().Len(spec.Legends, 1)

	s.Require().Len(spec.Axes, 2)
	s.Equal("xBand", spec.Axes[0].Scale)
	s.Equal(".3~s", spec.Axes[1].Format)

	schema, err := validate.Builtin()
	s.Require().NoError(err)
	s.NoError(schema.ValidateSpec(spec))
}

func TestBuildDoesNotMutateOptions(t *testing.T) {
	marks := options.MarkList{options.BarOptions{}, options.LegendOptions{}}
	chart := options.ChartOptions{Marks: marks}
	Build(chart)
	assert.Equal(t, options.BarOptions{}, marks[0])
	assert.Equal(t, options.LegendOptions{}, marks[1])
}

func TestCache(t *testing.T) {
	c, err := NewCache(4)
	require.NoError(t, err)

	chart := options.ChartOptions{Marks: options.MarkList{options.BarOptions{}}}
	first, key, err := c.Build(chart)
	require.NoError(t, err)
	assert.Len(t, key, 64)

	first.Spec.Marks[0].Name = "mutated"
	second, again, err := c.Build(chart)
	require.NoError(t, err)
	assert.Equal(t, key, again)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "bar0_background", second.Spec.Marks[0].Name)

	_, err = NewCache(0)
	assert.Error(t, err)
}

func TestDigestSeparatesMarkTypes(t *testing.T) {
	bar, err := Digest(options.ChartOptions{Marks: options.MarkList{options.BarOptions{}}})
	require.NoError(t, err)
	line, err := Digest(options.ChartOptions{Marks: options.MarkList{options.LineOptions{}}})
	require.NoError(t, err)
	assert.NotEqual(t, bar, line)

	again, _ := Digest(options.ChartOptions{Marks: options.MarkList{options.BarOptions{}}})
	assert.Equal(t, bar, again)
}
