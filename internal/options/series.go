package options

import (
	"chartspec/internal/facet"
	"chartspec/internal/names"
	"chartspec/internal/theme"
)

// Dimension scale types for continuous marks.
const (
	ScaleTime   = "time"
	ScaleLinear = "linear"
	ScalePoint  = "point"
)

// LineOptions declares a line mark.
type LineOptions struct {
	Name        string             `yaml:"name"`
	Color       facet.Ref          `yaml:"color"`
	LineType    facet.Ref          `yaml:"lineType"`
	Opacity     facet.Ref          `yaml:"opacity"`
	Dimension   string             `yaml:"dimension"`
	Metric      string             `yaml:"metric"`
	MetricAxis  string             `yaml:"metricAxis"`
	ScaleType   string             `yaml:"scaleType"`
	Granularity string             `yaml:"granularity"`
	Padding     *float64           `yaml:"padding"`
	LineWidth   any                `yaml:"lineWidth"`
	StaticPoint string             `yaml:"staticPoint"`
	Trendlines  []TrendlineOptions `yaml:"trendlines"`
	Tooltips    []TooltipOptions   `yaml:"chartTooltips"`
	Popovers    []PopoverOptions   `yaml:"chartPopovers"`

	Index               int          `yaml:"-"`
	ColorScheme         theme.Scheme `yaml:"-"`
	IDKey               string       `yaml:"-"`
	InteractiveMarkName string       `yaml:"-"`
	HighlightSeries     bool         `yaml:"-"`
}

func (LineOptions) MarkType() MarkType { return TypeLine }

func (o LineOptions) Facets() facet.Assignments {
	return facet.Assignments{Color: o.Color, LineType: o.LineType, Opacity: o.Opacity}
}

// WithDefaults returns the fully specified line record. It is idempotent.
func (o LineOptions) WithDefaults(index int, chart ChartOptions) LineOptions {
	o.Index = index
	if o.Name == "" {
		o.Name = names.Indexed("line", index)
	}
	o.Color = o.Color.Or(facet.Field(DefaultColor))
	o.LineType = o.LineType.Or(facet.Value("solid"))
	o.Opacity = o.Opacity.Or(facet.Value(1.0))
	if o.ScaleType == "" {
		o.ScaleType = ScaleTime
	}
	if o.Dimension == "" {
		o.Dimension = DefaultTimeDimension
	}
	if o.Metric == "" {
		o.Metric = DefaultMetric
	}
	if o.Granularity == "" {
		o.Granularity = "day"
	}
	if o.LineWidth == nil {
		o.LineWidth = "M"
	}
	o.Trendlines = defaultTrendlines(o.Name, o.Trendlines)
	o.Tooltips = defaultTooltips(o.Tooltips)
	o.Popovers = defaultPopovers(o.Popovers)
	o.ColorScheme, o.IDKey = chartTheme(chart)
	o.HighlightSeries = highlightsSeries(chart)
	o.InteractiveMarkName = ""
	if len(o.Tooltips) > 0 || len(o.Popovers) > 0 || trendlinesHaveTooltips(o.Trendlines) {
		o.InteractiveMarkName = o.Name
	}
	return o
}

// AreaOptions declares an area mark.
type AreaOptions struct {
	Name        string           `yaml:"name"`
	Color       facet.Ref        `yaml:"color"`
	Dimension   string           `yaml:"dimension"`
	Metric      string           `yaml:"metric"`
	MetricStart string           `yaml:"metricStart"`
	MetricEnd   string           `yaml:"metricEnd"`
	ScaleType   string           `yaml:"scaleType"`
	Granularity string           `yaml:"granularity"`
	Order       string           `yaml:"order"`
	Opacity     float64          `yaml:"opacity"`
	Padding     *float64         `yaml:"padding"`
	Tooltips    []TooltipOptions `yaml:"chartTooltips"`
	Popovers    []PopoverOptions `yaml:"chartPopovers"`

	Index               int          `yaml:"-"`
	ColorScheme         theme.Scheme `yaml:"-"`
	IDKey               string       `yaml:"-"`
	InteractiveMarkName string       `yaml:"-"`
	HighlightSeries     bool         `yaml:"-"`
}

func (AreaOptions) MarkType() MarkType { return TypeArea }

// IsStacked reports whether the area stacks metric values rather than
// spanning an explicit start/end pair.
func (o AreaOptions) IsStacked() bool {
	return o.MetricStart == "" || o.MetricEnd == ""
}

// WithDefaults returns the fully specified area record. It is idempotent.
func (o AreaOptions) WithDefaults(index int, chart ChartOptions) AreaOptions {
	o.Index = index
	if o.Name == "" {
		o.Name = names.Indexed("area", index)
	}
	o.Color = o.Color.Or(facet.Field(DefaultColor))
	if o.ScaleType == "" {
		o.ScaleType = ScaleTime
	}
	if o.Dimension == "" {
		o.Dimension = DefaultTimeDimension
	}
	if o.Metric == "" {
		o.Metric = DefaultMetric
	}
	if o.Granularity == "" {
		o.Granularity = "day"
	}
	if o.Opacity == 0 {
		o.Opacity = 0.8
	}
	o.Tooltips = defaultTooltips(o.Tooltips)
	o.Popovers = defaultPopovers(o.Popovers)
	o.ColorScheme, o.IDKey = chartTheme(chart)
	o.HighlightSeries = highlightsSeries(chart)
	o.InteractiveMarkName = ""
	if len(o.Tooltips) > 0 || len(o.Popovers) > 0 {
		o.InteractiveMarkName = o.Name
	}
	return o
}

// ScatterOptions declares a scatter mark.
type ScatterOptions struct {
	Name               string             `yaml:"name"`
	Color              facet.Ref          `yaml:"color"`
	LineType           facet.Ref          `yaml:"lineType"`
	Opacity            facet.Ref          `yaml:"opacity"`
	Size               facet.Ref          `yaml:"size"`
	LineWidth          any                `yaml:"lineWidth"`
	Dimension          string             `yaml:"dimension"`
	Metric             string             `yaml:"metric"`
	DimensionScaleType string             `yaml:"dimensionScaleType"`
	Trendlines         []TrendlineOptions `yaml:"trendlines"`
	Tooltips           []TooltipOptions   `yaml:"chartTooltips"`
	Popovers           []PopoverOptions   `yaml:"chartPopovers"`

	Index               int          `yaml:"-"`
	ColorScheme         theme.Scheme `yaml:"-"`
	IDKey               string       `yaml:"-"`
	InteractiveMarkName string       `yaml:"-"`
	HighlightSeries     bool         `yaml:"-"`
}

func (ScatterOptions) MarkType() MarkType { return TypeScatter }

func (o ScatterOptions) Facets() facet.Assignments {
	return facet.Assignments{Color: o.Color, LineType: o.LineType, Opacity: o.Opacity, Size: o.Size}
}

// WithDefaults returns the fully specified scatter record. It is idempotent.
func (o ScatterOptions) WithDefaults(index int, chart ChartOptions) ScatterOptions {
	o.Index = index
	if o.Name == "" {
		o.Name = names.Indexed("scatter", index)
	}
	o.Color = o.Color.Or(facet.Value("categorical-100"))
	o.LineType = o.LineType.Or(facet.Value("solid"))
	o.Opacity = o.Opacity.Or(facet.Value(1.0))
	o.Size = o.Size.Or(facet.Value("M"))
	if o.LineWidth == nil {
		o.LineWidth = 0
	}
	if o.Dimension == "" {
		o.Dimension = DefaultTimeDimension
	}
	if o.Metric == "" {
		o.Metric = DefaultMetric
	}
	if o.DimensionScaleType == "" {
		o.DimensionScaleType = ScaleLinear
	}
	o.Trendlines = defaultTrendlines(o.Name, o.Trendlines)
	o.Tooltips = defaultTooltips(o.Tooltips)
	o.Popovers = defaultPopovers(o.Popovers)
	o.ColorScheme, o.IDKey = chartTheme(chart)
	o.HighlightSeries = highlightsSeries(chart)
	o.InteractiveMarkName = ""
	if len(o.Tooltips) > 0 || len(o.Popovers) > 0 || trendlinesHaveTooltips(o.Trendlines) {
		o.InteractiveMarkName = o.Name
	}
	return o
}

// SegmentLabelOptions labels donut segments.
type SegmentLabelOptions struct {
	LabelKey    string `yaml:"labelKey"`
	Percent     bool   `yaml:"percent"`
	Value       bool   `yaml:"value"`
	ValueFormat string `yaml:"valueFormat"`
}

// DonutOptions declares a donut mark.
type DonutOptions struct {
	Name          string               `yaml:"name"`
	Color         string               `yaml:"color"`
	Metric        string               `yaml:"metric"`
	MetricLabel   string               `yaml:"metricLabel"`
	HoleRatio     float64              `yaml:"holeRatio"`
	StartAngle    float64              `yaml:"startAngle"`
	IsBoolean     bool                 `yaml:"isBoolean"`
	ShowSummary   bool                 `yaml:"showSummary"`
	SegmentLabels *SegmentLabelOptions `yaml:"segmentLabels"`
	Tooltips      []TooltipOptions     `yaml:"chartTooltips"`
	Popovers      []PopoverOptions     `yaml:"chartPopovers"`

	Index               int          `yaml:"-"`
	ColorScheme         theme.Scheme `yaml:"-"`
	IDKey               string       `yaml:"-"`
	InteractiveMarkName string       `yaml:"-"`
	HighlightSeries     bool         `yaml:"-"`
}

func (DonutOptions) MarkType() MarkType { return TypeDonut }

// WithDefaults returns the fully specified donut record. It is idempotent.
func (o DonutOptions) WithDefaults(index int, chart ChartOptions) DonutOptions {
	o.Index = index
	if o.Name == "" {
		o.Name = names.Indexed("donut", index)
	}
	if o.Color == "" {
		o.Color = DefaultColor
	}
	if o.Metric == "" {
		o.Metric = DefaultMetric
	}
	if o.HoleRatio == 0 {
		o.HoleRatio = 0.85
	}
	o.Tooltips = defaultTooltips(o.Tooltips)
	o.Popovers = defaultPopovers(o.Popovers)
	o.ColorScheme, o.IDKey = chartTheme(chart)
	o.HighlightSeries = highlightsSeries(chart)
	o.InteractiveMarkName = ""
	if len(o.Tooltips) > 0 || len(o.Popovers) > 0 {
		o.InteractiveMarkName = o.Name
	}
	return o
}

// ComboOptions groups bar and line children that share one chart.
type ComboOptions struct {
	Name  string   `yaml:"name"`
	Marks MarkList `yaml:"marks"`
}

func (ComboOptions) MarkType() MarkType { return TypeCombo }

func chartTheme(chart ChartOptions) (theme.Scheme, string) {
	scheme := chart.ColorScheme
	if scheme == "" {
		scheme = theme.Light
	}
	idKey := chart.IDKey
	if idKey == "" {
		idKey = names.MarkID
	}
	return scheme, idKey
}

// highlightsSeries reports whether series can be highlighted at all: a series
// is pinned chart-wide or a legend highlights on hover.
func highlightsSeries(chart ChartOptions) bool {
	if chart.HighlightedSeries != "" {
		return true
	}
	for _, m := range chart.Marks {
		if l, ok := m.(LegendOptions); ok && l.Highlight {
			return true
		}
	}
	return false
}

func trendlinesHaveTooltips(ts []TrendlineOptions) bool {
	for _, t := range ts {
		if len(t.Tooltips) > 0 {
			return true
		}
	}
	return false
}
