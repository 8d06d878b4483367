package options

import (
	"chartspec/internal/facet"
	"chartspec/internal/names"
	"chartspec/internal/theme"
)

// Bar defaults.
const (
	DefaultColor                = "series"
	DefaultSecondaryColor       = "subSeries"
	DefaultMetric               = "value"
	DefaultCategoricalDimension = "category"
	DefaultTimeDimension        = "datetime"
	PaddingRatio                = 0.4
	DiscretePadding             = 0.5
	TrellisPadding              = 0.2
)

// Bar types.
const (
	BarStacked = "stacked"
	BarDodged  = "dodged"
)

// BarOptions declares a bar mark.
type BarOptions struct {
	Name               string              `yaml:"name"`
	Color              facet.Ref           `yaml:"color"`
	LineType           facet.Ref           `yaml:"lineType"`
	Opacity            facet.Ref           `yaml:"opacity"`
	Dimension          string              `yaml:"dimension"`
	Metric             string              `yaml:"metric"`
	Order              string              `yaml:"order"`
	Orientation        Orientation         `yaml:"orientation"`
	Type               string              `yaml:"type"`
	PaddingRatio       *float64            `yaml:"paddingRatio"`
	PaddingOuter       *float64            `yaml:"paddingOuter"`
	LineWidth          any                 `yaml:"lineWidth"`
	Trellis            string              `yaml:"trellis"`
	TrellisOrientation Orientation         `yaml:"trellisOrientation"`
	TrellisPadding     *float64            `yaml:"trellisPadding"`
	DualMetricAxis     bool                `yaml:"dualMetricAxis"`
	HasSquareCorners   bool                `yaml:"hasSquareCorners"`
	HasOnClick         bool                `yaml:"hasOnClick"`
	Tooltips           []TooltipOptions    `yaml:"chartTooltips"`
	Popovers           []PopoverOptions    `yaml:"chartPopovers"`
	Annotations        []AnnotationOptions `yaml:"barAnnotations"`

	// set by defaults
	Index               int          `yaml:"-"`
	ColorScheme         theme.Scheme `yaml:"-"`
	IDKey               string       `yaml:"-"`
	InteractiveMarkName string       `yaml:"-"`
	HighlightSeries     bool         `yaml:"-"`
}

func (BarOptions) MarkType() MarkType { return TypeBar }

// Facets returns the bar's facet assignments.
func (o BarOptions) Facets() facet.Assignments {
	return facet.Assignments{Color: o.Color, LineType: o.LineType, Opacity: o.Opacity}
}

// IsDodgedAndStacked reports whether the bar is both dodged and stacked.
func (o BarOptions) IsDodgedAndStacked() bool {
	return facet.IsDodgedAndStacked(o.Facets())
}

// IsStacked reports whether stack transforms apply.
func (o BarOptions) IsStacked() bool {
	return o.Type == BarStacked || o.IsDodgedAndStacked()
}

// IsDodged reports whether dodge grouping applies.
func (o BarOptions) IsDodged() bool {
	return o.Type == BarDodged || o.IsDodgedAndStacked()
}

// HasInteraction reports whether the bar reacts to hover or click.
func (o BarOptions) HasInteraction() bool {
	return len(o.Tooltips) > 0 || len(o.Popovers) > 0 || o.HasOnClick
}

// WithDefaults returns the fully specified bar record. Component defaults come
// first, then chart-level values, then derived fields. It is idempotent.
func (o BarOptions) WithDefaults(index int, chart ChartOptions) BarOptions {
	o.Index = index
	if o.Name == "" {
		o.Name = names.Indexed("bar", index)
	}
	o.Color = o.Color.Or(facet.Field(DefaultColor))
	o.LineType = o.LineType.Or(facet.Value("solid"))
	o.Opacity = o.Opacity.Or(facet.Value(1.0))
	if o.Dimension == "" {
		o.Dimension = DefaultCategoricalDimension
	}
	if o.Metric == "" {
		o.Metric = DefaultMetric
	}
	if o.Orientation == "" {
		o.Orientation = Vertical
	}
	if o.Type == "" {
		o.Type = BarStacked
	}
	if o.PaddingRatio == nil {
		p := PaddingRatio
		o.PaddingRatio = &p
	}
	if o.LineWidth == nil {
		o.LineWidth = 0
	}
	if o.TrellisOrientation == "" {
		o.TrellisOrientation = Horizontal
	}
	if o.TrellisPadding == nil {
		p := TrellisPadding
		o.TrellisPadding = &p
	}
	o.Tooltips = defaultTooltips(o.Tooltips)
	o.Popovers = defaultPopovers(o.Popovers)

	o.ColorScheme, o.IDKey = chartTheme(chart)
	o.HighlightSeries = highlightsSeries(chart)
	o.InteractiveMarkName = ""
	if o.HasInteraction() {
		o.InteractiveMarkName = o.Name
	}
	return o
}

// PaddingOuterValue derives the band's outer padding from the inner ratio
// unless it was set explicitly.
func (o BarOptions) PaddingOuterValue() float64 {
	if o.PaddingOuter != nil {
		return *o.PaddingOuter
	}
	return DiscretePadding - (1-o.PaddingRatioValue())/2
}

// PaddingRatioValue returns the inner band padding.
func (o BarOptions) PaddingRatioValue() float64 {
	if o.PaddingRatio == nil {
		return PaddingRatio
	}
	return *o.PaddingRatio
}
