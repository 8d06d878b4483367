package options

import (
	"chartspec/internal/facet"
	"chartspec/internal/names"
)

// LegendOptions declares a legend. Facet refs given here override the symbol
// channels the legend would otherwise read from the chart's facet scales.
type LegendOptions struct {
	Name          string    `yaml:"name"`
	Position      string    `yaml:"position"`
	Title         string    `yaml:"title"`
	Highlight     bool      `yaml:"highlight"`
	IsToggleable  bool      `yaml:"isToggleable"`
	HiddenEntries []string  `yaml:"hiddenEntries"`
	LabelLimit    int       `yaml:"labelLimit"`
	Color         facet.Ref `yaml:"color"`
	LineType      facet.Ref `yaml:"lineType"`
	Opacity       facet.Ref `yaml:"opacity"`
	SymbolShape   string    `yaml:"symbolShape"`

	Index int `yaml:"-"`
}

func (LegendOptions) MarkType() MarkType { return TypeLegend }

// WithDefaults returns the fully specified legend record. It is idempotent.
func (o LegendOptions) WithDefaults(index int) LegendOptions {
	o.Index = index
	if o.Name == "" {
		o.Name = names.Indexed("legend", index)
	}
	if o.Position == "" {
		o.Position = "bottom"
	}
	if o.LabelLimit == 0 {
		o.LabelLimit = 180
	}
	if o.SymbolShape == "" {
		o.SymbolShape = "rounded-square"
	}
	return o
}

// Orient maps the legend position to the engine's orient value.
func (o LegendOptions) Orient() string {
	return o.Position
}

// IsVertical reports whether entries are listed top to bottom.
func (o LegendOptions) IsVertical() bool {
	return o.Position == "left" || o.Position == "right"
}

// AxisOptions declares an axis.
type AxisOptions struct {
	Position    string  `yaml:"position"`
	Title       string  `yaml:"title"`
	Grid        bool    `yaml:"grid"`
	Ticks       bool    `yaml:"ticks"`
	LabelFormat string  `yaml:"labelFormat"`
	LabelAngle  float64 `yaml:"labelAngle"`
	BaseLine    bool    `yaml:"baseline"`

	Index int `yaml:"-"`
}

func (AxisOptions) MarkType() MarkType { return TypeAxis }

// WithDefaults returns the fully specified axis record. It is idempotent.
func (o AxisOptions) WithDefaults(index int) AxisOptions {
	o.Index = index
	if o.Position == "" {
		o.Position = "bottom"
	}
	return o
}

// IsHorizontal reports whether the axis runs along x.
func (o AxisOptions) IsHorizontal() bool {
	return o.Position == "bottom" || o.Position == "top"
}
