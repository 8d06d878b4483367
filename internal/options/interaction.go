package options

import (
	"fmt"

	"chartspec/internal/names"

	"gopkg.in/yaml.v3"
)

// Highlight modes for tooltips and popovers.
const (
	HighlightItem      = "item"
	HighlightDimension = "dimension"
	HighlightSeries    = "series"
	HighlightKeys      = "keys"
)

// HighlightBy selects which rows light up together. It decodes from a mode
// name or from an explicit list of key fields.
type HighlightBy struct {
	Mode string
	Keys []string
}

func (h *HighlightBy) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		h.Mode = node.Value
		return nil
	case yaml.SequenceNode:
		h.Mode = HighlightKeys
		return node.Decode(&h.Keys)
	}
	return fmt.Errorf("highlightBy: unsupported yaml node kind %d", node.Kind)
}

// Key identifies the mode for deduplication: each distinct mode adds its
// group-id transform once.
func (h HighlightBy) Key() string {
	if h.Mode == HighlightKeys {
		return fmt.Sprintf("%s%v", h.Mode, h.Keys)
	}
	return h.Mode
}

func (h HighlightBy) withDefault() HighlightBy {
	if h.Mode == "" {
		h.Mode = HighlightItem
	}
	return h
}

// TooltipOptions declares a hover tooltip.
type TooltipOptions struct {
	HighlightBy     HighlightBy `yaml:"highlightBy"`
	ExcludeDataKeys []string    `yaml:"excludeDataKeys"`
}

// PopoverOptions declares a click popover.
type PopoverOptions struct {
	HighlightBy HighlightBy `yaml:"UNSAFE_highlightBy"`
}

func defaultTooltips(ts []TooltipOptions) []TooltipOptions {
	if len(ts) == 0 {
		return nil
	}
	out := make([]TooltipOptions, len(ts))
	for i, t := range ts {
		t.HighlightBy = t.HighlightBy.withDefault()
		out[i] = t
	}
	return out
}

func defaultPopovers(ps []PopoverOptions) []PopoverOptions {
	if len(ps) == 0 {
		return nil
	}
	out := make([]PopoverOptions, len(ps))
	for i, p := range ps {
		p.HighlightBy = p.HighlightBy.withDefault()
		out[i] = p
	}
	return out
}

// HasDimensionPopover reports whether any popover highlights by dimension.
func HasDimensionPopover(ps []PopoverOptions) bool {
	for _, p := range ps {
		if p.HighlightBy.Mode == HighlightDimension {
			return true
		}
	}
	return false
}

// TrendlineOptions declares a trendline over a mark's data.
type TrendlineOptions struct {
	Method            string           `yaml:"method"`
	Color             string           `yaml:"color"`
	LineType          string           `yaml:"lineType"`
	LineWidth         any              `yaml:"lineWidth"`
	Opacity           float64          `yaml:"opacity"`
	DimensionExtent   []float64        `yaml:"dimensionExtent"`
	DisplayOnHover    bool             `yaml:"displayOnHover"`
	HighlightRawPoint bool             `yaml:"highlightRawPoint"`
	ExcludeDataKeys   []string         `yaml:"excludeDataKeys"`
	Tooltips          []TooltipOptions `yaml:"chartTooltips"`

	// set by defaults
	Name string `yaml:"-"`
}

func defaultTrendlines(markName string, ts []TrendlineOptions) []TrendlineOptions {
	if len(ts) == 0 {
		return nil
	}
	out := make([]TrendlineOptions, len(ts))
	for i, t := range ts {
		if t.Method == "" {
			t.Method = "linear"
		}
		if t.LineType == "" {
			t.LineType = "dashed"
		}
		if t.LineWidth == nil {
			t.LineWidth = "M"
		}
		if t.Opacity == 0 {
			t.Opacity = 1
		}
		t.Tooltips = defaultTooltips(t.Tooltips)
		t.Name = names.TrendlineName(markName, i)
		out[i] = t
	}
	return out
}

// AnnotationOptions declares a text label on each bar.
type AnnotationOptions struct {
	TextKey string `yaml:"textKey"`
	Width   int    `yaml:"width"`
}
