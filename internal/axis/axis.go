// Package axis is the last compiler pass over the scale registry: every
// declared axis is bound to the positional scale that exists on its side.
package axis

import (
	"chartspec/internal/encode"
	"chartspec/internal/ir"
	"chartspec/internal/names"
	"chartspec/internal/options"
	"chartspec/internal/theme"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("chartspec.axis")
}

// defaultTimeFormat labels time axes unless a format is given.
const defaultTimeFormat = "%b %d"

// candidates lists the scales an axis can bind to, in preference order.
func candidates(channel string, right bool) []string {
	if right {
		return []string{names.SecondaryMetricScale(channel)}
	}
	return []string{
		names.AxisScale(channel, names.Band),
		names.AxisScale(channel, names.Time),
		names.AxisScale(channel, names.Point),
		names.AxisScale(channel, names.Linear),
		names.PrimaryMetricScale(channel),
	}
}

func channelOf(o options.AxisOptions) string {
	if o.IsHorizontal() {
		return "x"
	}
	return "y"
}

// ScaleFor picks the scale an axis is drawn for. A right axis only binds to
// the secondary metric scale of a dual axis chart; trellis band scales are
// never picked.
func ScaleFor(o options.AxisOptions, scales []ir.Scale) (ir.Scale, bool) {
	channel := channelOf(o)
	list := candidates(channel, false)
	if o.Position == "right" && ir.ScaleIndex(scales, names.SecondaryMetricScale(channel)) >= 0 {
		list = candidates(channel, true)
	}
	for _, name := range list {
		if i := ir.ScaleIndex(scales, name); i >= 0 {
			return scales[i], true
		}
	}
	return ir.Scale{}, false
}

// Axes builds the declared axes. A dual metric axis chart gets a right axis
// on the secondary scale when none is declared.
func Axes(axes []options.AxisOptions, scales []ir.Scale, scheme theme.Scheme) []ir.Axis {
	var out []ir.Axis
	hasRight := false
	var left *options.AxisOptions
	for i, o := range axes {
		o = o.WithDefaults(i)
		s, ok := ScaleFor(o, scales)
		if !ok {
			tracer().Infof("axis %d (%s): no scale on this side, skipped", i, o.Position)
			continue
		}
		if o.Position == "right" {
			hasRight = true
		}
		if o.Position == "left" {
			left = &o
		}
		out = append(out, Axis(o, s, scheme))
	}
	secondary := ir.ScaleIndex(scales, names.SecondaryMetricScale("y"))
	if secondary >= 0 && left != nil && !hasRight {
		o := *left
		o.Position = "right"
		o.Grid = false
		out = append(out, Axis(o, scales[secondary], scheme))
	}
	tracer().Infof("%d axes", len(out))
	return out
}

// Axis renders one axis over s.
func Axis(o options.AxisOptions, s ir.Scale, scheme theme.Scheme) ir.Axis {
	a := ir.Axis{
		Scale:      s.Name,
		Orient:     o.Position,
		Title:      o.Title,
		Grid:       o.Grid,
		Ticks:      ir.Bool(o.Ticks),
		Domain:     ir.Bool(o.BaseLine),
		LabelAngle: o.LabelAngle,
	}
	switch s.Type {
	case "time":
		a.FormatType = "time"
		a.Format = defaultTimeFormat
		if o.LabelFormat != "" {
			a.Format = o.LabelFormat
		}
	case "linear":
		if o.LabelFormat != "" {
			a.Format = theme.NumberFormatSpecifier(o.LabelFormat)
		}
	}
	a.Encode = map[string]ir.GuideEncode{
		"labels": {Update: ir.EncodeEntry{
			"fill": encode.Static(theme.ColorNameToRGB("gray-800", scheme)),
		}},
	}
	if o.Grid {
		a.Encode["grid"] = ir.GuideEncode{Update: ir.EncodeEntry{
			"stroke": encode.Static(theme.ColorNameToRGB("gray-300", scheme)),
		}}
	}
	return a
}
