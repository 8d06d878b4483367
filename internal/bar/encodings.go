package bar

import (
	"fmt"
	"math"

	"chartspec/internal/ir"
	"chartspec/internal/names"
	"chartspec/internal/options"
	"chartspec/internal/scale"
	"chartspec/internal/theme"
)

const (
	// CornerRadius is the radius of a bar's rounded end, before subtracting
	// half the border width.
	CornerRadius = 6
	// StackGap is the pixel gap left between two segments of a stack.
	StackGap = 1.5
)

func axesOf(o options.BarOptions) scale.Axes {
	return scale.ForOrientation(o.Orientation != options.Horizontal)
}

// MetricEncodings positions a bar along its metric axis. Stacked segments run
// from {metric}0 to {metric}1 and leave a StackGap to the segment below,
// dodged bars run from zero to the metric value.
func MetricEncodings(o options.BarOptions) ir.EncodeEntry {
	if o.IsStacked() {
		return stackedMetricEncodings(o)
	}
	return dodgedMetricEncodings(o)
}

func stackedMetricEncodings(o options.BarOptions) ir.EncodeEntry {
	axes := axesOf(o)
	start, end := o.Metric+"0", o.Metric+"1"
	startPx := names.ScaleExpr(axes.MetricScale, "datum."+start)
	endPx := names.ScaleExpr(axes.MetricScale, "datum."+end)
	// pixel coordinates grow downwards on y and rightwards on x
	positive, negative := "max(%s - %v, %s)", "min(%s + %v, %s)"
	if axes.Metric == "x" {
		positive, negative = negative, positive
	}
	return ir.EncodeEntry{
		axes.Metric: ir.Production{
			{Test: fmt.Sprintf("datum.%s === 0", start), Signal: startPx},
			{Test: fmt.Sprintf("datum.%s > 0", end), Signal: fmt.Sprintf(positive, startPx, StackGap, endPx)},
			{Signal: fmt.Sprintf(negative, startPx, StackGap, endPx)},
		},
		axes.MetricEnd(): ir.Production{{Scale: axes.MetricScale, Field: end}},
	}
}

func dodgedMetricEncodings(o options.BarOptions) ir.EncodeEntry {
	axes := axesOf(o)
	if hasDualAxis(o) {
		return dualMetricEncodings(o, axes)
	}
	return ir.EncodeEntry{
		axes.Metric:      ir.Production{{Scale: axes.MetricScale, Value: 0}},
		axes.MetricEnd(): ir.Production{{Scale: axes.MetricScale, Field: o.Metric}},
	}
}

// dualMetricEncodings draw the last series of the color domain against the
// secondary axis.
func dualMetricEncodings(o options.BarOptions, axes scale.Axes) ir.EncodeEntry {
	primary, secondary := names.PrimaryMetricScale(axes.Metric), names.SecondaryMetricScale(axes.Metric)
	test := fmt.Sprintf("datum.%s === %s", o.Color.Field, names.LastSeries)
	return ir.EncodeEntry{
		axes.Metric: ir.Production{
			{Test: test, Scale: secondary, Value: 0},
			{Scale: primary, Value: 0},
		},
		axes.MetricEnd(): ir.Production{
			{Test: test, Scale: secondary, Field: o.Metric},
			{Scale: primary, Field: o.Metric},
		},
	}
}

// DimensionEncodings positions a bar along its dimension axis: on the band
// scale, or within its dodge group's position scale.
func DimensionEncodings(o options.BarOptions) ir.EncodeEntry {
	axes := axesOf(o)
	if o.IsDodged() {
		pos := names.Of(o.Name, names.Position)
		return ir.EncodeEntry{
			axes.Dimension:     ir.Production{{Scale: pos, Field: names.Of(o.Name, names.DodgeGroup)}},
			axes.DimensionSize: ir.Production{{Scale: pos, Band: 1}},
		}
	}
	return ir.EncodeEntry{
		axes.Dimension:     ir.Production{{Scale: axes.BandScale, Field: o.Dimension}},
		axes.DimensionSize: ir.Production{{Scale: axes.BandScale, Band: 1}},
	}
}

// Corners holds the four corner radius productions of a rect.
type Corners struct {
	TopLeft     ir.Production
	TopRight    ir.Production
	BottomRight ir.Production
	BottomLeft  ir.Production
}

// RotateClockwise turns the corner assignment a quarter turn, as a vertical
// bar becomes a horizontal one.
func (c Corners) RotateClockwise() Corners {
	return Corners{
		TopLeft:     c.BottomLeft,
		TopRight:    c.TopLeft,
		BottomRight: c.TopRight,
		BottomLeft:  c.BottomRight,
	}
}

// Apply sets the corner channels of e.
func (c Corners) Apply(e ir.EncodeEntry) {
	e["cornerRadiusTopLeft"] = c.TopLeft
	e["cornerRadiusTopRight"] = c.TopRight
	e["cornerRadiusBottomRight"] = c.BottomRight
	e["cornerRadiusBottomLeft"] = c.BottomLeft
}

// Radius is the corner radius, shrunk by half the border width so that the
// rounding stays inside the stroke.
func Radius(o options.BarOptions) float64 {
	if o.HasSquareCorners {
		return 0
	}
	return math.Max(CornerRadius-theme.LineWidthPixels(o.LineWidth)/2, 0)
}

// CornerRadii rounds the far end of a bar. Only the outermost segment of a
// stack is rounded; it is looked up in the {name}_stacks aggregate by stack id.
func CornerRadii(o options.BarOptions) Corners {
	var top, bottom string
	if o.IsStacked() {
		end := o.Metric + "1"
		stacks := names.DataExpr(names.Of(o.Name, names.Stacks))
		lookup := fmt.Sprintf("%s[indexof(pluck(%s, '%s'), datum.%s)]", stacks, stacks, names.StackID, names.StackID)
		top = fmt.Sprintf("datum.%s > 0 && %s.max_%s === datum.%s", end, lookup, end, end)
		bottom = fmt.Sprintf("datum.%s < 0 && %s.min_%s === datum.%s", end, lookup, end, end)
	} else {
		top = fmt.Sprintf("datum.%s > 0", o.Metric)
		bottom = fmt.Sprintf("datum.%s < 0", o.Metric)
	}
	r := Radius(o)
	rule := func(test string) ir.Production {
		return ir.Production{{Test: test, Value: r}, {Value: 0}}
	}
	c := Corners{
		TopLeft:     rule(top),
		TopRight:    rule(top),
		BottomRight: rule(bottom),
		BottomLeft:  rule(bottom),
	}
	if o.Orientation == options.Horizontal {
		c = c.RotateClockwise()
	}
	return c
}
