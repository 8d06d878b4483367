// Package area compiles area marks. An area either stacks its metric per
// dimension value or spans an explicit metricStart/metricEnd pair.
package area

import (
	"fmt"

	"chartspec/internal/dataset"
	"chartspec/internal/encode"
	"chartspec/internal/facet"
	"chartspec/internal/ir"
	"chartspec/internal/names"
	"chartspec/internal/options"
	"chartspec/internal/scale"
	"chartspec/internal/signal"
	"chartspec/internal/theme"
)

// selectedStrokeWidth outlines the selected series.
const selectedStrokeWidth = 1.5

func assignments(o options.AreaOptions) facet.Assignments {
	return facet.Assignments{Color: o.Color}
}

// DimensionScale is the name of the area's dimension scale.
func DimensionScale(o options.AreaOptions) string {
	return scale.ContinuousName("x", o.ScaleType)
}

// MetricFields returns the start and end fields of the area.
func MetricFields(o options.AreaOptions) (start, end string) {
	if o.IsStacked() {
		return o.Metric + "0", o.Metric + "1"
	}
	return o.MetricStart, o.MetricEnd
}

// AddData buckets time dimensions and stacks the metric per dimension value.
func AddData(data []ir.Data, o options.AreaOptions) []ir.Data {
	if o.ScaleType == options.ScaleTime {
		data = dataset.AddTimeTransform(data, o.Dimension, o.Granularity)
	}
	if o.IsStacked() {
		data, _ = dataset.Append(data, names.FilteredTable, dataset.Stack([]string{o.Dimension}, o.Metric, o.Order)...)
	}
	return data
}

// AddScales adds the color scale, the dimension scale and the metric scale
// fitted to both ends of the area.
func AddScales(scales []ir.Scale, o options.AreaOptions) []ir.Scale {
	scales = scale.AddFacetScales(scales, assignments(o))
	var padding *float64
	if o.ScaleType == options.ScalePoint {
		padding = o.Padding
	}
	scales = scale.AddContinuousDimensionScale(scales, "x", o.ScaleType, o.Dimension, padding)
	start, end := MetricFields(o)
	if o.IsStacked() {
		return scale.AddMetricScale(scales, "y", "", end)
	}
	return scale.AddMetricScale(scales, "y", "", start, end)
}

// AddSignals highlights the hovered series and selects the clicked one.
func AddSignals(signals []ir.Signal, o options.AreaOptions) []ir.Signal {
	series := o.Color.Field
	if series == "" {
		return signals
	}
	if len(o.Tooltips) > 0 || o.HighlightSeries {
		signals = signal.AddHighlightedSeriesEvents(signals, o.Name, 1, series)
	}
	if len(o.Popovers) > 0 {
		signals = signal.AppendHandlers(signals, names.SelectedSeries,
			ir.Handler{Events: names.Event(o.Name, "click"), Update: "datum." + series})
	}
	return signals
}

// AddMarks appends the area group.
func AddMarks(marks []ir.Mark, o options.AreaOptions) []ir.Mark {
	out := ir.Clone(marks)
	facetName := names.Of(o.Name, names.FacetSuffix)
	r := facet.Resolve(assignments(o))
	return append(out, ir.Mark{
		Name: names.Of(o.Name, names.Group),
		Type: "group",
		From: &ir.From{Facet: &ir.Facet{
			Name:    facetName,
			Data:    names.FilteredTable,
			Groupby: append(r.PrimaryFields, r.SecondaryFields...),
		}},
		Marks: []ir.Mark{Mark(o, facetName)},
	})
}

// Mark is the area itself.
func Mark(o options.AreaOptions, source string) ir.Mark {
	start, end := MetricFields(o)
	metric := names.AxisScale("y", names.Linear)
	enter := ir.EncodeEntry{
		"y":           ir.Production{{Scale: metric, Field: start}},
		"y2":          ir.Production{{Scale: metric, Field: end}},
		"fill":        encode.Color(o.Color, o.ColorScheme),
		"interpolate": encode.Static("linear"),
	}
	if len(o.Tooltips) > 0 {
		enter["tooltip"] = encode.Tooltip(1)
	}

	h := encode.Highlight{}
	if (len(o.Tooltips) > 0 || o.HighlightSeries) && o.Color.Field != "" {
		h.SeriesField = o.Color.Field
	}
	update := ir.EncodeEntry{
		"x":           ir.Production{{Scale: DimensionScale(o), Field: o.Dimension}},
		"fillOpacity": encode.HighlightOpacity(encode.Static(o.Opacity), h),
	}
	encode.Set(update, "cursor", encode.Cursor(len(o.Popovers) > 0))
	if len(o.Popovers) > 0 && o.Color.Field != "" {
		test := fmt.Sprintf("isValid(%s) && %s === datum.%s", names.SelectedSeries, names.SelectedSeries, o.Color.Field)
		update["stroke"] = ir.Production{
			{Test: test, Value: theme.ColorNameToRGB(encode.SelectionColor, o.ColorScheme)},
			{Value: "transparent"},
		}
		update["strokeWidth"] = encode.Static(selectedStrokeWidth)
	}

	m := ir.Mark{
		Name:        o.Name,
		Description: o.Name,
		Type:        "area",
		From:        &ir.From{Data: source},
		Encode:      &ir.Encode{Enter: enter, Update: update},
	}
	if o.InteractiveMarkName == "" {
		m.Interactive = ir.Bool(false)
	}
	return m
}
