// Package line compiles line marks: one line per series inside a faceted
// group, plus the hover geometry, static points and trendlines that go with it.
package line

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
	"chartspec/internal/trendline"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("chartspec.line")
}

const (
	// HoverPointSize is the symbol area of the highlighted point.
	HoverPointSize = 64
	// HoverAreaSize is the symbol area of the invisible hover targets.
	HoverAreaSize = 400
	// pointStrokeWidth separates a point from the line beneath it.
	pointStrokeWidth = 2
)

// DimensionScale is the name of the line's dimension scale.
func DimensionScale(o options.LineOptions) string {
	return scale.ContinuousName("x", o.ScaleType)
}

// MetricScale is the name of the line's metric scale.
func MetricScale(o options.LineOptions) string {
	if o.MetricAxis != "" {
		return o.MetricAxis
	}
	return names.AxisScale("y", names.Linear)
}

func seriesFields(o options.LineOptions) []string {
	r := facet.Resolve(o.Facets())
	return append(r.PrimaryFields, r.SecondaryFields...)
}

func trendlineParent(o options.LineOptions) trendline.Parent {
	return trendline.Parent{
		Name:           o.Name,
		Dimension:      o.Dimension,
		Metric:         o.Metric,
		Facets:         o.Facets(),
		DimensionScale: DimensionScale(o),
		MetricScale:    MetricScale(o),
		ColorScheme:    o.ColorScheme,
	}
}

func interactive(o options.LineOptions) bool {
	return o.InteractiveMarkName != ""
}

// AddData buckets time dimensions and adds the nodes the hover and selection
// marks are drawn from.
func AddData(data []ir.Data, o options.LineOptions) []ir.Data {
	if o.ScaleType == options.ScaleTime {
		data = dataset.AddTimeTransform(data, o.Dimension, o.Granularity)
	}
	if interactive(o) {
		data = dataset.AddNode(data, ir.Data{
			Name:   names.Of(o.Name, names.HighlightedData),
			Source: names.FilteredTable,
			Transform: []ir.Transform{ir.Filter(fmt.Sprintf("isValid(%s) && %s === datum.%s",
				names.HighlightedItem, names.HighlightedItem, o.IDKey))},
		})
	}
	if len(o.Popovers) > 0 {
		data = dataset.AddNode(data, dataset.SelectedNode(o.Name, o.IDKey, false))
	}
	if o.StaticPoint != "" {
		data = dataset.AddNode(data, ir.Data{
			Name:      names.Of(o.Name, names.StaticPointData),
			Source:    names.FilteredTable,
			Transform: []ir.Transform{ir.Filter(fmt.Sprintf("datum.%s === true", o.StaticPoint))},
		})
	}
	return trendline.AddData(data, trendlineParent(o), o.Trendlines)
}

// AddScales adds the facet scales, the continuous dimension scale and the
// metric scale.
func AddScales(scales []ir.Scale, o options.LineOptions) []ir.Scale {
	scales = scale.AddFacetScales(scales, o.Facets())
	var padding *float64
	if o.ScaleType == options.ScalePoint {
		padding = o.Padding
	}
	scales = scale.AddContinuousDimensionScale(scales, "x", o.ScaleType, o.Dimension, padding)
	return scale.AddMetricScale(scales, "y", o.MetricAxis, o.Metric)
}

// AddSignals wires hovering and clicking the hover targets to the highlight
// and selection signals.
func AddSignals(signals []ir.Signal, o options.LineOptions) []ir.Signal {
	target := names.Of(o.Name, names.HoverArea)
	if interactive(o) {
		var exclude []string
		for _, t := range o.Tooltips {
			exclude = append(exclude, t.ExcludeDataKeys...)
		}
		signals = signal.AddHighlightedItemEvents(signals, signal.Hover{
			Target: target, Depth: 1, IDKey: o.IDKey, ExcludeKeys: exclude,
		})
		if o.HighlightSeries && o.Color.Field != "" {
			signals = signal.AddHighlightedSeriesEvents(signals, target, 1, o.Color.Field)
		}
	}
	if len(o.Popovers) > 0 {
		click := names.Event(target, "click")
		signals = signal.AppendHandlers(signals, names.SelectedItem, ir.Handler{Events: click, Update: "datum." + o.IDKey})
		if o.Color.Field != "" {
			signals = signal.AppendHandlers(signals, names.SelectedSeries, ir.Handler{Events: click, Update: "datum." + o.Color.Field})
		}
	}
	return trendline.AddSignals(signals, trendlineParent(o), o.Trendlines)
}

// AddMarks appends the line group, static points, hover geometry and trendlines.
func AddMarks(marks []ir.Mark, o options.LineOptions) []ir.Mark {
	out := ir.Clone(marks)
	out = append(out, GroupMark(o))
	if o.StaticPoint != "" {
		out = append(out, StaticPointMark(o))
	}
	if interactive(o) {
		out = append(out, HoverRuleMark(o), PointMark(o), HoverAreaMark(o))
	}
	if len(o.Popovers) > 0 {
		out = append(out, SelectedPointMark(o))
	}
	tracer().Debugf("%s: %d trendline(s)", o.Name, len(o.Trendlines))
	return append(out, trendline.Marks(trendlineParent(o), o.Trendlines)...)
}

// GroupMark facets filteredTable by series and draws one line per facet.
func GroupMark(o options.LineOptions) ir.Mark {
	facetName := names.Of(o.Name, names.FacetSuffix)
	return ir.Mark{
		Name: names.Of(o.Name, names.Group),
		Type: "group",
		From: &ir.From{Facet: &ir.Facet{
			Name:    facetName,
			Data:    names.FilteredTable,
			Groupby: seriesFields(o),
		}},
		Marks: []ir.Mark{Mark(o, facetName)},
	}
}

// Mark is the line itself.
func Mark(o options.LineOptions, source string) ir.Mark {
	h := encode.Highlight{}
	if o.HighlightSeries && o.Color.Field != "" {
		h.SeriesField = o.Color.Field
	}
	return ir.Mark{
		Name:        o.Name,
		Description: o.Name,
		Type:        "line",
		From:        &ir.From{Data: source},
		Interactive: ir.Bool(false),
		Encode: &ir.Encode{
			Enter: ir.EncodeEntry{
				"y":           ir.Production{{Scale: MetricScale(o), Field: o.Metric}},
				"stroke":      encode.Color(o.Color, o.ColorScheme),
				"strokeDash":  encode.LineType(o.LineType),
				"strokeWidth": encode.LineWidth(o.LineWidth),
			},
			Update: ir.EncodeEntry{
				"x":             ir.Production{{Scale: DimensionScale(o), Field: o.Dimension}},
				"strokeOpacity": encode.HighlightOpacity(encode.Opacity(o.Opacity), h),
			},
		},
	}
}

func point(o options.LineOptions, name, source string) ir.Mark {
	return ir.Mark{
		Name:        name,
		Type:        "symbol",
		From:        &ir.From{Data: source},
		Interactive: ir.Bool(false),
		Encode: &ir.Encode{
			Enter: ir.EncodeEntry{
				"y":           ir.Production{{Scale: MetricScale(o), Field: o.Metric}},
				"fill":        encode.Color(o.Color, o.ColorScheme),
				"stroke":      encode.Signal(names.BackgroundColor),
				"strokeWidth": encode.Static(pointStrokeWidth),
				"size":        encode.Static(HoverPointSize),
			},
			Update: ir.EncodeEntry{
				"x": ir.Production{{Scale: DimensionScale(o), Field: o.Dimension}},
			},
		},
	}
}

// StaticPointMark marks the rows flagged by the staticPoint field.
func StaticPointMark(o options.LineOptions) ir.Mark {
	return point(o, names.Of(o.Name, names.StaticPoints), names.Of(o.Name, names.StaticPointData))
}

// PointMark marks the highlighted row.
func PointMark(o options.LineOptions) ir.Mark {
	return point(o, names.Of(o.Name, names.PointSuffix), names.Of(o.Name, names.HighlightedData))
}

// HoverRuleMark draws a vertical rule through the highlighted row.
func HoverRuleMark(o options.LineOptions) ir.Mark {
	return ir.Mark{
		Name:        names.Of(o.Name, names.HoverRule),
		Type:        "rule",
		From:        &ir.From{Data: names.Of(o.Name, names.HighlightedData)},
		Interactive: ir.Bool(false),
		Encode: &ir.Encode{Update: ir.EncodeEntry{
			"x":           ir.Production{{Scale: DimensionScale(o), Field: o.Dimension}},
			"y":           encode.Static(0),
			"y2":          encode.Signal("height"),
			"stroke":      encode.Static(theme.ColorNameToRGB("gray-300", o.ColorScheme)),
			"strokeWidth": encode.Static(1),
		}},
	}
}

// HoverAreaMark is a transparent symbol over every row; it is the event
// target of the highlight and selection signals.
func HoverAreaMark(o options.LineOptions) ir.Mark {
	enter := ir.EncodeEntry{
		"y":    ir.Production{{Scale: MetricScale(o), Field: o.Metric}},
		"fill": encode.Static("transparent"),
		"size": encode.Static(HoverAreaSize),
	}
	if len(o.Tooltips) > 0 {
		enter["tooltip"] = encode.Tooltip(1)
	}
	update := ir.EncodeEntry{
		"x": ir.Production{{Scale: DimensionScale(o), Field: o.Dimension}},
	}
	encode.Set(update, "cursor", encode.Cursor(len(o.Popovers) > 0))
	return ir.Mark{
		Name:   names.Of(o.Name, names.HoverArea),
		Type:   "symbol",
		From:   &ir.From{Data: names.FilteredTable},
		Encode: &ir.Encode{Enter: enter, Update: update},
	}
}

// SelectedPointMark rings the selected row.
func SelectedPointMark(o options.LineOptions) ir.Mark {
	m := point(o, names.Of(o.Name, names.PointSelect), names.Of(o.Name, names.SelectedData))
	m.Encode.Enter["fill"] = encode.Static("transparent")
	m.Encode.Enter["stroke"] = encode.Static(theme.ColorNameToRGB(encode.SelectionColor, o.ColorScheme))
	m.Encode.Enter["size"] = encode.Static(2 * HoverPointSize)
	return m
}
