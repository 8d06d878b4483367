// Package scatter compiles scatter marks: one symbol per row, every facet
// channel including size, with hover highlighting, a selection ring and
// trendlines.
package scatter

import (
	"chartspec/internal/dataset"
	"chartspec/internal/encode"
	"chartspec/internal/ir"
	"chartspec/internal/names"
	"chartspec/internal/options"
	"chartspec/internal/scale"
	"chartspec/internal/signal"
	"chartspec/internal/theme"
	"chartspec/internal/trendline"
)

// ringPadding widens the selection ring around the selected symbol.
const ringPadding = 4

// DimensionScale is the name of the scatter's dimension scale.
func DimensionScale(o options.ScatterOptions) string {
	return scale.ContinuousName("x", o.DimensionScaleType)
}

func metricScale() string {
	return names.AxisScale("y", names.Linear)
}

func trendlineParent(o options.ScatterOptions) trendline.Parent {
	return trendline.Parent{
		Name:           o.Name,
		Dimension:      o.Dimension,
		Metric:         o.Metric,
		Facets:         o.Facets(),
		DimensionScale: DimensionScale(o),
		MetricScale:    metricScale(),
		ColorScheme:    o.ColorScheme,
	}
}

// AddData buckets time dimensions and adds the selection and trendline nodes.
func AddData(data []ir.Data, o options.ScatterOptions) []ir.Data {
	if o.DimensionScaleType == options.ScaleTime {
		data = dataset.AddTimeTransform(data, o.Dimension, "day")
	}
	if len(o.Popovers) > 0 {
		data = dataset.AddNode(data, dataset.SelectedNode(o.Name, o.IDKey, false))
	}
	return trendline.AddData(data, trendlineParent(o), o.Trendlines)
}

// AddScales adds the facet scales (size included), the dimension scale and
// the metric scale.
func AddScales(scales []ir.Scale, o options.ScatterOptions) []ir.Scale {
	scales = scale.AddFacetScales(scales, o.Facets())
	scales = scale.AddContinuousDimensionScale(scales, "x", o.DimensionScaleType, o.Dimension, nil)
	return scale.AddMetricScale(scales, "y", "", o.Metric)
}

// AddSignals wires hover and click on the symbols.
func AddSignals(signals []ir.Signal, o options.ScatterOptions) []ir.Signal {
	if len(o.Tooltips) > 0 {
		var exclude []string
		for _, t := range o.Tooltips {
			exclude = append(exclude, t.ExcludeDataKeys...)
		}
		signals = signal.AddHighlightedItemEvents(signals, signal.Hover{
			Target: o.Name, Depth: 1, IDKey: o.IDKey, ExcludeKeys: exclude,
		})
	}
	if len(o.Popovers) > 0 {
		signals = signal.AppendHandlers(signals, names.SelectedItem,
			ir.Handler{Events: names.Event(o.Name, "click"), Update: "datum." + o.IDKey})
	}
	return trendline.AddSignals(signals, trendlineParent(o), o.Trendlines)
}

// AddMarks appends the symbols, the selection ring and the trendlines.
func AddMarks(marks []ir.Mark, o options.ScatterOptions) []ir.Mark {
	out := ir.Clone(marks)
	out = append(out, Mark(o))
	if len(o.Popovers) > 0 {
		out = append(out, SelectionRingMark(o))
	}
	return append(out, trendline.Marks(trendlineParent(o), o.Trendlines)...)
}

func position(o options.ScatterOptions) ir.EncodeEntry {
	return ir.EncodeEntry{
		"x": ir.Production{{Scale: DimensionScale(o), Field: o.Dimension}},
		"y": ir.Production{{Scale: metricScale(), Field: o.Metric}},
	}
}

// Mark draws one symbol per row.
func Mark(o options.ScatterOptions) ir.Mark {
	enter := ir.EncodeEntry{
		"fill":        encode.Color(o.Color, o.ColorScheme),
		"stroke":      encode.Color(o.Color, o.ColorScheme),
		"strokeDash":  encode.LineType(o.LineType),
		"strokeWidth": encode.LineWidth(o.LineWidth),
		"size":        encode.SymbolSize(o.Size),
		"shape":       encode.Static("circle"),
	}
	if len(o.Tooltips) > 0 {
		enter["tooltip"] = encode.Tooltip(1)
	}
	h := encode.Highlight{}
	if len(o.Tooltips) > 0 {
		h.IDKey = o.IDKey
	}
	if o.HighlightSeries && o.Color.Field != "" {
		h.SeriesField = o.Color.Field
	}
	update := position(o)
	update["fillOpacity"] = encode.HighlightOpacity(encode.Opacity(o.Opacity), h)
	encode.Set(update, "cursor", encode.Cursor(len(o.Popovers) > 0))

	m := ir.Mark{
		Name:        o.Name,
		Description: o.Name,
		Type:        "symbol",
		From:        &ir.From{Data: names.FilteredTable},
		Encode:      &ir.Encode{Enter: enter, Update: update},
	}
	if o.InteractiveMarkName == "" {
		m.Interactive = ir.Bool(false)
	}
	return m
}

// SelectionRingMark circles the selected row.
func SelectionRingMark(o options.ScatterOptions) ir.Mark {
	width := theme.SymbolWidth(o.Size.Value)
	if o.Size.Field != "" {
		width = theme.SymbolWidth("M")
	}
	return ir.Mark{
		Name:        names.Of(o.Name, names.SelectionRing),
		Type:        "symbol",
		From:        &ir.From{Data: names.Of(o.Name, names.SelectedData)},
		Interactive: ir.Bool(false),
		Encode: &ir.Encode{
			Enter: ir.EncodeEntry{
				"fill":        encode.Static("transparent"),
				"stroke":      encode.Static(theme.ColorNameToRGB(encode.SelectionColor, o.ColorScheme)),
				"strokeWidth": encode.Static(encode.SelectedStrokeWidth),
				"shape":       encode.Static("circle"),
				"size":        encode.Static(theme.SymbolSizeArea(width + 2*ringPadding)),
			},
			Update: position(o),
		},
	}
}
