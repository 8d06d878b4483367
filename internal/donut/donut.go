// Package donut compiles donut marks: a pie layout over filteredTable drawn
// as arcs, with an optional summary in the hole and segment labels.
package donut

import (
	"fmt"
	"math"

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

const (
	// padAngle separates two neighbouring segments, in radians.
	padAngle = 0.01
	// labelOffset is the distance between the ring and a segment label.
	labelOffset = 14
	// summaryFontRatio sizes the summary text relative to the hole.
	summaryFontRatio = 0.35
	sumField         = "sum"
)

const (
	centerX = "width / 2"
	centerY = "height / 2"
	radius  = "min(width, height) / 2"
)

// AddData adds the pie layout node and the aggregate node the summary reads.
func AddData(data []ir.Data, o options.DonutOptions) []ir.Data {
	data = dataset.AddNode(data, ir.Data{
		Name:   names.Of(o.Name, names.Pie),
		Source: names.FilteredTable,
		Transform: []ir.Transform{ir.PieTransform{
			Type:       "pie",
			Field:      o.Metric,
			StartAngle: o.StartAngle,
			EndAngle:   o.StartAngle + 2*math.Pi,
		}},
	})
	data = dataset.AddNode(data, ir.Data{
		Name:   names.Of(o.Name, names.Aggregate),
		Source: names.FilteredTable,
		Transform: []ir.Transform{ir.AggregateTransform{
			Type:   "aggregate",
			Fields: []string{o.Metric},
			Ops:    []string{"sum"},
			As:     []string{sumField},
		}},
	})
	if len(o.Popovers) > 0 {
		data = dataset.AddNode(data, dataset.SelectedNode(o.Name, o.IDKey, false))
	}
	return data
}

// AddScales adds the color field to the color scale.
func AddScales(scales []ir.Scale, o options.DonutOptions) []ir.Scale {
	return scale.AddFieldToFacetScale(scales, facet.TypeColor, facet.Field(o.Color))
}

// AddSignals wires hover and click on the arcs.
func AddSignals(signals []ir.Signal, o options.DonutOptions) []ir.Signal {
	if len(o.Tooltips) > 0 {
		signals = signal.AddHighlightedItemEvents(signals, signal.Hover{Target: o.Name, Depth: 1, IDKey: o.IDKey})
	}
	if o.HighlightSeries {
		signals = signal.AddHighlightedSeriesEvents(signals, o.Name, 1, o.Color)
	}
	if len(o.Popovers) > 0 {
		signals = signal.AppendHandlers(signals, names.SelectedItem,
			ir.Handler{Events: names.Event(o.Name, "click"), Update: "datum." + o.IDKey})
	}
	return signals
}

// AddMarks appends the arcs, the summary and the segment labels.
func AddMarks(marks []ir.Mark, o options.DonutOptions) []ir.Mark {
	out := ir.Clone(marks)
	out = append(out, Mark(o))
	if o.ShowSummary {
		out = append(out, SummaryMarks(o)...)
	}
	if o.SegmentLabels != nil {
		out = append(out, SegmentLabelMark(o))
	}
	return out
}

// Mark draws one arc per row of the pie layout.
func Mark(o options.DonutOptions) ir.Mark {
	colorRef := facet.Field(o.Color)
	enter := ir.EncodeEntry{
		"fill":        encode.Color(colorRef, o.ColorScheme),
		"padAngle":    encode.Static(padAngle),
		"innerRadius": encode.Signal(fmt.Sprintf("%s * %v", radius, o.HoleRatio)),
		"outerRadius": encode.Signal(radius),
	}
	if len(o.Tooltips) > 0 {
		enter["tooltip"] = encode.Tooltip(1)
	}
	h := encode.Highlight{}
	if len(o.Tooltips) > 0 {
		h.IDKey = o.IDKey
	}
	if o.HighlightSeries {
		h.SeriesField = o.Color
	}
	sel := encode.Selection{MarkName: o.Name, IDKey: o.IDKey, Popovers: o.Popovers, Scheme: o.ColorScheme}
	update := ir.EncodeEntry{
		"x":           encode.Signal(centerX),
		"y":           encode.Signal(centerY),
		"startAngle":  ir.Production{{Field: "startAngle"}},
		"endAngle":    ir.Production{{Field: "endAngle"}},
		"fillOpacity": encode.HighlightOpacity(encode.Static(1), h),
		"stroke":      sel.Stroke(encode.Signal(names.BackgroundColor)),
		"strokeWidth": sel.StrokeWidth(0),
	}
	encode.Set(update, "cursor", encode.Cursor(len(o.Popovers) > 0))

	m := ir.Mark{
		Name:        o.Name,
		Description: o.Name,
		Type:        "arc",
		From:        &ir.From{Data: names.Of(o.Name, names.Pie)},
		Encode:      &ir.Encode{Enter: enter, Update: update},
	}
	if o.InteractiveMarkName == "" {
		m.Interactive = ir.Bool(false)
	}
	return m
}

// SummaryMarks write the total, or for a boolean donut the share of the
// first segment, into the hole. A metric label goes below it.
func SummaryMarks(o options.DonutOptions) []ir.Mark {
	fontSize := fmt.Sprintf("%s * %v * %v", radius, o.HoleRatio, summaryFontRatio)
	text := fmt.Sprintf("format(datum.%s, '%s')", sumField, theme.NumberFormatSpecifier("shortNumber"))
	if o.IsBoolean {
		first := fmt.Sprintf("%s[0].%s", names.DataExpr(names.Of(o.Name, names.Pie)), o.Metric)
		text = fmt.Sprintf("format(%s / datum.%s, '%s')", first, sumField, theme.NumberFormatSpecifier("percentage"))
	}
	aggregate := &ir.From{Data: names.Of(o.Name, names.Aggregate)}
	summary := ir.Mark{
		Name:        names.Of(o.Name, names.Summary),
		Type:        "text",
		From:        aggregate,
		Interactive: ir.Bool(false),
		Encode: &ir.Encode{Update: ir.EncodeEntry{
			"x":          encode.Signal(centerX),
			"y":          encode.Signal(centerY),
			"text":       encode.Signal(text),
			"fontSize":   encode.Signal(fontSize),
			"fontWeight": encode.Static("bold"),
			"align":      encode.Static("center"),
			"baseline":   encode.Static("alphabetic"),
			"fill":       encode.Static(theme.ColorNameToRGB("gray-800", o.ColorScheme)),
		}},
	}
	if o.MetricLabel == "" || o.IsBoolean {
		return []ir.Mark{summary}
	}
	label := ir.Mark{
		Name:        names.Of(o.Name, names.SummaryLabel),
		Type:        "text",
		From:        aggregate,
		Interactive: ir.Bool(false),
		Encode: &ir.Encode{Update: ir.EncodeEntry{
			"x":        encode.Signal(centerX),
			"y":        encode.Signal(fmt.Sprintf("%s + %s * 0.5", centerY, fontSize)),
			"text":     encode.Static(o.MetricLabel),
			"fontSize": encode.Signal(fmt.Sprintf("%s * 0.5", fontSize)),
			"align":    encode.Static("center"),
			"baseline": encode.Static("top"),
			"fill":     encode.Static(theme.ColorNameToRGB("gray-700", o.ColorScheme)),
		}},
	}
	return []ir.Mark{summary, label}
}

// SegmentLabelMark places a label outside the middle of each segment.
func SegmentLabelMark(o options.DonutOptions) ir.Mark {
	sl := o.SegmentLabels
	key := sl.LabelKey
	if key == "" {
		key = o.Color
	}
	text := "datum." + key
	total := fmt.Sprintf("%s[0].%s", names.DataExpr(names.Of(o.Name, names.Aggregate)), sumField)
	if sl.Percent {
		text += fmt.Sprintf(" + ' ' + format(datum.%s / %s, '.0%%')", o.Metric, total)
	}
	if sl.Value {
		format := sl.ValueFormat
		if format == "" {
			format = "standardNumber"
		}
		text += fmt.Sprintf(" + ' ' + format(datum.%s, '%s')", o.Metric, theme.NumberFormatSpecifier(format))
	}
	return ir.Mark{
		Name:        names.Of(o.Name, names.SegmentLabel),
		Type:        "text",
		From:        &ir.From{Data: names.Of(o.Name, names.Pie)},
		Interactive: ir.Bool(false),
		Encode: &ir.Encode{Update: ir.EncodeEntry{
			"x":        encode.Signal(centerX),
			"y":        encode.Signal(centerY),
			"theta":    encode.Signal("(datum.startAngle + datum.endAngle) / 2"),
			"radius":   encode.Signal(fmt.Sprintf("%s + %d", radius, labelOffset)),
			"text":     encode.Signal(text),
			"align":    encode.Signal("(datum.startAngle + datum.endAngle) / 2 <= PI ? 'left' : 'right'"),
			"baseline": encode.Static("middle"),
			"fill":     encode.Static(theme.ColorNameToRGB("gray-800", o.ColorScheme)),
		}},
	}
}
