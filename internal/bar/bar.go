// Package bar compiles bar marks: stacked, dodged, dodged-and-stacked, any of
// them trellised, with popover selection, annotations and a dual metric axis.
package bar

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

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("chartspec.bar")
}

// hasDualAxis reports whether the last series is drawn against a second
// metric axis. Stacked bars share one axis.
func hasDualAxis(o options.BarOptions) bool {
	return o.DualMetricAxis && !o.IsStacked() && o.Color.Kind() == facet.KindField
}

// StackGroupby lists the fields rows are stacked by: the trellis field, the
// dimension, then the secondary facet fields.
func StackGroupby(o options.BarOptions) []string {
	var fields []string
	if o.Trellis != "" {
		fields = append(fields, o.Trellis)
	}
	fields = append(fields, o.Dimension)
	return append(fields, facet.Resolve(o.Facets()).SecondaryFields...)
}

// DodgeFields lists the fields that place a row into its dodge sub-band.
func DodgeFields(o options.BarOptions) []string {
	return facet.Resolve(o.Facets()).PrimaryFields
}

// AddData appends the bar's transforms to filteredTable and adds its derived
// nodes.
func AddData(data []ir.Data, o options.BarOptions) []ir.Data {
	if o.IsStacked() {
		groupby := StackGroupby(o)
		data, _ = dataset.Append(data, names.FilteredTable, dataset.Stack(groupby, o.Metric, o.Order)...)
	}
	if o.IsDodged() {
		data, _ = dataset.Append(data, names.FilteredTable, dataset.DodgeGroup(o.Name, DodgeFields(o)))
	}
	if o.IsStacked() {
		data = dataset.AddNode(data, dataset.StacksNode(o.Name, StackGroupby(o), o.Metric))
	}
	data = addInteractionData(data, o)
	if hasDualAxis(o) {
		for _, n := range dataset.SeriesMetricNodes(o.Name, o.Color.Field) {
			data = dataset.AddNode(data, n)
		}
	}
	return data
}

func groupIDExpr(o options.BarOptions, h options.HighlightBy) string {
	return dataset.GroupIDExpr(h.Mode, h.Keys, o.IDKey, o.Dimension, o.Color.Field)
}

func addInteractionData(data []ir.Data, o options.BarOptions) []ir.Data {
	for _, t := range o.Tooltips {
		if t.HighlightBy.Mode != options.HighlightItem {
			data = dataset.AddGroupID(data, o.Name, names.HighlightGroupID, groupIDExpr(o, t.HighlightBy))
		}
	}
	for _, p := range o.Popovers {
		data = dataset.AddGroupID(data, o.Name, names.SelectedGroupID, groupIDExpr(o, p.HighlightBy))
	}
	if len(o.Popovers) > 0 {
		byGroup := o.Popovers[0].HighlightBy.Mode != options.HighlightItem
		data = dataset.AddNode(data, dataset.SelectedNode(o.Name, o.IDKey, byGroup))
	}
	return data
}

// AddScales adds the bar's facet, metric, dimension and trellis scales.
func AddScales(scales []ir.Scale, o options.BarOptions) []ir.Scale {
	axes := axesOf(o)
	scales = scale.AddFacetScales(scales, o.Facets())
	if o.IsDodgedAndStacked() {
		scales = scale.AddSecondaryScales(scales, o.Facets())
	}
	switch {
	case hasDualAxis(o):
		scales = scale.AddDualMetricScales(scales, axes.Metric, o.Name, o.Metric)
	case o.IsStacked():
		scales = scale.AddMetricScale(scales, axes.Metric, "", o.Metric+"1")
	default:
		scales = scale.AddMetricScale(scales, axes.Metric, "", o.Metric)
	}
	scales = scale.AddBandScale(scales, axes.Dimension, o.Dimension, o.PaddingRatioValue(), o.PaddingOuter)
	if o.Trellis != "" {
		scales = scale.AddTrellisScale(scales, trellisAxis(o), o.Trellis, *o.TrellisPadding)
	}
	return scales
}

// AddSignals adds the band padding signal and the signals the bar's
// interactions drive.
func AddSignals(signals []ir.Signal, o options.BarOptions) []ir.Signal {
	signals = signal.Add(signals, signal.Value(names.PaddingInner, o.PaddingRatioValue()))
	for _, t := range o.Tooltips {
		signals = signal.AddHighlightedItemEvents(signals, signal.Hover{
			Target:      o.Name,
			Depth:       1,
			IDKey:       o.IDKey,
			ExcludeKeys: t.ExcludeDataKeys,
		})
		if t.HighlightBy.Mode != options.HighlightItem {
			signals = signal.AddHighlightedGroupEvents(signals, o.Name)
		}
	}
	if len(o.Popovers) > 0 {
		signals = signal.AppendHandlers(signals, names.SelectedItem,
			ir.Handler{Events: names.Event(o.Name, "click"), Update: "datum." + o.IDKey})
		signals = signal.AppendHandlers(signals, names.SelectedGroup,
			ir.Handler{Events: names.Event(o.Name, "click"), Update: "datum." + names.Of(o.Name, names.SelectedGroupID)})
	}
	if hasDualAxis(o) {
		signals = signal.AddDualAxisSeries(signals)
	}
	return signals
}

// AddMarks appends the bar's mark tree.
func AddMarks(marks []ir.Mark, o options.BarOptions) []ir.Mark {
	out := ir.Clone(marks)
	source := names.FilteredTable
	if o.Trellis != "" {
		source = names.Of(o.Name, names.TrellisFacet)
	}

	var barMarks []ir.Mark
	if o.IsDodged() {
		tracer().Debugf("%s: dodged (stacked=%v)", o.Name, o.IsStacked())
		barMarks = []ir.Mark{DodgeGroupMark(o, source)}
	} else {
		barMarks = []ir.Mark{BackgroundMark(o, source), Mark(o, source)}
		barMarks = append(barMarks, AnnotationMarks(o, source)...)
	}
	if options.HasDimensionPopover(o.Popovers) {
		barMarks = append(barMarks, SelectionRingMark(o))
	}
	if o.Trellis != "" {
		barMarks = []ir.Mark{TrellisGroupMark(o, barMarks)}
	}
	return append(out, barMarks...)
}

// BackgroundMark is drawn beneath the bar in the chart background color so
// that translucent bars do not show grid lines through them.
func BackgroundMark(o options.BarOptions, source string) ir.Mark {
	enter := ir.EncodeEntry{}
	for k, v := range MetricEncodings(o) {
		enter[k] = v
	}
	CornerRadii(o).Apply(enter)
	enter["fill"] = encode.Signal(names.BackgroundColor)
	return ir.Mark{
		Name:        names.Of(o.Name, names.Background),
		Type:        "rect",
		From:        &ir.From{Data: source},
		Interactive: ir.Bool(false),
		Encode: &ir.Encode{
			Enter:  enter,
			Update: DimensionEncodings(o),
		},
	}
}

// Mark is the bar itself.
func Mark(o options.BarOptions, source string) ir.Mark {
	enter := ir.EncodeEntry{}
	for k, v := range MetricEncodings(o) {
		enter[k] = v
	}
	CornerRadii(o).Apply(enter)
	enter["fill"] = encode.Color(o.Color, o.ColorScheme)
	if len(o.Tooltips) > 0 {
		enter["tooltip"] = encode.Tooltip(1)
	}

	update := DimensionEncodings(o)
	sel := encode.Selection{MarkName: o.Name, IDKey: o.IDKey, Popovers: o.Popovers, Scheme: o.ColorScheme}
	encode.Set(update, "cursor", encode.Cursor(len(o.Popovers) > 0 || o.HasOnClick))
	update["fillOpacity"] = encode.HighlightOpacity(encode.Opacity(o.Opacity), highlight(o))
	update["stroke"] = sel.Stroke(encode.Color(o.Color, o.ColorScheme))
	update["strokeDash"] = sel.StrokeDash(encode.LineType(o.LineType))
	update["strokeWidth"] = sel.StrokeWidth(o.LineWidth)

	m := ir.Mark{
		Name:        o.Name,
		Description: o.Name,
		Type:        "rect",
		From:        &ir.From{Data: source},
		Encode:      &ir.Encode{Enter: enter, Update: update},
	}
	if !o.HasInteraction() {
		m.Interactive = ir.Bool(false)
	}
	return m
}

func highlight(o options.BarOptions) encode.Highlight {
	var h encode.Highlight
	for _, t := range o.Tooltips {
		h.IDKey = o.IDKey
		if t.HighlightBy.Mode != options.HighlightItem {
			h.GroupField = names.Of(o.Name, names.HighlightGroupID)
		}
	}
	if o.HighlightSeries && o.Color.Kind() != facet.KindValue {
		h.SeriesField = o.Color.Field
	}
	return h
}

// DodgeGroupMark places one group per dimension value on the band scale. Its
// position scale is fitted to the dodge groups of the whole filteredTable, not
// the group's own rows, so that sub-bands line up across groups even when
// some groups lack a series.
func DodgeGroupMark(o options.BarOptions, source string) ir.Mark {
	axes := axesOf(o)
	facetName := names.Of(o.Name, names.FacetSuffix)
	children := []ir.Mark{BackgroundMark(o, facetName), Mark(o, facetName)}
	children = append(children, AnnotationMarks(o, facetName)...)
	return ir.Mark{
		Name: names.Of(o.Name, names.Group),
		Type: "group",
		From: &ir.From{Facet: &ir.Facet{Name: facetName, Data: source, Groupby: []string{o.Dimension}}},
		Encode: &ir.Encode{Enter: ir.EncodeEntry{
			axes.Dimension:     ir.Production{{Scale: axes.BandScale, Field: o.Dimension}},
			axes.DimensionSize: encode.Signal(names.BandwidthExpr(axes.BandScale)),
		}},
		Scales: []ir.Scale{{
			Name:         names.Of(o.Name, names.Position),
			Type:         scale.Band,
			Range:        axes.DimensionSize,
			PaddingInner: ir.Float(o.PaddingRatioValue()),
			Domain:       &ir.Domain{Data: names.FilteredTable, Field: names.Of(o.Name, names.DodgeGroup)},
		}},
		Marks: children,
	}
}

func trellisAxis(o options.BarOptions) string {
	if o.TrellisOrientation == options.Vertical {
		return "y"
	}
	return "x"
}

// TrellisGroupMark repeats the bar marks once per trellis value. The scale
// lying along the trellis axis is cloned into each cell so that every cell
// gets its own bandwidth.
func TrellisGroupMark(o options.BarOptions, children []ir.Mark) ir.Mark {
	axes := axesOf(o)
	tAxis := trellisAxis(o)
	tScale := names.TrellisScale(tAxis)
	size, crossAxis, crossSize := "width", "y", "height"
	if tAxis == "y" {
		size, crossAxis, crossSize = "height", "x", "width"
	}
	repeated := axes.MetricScale
	if axes.Dimension == tAxis {
		repeated = axes.BandScale
	}
	m := ir.Mark{
		Name: names.Of(o.Name, names.Trellis),
		Type: "group",
		From: &ir.From{Facet: &ir.Facet{
			Name:    names.Of(o.Name, names.TrellisFacet),
			Data:    names.FilteredTable,
			Groupby: []string{o.Trellis},
		}},
		Encode: &ir.Encode{Enter: ir.EncodeEntry{
			tAxis:     ir.Production{{Scale: tScale, Field: o.Trellis}},
			size:      encode.Signal(names.BandwidthExpr(tScale)),
			crossAxis: encode.Static(0),
			crossSize: encode.Signal(crossSize),
		}},
		Marks: children,
	}
	repeat := []string{repeated}
	if repeated == axes.MetricScale && hasDualAxis(o) {
		repeat = []string{names.PrimaryMetricScale(axes.Metric), names.SecondaryMetricScale(axes.Metric)}
	}
	for _, name := range repeat {
		if s, ok := scale.Repeat(repeatSource(o), name, tAxis); ok {
			m.Scales = append(m.Scales, s)
		}
	}
	return m
}

// repeatSource is the registry view the trellis cell clones from: the bar's
// own scales over an empty registry, so that the clone does not depend on
// other marks' fields.
func repeatSource(o options.BarOptions) []ir.Scale {
	return AddScales(nil, o)
}

// SelectionRingMark outlines the rows of the selected dimension value.
func SelectionRingMark(o options.BarOptions) ir.Mark {
	axes := axesOf(o)
	start, end := "0", o.Metric
	if o.IsStacked() {
		start, end = o.Metric+"0", o.Metric+"1"
	}
	startExpr := start
	if start != "0" {
		startExpr = "datum." + start
	}
	band := names.ScaleExpr(axes.BandScale, "datum."+o.Dimension)
	endPx := metricPixels(o, axes, "datum."+end)
	startPx := metricPixels(o, axes, startExpr)
	near, far := fmt.Sprintf("%s - %d", endPx, ringPadding), fmt.Sprintf("%s + %d", startPx, ringPadding)
	if axes.Metric == "x" {
		near, far = fmt.Sprintf("%s - %d", startPx, ringPadding), fmt.Sprintf("%s + %d", endPx, ringPadding)
	}
	return ir.Mark{
		Name:        names.Of(o.Name, names.SelectionRing),
		Type:        "rect",
		From:        &ir.From{Data: names.Of(o.Name, names.SelectedData)},
		Interactive: ir.Bool(false),
		Encode: &ir.Encode{
			Enter: ir.EncodeEntry{
				"fill":         encode.Static("transparent"),
				"stroke":       encode.Static(theme.ColorNameToRGB(encode.SelectionColor, o.ColorScheme)),
				"strokeWidth":  encode.Static(encode.SelectedStrokeWidth),
				"cornerRadius": encode.Static(CornerRadius),
			},
			Update: ir.EncodeEntry{
				axes.Dimension:     encode.Signal(fmt.Sprintf("%s - %d", band, ringPadding)),
				axes.DimensionSize: encode.Signal(fmt.Sprintf("%s + %d", names.BandwidthExpr(axes.BandScale), 2*ringPadding)),
				axes.Metric:        encode.Signal(near),
				axes.MetricEnd():   encode.Signal(far),
			},
		},
	}
}

const ringPadding = 3

// metricPixels maps a metric value to pixels on the scale the row is drawn
// against.
func metricPixels(o options.BarOptions, axes scale.Axes, value string) string {
	if !hasDualAxis(o) {
		return names.ScaleExpr(axes.MetricScale, value)
	}
	return fmt.Sprintf("(datum.%s === %s ? %s : %s)", o.Color.Field, names.LastSeries,
		names.ScaleExpr(names.SecondaryMetricScale(axes.Metric), value),
		names.ScaleExpr(names.PrimaryMetricScale(axes.Metric), value))
}
