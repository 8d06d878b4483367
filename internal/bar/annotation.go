package bar

import (
	"fmt"

	"chartspec/internal/encode"
	"chartspec/internal/ir"
	"chartspec/internal/names"
	"chartspec/internal/options"
	"chartspec/internal/theme"
)

const (
	annotationOffset  = 10
	annotationPadding = 3
	annotationFont    = 12
)

// AnnotationMarks labels the end of every bar with its textKey field. The
// label is drawn first and its bounds size the background behind it.
func AnnotationMarks(o options.BarOptions, source string) []ir.Mark {
	if len(o.Annotations) == 0 {
		return nil
	}
	a := o.Annotations[0]
	if a.TextKey == "" {
		return nil
	}
	textName := names.Of(o.Name, names.AnnotationText)
	return []ir.Mark{{
		Name:        names.Of(o.Name, names.AnnotationGroup),
		Type:        "group",
		Interactive: ir.Bool(false),
		Marks: []ir.Mark{
			{
				Name:        textName,
				Type:        "text",
				From:        &ir.From{Data: source},
				Interactive: ir.Bool(false),
				ZIndex:      1,
				Encode: &ir.Encode{
					Enter: annotationTextEncode(o, a),
					Update: ir.EncodeEntry{
						"fill": encode.Static(theme.ColorNameToRGB("gray-800", o.ColorScheme)),
					},
				},
			},
			{
				Name:        names.Of(o.Name, names.AnnotationBackground),
				Type:        "rect",
				From:        &ir.From{Data: textName},
				Interactive: ir.Bool(false),
				Encode: &ir.Encode{Enter: ir.EncodeEntry{
					"x":            encode.Signal(fmt.Sprintf("datum.bounds.x1 - %d", annotationPadding)),
					"x2":           encode.Signal(fmt.Sprintf("datum.bounds.x2 + %d", annotationPadding)),
					"y":            encode.Signal(fmt.Sprintf("datum.bounds.y1 - %d", annotationPadding)),
					"y2":           encode.Signal(fmt.Sprintf("datum.bounds.y2 + %d", annotationPadding)),
					"cornerRadius": encode.Static(4),
					"fill":         encode.Signal(names.BackgroundColor),
				}},
			},
		},
	}}
}

func annotationTextEncode(o options.BarOptions, a options.AnnotationOptions) ir.EncodeEntry {
	axes := axesOf(o)
	end := o.Metric
	if o.IsStacked() {
		end = o.Metric + "1"
	}

	dim := DimensionEncodings(o)[axes.Dimension][0]
	dim.Band = 0.5

	// labels sit outside the bar end, on the side the bar grows to
	outward, inward := -annotationOffset, annotationOffset
	if axes.Metric == "x" {
		outward, inward = inward, outward
	}
	e := ir.EncodeEntry{
		axes.Dimension: ir.Production{dim},
		axes.Metric:    annotationMetric(o, axes.MetricScale, end, inward, outward),
		"text":         ir.Production{{Field: a.TextKey}},
		"fontSize":     encode.Static(annotationFont),
		"fontWeight":   encode.Static("bold"),
		"align":        encode.Static("center"),
		"baseline":     encode.Static("middle"),
	}
	if a.Width > 0 {
		e["limit"] = encode.Static(a.Width)
	}
	return e
}

// annotationMetric places the label at the bar end, inside it for negative
// values. With a dual metric axis the last series is read off the secondary
// scale, like the bar it labels.
func annotationMetric(o options.BarOptions, metricScale, end string, inward, outward int) ir.Production {
	negative := fmt.Sprintf("datum.%s < 0", end)
	if !hasDualAxis(o) {
		return ir.Production{
			{Test: negative, Scale: metricScale, Field: end, Offset: inward},
			{Scale: metricScale, Field: end, Offset: outward},
		}
	}
	axes := axesOf(o)
	primary, secondary := names.PrimaryMetricScale(axes.Metric), names.SecondaryMetricScale(axes.Metric)
	last := fmt.Sprintf("datum.%s === %s", o.Color.Field, names.LastSeries)
	return ir.Production{
		{Test: last + " && " + negative, Scale: secondary, Field: end, Offset: inward},
		{Test: last, Scale: secondary, Field: end, Offset: outward},
		{Test: negative, Scale: primary, Field: end, Offset: inward},
		{Scale: primary, Field: end, Offset: outward},
	}
}
