package scale

import (
	"chartspec/internal/ir"
	"chartspec/internal/names"
)

// Axes names the channels and scales of a mark's metric and dimension axes.
type Axes struct {
	Metric        string // "y" when vertical
	Dimension     string // "x" when vertical
	MetricSize    string // "height" when vertical
	DimensionSize string // "width" when vertical
	MetricScale   string // "yLinear" when vertical
	BandScale     string // "xBand" when vertical
}

// ForOrientation resolves the axes of a vertical or horizontal mark.
func ForOrientation(vertical bool) Axes {
	if vertical {
		return Axes{
			Metric: "y", Dimension: "x",
			MetricSize: "height", DimensionSize: "width",
			MetricScale: names.AxisScale("y", names.Linear), BandScale: names.AxisScale("x", names.Band),
		}
	}
	return Axes{
		Metric: "x", Dimension: "y",
		MetricSize: "width", DimensionSize: "height",
		MetricScale: names.AxisScale("x", names.Linear), BandScale: names.AxisScale("y", names.Band),
	}
}

// MetricEnd is the secondary position channel of the metric axis, "y2" or "x2".
func (a Axes) MetricEnd() string { return a.Metric + "2" }

// AddMetricScale extends the linear scale on axis with fields. name overrides
// the default "{axis}Linear" name.
func AddMetricScale(scales []ir.Scale, axis, name string, fields ...string) []ir.Scale {
	if name == "" {
		name = names.AxisScale(axis, names.Linear)
	}
	return AddFields(scales, name, Linear, fields...)
}

// AddDualMetricScales creates the primary and secondary linear scales of a
// dual metric axis. Each is fitted to the mark's own partition of the rows,
// see dataset.SeriesMetricNodes.
func AddDualMetricScales(scales []ir.Scale, axis, markName string, fields ...string) []ir.Scale {
	for _, side := range []struct{ scale, data string }{
		{names.PrimaryMetricScale(axis), names.Of(markName, names.PrimaryMetric)},
		{names.SecondaryMetricScale(axis), names.Of(markName, names.SecondaryMetric)},
	} {
		var i int
		scales, i = GetOrCreate(scales, side.scale, Linear)
		out := ir.Clone(scales)
		if len(out[i].Domain.Fields) == 0 {
			out[i].Domain.Data = side.data
		}
		out[i] = AddDomainFields(out[i], fields...)
		scales = out
	}
	return scales
}

// AddBandScale extends the band scale on axis with field. The outer padding
// defaults to DiscretePadding - (1-inner)/2 so that bars sit centred on the
// axis with half a step of space at both ends.
func AddBandScale(scales []ir.Scale, axis, field string, inner float64, outer *float64) []ir.Scale {
	name := names.AxisScale(axis, names.Band)
	scales = AddFields(scales, name, Band, field)
	return Update(scales, name, func(s ir.Scale) ir.Scale {
		s.PaddingInner = ir.Float(inner)
		s.PaddingOuter = ir.Float(PaddingOuter(inner, outer))
		return s
	})
}

// DiscretePadding is the outer padding of a band with no inner padding.
const DiscretePadding = 0.5

// PaddingOuter resolves the band's outer padding.
func PaddingOuter(inner float64, outer *float64) float64 {
	if outer != nil {
		return *outer
	}
	return DiscretePadding - (1-inner)/2
}

// AddContinuousDimensionScale extends the linear, time or point scale on axis
// with field. Point scales take the optional padding.
func AddContinuousDimensionScale(scales []ir.Scale, axis, typ, field string, padding *float64) []ir.Scale {
	name := ContinuousName(axis, typ)
	scales = AddFields(scales, name, typ, field)
	if padding != nil {
		scales = Update(scales, name, func(s ir.Scale) ir.Scale {
			s.Padding = ir.Float(*padding)
			return s
		})
	}
	return scales
}

// ContinuousName names the linear, time or point scale on axis.
func ContinuousName(axis, typ string) string {
	switch typ {
	case Time:
		return names.AxisScale(axis, names.Time)
	case Point:
		return names.AxisScale(axis, names.Point)
	}
	return names.AxisScale(axis, names.Linear)
}

// AddTrellisScale extends the band scale laying out trellis cells along axis.
func AddTrellisScale(scales []ir.Scale, axis, field string, padding float64) []ir.Scale {
	name := names.TrellisScale(axis)
	scales = AddFields(scales, name, Band, field)
	return Update(scales, name, func(s ir.Scale) ir.Scale {
		s.PaddingInner = ir.Float(padding)
		return s
	})
}

// Repeat clones the named scale for use inside a trellis cell: its range is
// narrowed to the cell's bandwidth on the trellis axis.
func Repeat(scales []ir.Scale, name, trellisAxis string) (ir.Scale, bool) {
	s, ok := Find(scales, name)
	if !ok {
		return ir.Scale{}, false
	}
	s.Range = []any{0, ir.SignalRef{Signal: names.BandwidthExpr(names.TrellisScale(trellisAxis))}}
	return s, true
}
