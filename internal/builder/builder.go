// Package builder is the orchestrator. It threads the four IR sections
// through every mark in declaration order, then layers legends and axes on
// top of the finished scale registry.
package builder

import (
	"fmt"

	"chartspec/internal/area"
	"chartspec/internal/axis"
	"chartspec/internal/bar"
	"chartspec/internal/dataset"
	"chartspec/internal/donut"
	"chartspec/internal/facet"
	"chartspec/internal/ir"
	"chartspec/internal/legend"
	"chartspec/internal/line"
	"chartspec/internal/options"
	"chartspec/internal/scale"
	"chartspec/internal/scatter"
	"chartspec/internal/signal"
	"chartspec/internal/theme"
	"chartspec/internal/validate"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("chartspec.builder")
}

// SchemaURL is the renderer schema the emitted document declares.
const SchemaURL = "https://vega.github.io/schema/vega/v5.json"

// Result is a compiled chart. Skipped holds one error per mark declaration
// that was not compiled.
type Result struct {
	Spec    ir.Spec
	Skipped []error
}

// state is the IR under construction.
type state struct {
	chart   options.ChartOptions
	data    []ir.Data
	scales  []ir.Scale
	signals []ir.Signal
	marks   []ir.Mark

	// per mark type, the index the next mark of that type gets
	counts  map[options.MarkType]int
	legends []options.LegendOptions
	axes    []options.AxisOptions
	skipped []error
}

// Build compiles chart into a spec.
func Build(chart options.ChartOptions) Result {
	chart = chart.WithDefaults()
	s := &state{
		chart:   chart,
		data:    dataset.Initialize(chart.Values, chart.IDKey),
		scales:  initialScales(chart),
		signals: signal.Defaults(chart),
		counts:  map[options.MarkType]int{},
	}

	// 1. Marks, in declaration order
	for _, m := range chart.Marks {
		s.add(m)
	}

	// 2. Legends read the facets the marks left in the registry
	spec := ir.Spec{Schema: SchemaURL, Description: chart.Description}
	for i, l := range s.legends {
		l = l.WithDefaults(i)
		s.data = legend.AddData(s.data, l, s.scales, chart)
		s.scales = legend.AddScales(s.scales, l)
		s.signals = legend.AddSignals(s.signals, l)
		spec.Legends = append(spec.Legends, legend.Legends(l, s.scales, chart.ColorScheme)...)
	}

	// 3. Axes
	spec.Axes = axis.Axes(s.axes, s.scales, chart.ColorScheme)

	// 4. Cleanup
	spec.Data = s.data
	spec.Scales = scale.RemoveUnused(s.scales)
	spec.Signals = s.signals
	spec.Marks = s.marks
	if chart.Title != "" {
		spec.Title = &ir.Title{Text: chart.Title}
	}
	spec.Usermeta = map[string]any{"locale": chart.Locale}
	if chart.Name != "" {
		spec.Usermeta["chart"] = chart.Name
	}

	if chart.Strict {
		validate.Must(spec)
	}
	tracer().Infof("built %q: %d data, %d scales, %d signals, %d marks, %d legends, %d axes, %d skipped",
		chart.Name, len(spec.Data), len(spec.Scales), len(spec.Signals), len(spec.Marks),
		len(spec.Legends), len(spec.Axes), len(s.skipped))
	return Result{Spec: spec, Skipped: s.skipped}
}

// next returns the index of the next mark of type t.
func (s *state) next(t options.MarkType) int {
	i := s.counts[t]
	s.counts[t]++
	return i
}

func (s *state) add(m options.Mark) {
	switch o := m.(type) {
	case options.BarOptions:
		o = o.WithDefaults(s.next(options.TypeBar), s.chart)
		s.data = bar.AddData(s.data, o)
		s.scales = bar.AddScales(s.scales, o)
		s.signals = bar.AddSignals(s.signals, o)
		s.marks = bar.AddMarks(s.marks, o)
	case options.LineOptions:
		o = o.WithDefaults(s.next(options.TypeLine), s.chart)
		s.data = line.AddData(s.data, o)
		s.scales = line.AddScales(s.scales, o)
		s.signals = line.AddSignals(s.signals, o)
		s.marks = line.AddMarks(s.marks, o)
	case options.AreaOptions:
		o = o.WithDefaults(s.next(options.TypeArea), s.chart)
		s.data = area.AddData(s.data, o)
		s.scales = area.AddScales(s.scales, o)
		s.signals = area.AddSignals(s.signals, o)
		s.marks = area.AddMarks(s.marks, o)
	case options.ScatterOptions:
		o = o.WithDefaults(s.next(options.TypeScatter), s.chart)
		s.data = scatter.AddData(s.data, o)
		s.scales = scatter.AddScales(s.scales, o)
		s.signals = scatter.AddSignals(s.signals, o)
		s.marks = scatter.AddMarks(s.marks, o)
	case options.DonutOptions:
		o = o.WithDefaults(s.next(options.TypeDonut), s.chart)
		s.data = donut.AddData(s.data, o)
		s.scales = donut.AddScales(s.scales, o)
		s.signals = donut.AddSignals(s.signals, o)
		s.marks = donut.AddMarks(s.marks, o)
	case options.ComboOptions:
		// children share the chart's sections as if declared at top level
		for _, child := range o.Marks {
			switch child.(type) {
			case options.BarOptions, options.LineOptions:
				s.add(child)
			default:
				s.skip(child.MarkType(), fmt.Sprintf("combo %q accepts bar and line children only", o.Name))
			}
		}
	case options.LegendOptions:
		s.legends = append(s.legends, o)
	case options.AxisOptions:
		s.axes = append(s.axes, o)
	default:
		s.skip(m.MarkType(), "")
	}
}

func (s *state) skip(t options.MarkType, reason string) {
	err := fmt.Errorf("%w: %s", options.ErrUnknownMarkType, t)
	if reason != "" {
		err = fmt.Errorf("%w: %s (%s)", options.ErrUnknownMarkType, t, reason)
	}
	tracer().Errorf("skipping mark: %v", err)
	s.skipped = append(s.skipped, err)
}

// initialScales creates the facet scales every chart starts with, ranged
// from the chart palettes. Facet scales no mark populates are pruned at the
// end of the build.
func initialScales(chart options.ChartOptions) []ir.Scale {
	dashes := make([][]float64, len(chart.LineTypes))
	for i, lt := range chart.LineTypes {
		dashes[i] = theme.LineTypeDash(lt)
	}
	ranges := []struct {
		t     facet.Type
		value any
	}{
		{facet.TypeColor, theme.ResolveColors(chart.Colors.Primary(), chart.ColorScheme)},
		{facet.TypeLineType, dashes},
		{facet.TypeOpacity, append([]float64(nil), chart.Opacities...)},
		{facet.TypeSymbolShape, append([]string(nil), chart.SymbolShapes...)},
		{facet.TypeSymbolSize, []float64{theme.SymbolSizeArea("XS"), theme.SymbolSizeArea("XL")}},
	}
	var scales []ir.Scale
	for _, r := range ranges {
		var i int
		scales, i = scale.GetOrCreate(scales, string(r.t), scale.FacetScaleType(r.t))
		scales[i].Range = r.value
	}
	return scales
}
