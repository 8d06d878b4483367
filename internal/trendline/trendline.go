// Package trendline compiles the trendlines of line and scatter marks: one
// derived dataset per trendline and a faceted group drawing one line per
// series over it.
package trendline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"chartspec/internal/dataset"
	"chartspec/internal/encode"
	"chartspec/internal/facet"
	"chartspec/internal/ir"
	"chartspec/internal/names"
	"chartspec/internal/options"
	"chartspec/internal/signal"
	"chartspec/internal/theme"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("chartspec.trendline")
}

// ErrUnknownMethod is returned for a trendline method no transform computes.
var ErrUnknownMethod = errors.New("unknown trendline method")

// Method kinds.
const (
	KindAggregate  = "aggregate"
	KindRegression = "regression"
	KindWindow     = "window"
)

// Method is a parsed trendline method.
type Method struct {
	Kind  string
	Op    string // aggregate op or regression method, in the engine's vocabulary
	Order int    // polynomial order
	Frame int    // moving average window
}

var fixedMethods = map[string]Method{
	"average":     {Kind: KindAggregate, Op: "mean"},
	"median":      {Kind: KindAggregate, Op: "median"},
	"linear":      {Kind: KindRegression, Op: "linear"},
	"quadratic":   {Kind: KindRegression, Op: "quad"},
	"exponential": {Kind: KindRegression, Op: "exp"},
	"logarithmic": {Kind: KindRegression, Op: "log"},
	"power":       {Kind: KindRegression, Op: "pow"},
}

// ParseMethod parses a method name: the fixed names above, polynomial-N
// (N >= 1) and movingAverage-N (N >= 1).
func ParseMethod(s string) (Method, error) {
	if m, ok := fixedMethods[s]; ok {
		return m, nil
	}
	prefix, arg, found := strings.Cut(s, "-")
	if !found {
		return Method{}, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return Method{}, fmt.Errorf("%w: %q needs a positive integer suffix", ErrUnknownMethod, s)
	}
	switch prefix {
	case "polynomial":
		return Method{Kind: KindRegression, Op: "poly", Order: n}, nil
	case "movingAverage":
		return Method{Kind: KindWindow, Op: "mean", Frame: n}, nil
	}
	return Method{}, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Parent describes the mark a trendline is computed over.
type Parent struct {
	Name           string
	Dimension      string
	Metric         string
	Facets         facet.Assignments
	DimensionScale string
	MetricScale    string
	ColorScheme    theme.Scheme
}

// Groupby lists the fields that split the parent into series; a trendline is
// computed per series.
func (p Parent) Groupby() []string {
	r := facet.Resolve(p.Facets)
	return append(r.PrimaryFields, r.SecondaryFields...)
}

// Transforms computes the trendline rows: every output row carries the
// dimension field and the trendline value.
func Transforms(p Parent, t options.TrendlineOptions, m Method) []ir.Transform {
	var ts []ir.Transform
	for _, k := range t.ExcludeDataKeys {
		ts = append(ts, ir.Filter("!datum."+k))
	}
	groupby := p.Groupby()
	sortByDimension := ir.CollectTransform{Type: "collect", Sort: &ir.Compare{Field: p.Dimension}}
	switch m.Kind {
	case KindAggregate:
		ts = append(ts,
			ir.JoinAggregateTransform{
				Type:    "joinaggregate",
				Groupby: groupby,
				Fields:  []string{p.Metric},
				Ops:     []string{m.Op},
				As:      []string{names.TrendlineValue},
			},
			sortByDimension,
		)
	case KindRegression:
		ts = append(ts, ir.RegressionTransform{
			Type:    "regression",
			Method:  m.Op,
			Order:   m.Order,
			Groupby: groupby,
			X:       p.Dimension,
			Y:       p.Metric,
			Extent:  append([]float64(nil), t.DimensionExtent...),
			As:      []string{p.Dimension, names.TrendlineValue},
		})
	case KindWindow:
		ts = append(ts,
			ir.WindowTransform{
				Type:    "window",
				Groupby: groupby,
				Sort:    &ir.Compare{Field: p.Dimension},
				Ops:     []string{m.Op},
				Fields:  []string{p.Metric},
				As:      []string{names.TrendlineValue},
				Frame:   []int{-(m.Frame - 1), 0},
			},
			sortByDimension,
		)
	}
	return ts
}

// AddData adds a {trendline}_data node per trendline. Trendlines with an
// unknown method are logged and left out.
func AddData(data []ir.Data, p Parent, ts []options.TrendlineOptions) []ir.Data {
	for _, t := range ts {
		m, err := ParseMethod(t.Method)
		if err != nil {
			tracer().Errorf("%s: %v", t.Name, err)
			continue
		}
		data = dataset.AddNode(data, ir.Data{
			Name:      names.Of(t.Name, names.TrendlineData),
			Source:    names.FilteredTable,
			Transform: Transforms(p, t, m),
		})
	}
	return data
}

// AddSignals makes hovering a trendline with a tooltip highlight its series.
func AddSignals(signals []ir.Signal, p Parent, ts []options.TrendlineOptions) []ir.Signal {
	color := p.Facets.Color.Field
	for _, t := range ts {
		if len(t.Tooltips) == 0 || color == "" {
			continue
		}
		signals = signal.AddHighlightedSeriesEvents(signals, t.Name, 1, color)
	}
	return signals
}

// Marks draws each valid trendline as a group faceted by series.
func Marks(p Parent, ts []options.TrendlineOptions) []ir.Mark {
	var out []ir.Mark
	for _, t := range ts {
		if _, err := ParseMethod(t.Method); err != nil {
			continue
		}
		out = append(out, groupMark(p, t))
	}
	return out
}

func groupMark(p Parent, t options.TrendlineOptions) ir.Mark {
	facetName := names.Of(t.Name, names.FacetSuffix)
	return ir.Mark{
		Name: names.Of(t.Name, names.Group),
		Type: "group",
		From: &ir.From{Facet: &ir.Facet{
			Name:    facetName,
			Data:    names.Of(t.Name, names.TrendlineData),
			Groupby: p.Groupby(),
		}},
		Marks: []ir.Mark{lineMark(p, t, facetName)},
	}
}

func lineMark(p Parent, t options.TrendlineOptions, source string) ir.Mark {
	stroke := encode.Color(p.Facets.Color, p.ColorScheme)
	if t.Color != "" {
		stroke = encode.Static(theme.ColorNameToRGB(t.Color, p.ColorScheme))
	}
	enter := ir.EncodeEntry{
		"x":           ir.Production{{Scale: p.DimensionScale, Field: p.Dimension}},
		"y":           ir.Production{{Scale: p.MetricScale, Field: names.TrendlineValue}},
		"stroke":      stroke,
		"strokeDash":  encode.Static(theme.LineTypeDash(t.LineType)),
		"strokeWidth": encode.LineWidth(t.LineWidth),
	}
	if len(t.Tooltips) > 0 {
		enter["tooltip"] = encode.Tooltip(1)
	}
	m := ir.Mark{
		Name:   t.Name,
		Type:   "line",
		From:   &ir.From{Data: source},
		Encode: &ir.Encode{Enter: enter, Update: ir.EncodeEntry{"strokeOpacity": strokeOpacity(p, t)}},
	}
	if len(t.Tooltips) == 0 {
		m.Interactive = ir.Bool(false)
	}
	return m
}

// strokeOpacity hides a display-on-hover trendline until its series is
// highlighted.
func strokeOpacity(p Parent, t options.TrendlineOptions) ir.Production {
	if !t.DisplayOnHover || p.Facets.Color.Field == "" {
		return encode.Static(t.Opacity)
	}
	test := fmt.Sprintf("isValid(%s) && %s === datum.%s", names.HighlightedSeries, names.HighlightedSeries, p.Facets.Color.Field)
	return ir.Production{{Test: test, Value: t.Opacity}, {Value: 0}}
}
