// Package legend is the compiler pass that runs after every mark: it reads the
// facets the marks left in the scale registry and derives the legend's own
// aggregate dataset, entries scale and guide from them.
package legend

import (
	"fmt"
	"strconv"
	"strings"

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
	return tracing.Select("chartspec.legend")
}

// hiddenOpacity is the symbol opacity of a hidden series.
const hiddenOpacity = 0.3

// AggregateName is the legend's dataset, e.g. "legend0Aggregate".
func AggregateName(o options.LegendOptions) string {
	return names.Of(o.Name, names.LegendAggregate)
}

// EntriesName is the legend's entries field and scale, e.g. "legend0Entries".
func EntriesName(o options.LegendOptions) string {
	return names.Of(o.Name, names.Entries)
}

// Facets returns the discrete and continuous facets the legend shows. Facet
// fields declared on the legend replace those found in the registry.
func Facets(o options.LegendOptions, scales []ir.Scale) (ordinal, continuous []facet.Facet) {
	ordinal, continuous = facet.FromScales(scales)
	overrides := []struct {
		t   facet.Type
		ref facet.Ref
	}{
		{facet.TypeColor, o.Color},
		{facet.TypeLineType, o.LineType},
		{facet.TypeOpacity, o.Opacity},
	}
	for _, ov := range overrides {
		if ov.ref.Field == "" {
			continue
		}
		replaced := false
		for i := range ordinal {
			if ordinal[i].Type == ov.t {
				ordinal[i].Field = ov.ref.Field
				replaced = true
			}
		}
		if !replaced {
			ordinal = append(ordinal, facet.Facet{Type: ov.t, Field: ov.ref.Field})
		}
	}
	return ordinal, continuous
}

func entryFields(o options.LegendOptions, scales []ir.Scale) []string {
	ordinal, _ := Facets(o, scales)
	return facet.Fields(ordinal)
}

// AddData adds the legend's aggregate dataset: one row per distinct
// combination of facet values with its joined entry label. A toggleable
// legend, or a chart with hidden series, also filters hidden series out of
// filteredTable ahead of every mark transform.
func AddData(data []ir.Data, o options.LegendOptions, scales []ir.Scale, chart options.ChartOptions) []ir.Data {
	fields := entryFields(o, scales)
	if len(fields) == 0 {
		tracer().Debugf("%s: no discrete facets, no entries", o.Name)
		return data
	}
	ts := []ir.Transform{
		ir.AggregateTransform{Type: "aggregate", Groupby: fields},
		ir.Formula(names.JoinFields(fields, " | "), EntriesName(o)),
	}
	if len(o.HiddenEntries) > 0 {
		quoted := make([]string, len(o.HiddenEntries))
		for i, e := range o.HiddenEntries {
			quoted[i] = strconv.Quote(e)
		}
		ts = append(ts, ir.Filter(fmt.Sprintf("indexof([%s], datum.%s) === -1", strings.Join(quoted, ", "), EntriesName(o))))
	}
	data = dataset.AddNode(data, ir.Data{Name: AggregateName(o), Source: names.Table, Transform: ts})

	if o.IsToggleable || len(chart.HiddenSeries) > 0 {
		filter := dataset.HiddenSeriesFilter(fields...)
		exists := dataset.HasTransform(data, names.FilteredTable, func(t ir.Transform) bool {
			f, ok := t.(ir.FilterTransform)
			return ok && f.Expr == filter.Expr
		})
		if !exists {
			data, _ = dataset.Prepend(data, names.FilteredTable, filter)
		}
	}
	return data
}

// AddScales adds the ordinal entries scale over the aggregate dataset.
func AddScales(scales []ir.Scale, o options.LegendOptions) []ir.Scale {
	if len(entryFields(o, scales)) == 0 {
		return scales
	}
	name := EntriesName(o)
	scales, _ = scale.GetOrCreate(scales, name, scale.Ordinal)
	return scale.Update(scales, name, func(s ir.Scale) ir.Scale {
		s.Domain = &ir.Domain{Data: AggregateName(o), Field: EntriesName(o)}
		return s
	})
}

// AddSignals makes hovering an entry highlight its series.
func AddSignals(signals []ir.Signal, o options.LegendOptions) []ir.Signal {
	if !o.Highlight {
		return signals
	}
	return signal.AppendHandlers(signals, names.HighlightedSeries,
		signal.Handlers(names.Of(o.Name, names.LegendEntry), "datum.value")...)
}

// Legends builds the guides: one entries legend over the discrete facets and
// one legend per continuous facet.
func Legends(o options.LegendOptions, scales []ir.Scale, scheme theme.Scheme) []ir.Legend {
	ordinal, continuous := Facets(o, scales)
	var out []ir.Legend
	if len(ordinal) > 0 {
		out = append(out, entriesLegend(o, ordinal, scheme))
	}
	for _, f := range continuous {
		l := ir.Legend{Title: o.Title, Orient: o.Orient(), Direction: direction(o)}
		switch f.Type {
		case facet.TypeSymbolSize:
			l.Size = string(f.Type)
			l.SymbolType = "circle"
		case facet.TypeLinearColor:
			l.Type = "gradient"
			l.Fill = string(f.Type)
		default:
			continue
		}
		out = append(out, l)
	}
	tracer().Debugf("%s: %d legend(s)", o.Name, len(out))
	return out
}

func direction(o options.LegendOptions) string {
	if o.IsVertical() {
		return "vertical"
	}
	return "horizontal"
}

func entriesLegend(o options.LegendOptions, facets []facet.Facet, scheme theme.Scheme) ir.Legend {
	row := fmt.Sprintf("%s[datum.index]", names.DataExpr(AggregateName(o)))
	symbols := ir.EncodeEntry{}
	shape := o.SymbolShape
	fields := map[facet.Type]string{}
	for _, f := range facets {
		fields[f.Type] = f.Field
	}

	color := encode.Static(theme.ColorNameToRGB(theme.Categorical12[0], scheme))
	switch {
	case o.Color.Kind() == facet.KindValue:
		color = encode.Static(theme.ColorNameToRGB(fmt.Sprint(o.Color.Value), scheme))
	case fields[facet.TypeColor] != "":
		family := names.ScaleExpr(names.ColorScale, row+"."+fields[facet.TypeColor])
		expr := family
		if s := fields[facet.TypeSecondaryColor]; s != "" {
			expr = fmt.Sprintf("%s[indexof(%s, %s.%s) %% length(%s)]",
				family, names.DomainExpr(names.SecondaryColorScale), row, s, family)
		}
		color = encode.Signal(expr)
	}
	symbols["fill"] = color
	symbols["stroke"] = color
	if f := fields[facet.TypeLineType]; f != "" {
		shape = "stroke"
		symbols["strokeDash"] = encode.Signal(names.ScaleExpr(names.LineTypeScale, row+"."+f))
		symbols["strokeWidth"] = encode.Static(theme.LineWidthPixels("M"))
	}
	base := encode.Static(1)
	if f := fields[facet.TypeOpacity]; f != "" {
		base = encode.Signal(names.ScaleExpr(names.OpacityScale, row+"."+f))
	}
	hidden := ir.ValueRef{Test: fmt.Sprintf("indexof(%s, datum.value) !== -1", names.HiddenSeries), Value: hiddenOpacity}
	opacity := append(ir.Production{hidden}, base...)
	if o.Highlight {
		opacity = append(ir.Production{hidden}, encode.HighlightOpacity(base, encode.Highlight{SeriesField: "value"})...)
	}
	symbols["fillOpacity"] = opacity
	symbols["strokeOpacity"] = opacity

	entries := ir.GuideEncode{Name: names.Of(o.Name, names.LegendEntry)}
	if o.Highlight || o.IsToggleable {
		entries.Interactive = ir.Bool(true)
	}
	if o.IsToggleable {
		entries.Update = ir.EncodeEntry{"cursor": encode.Static("pointer")}
	}

	return ir.Legend{
		Fill:       EntriesName(o),
		Title:      o.Title,
		Orient:     o.Orient(),
		Direction:  direction(o),
		LabelLimit: o.LabelLimit,
		SymbolType: shape,
		Encode: map[string]ir.GuideEncode{
			"entries": entries,
			"symbols": {Update: symbols},
			"labels": {Update: ir.EncodeEntry{
				"fill":        encode.Static(theme.ColorNameToRGB("gray-700", scheme)),
				"fillOpacity": ir.Production{hidden, {Value: 1}},
			}},
		},
	}
}
