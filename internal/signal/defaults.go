package signal

import (
	"chartspec/internal/ir"
	"chartspec/internal/names"
	"chartspec/internal/options"
	"chartspec/internal/theme"
)

// Defaults are the chart-level signals every spec starts with. The palette
// signals are what two-dimensional facet lookups index into.
func Defaults(chart options.ChartOptions) []ir.Signal {
	chart = chart.WithDefaults()
	dashes := make([][]float64, len(chart.LineTypes))
	for i, lt := range chart.LineTypes {
		dashes[i] = theme.LineTypeDash(lt)
	}
	var highlighted any
	if chart.HighlightedSeries != "" {
		highlighted = chart.HighlightedSeries
	}
	hidden := append([]string{}, chart.HiddenSeries...)
	return []ir.Signal{
		Value(names.BackgroundColor, theme.ColorNameToRGB(chart.BackgroundColor, chart.ColorScheme)),
		Value(names.Colors, theme.TwoDimensionalColors(chart.Colors, chart.ColorScheme)),
		Value(names.LineTypes, dashes),
		Value(names.Opacities, append([]float64(nil), chart.Opacities...)),
		Value(names.HiddenSeries, hidden),
		{Name: names.HighlightedItem},
		{Name: names.HighlightedGroup},
		Value(names.HighlightedSeries, highlighted),
		{Name: names.SelectedItem},
		{Name: names.SelectedSeries},
		{Name: names.SelectedGroup},
	}
}
