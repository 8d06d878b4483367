// Package names holds the naming contract between IR sections.
//
// Every derived dataset, scale, signal and mark name is produced here, and
// every expression that refers to one of them is built from the same helpers,
// so producer and consumer can't drift apart.
package names

import (
	"fmt"
	"strings"
)

// Data nodes.
const (
	Table         = "table"
	FilteredTable = "filteredTable"
)

// Row fields added by transforms.
const (
	MarkID   = "rscMarkId"
	SeriesID = "rscSeriesId"
	StackID  = "rscStackId"
)

// Facet scales.
const (
	ColorScale             = "color"
	LineTypeScale          = "lineType"
	LineWidthScale         = "lineWidth"
	OpacityScale           = "opacity"
	SymbolShapeScale       = "symbolShape"
	SymbolSizeScale        = "symbolSize"
	LinearColorScale       = "linearColor"
	SecondaryColorScale    = "secondaryColor"
	SecondaryLineTypeScale = "secondaryLineType"
	SecondaryOpacityScale  = "secondaryOpacity"
)

// Global signals.
const (
	BackgroundColor   = "chartBackgroundColor"
	Colors            = "colors"
	LineTypes         = "lineTypes"
	Opacities         = "opacities"
	HiddenSeries      = "hiddenSeries"
	HighlightedItem   = "highlightedItem"
	HighlightedSeries = "highlightedSeries"
	HighlightedGroup  = "highlightedGroup"
	SelectedItem      = "selectedItem"
	SelectedSeries    = "selectedSeries"
	SelectedGroup     = "selectedGroup"
	PaddingInner      = "paddingInner"
	FirstSeries       = "firstRscSeriesId"
	LastSeries        = "lastRscSeriesId"
)

// Suffix vocabulary for names derived from a mark name.
const (
	Background           = "_background"
	Group                = "_group"
	FacetSuffix          = "_facet"
	AnnotationGroup      = "_annotationGroup"
	AnnotationText       = "_annotationText"
	AnnotationBackground = "_annotationBackground"
	SelectionRing        = "_selectionRing"
	Stacks               = "_stacks"
	Position             = "_position"
	DodgeGroup           = "_dodgeGroup"
	SelectedData         = "_selectedData"
	SelectedGroupID      = "_selectedGroupId"
	HighlightGroupID     = "_highlightGroupId"
	GroupID              = "_groupId"
	HoveredItem          = "_hoveredItem"
	HoverArea            = "_hoverArea"
	Trellis              = "_trellis"
	TrellisFacet         = "_trellisFacet"
	Aggregate            = "_aggregate"
	Entries              = "Entries"
	LegendAggregate      = "Aggregate"
	PointSuffix          = "_point"
	PointHover           = "_pointHover"
	PointSelect          = "_pointSelect"
	HoverRule            = "_hoverRule"
	PrimaryMetric        = "_primaryMetric"
	SecondaryMetric      = "_secondaryMetric"
	Summary              = "_summary"
	Pie                  = "_pie"
	Width                = "_width"
	TrendlineData        = "_data"
	HighlightedData      = "_highlightedData"
	StaticPoints         = "_staticPoints"
	StaticPointData      = "_staticPointData"
	SegmentLabel         = "_segmentLabel"
	SummaryLabel         = "_summaryLabel"
	LegendEntry          = "_legendEntry"
)

// Trendline output fields.
const (
	TrendlineValue = "trendlineValue"
)

// Of derives a name from a base name and a suffix.
func Of(base, suffix string) string {
	return base + suffix
}

// Indexed names the index-th component of a kind, e.g. Indexed("bar", 0) = "bar0".
func Indexed(kind string, index int) string {
	return fmt.Sprintf("%s%d", kind, index)
}

// Scale kinds positioned along an axis.
const (
	Band   = "Band"
	Linear = "Linear"
	Time   = "Time"
	Point  = "Point"
)

// AxisScale names the scale of a kind along an axis: AxisScale("x", Band) = "xBand".
func AxisScale(axis, kind string) string {
	return axis + kind
}

// TrellisScale names the band scale laying out trellis cells along an axis.
func TrellisScale(axis string) string {
	return axis + "TrellisBand"
}

// Dual-axis metric scale names, e.g. "yLinearPrimary".
func PrimaryMetricScale(axis string) string   { return axis + "LinearPrimary" }
func SecondaryMetricScale(axis string) string { return axis + "LinearSecondary" }

// TrendlineName names the index-th trendline of a mark, e.g. "line0Trendline0".
func TrendlineName(markName string, index int) string {
	return fmt.Sprintf("%sTrendline%d", markName, index)
}

// Datum reaches field through depth levels of nested facet data:
// Datum(2, "x") = "datum.datum.x".
func Datum(depth int, field string) string {
	if depth < 1 {
		depth = 1
	}
	return strings.Repeat("datum.", depth) + field
}

// ScaleExpr is the expression "scale('name', expr)".
func ScaleExpr(scale, expr string) string {
	return fmt.Sprintf("scale('%s', %s)", scale, expr)
}

// DataExpr is the expression "data('name')".
func DataExpr(data string) string {
	return fmt.Sprintf("data('%s')", data)
}

// DomainExpr is the expression "domain('name')".
func DomainExpr(scale string) string {
	return fmt.Sprintf("domain('%s')", scale)
}

// BandwidthExpr is the expression "bandwidth('name')".
func BandwidthExpr(scale string) string {
	return fmt.Sprintf("bandwidth('%s')", scale)
}

// Event is an event selector scoped to a mark: Event("bar0", "mouseover") = "@bar0:mouseover".
func Event(mark, event string) string {
	return fmt.Sprintf("@%s:%s", mark, event)
}

// JoinFields concatenates datum fields with separator sep inside the expression,
// e.g. JoinFields([a b], ",") = `datum.a + "," + datum.b`.
func JoinFields(fields []string, sep string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = "datum." + f
	}
	return strings.Join(parts, fmt.Sprintf(" + %q + ", sep))
}
