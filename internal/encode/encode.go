// Package encode generates the production rules shared by every mark type:
// facet channels, highlight fading, and the selection overlay that popovers
// switch on.
package encode

import (
	"fmt"

	"chartspec/internal/facet"
	"chartspec/internal/ir"
	"chartspec/internal/names"
	"chartspec/internal/options"
	"chartspec/internal/theme"
)

const (
	// FadeFactor divides the opacity of rows that are not highlighted.
	FadeFactor = 5
	// SelectedStrokeWidth is the stroke width of the selected item.
	SelectedStrokeWidth = 2
	// SelectionColor is the stroke color of the selected item.
	SelectionColor = "static-blue"
)

// Rule is a single-entry production.
func Rule(ref ir.ValueRef) ir.Production {
	return ir.Production{ref}
}

// Static is a production holding a constant.
func Static(v any) ir.Production {
	return ir.Production{{Value: v}}
}

// Signal is a production evaluating expr.
func Signal(expr string) ir.Production {
	return ir.Production{{Signal: expr}}
}

// dualLookup indexes the family a primary scale returns by the position of
// the secondary value in the secondary scale's domain.
func dualLookup(primaryScale, secondaryScale string, ref facet.Ref) string {
	family := names.ScaleExpr(primaryScale, "datum."+ref.Field)
	return fmt.Sprintf("%s[indexof(%s, datum.%s) %% length(%s)]",
		family, names.DomainExpr(secondaryScale), ref.Secondary, family)
}

// Color is the fill/stroke production of a color facet.
func Color(ref facet.Ref, scheme theme.Scheme) ir.Production {
	switch ref.Kind() {
	case facet.KindValue:
		return Static(theme.ColorNameToRGB(fmt.Sprint(ref.Value), scheme))
	case facet.KindField:
		return Rule(ir.ValueRef{Scale: names.ColorScale, Field: ref.Field})
	case facet.KindDual:
		return Signal(dualLookup(names.ColorScale, names.SecondaryColorScale, ref))
	}
	return Static(theme.ColorNameToRGB(theme.Categorical12[0], scheme))
}

// LineType is the strokeDash production of a lineType facet.
func LineType(ref facet.Ref) ir.Production {
	switch ref.Kind() {
	case facet.KindValue:
		if dash, ok := ref.Value.([]any); ok {
			return Static(dash)
		}
		return Static(theme.LineTypeDash(fmt.Sprint(ref.Value)))
	case facet.KindField:
		return Rule(ir.ValueRef{Scale: names.LineTypeScale, Field: ref.Field})
	case facet.KindDual:
		return Signal(dualLookup(names.LineTypeScale, names.SecondaryLineTypeScale, ref))
	}
	return Static(theme.LineTypeDash("solid"))
}

// Opacity is the opacity production of an opacity facet.
func Opacity(ref facet.Ref) ir.Production {
	switch ref.Kind() {
	case facet.KindValue:
		return Static(ref.Value)
	case facet.KindField:
		return Rule(ir.ValueRef{Scale: names.OpacityScale, Field: ref.Field})
	case facet.KindDual:
		return Signal(dualLookup(names.OpacityScale, names.SecondaryOpacityScale, ref))
	}
	return Static(1)
}

// SymbolSize is the size production of a size facet.
func SymbolSize(ref facet.Ref) ir.Production {
	switch ref.Kind() {
	case facet.KindValue:
		return Static(theme.SymbolSizeArea(ref.Value))
	case facet.KindField, facet.KindDual:
		return Rule(ir.ValueRef{Scale: names.SymbolSizeScale, Field: ref.Field})
	}
	return Static(theme.SymbolSizeArea("M"))
}

// LineWidth is the pixel width of a named or numeric line width.
func LineWidth(w any) ir.Production {
	return Static(theme.LineWidthPixels(w))
}

// Faded returns the faded counterpart of an opacity rule: constants are
// divided up front, scale and signal lookups at draw time.
func Faded(ref ir.ValueRef) ir.ValueRef {
	switch {
	case ref.Scale != "":
		return ir.ValueRef{Signal: fmt.Sprintf("%s / %d", names.ScaleExpr(ref.Scale, "datum."+ref.Field), FadeFactor)}
	case ref.Signal != "":
		return ir.ValueRef{Signal: fmt.Sprintf("(%s) / %d", ref.Signal, FadeFactor)}
	}
	v := 1.0
	switch n := ref.Value.(type) {
	case float64:
		v = n
	case int:
		v = float64(n)
	}
	return ir.ValueRef{Value: v / FadeFactor}
}

// Highlight describes which highlight signals a mark reacts to.
type Highlight struct {
	IDKey       string // row id field; empty disables item highlighting
	SeriesField string // series field; empty disables series highlighting
	GroupField  string // group id field; empty disables group highlighting
}

// HighlightOpacity prepends fading rules to base: while anything is
// highlighted, rows that are not part of it fade.
func HighlightOpacity(base ir.Production, h Highlight) ir.Production {
	if len(base) == 0 {
		base = Static(1)
	}
	faded := Faded(base[len(base)-1])
	var out ir.Production
	if h.IDKey != "" {
		faded.Test = fmt.Sprintf("isValid(%s) && %s !== datum.%s", names.HighlightedItem, names.HighlightedItem, h.IDKey)
		out = append(out, faded)
	}
	if h.GroupField != "" {
		faded.Test = fmt.Sprintf("isValid(%s) && %s !== datum.%s", names.HighlightedGroup, names.HighlightedGroup, h.GroupField)
		out = append(out, faded)
	}
	if h.SeriesField != "" {
		faded.Test = fmt.Sprintf("isValid(%s) && %s !== datum.%s", names.HighlightedSeries, names.HighlightedSeries, h.SeriesField)
		out = append(out, faded)
	}
	return append(out, base...)
}

// SelectedTest is true for the selected item and for every row of the
// selected group.
func SelectedTest(markName, idKey string) string {
	return fmt.Sprintf("(%s && %s === datum.%s) || (%s && %s === datum.%s)",
		names.SelectedItem, names.SelectedItem, idKey,
		names.SelectedGroup, names.SelectedGroup, names.Of(markName, names.SelectedGroupID))
}

// Selection builds the popover overlay productions of a mark.
type Selection struct {
	MarkName string
	IDKey    string
	Popovers []options.PopoverOptions
	Scheme   theme.Scheme
}

func (s Selection) active() bool { return len(s.Popovers) > 0 }

// Stroke is the stroke color: the selection color for the selected item,
// def otherwise.
func (s Selection) Stroke(def ir.Production) ir.Production {
	if !s.active() {
		return def
	}
	rule := ir.ValueRef{Test: SelectedTest(s.MarkName, s.IDKey), Value: theme.ColorNameToRGB(SelectionColor, s.Scheme)}
	return append(ir.Production{rule}, def...)
}

// StrokeDash draws the selected item with a solid stroke.
func (s Selection) StrokeDash(def ir.Production) ir.Production {
	if !s.active() {
		return def
	}
	rule := ir.ValueRef{Test: SelectedTest(s.MarkName, s.IDKey), Value: []float64{}}
	return append(ir.Production{rule}, def...)
}

// StrokeWidth widens the selected item's stroke. Popovers highlighting by
// dimension draw a selection ring instead, so they get no rule here.
func (s Selection) StrokeWidth(lineWidth any) ir.Production {
	def := LineWidth(lineWidth)
	if !s.active() || options.HasDimensionPopover(s.Popovers) {
		return def
	}
	rule := ir.ValueRef{Test: SelectedTest(s.MarkName, s.IDKey), Value: SelectedStrokeWidth}
	return append(ir.Production{rule}, def...)
}

// Cursor shows a pointer over clickable marks.
func Cursor(clickable bool) ir.Production {
	if !clickable {
		return nil
	}
	return Static("pointer")
}

// Tooltip hands the hovered row, depth levels down, to the tooltip handler.
func Tooltip(depth int) ir.Production {
	if depth <= 1 {
		return Signal("datum")
	}
	return Signal(names.Datum(depth-1, "datum"))
}

// Set assigns p to channel unless p is empty.
func Set(e ir.EncodeEntry, channel string, p ir.Production) {
	if len(p) > 0 {
		e[channel] = p
	}
}
