package scale

import (
	"chartspec/internal/facet"
	"chartspec/internal/ir"
	"chartspec/internal/names"
)

// FacetScaleType is the scale type a facet channel is mapped with.
func FacetScaleType(t facet.Type) string {
	switch t {
	case facet.TypeSymbolSize, facet.TypeLinearColor, facet.TypeLineWidth:
		return Linear
	}
	return Ordinal
}

// AddFieldToFacetScale adds the field of ref to the facet scale for t. Static
// values contribute nothing; a field pair contributes its primary field here
// and its secondary field through AddSecondaryScales.
func AddFieldToFacetScale(scales []ir.Scale, t facet.Type, ref facet.Ref) []ir.Scale {
	switch ref.Kind() {
	case facet.KindField, facet.KindDual:
		return AddFields(scales, string(t), FacetScaleType(t), ref.Field)
	}
	return scales
}

// AddFacetScales adds the color, lineType and opacity (and, when given, size)
// fields of a mark to their facet scales.
func AddFacetScales(scales []ir.Scale, a facet.Assignments) []ir.Scale {
	scales = AddFieldToFacetScale(scales, facet.TypeColor, a.Color)
	scales = AddFieldToFacetScale(scales, facet.TypeLineType, a.LineType)
	scales = AddFieldToFacetScale(scales, facet.TypeOpacity, a.Opacity)
	scales = AddFieldToFacetScale(scales, facet.TypeSymbolSize, a.Size)
	return scales
}

type secondary struct {
	primary   facet.Type
	secondary facet.Type
	signal    string
	ref       func(facet.Assignments) facet.Ref
}

var secondaries = []secondary{
	{facet.TypeColor, facet.TypeSecondaryColor, names.Colors, func(a facet.Assignments) facet.Ref { return a.Color }},
	{facet.TypeLineType, facet.TypeSecondaryLineType, names.LineTypes, func(a facet.Assignments) facet.Ref { return a.LineType }},
	{facet.TypeOpacity, facet.TypeSecondaryOpacity, names.Opacities, func(a facet.Assignments) facet.Ref { return a.Opacity }},
}

// AddSecondaryScales wires the second field of every field-pair facet: a
// secondary ordinal scale is fitted to it, and the primary scale's range is
// pointed at the matching signal (colors, lineTypes, opacities) so that the
// encoder can index the two-dimensional palette.
func AddSecondaryScales(scales []ir.Scale, a facet.Assignments) []ir.Scale {
	for _, s := range secondaries {
		ref := s.ref(a)
		if ref.Kind() != facet.KindDual {
			continue
		}
		scales = AddFields(scales, string(s.secondary), Ordinal, ref.Secondary)
		scales = Update(scales, string(s.primary), func(sc ir.Scale) ir.Scale {
			sc.Range = ir.SignalRef{Signal: s.signal}
			return sc
		})
	}
	return scales
}
