package facet

import (
	"chartspec/internal/ir"
	"chartspec/internal/names"
)

// Type is the visual channel a facet drives; it equals the facet scale's name.
type Type string

const (
	TypeColor             Type = names.ColorScale
	TypeLineType          Type = names.LineTypeScale
	TypeLineWidth         Type = names.LineWidthScale
	TypeOpacity           Type = names.OpacityScale
	TypeSymbolShape       Type = names.SymbolShapeScale
	TypeSymbolSize        Type = names.SymbolSizeScale
	TypeLinearColor       Type = names.LinearColorScale
	TypeSecondaryColor    Type = names.SecondaryColorScale
	TypeSecondaryLineType Type = names.SecondaryLineTypeScale
	TypeSecondaryOpacity  Type = names.SecondaryOpacityScale
)

// Facet is a field bound to a visual channel, derived from the scale registry.
type Facet struct {
	Type  Type
	Field string
}

// scaleNames is the fixed set of scales that represent facets, in legend priority order.
var scaleNames = []Type{
	TypeColor,
	TypeLineType,
	TypeLinearColor,
	TypeLineWidth,
	TypeOpacity,
	TypeSymbolShape,
	TypeSymbolSize,
	TypeSecondaryColor,
	TypeSecondaryLineType,
	TypeSecondaryOpacity,
}

// IsFacetScale reports whether the scale name belongs to the facet set.
func IsFacetScale(name string) bool {
	for _, t := range scaleNames {
		if string(t) == name {
			return true
		}
	}
	return false
}

// FromScales scans the registry for populated facet scales. Ordinal and point
// scales become discrete facets, everything else continuous.
func FromScales(scales []ir.Scale) (ordinal, continuous []Facet) {
	for _, s := range scales {
		if !IsFacetScale(s.Name) || s.Domain == nil || len(s.Domain.Fields) == 0 {
			continue
		}
		f := Facet{Type: Type(s.Name), Field: s.Domain.Fields[0]}
		if s.Type == "ordinal" || s.Type == "point" {
			ordinal = append(ordinal, f)
		} else {
			continuous = append(continuous, f)
		}
	}
	return ordinal, continuous
}

// Fields returns the distinct fields of facets in order.
func Fields(facets []Facet) []string {
	var out []string
	seen := map[string]bool{}
	for _, f := range facets {
		if !seen[f.Field] {
			seen[f.Field] = true
			out = append(out, f.Field)
		}
	}
	return out
}
