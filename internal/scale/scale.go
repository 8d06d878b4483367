// Package scale maintains the scale registry: one ordered list of named
// scales that marks find-or-create and extend with their domain fields.
package scale

import (
	"strings"

	"chartspec/internal/facet"
	"chartspec/internal/ir"
	"chartspec/internal/names"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("chartspec.scale")
}

// Scale types.
const (
	Ordinal = "ordinal"
	Band    = "band"
	Linear  = "linear"
	Time    = "time"
	Point   = "point"
)

// Default synthesizes the record GetOrCreate inserts for a missing scale.
// Facet scales are fitted to table, positional scales to filteredTable.
func Default(name, typ string) ir.Scale {
	s := ir.Scale{Name: name, Type: typ}
	if facet.IsFacetScale(name) {
		s.Domain = &ir.Domain{Data: names.Table, Fields: []string{}}
		if typ == Linear {
			s.Zero = ir.Bool(false)
		}
		return s
	}
	s.Domain = &ir.Domain{Data: names.FilteredTable, Fields: []string{}}
	s.Range = rangeOf(name)
	switch typ {
	case Linear:
		s.Nice = true
		s.Zero = ir.Bool(true)
	case Point:
		s.Padding = ir.Float(0.5)
	}
	return s
}

// rangeOf derives the pixel range from the axis a positional scale lies on.
func rangeOf(name string) any {
	switch {
	case strings.HasPrefix(name, "x"):
		return "width"
	case strings.HasPrefix(name, "y"):
		return "height"
	}
	return nil
}

// GetOrCreate finds the scale with name and type, inserting a default record
// if there is none. It returns the (possibly extended) list and the index of
// the scale.
func GetOrCreate(scales []ir.Scale, name, typ string) ([]ir.Scale, int) {
	for i, s := range scales {
		if s.Name == name && s.Type == typ {
			return scales, i
		}
	}
	tracer().Debugf("creating %s scale %q", typ, name)
	out := ir.Clone(scales)
	out = append(out, Default(name, typ))
	return out, len(out) - 1
}

// AddDomainFields returns s with fields appended to its domain. Existing
// fields are kept and duplicates are allowed: each mark sharing the scale
// contributes its own field.
func AddDomainFields(s ir.Scale, fields ...string) ir.Scale {
	s = ir.Clone(s)
	if s.Domain == nil {
		s.Domain = &ir.Domain{}
	}
	s.Domain.Fields = append(s.Domain.Fields, fields...)
	return s
}

// AddFields finds or creates the scale and appends fields to its domain.
func AddFields(scales []ir.Scale, name, typ string, fields ...string) []ir.Scale {
	scales, i := GetOrCreate(scales, name, typ)
	out := ir.Clone(scales)
	out[i] = AddDomainFields(out[i], fields...)
	return out
}

// Update replaces the named scale by fn(scale). Missing scales are left alone.
func Update(scales []ir.Scale, name string, fn func(ir.Scale) ir.Scale) []ir.Scale {
	i := ir.ScaleIndex(scales, name)
	if i < 0 {
		return scales
	}
	out := ir.Clone(scales)
	out[i] = fn(out[i])
	return out
}

// Find returns a copy of the named scale.
func Find(scales []ir.Scale, name string) (ir.Scale, bool) {
	i := ir.ScaleIndex(scales, name)
	if i < 0 {
		return ir.Scale{}, false
	}
	return ir.Clone(scales[i]), true
}

// RemoveUnused drops every scale whose domain never received a field.
func RemoveUnused(scales []ir.Scale) []ir.Scale {
	out := make([]ir.Scale, 0, len(scales))
	for _, s := range scales {
		if s.Domain.IsEmpty() {
			tracer().Debugf("pruning unused scale %q", s.Name)
			continue
		}
		out = append(out, ir.Clone(s))
	}
	return out
}
