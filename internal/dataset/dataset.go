// Package dataset assembles the data DAG: the shared table -> filteredTable
// chain and the mark-specific nodes derived from it.
//
// Every function returns a new list; nodes of the input list are never
// modified, callers may keep using what they passed in.
package dataset

import (
	"fmt"

	"chartspec/internal/ir"
	"chartspec/internal/names"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("chartspec.dataset")
}

// Initialize creates the two nodes every chart starts from: table, which owns
// the literal rows and tags each with an id, and filteredTable derived from it.
func Initialize(values []ir.Row, idKey string) []ir.Data {
	if idKey == "" {
		idKey = names.MarkID
	}
	return []ir.Data{
		{
			Name:      names.Table,
			Values:    ir.Clone(values),
			Transform: []ir.Transform{ir.Identifier(idKey)},
		},
		{
			Name:   names.FilteredTable,
			Source: names.Table,
		},
	}
}

// Find returns a copy of the named node.
func Find(data []ir.Data, name string) (ir.Data, bool) {
	i := ir.DataIndex(data, name)
	if i < 0 {
		return ir.Data{}, false
	}
	return ir.Clone(data[i]), true
}

// Append adds transforms to the end of the named node's pipeline. It reports
// false, and returns data unchanged, when no such node exists.
func Append(data []ir.Data, node string, ts ...ir.Transform) ([]ir.Data, bool) {
	i := ir.DataIndex(data, node)
	if i < 0 {
		tracer().Errorf("cannot append %d transform(s): data node %q does not exist", len(ts), node)
		return data, false
	}
	out := ir.Clone(data)
	out[i].Transform = append(out[i].Transform, ts...)
	return out, true
}

// Prepend adds transforms in front of the named node's pipeline.
func Prepend(data []ir.Data, node string, ts ...ir.Transform) ([]ir.Data, bool) {
	i := ir.DataIndex(data, node)
	if i < 0 {
		tracer().Errorf("cannot prepend %d transform(s): data node %q does not exist", len(ts), node)
		return data, false
	}
	out := ir.Clone(data)
	pipeline := make([]ir.Transform, 0, len(ts)+len(out[i].Transform))
	pipeline = append(pipeline, ts...)
	out[i].Transform = append(pipeline, out[i].Transform...)
	return out, true
}

// AddNode appends d unless a node of that name exists already. A derived node
// must name a source declared before it.
func AddNode(data []ir.Data, d ir.Data) []ir.Data {
	if ir.DataIndex(data, d.Name) >= 0 {
		return data
	}
	if d.IsSource() && ir.DataIndex(data, d.Source) < 0 {
		tracer().Errorf("data node %q derives from undeclared %q", d.Name, d.Source)
	}
	out := ir.Clone(data)
	return append(out, ir.Clone(d))
}

// HasTransform reports whether the named node's pipeline already holds a
// transform matching pred.
func HasTransform(data []ir.Data, node string, pred func(ir.Transform) bool) bool {
	i := ir.DataIndex(data, node)
	if i < 0 {
		return false
	}
	for _, t := range data[i].Transform {
		if pred(t) {
			return true
		}
	}
	return false
}

// AppendOnce appends a formula to node unless one with the same output field
// is already there.
func AppendOnce(data []ir.Data, node string, f ir.FormulaTransform) []ir.Data {
	exists := HasTransform(data, node, func(t ir.Transform) bool {
		ft, ok := t.(ir.FormulaTransform)
		return ok && ft.As == f.As
	})
	if exists {
		return data
	}
	out, _ := Append(data, node, f)
	return out
}

// Sources returns every node name reachable upstream of name, nearest first.
func Sources(data []ir.Data, name string) []string {
	var out []string
	for i := ir.DataIndex(data, name); i >= 0; {
		src := data[i].Source
		if src == "" {
			break
		}
		out = append(out, src)
		i = ir.DataIndex(data[:i], src)
	}
	return out
}

// CheckClosure verifies that every derived node names a source declared
// before it and that the two root nodes exist.
func CheckClosure(data []ir.Data) error {
	for _, root := range []string{names.Table, names.FilteredTable} {
		if ir.DataIndex(data, root) < 0 {
			return fmt.Errorf("data: missing root node %q", root)
		}
	}
	for i, d := range data {
		if ir.DataIndex(data[:i], d.Name) >= 0 {
			return fmt.Errorf("data: duplicate node %q", d.Name)
		}
		if d.IsSource() && ir.DataIndex(data[:i], d.Source) < 0 {
			return fmt.Errorf("data: node %q derives from %q which is not declared before it", d.Name, d.Source)
		}
	}
	return nil
}
