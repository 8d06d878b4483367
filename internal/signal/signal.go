// Package signal maintains the registry of reactive state cells. A signal is
// created once per name; marks sharing it append their event handlers.
package signal

import (
	"fmt"
	"strings"

	"chartspec/internal/ir"
	"chartspec/internal/names"

	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("chartspec.signal")
}

// Value is a signal holding a constant.
func Value(name string, v any) ir.Signal {
	return ir.Signal{Name: name, Value: v}
}

// Upsert returns the list with a signal of that name, built by factory if it
// is missing, and the signal's index. An existing signal is left unchanged.
func Upsert(signals []ir.Signal, name string, factory func() ir.Signal) ([]ir.Signal, int) {
	if i := ir.SignalIndex(signals, name); i >= 0 {
		return signals, i
	}
	s := factory()
	s.Name = name
	out := ir.Clone(signals)
	out = append(out, s)
	return out, len(out) - 1
}

// AppendHandlers upserts the named signal (initially null) and appends
// handlers to its event list. Handlers already registered are kept.
func AppendHandlers(signals []ir.Signal, name string, handlers ...ir.Handler) []ir.Signal {
	signals, i := Upsert(signals, name, func() ir.Signal { return ir.Signal{} })
	out := ir.Clone(signals)
	out[i].On = append(out[i].On, handlers...)
	return out
}

// Add appends s unless a signal with its name exists.
func Add(signals []ir.Signal, s ir.Signal) []ir.Signal {
	out, _ := Upsert(signals, s.Name, func() ir.Signal { return ir.Clone(s) })
	return out
}

// Hover describes what a hover signal tracks.
type Hover struct {
	Target      string   // mark emitting the events
	Depth       int      // facet nesting of the hovered datum
	IDKey       string   // field identifying the row
	ExcludeKeys []string // rows with any of these fields set are never hovered
}

// IDExpr reaches the hovered row's id, nulled out for excluded rows.
func (h Hover) IDExpr() string {
	id := names.Datum(h.Depth, h.IDKey)
	if len(h.ExcludeKeys) == 0 {
		return id
	}
	tests := make([]string, len(h.ExcludeKeys))
	for i, k := range h.ExcludeKeys {
		tests[i] = names.Datum(h.Depth, k)
	}
	return fmt.Sprintf("(%s) ? null : %s", strings.Join(tests, " || "), id)
}

// Handlers are the mouseover/mouseout pair setting and clearing expr.
func Handlers(target, expr string) []ir.Handler {
	return []ir.Handler{
		{Events: names.Event(target, "mouseover"), Update: expr},
		{Events: names.Event(target, "mouseout"), Update: "null"},
	}
}

// AddHover registers {markName}_hoveredItem, following the hovered row of h.Target.
func AddHover(signals []ir.Signal, markName string, h Hover) []ir.Signal {
	name := names.Of(markName, names.HoveredItem)
	tracer().Debugf("hover signal %q on %q", name, h.Target)
	return AppendHandlers(signals, name, Handlers(h.Target, h.IDExpr())...)
}

// AddHighlightedItemEvents makes hovering h.Target highlight the hovered row.
func AddHighlightedItemEvents(signals []ir.Signal, h Hover) []ir.Signal {
	return AppendHandlers(signals, names.HighlightedItem, Handlers(h.Target, h.IDExpr())...)
}

// AddHighlightedSeriesEvents makes hovering target highlight the hovered
// row's series.
func AddHighlightedSeriesEvents(signals []ir.Signal, target string, depth int, seriesField string) []ir.Signal {
	return AppendHandlers(signals, names.HighlightedSeries, Handlers(target, names.Datum(depth, seriesField))...)
}

// AddHighlightedGroupEvents makes hovering the mark highlight every row of
// the hovered row's group, see dataset.AddGroupID.
func AddHighlightedGroupEvents(signals []ir.Signal, markName string) []ir.Signal {
	expr := names.Datum(1, names.Of(markName, names.HighlightGroupID))
	return AppendHandlers(signals, names.HighlightedGroup, Handlers(markName, expr)...)
}

// AddDualAxisSeries registers the first and last series of the color domain:
// the last one is drawn against the secondary metric axis.
func AddDualAxisSeries(signals []ir.Signal) []ir.Signal {
	domain := names.DomainExpr(names.ColorScale)
	signals = Add(signals, ir.Signal{Name: names.FirstSeries, Update: domain + "[0]"})
	signals = Add(signals, ir.Signal{Name: names.LastSeries, Update: fmt.Sprintf("peek(%s)", domain)})
	return signals
}
