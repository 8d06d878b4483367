// Package validate checks compiled specs: References walks the name
// references between sections, Schema checks the emitted JSON structurally.
package validate

import (
	"errors"
	"fmt"

	"chartspec/internal/dataset"
	"chartspec/internal/graph"
	"chartspec/internal/ir"
)

// ErrDanglingReference marks a reference to a name no section declares.
var ErrDanglingReference = errors.New("dangling reference")

// ErrOutOfOrder marks a data node derived from a node declared after it.
var ErrOutOfOrder = errors.New("source declared out of order")

// References reports every unresolved name reference in spec, in build
// order: data first, then scales, signals, marks and guides.
func References(spec ir.Spec) []error {
	var errs []error
	if err := dataset.CheckClosure(spec.Data); err != nil {
		errs = append(errs, err)
	}
	g := graph.FromSpec(spec)
	for _, u := range sortUnresolved(g) {
		sentinel := ErrDanglingReference
		if u.Reason == graph.ReasonOutOfOrder {
			sentinel = ErrOutOfOrder
		}
		errs = append(errs, fmt.Errorf("%w: %s -%s-> %s", sentinel, u.From, u.Kind, u.Target))
	}
	return errs
}

// sortUnresolved orders the graph's unresolved references by the section and
// position of the referring node.
func sortUnresolved(g *graph.Graph) []graph.Unresolved {
	rank := map[string]int{}
	for i, n := range g.SortedNodes() {
		rank[n.ID] = i
	}
	out := append([]graph.Unresolved(nil), g.Unresolved...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && rank[out[j].From] < rank[out[j-1].From]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Must panics with the joined reference errors of spec, if any.
func Must(spec ir.Spec) {
	if errs := References(spec); len(errs) > 0 {
		panic(fmt.Sprintf("validate: invalid spec: %v", errors.Join(errs...)))
	}
}
