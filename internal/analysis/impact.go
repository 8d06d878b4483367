package analysis

import (
	"sort"

	"chartspec/internal/graph"
)

// ImpactReport summarizes the IR artifacts affected by changes.
type ImpactReport struct {
	DirectlyAffected   []*graph.Node
	IndirectlyAffected []*graph.Node
	Missing            []string // changed ids not present in the graph
}

// Analyzer performs impact analysis on the reference graph.
type Analyzer struct {
	g *graph.Graph
}

// NewAnalyzer creates a new analyzer.
func NewAnalyzer(g *graph.Graph) *Analyzer {
	return &Analyzer{g: g}
}

// AnalyzeImpact identifies which nodes are affected when the nodes with the
// given ids change. Indirect impact follows dependents transitively, so a
// changed data node reaches the scales fitted to it and every mark and
// guide drawn through those scales.
func (a *Analyzer) AnalyzeImpact(changed []string) *ImpactReport {
	report := &ImpactReport{
		DirectlyAffected:   []*graph.Node{},
		IndirectlyAffected: []*graph.Node{},
	}

	seen := make(map[string]bool)

	// 1. Find Direct Impacts
	for _, id := range changed {
		node, ok := a.g.Nodes[id]
		if !ok {
			report.Missing = append(report.Missing, id)
			continue
		}
		if !seen[id] {
			report.DirectlyAffected = append(report.DirectlyAffected, node)
			seen[id] = true
		}
	}

	// 2. Find Indirect Impacts (Dependents)
	queue := append([]*graph.Node(nil), report.DirectlyAffected...)
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, dep := range a.g.GetDependents(node.ID) {
			if seen[dep.ID] {
				continue
			}
			seen[dep.ID] = true
			report.IndirectlyAffected = append(report.IndirectlyAffected, dep)
			queue = append(queue, dep)
		}
	}

	sortNodes(report.IndirectlyAffected)
	return report
}

// Changed lists the ids of nodes that differ between two graphs: nodes only
// in one of them, and nodes whose outgoing references differ.
func Changed(before, after *graph.Graph) []string {
	out := map[string]bool{}
	for id := range before.Nodes {
		if _, ok := after.Nodes[id]; !ok {
			out[id] = true
		}
	}
	for id := range after.Nodes {
		if _, ok := before.Nodes[id]; !ok {
			out[id] = true
		}
	}

	prev, next := outgoing(before), outgoing(after)
	for id, refs := range next {
		if _, ok := before.Nodes[id]; !ok {
			continue
		}
		if !sameSet(prev[id], refs) {
			out[id] = true
		}
	}
	for id, refs := range prev {
		if _, ok := next[id]; !ok && len(refs) > 0 {
			if _, ok := after.Nodes[id]; ok {
				out[id] = true
			}
		}
	}

	ids := make([]string, 0, len(out))
	for id := range out {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func outgoing(g *graph.Graph) map[string]map[graph.Edge]bool {
	out := map[string]map[graph.Edge]bool{}
	for _, e := range g.Edges {
		if out[e.From] == nil {
			out[e.From] = map[graph.Edge]bool{}
		}
		out[e.From][e] = true
	}
	return out
}

func sameSet(a, b map[graph.Edge]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for e := range a {
		if !b[e] {
			return false
		}
	}
	return true
}

func sortNodes(nodes []*graph.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
}
