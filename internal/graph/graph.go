// Package graph is the reference graph of a compiled spec. IR sections point
// at each other by name only; the graph resolves those names so that a
// dangling reference shows up before the renderer sees it.
package graph

import (
	"sort"
	"strings"
)

// Graph manages nodes and their relationships.
type Graph struct {
	Nodes      map[string]*Node
	Edges      []Edge
	Unresolved []Unresolved

	// pending references, resolved once every node is known
	refs []Edge
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		Edges: []Edge{},
	}
}

// AddNode declares a node. Redeclaring keeps the first declaration.
func (g *Graph) AddNode(kind NodeKind, name string, order int) string {
	id := ID(kind, name)
	if _, ok := g.Nodes[id]; !ok {
		g.Nodes[id] = &Node{ID: id, Kind: kind, Name: name, Order: order}
	}
	return id
}

// Refer records a reference from node from to the target node, resolved by
// LinkRelations.
func (g *Graph) Refer(from string, kind NodeKind, target string, rel RelationKind) {
	g.refs = append(g.refs, Edge{From: from, To: ID(kind, target), Kind: rel})
}

// LinkRelations resolves all recorded references. A data source declared
// after the node deriving from it is unresolved too.
func (g *Graph) LinkRelations() {
	g.Edges = []Edge{}
	g.Unresolved = nil

	for _, ref := range g.refs {
		target, ok := g.Nodes[ref.To]
		if !ok && ref.Kind == RelationFrom {
			// a named mark is a data source for marks reading its items
			if name, found := strings.CutPrefix(ref.To, ID(KindData, "")); found {
				if _, ok = g.Nodes[ID(KindMark, name)]; ok {
					ref.To = ID(KindMark, name)
					target = g.Nodes[ref.To]
				}
			}
		}
		if !ok {
			g.Unresolved = append(g.Unresolved, Unresolved{From: ref.From, Target: ref.To, Kind: ref.Kind, Reason: ReasonNoCandidate})
			continue
		}
		if ref.Kind == RelationSource {
			if from := g.Nodes[ref.From]; from != nil && target.Order >= from.Order {
				g.Unresolved = append(g.Unresolved, Unresolved{From: ref.From, Target: ref.To, Kind: ref.Kind, Reason: ReasonOutOfOrder})
				continue
			}
		}
		g.Edges = append(g.Edges, ref)
	}
}

// GetDependencies returns all nodes that the given node depends on.
func (g *Graph) GetDependencies(id string) []*Node {
	var deps []*Node
	for _, edge := range g.Edges {
		if edge.From == id {
			if node, ok := g.Nodes[edge.To]; ok {
				deps = append(deps, node)
			}
		}
	}
	return deps
}

// GetDependents returns all nodes that depend on the given node.
func (g *Graph) GetDependents(id string) []*Node {
	var deps []*Node
	for _, edge := range g.Edges {
		if edge.To == id {
			if node, ok := g.Nodes[edge.From]; ok {
				deps = append(deps, node)
			}
		}
	}
	return deps
}

// SortedNodes returns the nodes by kind, then declaration order.
func (g *Graph) SortedNodes() []*Node {
	out := make([]*Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return kindRank(out[i].Kind) < kindRank(out[j].Kind)
		}
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func kindRank(k NodeKind) int {
	switch k {
	case KindData:
		return 0
	case KindScale:
		return 1
	case KindSignal:
		return 2
	case KindMark:
		return 3
	case KindLegend:
		return 4
	}
	return 5
}
