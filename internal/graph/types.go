package graph

// NodeKind is the IR section a node was declared in.
type NodeKind string

const (
	KindData   NodeKind = "data"
	KindScale  NodeKind = "scale"
	KindSignal NodeKind = "signal"
	KindMark   NodeKind = "mark"
	KindLegend NodeKind = "legend"
	KindAxis   NodeKind = "axis"
)

type RelationKind string

const (
	RelationSource     RelationKind = "source"      // data node derives from data node
	RelationFrom       RelationKind = "from"        // mark drawn from data node
	RelationFacet      RelationKind = "facet"       // facet partitions data node
	RelationDomain     RelationKind = "domain"      // scale fitted to data node
	RelationEncode     RelationKind = "encode"      // encode rule maps through scale
	RelationExpression RelationKind = "expression"  // scale('x') / data('x') inside an expression
	RelationEvent      RelationKind = "event"       // signal handler listens on mark
	RelationGuide      RelationKind = "guide"       // legend or axis drawn for scale
	RelationChild      RelationKind = "child"       // group mark owns mark
)

type UnresolvedReason string

const (
	ReasonNoCandidate UnresolvedReason = "no_candidate"
	ReasonOutOfOrder  UnresolvedReason = "out_of_order"
)

// Node is one named IR artifact.
type Node struct {
	ID   string   `json:"id"`
	Kind NodeKind `json:"kind"`
	Name string   `json:"name"`
	// Order is the declaration position within the node's section.
	Order int `json:"order"`
}

// Edge represents a directed reference between two nodes.
type Edge struct {
	From string       `json:"from"`
	To   string       `json:"to"`
	Kind RelationKind `json:"kind"`
}

// Unresolved is a reference whose target was never declared.
type Unresolved struct {
	From   string           `json:"from"`
	Target string           `json:"target"`
	Kind   RelationKind     `json:"kind"`
	Reason UnresolvedReason `json:"reason"`
}

// ID derives a node id from its kind and name, e.g. "scale:xBand".
func ID(kind NodeKind, name string) string {
	return string(kind) + ":" + name
}
